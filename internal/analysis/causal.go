package analysis

import (
	"math"
	"sort"

	"github.com/alexanderramin/lumen/internal/domain"
)

const (
	causalBaseConfidence     = 0.5
	causalMatchConfidence    = 0.8
	causalMismatchConfidence = 0.7
)

// CausalFactor aggregates mood changes that followed notes mentioning one
// event category. It is a heuristic, not a causal claim.
type CausalFactor struct {
	Category    string
	Typical     Effect
	Observed    Effect
	Impact      float64
	Confidence  float64
	Occurrences int
	MeanDelta   float64
}

func (f CausalFactor) Weight() float64 {
	return f.Confidence * f.Impact
}

func (a *Analyzer) causalFactors(samples []domain.MoodSample) []CausalFactor {
	type acc struct {
		impact, confidence, delta float64
		n                         int
	}
	byCategory := make(map[string]*acc)

	for i := 0; i+1 < len(samples); i++ {
		cur, next := samples[i], samples[i+1]
		if cur.FreeText == "" {
			continue
		}
		delta := float64(next.Level - cur.Level)
		for category, score := range a.events.Classify(cur.FreeText) {
			if score <= 0 {
				continue
			}
			typical := a.typicalEffect(category)
			conf := causalBaseConfidence
			switch {
			case delta > 0 && typical == EffectImproves:
				conf = causalMatchConfidence
			case delta < 0 && typical != EffectImproves:
				conf = causalMismatchConfidence
			}
			c := byCategory[category]
			if c == nil {
				c = &acc{}
				byCategory[category] = c
			}
			c.impact += math.Abs(delta) / 10
			c.confidence += conf
			c.delta += delta
			c.n++
		}
	}

	out := make([]CausalFactor, 0, len(byCategory))
	for category, c := range byCategory {
		n := float64(c.n)
		f := CausalFactor{
			Category:    category,
			Typical:     a.typicalEffect(category),
			Impact:      c.impact / n,
			Confidence:  c.confidence / n,
			Occurrences: c.n,
			MeanDelta:   c.delta / n,
		}
		switch {
		case f.MeanDelta > 0:
			f.Observed = EffectImproves
		case f.MeanDelta < 0:
			f.Observed = EffectWorsens
		default:
			f.Observed = EffectNeutral
		}
		out = append(out, f)
	}

	sort.Slice(out, func(i, j int) bool {
		wi, wj := out[i].Weight(), out[j].Weight()
		if wi != wj {
			return wi > wj
		}
		if out[i].Occurrences != out[j].Occurrences {
			return out[i].Occurrences > out[j].Occurrences
		}
		return out[i].Category < out[j].Category
	})
	if len(out) > MaxCausalFactors {
		out = out[:MaxCausalFactors]
	}
	return out
}

func (a *Analyzer) typicalEffect(category string) Effect {
	if e, ok := a.typical[category]; ok {
		return e
	}
	return EffectMixed
}
