package analysis

import (
	"fmt"
	"math"
	"sort"
	"time"
)

type InsightKind string

const (
	InsightCorrelation InsightKind = "correlation"
	InsightSuggestion  InsightKind = "suggestion"
	InsightTemporal    InsightKind = "temporal"
	InsightTrigger     InsightKind = "trigger"
	InsightCycle       InsightKind = "cycle"
	InsightPrediction  InsightKind = "prediction"
)

// Insight is a ranked, prompt-ready observation.
type Insight struct {
	Kind        InsightKind
	Text        string
	Score       float64
	SampleCount int
	ComputedAt  time.Time
}

const predictionScore = 0.3

// RankInsights sorts by score, then sample count, then recency, then text.
func RankInsights(in []Insight) {
	sort.SliceStable(in, func(i, j int) bool {
		if in[i].Score != in[j].Score {
			return in[i].Score > in[j].Score
		}
		if in[i].SampleCount != in[j].SampleCount {
			return in[i].SampleCount > in[j].SampleCount
		}
		if !in[i].ComputedAt.Equal(in[j].ComputedAt) {
			return in[i].ComputedAt.After(in[j].ComputedAt)
		}
		return in[i].Text < in[j].Text
	})
}

// Suggestion phrases a positive correlation as something to try now.
func Suggestion(c HabitCorrelation) Insight {
	return Insight{
		Kind: InsightSuggestion,
		Text: fmt.Sprintf("Los días que haces %s tu ánimo suele estar en %.1f/10 en vez de %.1f/10. ¿Te animas a intentarlo hoy?",
			c.HabitName, c.AvgMoodWith, c.AvgMoodWithout),
		Score:       math.Abs(c.Impact) * c.Confidence,
		SampleCount: c.SampleCount(),
		ComputedAt:  c.ComputedAt,
	}
}

func patternInsights(r PatternReport) []Insight {
	var out []Insight

	var best, worst *HabitCorrelation
	for i := range r.Correlations {
		c := &r.Correlations[i]
		if c.Impact > 0 && best == nil {
			best = c
		}
		if c.Impact < 0 && worst == nil {
			worst = c
		}
	}
	if best != nil {
		out = append(out, Insight{
			Kind: InsightCorrelation,
			Text: fmt.Sprintf("Cuando haces %s tu ánimo promedio es %.1f/10, frente a %.1f/10 cuando no lo haces (%d días).",
				best.HabitName, best.AvgMoodWith, best.AvgMoodWithout, best.HabitDays),
			Score:       math.Abs(best.Impact) * best.Confidence,
			SampleCount: best.SampleCount(),
			ComputedAt:  best.ComputedAt,
		})
	}
	if worst != nil {
		out = append(out, Insight{
			Kind: InsightCorrelation,
			Text: fmt.Sprintf("%s se asocia con un ánimo más bajo (%.1f/10 frente a %.1f/10). ¿Quieres explorarlo?",
				worst.HabitName, worst.AvgMoodWith, worst.AvgMoodWithout),
			Score:       math.Abs(worst.Impact) * worst.Confidence,
			SampleCount: worst.SampleCount(),
			ComputedAt:  worst.ComputedAt,
		})
	}

	if tp := r.TemporalPatterns; tp != nil {
		out = append(out, Insight{
			Kind: InsightTemporal,
			Text: fmt.Sprintf("Tus %s suelen ser mejores (%.1f/10) que tus %s (%.1f/10).",
				tp.Best.Name, tp.Best.AvgMood, tp.Worst.Name, tp.Worst.AvgMood),
			Score:       (tp.Best.AvgMood - tp.Worst.AvgMood) / 10 * math.Min(1, float64(tp.Samples)/ConfidenceSamples),
			SampleCount: tp.Samples,
			ComputedAt:  r.ComputedAt,
		})
	}

	if len(r.EmotionalTriggers) > 0 {
		top := r.EmotionalTriggers[0]
		out = append(out, Insight{
			Kind: InsightTrigger,
			Text: fmt.Sprintf("En momentos de ánimo bajo aparece %s con frecuencia (%.0f%% de las veces).",
				top.Category, top.Percentage),
			Score:       0.5 * top.Percentage / 100,
			SampleCount: top.Occurrences,
			ComputedAt:  r.ComputedAt,
		})
	}

	RankInsights(out)
	return out
}

func cycleInsights(r CycleReport) []Insight {
	var out []Insight

	if p := r.Pattern(r.PredominantCycle); p != nil && p.Peak != nil && p.Trough != nil {
		spread := p.Peak.AvgMood - p.Trough.AvgMood
		if spread >= 1 {
			out = append(out, Insight{
				Kind: InsightCycle,
				Text: fmt.Sprintf("Tu ánimo suele bajar %s (%.1f/10) y subir %s (%.1f/10).",
					describeBucket(r.PredominantCycle, *p.Trough), p.Trough.AvgMood,
					describeBucket(r.PredominantCycle, *p.Peak), p.Peak.AvgMood),
				Score:       spread / 10 * 0.8,
				SampleCount: r.DataPoints,
				ComputedAt:  r.ComputedAt,
			})
		}
	}

	if r.NextLowMoodPrediction != nil && r.NextLowMoodPrediction.After(r.ComputedAt) {
		out = append(out, Insight{
			Kind: InsightPrediction,
			Text: fmt.Sprintf("Según tu historial, alrededor del %s podrías pasar por un momento difícil. Tenerlo presente puede ayudar.",
				r.NextLowMoodPrediction.Format("02/01")),
			Score:       predictionScore,
			SampleCount: r.DataPoints,
			ComputedAt:  r.ComputedAt,
		})
	}

	RankInsights(out)
	return out
}

func describeBucket(kind CycleKind, b Bucket) string {
	switch kind {
	case CycleDaily:
		return "hacia las " + b.Label
	case CycleWeekly:
		return "los " + b.Label
	case CycleMonthly:
		return "en la " + b.Label + " del mes"
	}
	return b.Label
}
