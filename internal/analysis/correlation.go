package analysis

import (
	"math"
	"sort"
	"time"

	"github.com/alexanderramin/lumen/internal/domain"
)

type Interpretation string

const (
	StronglyPositive Interpretation = "strongly_positive"
	WeaklyPositive   Interpretation = "weakly_positive"
	Neutral          Interpretation = "neutral"
	WeaklyNegative   Interpretation = "weakly_negative"
	StronglyNegative Interpretation = "strongly_negative"
)

// Interpret labels an impact value.
func Interpret(impact float64) Interpretation {
	switch {
	case impact > 0.5:
		return StronglyPositive
	case impact >= ReportThreshold-thresholdEpsilon:
		return WeaklyPositive
	case impact < -0.5:
		return StronglyNegative
	case impact <= -ReportThreshold+thresholdEpsilon:
		return WeaklyNegative
	default:
		return Neutral
	}
}

// HabitCorrelation is one habit's measured effect on mood.
type HabitCorrelation struct {
	HabitID        string
	HabitName      string
	Category       domain.HabitCategory
	Impact         float64
	Confidence     float64
	AvgMoodWith    float64
	AvgMoodWithout float64
	HabitDays      int
	SamplesWith    int
	SamplesWithout int
	Interpretation Interpretation
	ComputedAt     time.Time
}

func (c HabitCorrelation) SampleCount() int {
	return c.SamplesWith + c.SamplesWithout
}

// Record converts the correlation to its persisted form.
func (c HabitCorrelation) Record(userID string) domain.Correlation {
	return domain.Correlation{
		UserID:      userID,
		FactorName:  c.HabitName,
		Impact:      c.Impact,
		Confidence:  c.Confidence,
		SampleCount: c.SampleCount(),
		ComputedAt:  c.ComputedAt,
	}
}

// PatternReport is the Correlation Engine output.
type PatternReport struct {
	UserID            string
	HasEnoughData     bool
	DataPoints        int
	MinRequired       int
	AverageMood       float64
	MoodStability     float64
	Correlations      []HabitCorrelation
	TemporalPatterns  *TemporalPatterns
	EmotionalTriggers []EmotionalTrigger
	Insights          []Insight
	ComputedAt        time.Time
	Warnings          []Warning
}

// Patterns computes the pattern report for one window. It never fails:
// too little data yields HasEnoughData=false, bad rows become warnings.
func (a *Analyzer) Patterns(w Window) PatternReport {
	samples, warnings := cleanSamples(w.Samples)
	completions, cw := cleanCompletions(w.Completions)
	warnings = append(warnings, cw...)

	report := PatternReport{
		UserID:      w.UserID,
		DataPoints:  len(samples),
		MinRequired: MinDataPoints,
		ComputedAt:  w.Now,
		Warnings:    warnings,
	}
	if len(samples) < MinDataPoints {
		return report
	}

	lv := levels(samples)
	report.HasEnoughData = true
	report.AverageMood = mean(lv)
	report.MoodStability = sampleStdDev(lv)
	report.Correlations = correlate(samples, w.Habits, completions, w.Now)
	report.TemporalPatterns = temporalPatterns(samples)
	report.EmotionalTriggers = emotionalTriggers(samples, a.triggers)
	report.Insights = patternInsights(report)
	return report
}

func correlate(samples []domain.MoodSample, habits []domain.Habit, completions []domain.HabitCompletion, now time.Time) []HabitCorrelation {
	days := make(map[string]map[string]bool, len(habits))
	for _, c := range completions {
		if !c.Completed {
			continue
		}
		if days[c.HabitID] == nil {
			days[c.HabitID] = make(map[string]bool)
		}
		days[c.HabitID][dayKey(c.Timestamp)] = true
	}

	var out []HabitCorrelation
	for _, h := range habits {
		if !h.Active {
			continue
		}
		habitDays := days[h.ID]
		var with, without []float64
		for _, s := range samples {
			if habitDays[dayKey(s.Timestamp)] {
				with = append(with, float64(s.Level))
			} else {
				without = append(without, float64(s.Level))
			}
		}
		if len(with) < MinHabitSamples || len(without) < MinHabitSamples {
			continue
		}

		avgWith, avgWithout := mean(with), mean(without)
		impact := clamp((avgWith-avgWithout)/10, -1, 1)
		if math.Abs(impact) < ReportThreshold-thresholdEpsilon {
			continue
		}
		out = append(out, HabitCorrelation{
			HabitID:        h.ID,
			HabitName:      h.Name,
			Category:       h.Category,
			Impact:         impact,
			Confidence:     math.Min(1, float64(len(with)+len(without))/ConfidenceSamples),
			AvgMoodWith:    avgWith,
			AvgMoodWithout: avgWithout,
			HabitDays:      len(habitDays),
			SamplesWith:    len(with),
			SamplesWithout: len(without),
			Interpretation: Interpret(impact),
			ComputedAt:     now,
		})
	}
	SortCorrelations(out)
	return out
}

// SortCorrelations orders by |impact| desc, then confidence desc, then most
// recent computation, then habit name.
func SortCorrelations(cs []HabitCorrelation) {
	sort.SliceStable(cs, func(i, j int) bool {
		ai, aj := math.Abs(cs[i].Impact), math.Abs(cs[j].Impact)
		if ai != aj {
			return ai > aj
		}
		if cs[i].Confidence != cs[j].Confidence {
			return cs[i].Confidence > cs[j].Confidence
		}
		if !cs[i].ComputedAt.Equal(cs[j].ComputedAt) {
			return cs[i].ComputedAt.After(cs[j].ComputedAt)
		}
		return cs[i].HabitName < cs[j].HabitName
	})
}

// BestPositive returns the reported correlation with the largest positive
// impact, or nil.
func (r PatternReport) BestPositive() *HabitCorrelation {
	var best *HabitCorrelation
	for i := range r.Correlations {
		c := &r.Correlations[i]
		if c.Impact <= 0 {
			continue
		}
		if best == nil || c.Impact > best.Impact {
			best = c
		}
	}
	return best
}
