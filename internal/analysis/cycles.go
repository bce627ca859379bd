package analysis

import (
	"fmt"
	"time"

	"github.com/alexanderramin/lumen/internal/domain"
)

type CycleKind string

const (
	CycleDaily   CycleKind = "daily"
	CycleWeekly  CycleKind = "weekly"
	CycleMonthly CycleKind = "monthly"
	CycleUnknown CycleKind = "unknown"
)

const weeksPerMonth = 4

// Bucket is one slot of a cyclical grouping. Empty buckets have Count 0.
type Bucket struct {
	Index   int
	Label   string
	AvgMood float64
	Count   int
}

// Pattern is a full set of buckets for one grouping. Variance is the sample
// variance of the non-empty bucket means.
type Pattern struct {
	Buckets  []Bucket
	Variance float64
	Peak     *Bucket
	Trough   *Bucket
}

type CycleReport struct {
	UserID                string
	HasEnoughData         bool
	DataPoints            int
	MinRequired           int
	Daily                 Pattern
	Weekly                Pattern
	Monthly               *Pattern
	PredominantCycle      CycleKind
	NextLowMoodPrediction *time.Time
	Causal                []CausalFactor
	Recommendations       []string
	Insights              []Insight
	ComputedAt            time.Time
	Warnings              []Warning
}

// Pattern returns the grouping for kind, or nil.
func (r CycleReport) Pattern(kind CycleKind) *Pattern {
	switch kind {
	case CycleDaily:
		return &r.Daily
	case CycleWeekly:
		return &r.Weekly
	case CycleMonthly:
		return r.Monthly
	}
	return nil
}

// Cycles buckets the window by hour, weekday and week of month, picks the
// predominant cycle, forecasts the next low-mood day and runs causal
// inference over consecutive notes.
func (a *Analyzer) Cycles(w Window) CycleReport {
	samples, warnings := cleanSamples(w.Samples)
	report := CycleReport{
		UserID:           w.UserID,
		DataPoints:       len(samples),
		MinRequired:      MinDataPoints,
		PredominantCycle: CycleUnknown,
		ComputedAt:       w.Now,
		Warnings:         warnings,
	}
	if len(samples) < MinDataPoints {
		return report
	}
	report.HasEnoughData = true

	report.Daily = buildPattern(samples, 24, func(t time.Time) (int, bool) {
		return t.UTC().Hour(), true
	}, func(i int) string {
		return fmt.Sprintf("%02d:00", i)
	})
	report.Weekly = buildPattern(samples, 7, func(t time.Time) (int, bool) {
		return mondayIndex(t.UTC().Weekday()), true
	}, func(i int) string {
		return weekdayNames[i]
	})
	if len(samples) >= MonthlyMinSamples {
		monthly := buildPattern(samples, weeksPerMonth, func(t time.Time) (int, bool) {
			week := (t.UTC().Day()-1)/7 + 1
			return week - 1, week <= weeksPerMonth
		}, func(i int) string {
			return fmt.Sprintf("semana %d", i+1)
		})
		report.Monthly = &monthly
	}

	report.PredominantCycle = predominantCycle(report.Daily, report.Weekly, report.Monthly)
	report.NextLowMoodPrediction = predictNextLow(samples)
	report.Causal = a.causalFactors(samples)
	report.Recommendations = recommendations(report)
	report.Insights = cycleInsights(report)
	return report
}

func buildPattern(samples []domain.MoodSample, n int, slot func(time.Time) (int, bool), label func(int) string) Pattern {
	sums := make([]float64, n)
	counts := make([]int, n)
	for _, s := range samples {
		i, ok := slot(s.Timestamp)
		if !ok || i < 0 || i >= n {
			continue
		}
		sums[i] += float64(s.Level)
		counts[i]++
	}

	p := Pattern{Buckets: make([]Bucket, n)}
	var means []float64
	for i := 0; i < n; i++ {
		b := Bucket{Index: i, Label: label(i), Count: counts[i]}
		if counts[i] > 0 {
			b.AvgMood = sums[i] / float64(counts[i])
			means = append(means, b.AvgMood)
		}
		p.Buckets[i] = b
	}
	for i := range p.Buckets {
		b := &p.Buckets[i]
		if b.Count == 0 {
			continue
		}
		if p.Peak == nil || b.AvgMood > p.Peak.AvgMood {
			p.Peak = b
		}
		if p.Trough == nil || b.AvgMood < p.Trough.AvgMood {
			p.Trough = b
		}
	}
	p.Variance = sampleVariance(means)
	return p
}

// predominantCycle picks the grouping with the most variance between bucket
// means. Monthly must beat both others strictly.
func predominantCycle(daily, weekly Pattern, monthly *Pattern) CycleKind {
	if monthly != nil && monthly.Variance > daily.Variance && monthly.Variance > weekly.Variance {
		return CycleMonthly
	}
	if daily.Variance > weekly.Variance {
		return CycleDaily
	}
	return CycleWeekly
}

// predictNextLow projects the mean whole-day gap between crisis samples
// from the last crisis. Same-day pairs do not count as a gap.
func predictNextLow(samples []domain.MoodSample) *time.Time {
	var crises []time.Time
	for _, s := range samples {
		if s.IsCrisis() {
			crises = append(crises, s.Timestamp)
		}
	}
	if len(crises) < 2 {
		return nil
	}

	var gaps []float64
	for i := 1; i < len(crises); i++ {
		days := int(crises[i].Sub(crises[i-1]) / (24 * time.Hour))
		if days > 0 {
			gaps = append(gaps, float64(days))
		}
	}
	if len(gaps) == 0 {
		return nil
	}
	next := crises[len(crises)-1].Add(time.Duration(mean(gaps) * float64(24*time.Hour)))
	return &next
}
