package analysis

import (
	"time"

	"github.com/alexanderramin/lumen/internal/domain"
)

const day = 24 * time.Hour

// CrisisPeriod runs from the first crisis sample to the first later sample
// above RecoveredMoodLevel.
type CrisisPeriod struct {
	Start        time.Time
	End          time.Time
	LowestMood   int
	FinalMood    int
	RecoveryDays float64
}

type ResilienceReport struct {
	UserID              string
	HasEnoughData       bool
	Reason              string
	DataPoints          int
	Periods             []CrisisPeriod
	PeriodsAnalyzed     int
	AvgRecoveryDays     float64
	FastestRecoveryDays float64
	SlowestRecoveryDays float64
	SuccessRate         float64
	Score               float64
	RecoveryStrategies  []string
	OpenCrisisSince     *time.Time
	ComputedAt          time.Time
	Warnings            []Warning
}

const (
	reasonFewSamples = "not enough mood samples"
	reasonNoPeriods  = "no closed low-mood periods"
)

// Resilience measures how quickly and how reliably the user recovers from
// crisis periods, and which habits they kept up while recovering.
func (a *Analyzer) Resilience(w Window) ResilienceReport {
	samples, warnings := cleanSamples(w.Samples)
	completions, cw := cleanCompletions(w.Completions)
	report := ResilienceReport{
		UserID:     w.UserID,
		DataPoints: len(samples),
		ComputedAt: w.Now,
		Warnings:   append(warnings, cw...),
	}
	if len(samples) < MinDataPoints {
		report.Reason = reasonFewSamples
		return report
	}

	periods, open := crisisPeriods(samples)
	report.OpenCrisisSince = open
	if len(periods) == 0 {
		report.Reason = reasonNoPeriods
		return report
	}
	report.HasEnoughData = true
	report.Periods = periods
	report.PeriodsAnalyzed = len(periods)

	days := make([]float64, len(periods))
	recovered := 0
	for i, p := range periods {
		days[i] = p.RecoveryDays
		if p.FinalMood >= domain.RecoveredMoodLevel {
			recovered++
		}
	}
	report.AvgRecoveryDays = mean(days)
	report.FastestRecoveryDays, report.SlowestRecoveryDays = days[0], days[0]
	for _, d := range days[1:] {
		if d < report.FastestRecoveryDays {
			report.FastestRecoveryDays = d
		}
		if d > report.SlowestRecoveryDays {
			report.SlowestRecoveryDays = d
		}
	}
	report.SuccessRate = float64(recovered) / float64(len(periods))
	report.Score = clamp(report.SuccessRate*10-report.AvgRecoveryDays, 0, 10)
	report.RecoveryStrategies = recoveryStrategies(periods, completions)
	return report
}

func crisisPeriods(samples []domain.MoodSample) ([]CrisisPeriod, *time.Time) {
	var (
		out     []CrisisPeriod
		current *CrisisPeriod
	)
	for _, s := range samples {
		switch {
		case current == nil && s.IsCrisis():
			current = &CrisisPeriod{Start: s.Timestamp, LowestMood: s.Level}
		case current != nil && s.Level > domain.RecoveredMoodLevel:
			current.End = s.Timestamp
			current.FinalMood = s.Level
			current.RecoveryDays = float64(s.Timestamp.Sub(current.Start)) / float64(day)
			out = append(out, *current)
			current = nil
		case current != nil && s.Level < current.LowestMood:
			current.LowestMood = s.Level
		}
	}
	if current != nil {
		since := current.Start
		return out, &since
	}
	return out, nil
}

// recoveryStrategies lists distinct habits completed inside recovery
// windows, in the order they were first seen.
func recoveryStrategies(periods []CrisisPeriod, completions []domain.HabitCompletion) []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range periods {
		for _, c := range completions {
			if !c.Completed || c.Timestamp.Before(p.Start) || c.Timestamp.After(p.End) {
				continue
			}
			name := c.HabitName
			if name == "" {
				name = c.HabitID
			}
			if seen[name] {
				continue
			}
			seen[name] = true
			out = append(out, name)
			if len(out) == MaxRecoveryStrategies {
				return out
			}
		}
	}
	return out
}
