package analysis

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/alexanderramin/lumen/internal/domain"
)

const (
	comparisonDays     = 7
	minPeriodSamples   = 2
	minImprovement     = 1.0
	minSignificantRun  = 3
	overcomeDays       = 10
	overcomeMinSamples = 6
	maxSignificance    = 10
)

type AchievementKind string

const (
	AchievementImprovement AchievementKind = "improvement"
	AchievementStreak      AchievementKind = "streak"
	AchievementOvercome    AchievementKind = "overcome"
)

// Achievement is a progress milestone worth celebrating, ranked by
// Significance on a 1..10 scale.
type Achievement struct {
	Kind         AchievementKind
	Text         string
	Significance int
}

type MoodImprovement struct {
	Previous     float64
	Recent       float64
	Gain         float64
	Significance int
}

// Streak is the run of consecutive calendar days, ending at the most recent
// day with samples, whose daily mean stays on the same side of
// PositiveMoodLevel.
type Streak struct {
	Days         int
	Positive     bool
	AvgMood      float64
	Significant  bool
	Significance int
	Since        time.Time
}

type OvercomeDifficulty struct {
	Initial      float64
	Middle       float64
	Current      float64
	Gain         float64
	Significance int
}

type ProgressReport struct {
	UserID        string
	HasEnoughData bool
	Improvement   *MoodImprovement
	Streak        Streak
	Overcome      *OvercomeDifficulty
	Highlight     *Achievement
	ComputedAt    time.Time
}

// Progress looks for recent mood improvement, the current streak and a
// low-to-high recovery over the last days.
func (a *Analyzer) Progress(w Window) ProgressReport {
	samples, _ := cleanSamples(w.Samples)
	report := ProgressReport{
		UserID:        w.UserID,
		HasEnoughData: len(samples) > 0,
		ComputedAt:    w.Now,
	}
	if len(samples) == 0 {
		return report
	}
	report.Improvement = moodImprovement(samples, w.Now)
	report.Streak = currentStreak(samples)
	report.Overcome = overcomeDifficulty(samples, w.Now)
	report.Highlight = highlight(report)
	return report
}

func moodImprovement(samples []domain.MoodSample, now time.Time) *MoodImprovement {
	mid := now.Add(-comparisonDays * day)
	start := now.Add(-2 * comparisonDays * day)
	var previous, recent []float64
	for _, s := range samples {
		switch {
		case s.Timestamp.Before(start) || s.Timestamp.After(now):
		case s.Timestamp.Before(mid):
			previous = append(previous, float64(s.Level))
		default:
			recent = append(recent, float64(s.Level))
		}
	}
	if len(previous) < minPeriodSamples || len(recent) < minPeriodSamples {
		return nil
	}
	prev, rec := mean(previous), mean(recent)
	gain := math.Round((rec-prev)*10) / 10
	if gain < minImprovement {
		return nil
	}
	return &MoodImprovement{
		Previous:     prev,
		Recent:       rec,
		Gain:         gain,
		Significance: min(maxSignificance, int(5+gain*2)),
	}
}

func currentStreak(samples []domain.MoodSample) Streak {
	byDay := make(map[string][]float64)
	for _, s := range samples {
		k := dayKey(s.Timestamp)
		byDay[k] = append(byDay[k], float64(s.Level))
	}
	keys := make([]string, 0, len(byDay))
	for k := range byDay {
		keys = append(keys, k)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(keys)))

	latest := mean(byDay[keys[0]])
	positive := latest >= domain.PositiveMoodLevel
	streak := Streak{Positive: positive}

	var sum float64
	var prev time.Time
	for i, k := range keys {
		d, _ := time.Parse(time.DateOnly, k)
		if i > 0 && !prev.Add(-day).Equal(d) {
			break
		}
		avg := mean(byDay[k])
		if (avg >= domain.PositiveMoodLevel) != positive {
			break
		}
		streak.Days++
		streak.Since = d
		sum += avg
		prev = d
	}
	streak.AvgMood = sum / float64(streak.Days)
	if positive && streak.Days >= minSignificantRun {
		streak.Significant = true
		streak.Significance = min(maxSignificance, 4+streak.Days)
	}
	return streak
}

func overcomeDifficulty(samples []domain.MoodSample, now time.Time) *OvercomeDifficulty {
	since := now.Add(-overcomeDays * day)
	var recent []float64
	for _, s := range samples {
		if !s.Timestamp.Before(since) && !s.Timestamp.After(now) {
			recent = append(recent, float64(s.Level))
		}
	}
	if len(recent) < overcomeMinSamples {
		return nil
	}
	third := len(recent) / 3
	a1, a2, a3 := mean(recent[:third]), mean(recent[third:2*third]), mean(recent[2*third:])
	if a1 > domain.CrisisMoodLevel || a3 < domain.PositiveMoodLevel || a2 <= a1 || a3 <= a2 {
		return nil
	}
	return &OvercomeDifficulty{
		Initial:      a1,
		Middle:       a2,
		Current:      a3,
		Gain:         a3 - a1,
		Significance: min(maxSignificance, int((a3-a1)*2)),
	}
}

// highlight picks the most significant achievement. Ties keep the earlier
// of improvement, streak, overcome.
func highlight(r ProgressReport) *Achievement {
	var candidates []Achievement
	if m := r.Improvement; m != nil {
		candidates = append(candidates, Achievement{
			Kind:         AchievementImprovement,
			Text:         fmt.Sprintf("En los últimos %d días tu ánimo promedio fue %.1f, frente a %.1f la semana anterior.", comparisonDays, m.Recent, m.Previous),
			Significance: m.Significance,
		})
	}
	if s := r.Streak; s.Significant {
		candidates = append(candidates, Achievement{
			Kind:         AchievementStreak,
			Text:         fmt.Sprintf("Llevas %d días seguidos con un ánimo de %d/10 o más.", s.Days, domain.PositiveMoodLevel),
			Significance: s.Significance,
		})
	}
	if o := r.Overcome; o != nil {
		candidates = append(candidates, Achievement{
			Kind:         AchievementOvercome,
			Text:         fmt.Sprintf("Pasaste de un ánimo promedio de %.1f a %.1f. Es una recuperación notable.", o.Initial, o.Current),
			Significance: o.Significance,
		})
	}
	if len(candidates) == 0 {
		return nil
	}
	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.Significance > best.Significance {
			best = c
		}
	}
	return &best
}
