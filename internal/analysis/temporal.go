package analysis

import (
	"github.com/alexanderramin/lumen/internal/domain"
)

const minWeekdaySamples = 2

type WeekdayPattern struct {
	Weekday int
	Name    string
	AvgMood float64
	Count   int
}

// TemporalPatterns compares weekdays with enough samples.
type TemporalPatterns struct {
	ByWeekday []WeekdayPattern
	Best      WeekdayPattern
	Worst     WeekdayPattern
	Samples   int
}

func temporalPatterns(samples []domain.MoodSample) *TemporalPatterns {
	var byDay [7][]float64
	for _, s := range samples {
		d := mondayIndex(s.Timestamp.UTC().Weekday())
		byDay[d] = append(byDay[d], float64(s.Level))
	}

	tp := &TemporalPatterns{}
	for d, vals := range byDay {
		if len(vals) < minWeekdaySamples {
			continue
		}
		tp.ByWeekday = append(tp.ByWeekday, WeekdayPattern{
			Weekday: d,
			Name:    weekdayNames[d],
			AvgMood: mean(vals),
			Count:   len(vals),
		})
		tp.Samples += len(vals)
	}
	if len(tp.ByWeekday) < 2 {
		return nil
	}

	tp.Best, tp.Worst = tp.ByWeekday[0], tp.ByWeekday[0]
	for _, p := range tp.ByWeekday[1:] {
		if p.AvgMood > tp.Best.AvgMood {
			tp.Best = p
		}
		if p.AvgMood < tp.Worst.AvgMood {
			tp.Worst = p
		}
	}
	if tp.Best.Weekday == tp.Worst.Weekday {
		return nil
	}
	return tp
}
