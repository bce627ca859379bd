package analysis

import (
	"math"
	"time"

	"github.com/alexanderramin/lumen/internal/domain"
)

func mean(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	var sum float64
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}

// sampleVariance uses the n-1 denominator; fewer than two values give 0.
func sampleVariance(vals []float64) float64 {
	if len(vals) < 2 {
		return 0
	}
	m := mean(vals)
	var ss float64
	for _, v := range vals {
		d := v - m
		ss += d * d
	}
	return ss / float64(len(vals)-1)
}

func sampleStdDev(vals []float64) float64 {
	return math.Sqrt(sampleVariance(vals))
}

func levels(samples []domain.MoodSample) []float64 {
	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = float64(s.Level)
	}
	return out
}

// dayKey is the UTC calendar date of t.
func dayKey(t time.Time) string {
	return t.UTC().Format(time.DateOnly)
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// mondayIndex maps time.Weekday to 0=Monday .. 6=Sunday.
func mondayIndex(w time.Weekday) int {
	return (int(w) + 6) % 7
}

func clamp(v, lo, hi float64) float64 {
	return domain.ClampUnit(v, lo, hi)
}
