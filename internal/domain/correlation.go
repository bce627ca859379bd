package domain

import "time"

// Correlation is the materialized impact of one factor (habit) on a user's
// mood. Rows are recomputable from samples and are keyed by (UserID, FactorName).
type Correlation struct {
	UserID      string
	FactorName  string
	Impact      float64
	Confidence  float64
	SampleCount int
	ComputedAt  time.Time
}

// ClampUnit limits v to [lo, hi].
func ClampUnit(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
