package domain

import "time"

const (
	MinMoodLevel = 1
	MaxMoodLevel = 10

	// CrisisMoodLevel is the highest level that counts as a low-mood sample.
	CrisisMoodLevel = 4
	// RecoveredMoodLevel is exceeded by the first sample that closes a crisis.
	RecoveredMoodLevel = 6
	// PositiveMoodLevel is the lowest daily average counted as a good day.
	PositiveMoodLevel = 7
)

// MoodSample is a single self-reported mood rating. Samples are append-only.
type MoodSample struct {
	ID        string
	UserID    string
	Timestamp time.Time
	Level     int
	FreeText  string
}

// ValidLevel reports whether level is inside the accepted rating scale.
func ValidLevel(level int) bool {
	return level >= MinMoodLevel && level <= MaxMoodLevel
}

// IsCrisis reports whether the sample is a low-mood ("crisis") sample.
func (m MoodSample) IsCrisis() bool {
	return m.Level <= CrisisMoodLevel
}
