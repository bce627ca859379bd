package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/lumen/internal/domain"
)

// StoreTimeSeries adapts the mood, completion and habit repositories to the
// read-only TimeSeriesStore. Mood windows are capped at maxSamples.
type StoreTimeSeries struct {
	moods       MoodRepo
	completions CompletionRepo
	habits      HabitRepo
	maxSamples  int
}

// NewStoreTimeSeries creates a TimeSeriesStore over the given repos.
// maxSamples caps every window read; zero or less means no cap.
func NewStoreTimeSeries(moods MoodRepo, completions CompletionRepo, habits HabitRepo, maxSamples int) *StoreTimeSeries {
	return &StoreTimeSeries{
		moods:       moods,
		completions: completions,
		habits:      habits,
		maxSamples:  maxSamples,
	}
}

func (s *StoreTimeSeries) GetMoodSamples(ctx context.Context, userID string, since time.Time) ([]domain.MoodSample, error) {
	rows, err := s.moods.ListSince(ctx, userID, since, s.maxSamples)
	if err != nil {
		return nil, err
	}
	out := make([]domain.MoodSample, 0, len(rows))
	for _, m := range rows {
		out = append(out, *m)
	}
	return out, nil
}

func (s *StoreTimeSeries) GetHabitCompletions(ctx context.Context, userID string, since time.Time) ([]domain.HabitCompletion, error) {
	rows, err := s.completions.ListSince(ctx, userID, since)
	if err != nil {
		return nil, err
	}
	out := make([]domain.HabitCompletion, 0, len(rows))
	for _, c := range rows {
		out = append(out, *c)
	}
	return out, nil
}

func (s *StoreTimeSeries) ListActiveHabits(ctx context.Context, userID string) ([]domain.Habit, error) {
	rows, err := s.habits.ListActive(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Habit, 0, len(rows))
	for _, h := range rows {
		out = append(out, *h)
	}
	return out, nil
}
