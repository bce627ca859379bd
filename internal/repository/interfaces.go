package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/lumen/internal/domain"
)

type UserRepo interface {
	// GetOrCreateByPhone inserts u unless a user with the same phone exists,
	// then returns the stored row. created reports whether the insert won.
	GetOrCreateByPhone(ctx context.Context, u *domain.User) (stored *domain.User, created bool, err error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	Update(ctx context.Context, u *domain.User) error
}

type HabitRepo interface {
	Create(ctx context.Context, h *domain.Habit) error
	GetByID(ctx context.Context, id string) (*domain.Habit, error)
	ListActive(ctx context.Context, userID string) ([]*domain.Habit, error)
	Update(ctx context.Context, h *domain.Habit) error
	Archive(ctx context.Context, id string) error
}

type CompletionRepo interface {
	Create(ctx context.Context, c *domain.HabitCompletion) error
	ListSince(ctx context.Context, userID string, since time.Time) ([]*domain.HabitCompletion, error)
	DeleteByUser(ctx context.Context, userID string) error
}

type MoodRepo interface {
	Create(ctx context.Context, m *domain.MoodSample) error
	// ListSince returns at most limit samples at or after since, keeping the
	// most recent ones, in ascending timestamp order. limit <= 0 means no cap.
	ListSince(ctx context.Context, userID string, since time.Time, limit int) ([]*domain.MoodSample, error)
	DeleteByUser(ctx context.Context, userID string) error
}

type CorrelationRepo interface {
	Upsert(ctx context.Context, c *domain.Correlation) error
	ListByUser(ctx context.Context, userID string) ([]*domain.Correlation, error)
	DeleteByUser(ctx context.Context, userID string) error
}

// InteractionCounter stores the monotonic per-user interaction counter.
// IncrementInteractionCount must be atomic per user.
type InteractionCounter interface {
	GetInteractionCount(ctx context.Context, userID string) (int, error)
	IncrementInteractionCount(ctx context.Context, userID string) (int, error)
}

// TimeSeriesStore is the read side consumed by the analysis engines.
type TimeSeriesStore interface {
	GetMoodSamples(ctx context.Context, userID string, since time.Time) ([]domain.MoodSample, error)
	GetHabitCompletions(ctx context.Context, userID string, since time.Time) ([]domain.HabitCompletion, error)
	ListActiveHabits(ctx context.Context, userID string) ([]domain.Habit, error)
}
