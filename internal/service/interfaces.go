package service

import (
	"context"

	"github.com/alexanderramin/lumen/internal/domain"
)

type UserService interface {
	// Ensure returns the user registered under phone, creating it first
	// when needed.
	Ensure(ctx context.Context, phone, displayName string) (*domain.User, bool, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	UpdateProfile(ctx context.Context, u *domain.User) error
	// ResetData deletes the user's samples, completions and correlations.
	ResetData(ctx context.Context, id string) error
}

type HabitService interface {
	Create(ctx context.Context, h *domain.Habit) error
	GetByID(ctx context.Context, id string) (*domain.Habit, error)
	ListActive(ctx context.Context, userID string) ([]domain.Habit, error)
	Update(ctx context.Context, h *domain.Habit) error
	Archive(ctx context.Context, id string) error
}

type IngestService interface {
	LogMood(ctx context.Context, m *domain.MoodSample) error
	LogCompletion(ctx context.Context, c *domain.HabitCompletion) error
}
