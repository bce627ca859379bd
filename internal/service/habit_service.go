package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/lumen/internal/cache"
	"github.com/alexanderramin/lumen/internal/domain"
	"github.com/alexanderramin/lumen/internal/repository"
)

type habitService struct {
	habits repository.HabitRepo
	cache  *cache.Registry
}

func NewHabitService(habits repository.HabitRepo, reg *cache.Registry) HabitService {
	return &habitService{habits: habits, cache: reg}
}

func activeHabitsKey(userID string) string {
	return cache.Key(userID, "active")
}

func (s *habitService) Create(ctx context.Context, h *domain.Habit) error {
	if err := validateHabit(h); err != nil {
		return err
	}
	if h.ID == "" {
		h.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	h.Active = true
	h.CreatedAt = now
	h.UpdatedAt = now
	if err := s.habits.Create(ctx, h); err != nil {
		return err
	}
	return s.invalidate(h.UserID)
}

func (s *habitService) GetByID(ctx context.Context, id string) (*domain.Habit, error) {
	return s.habits.GetByID(ctx, id)
}

func (s *habitService) ListActive(ctx context.Context, userID string) ([]domain.Habit, error) {
	return cache.GetOrComputeAs(s.cache, cache.ActiveHabits, activeHabitsKey(userID), func() ([]domain.Habit, error) {
		rows, err := s.habits.ListActive(ctx, userID)
		if err != nil {
			return nil, err
		}
		out := make([]domain.Habit, 0, len(rows))
		for _, h := range rows {
			out = append(out, *h)
		}
		return out, nil
	})
}

func (s *habitService) Update(ctx context.Context, h *domain.Habit) error {
	if err := validateHabit(h); err != nil {
		return err
	}
	h.UpdatedAt = time.Now().UTC()
	if err := s.habits.Update(ctx, h); err != nil {
		return err
	}
	return s.invalidate(h.UserID)
}

func (s *habitService) Archive(ctx context.Context, id string) error {
	h, err := s.habits.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.habits.Archive(ctx, id); err != nil {
		return err
	}
	return s.invalidate(h.UserID)
}

// invalidate drops the active-habit list and every analysis that reads
// the habit set.
func (s *habitService) invalidate(userID string) error {
	if err := s.cache.Invalidate(cache.ActiveHabits, activeHabitsKey(userID)); err != nil {
		return err
	}
	return invalidateAnalyses(s.cache, userID)
}

func validateHabit(h *domain.Habit) error {
	h.Name = strings.TrimSpace(h.Name)
	if h.UserID == "" {
		return invalid("user_id", "required")
	}
	if h.Name == "" {
		return invalid("name", "required")
	}
	if h.Category == "" {
		h.Category = domain.CategoryOther
	}
	if !domain.ValidHabitCategory(h.Category) {
		return invalid("category", "unknown category %q", h.Category)
	}
	return nil
}

// analysisNamespaces hold values derived from a user's samples and habits.
var analysisNamespaces = []cache.Name{
	cache.Correlations,
	cache.Cycles,
	cache.Dashboard,
	cache.ConversationSummaries,
}

func invalidateAnalyses(reg *cache.Registry, userID string) error {
	for _, ns := range analysisNamespaces {
		if err := reg.InvalidateScope(ns, userID); err != nil {
			return err
		}
	}
	return nil
}
