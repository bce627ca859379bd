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

type ingestService struct {
	moods       repository.MoodRepo
	completions repository.CompletionRepo
	habits      repository.HabitRepo
	cache       *cache.Registry
	observer    UseCaseObserver
}

func NewIngestService(
	moods repository.MoodRepo,
	completions repository.CompletionRepo,
	habits repository.HabitRepo,
	reg *cache.Registry,
	observers ...UseCaseObserver,
) IngestService {
	return &ingestService{
		moods:       moods,
		completions: completions,
		habits:      habits,
		cache:       reg,
		observer:    useCaseObserverOrNoop(observers),
	}
}

func (s *ingestService) LogMood(ctx context.Context, m *domain.MoodSample) (err error) {
	defer observe(ctx, s.observer, "log-mood", time.Now(), map[string]any{"user_id": m.UserID, "level": m.Level}, &err)

	if m.UserID == "" {
		return invalid("user_id", "required")
	}
	if !domain.ValidLevel(m.Level) {
		return invalid("level", "must be between %d and %d, got %d", domain.MinMoodLevel, domain.MaxMoodLevel, m.Level)
	}
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	if m.Timestamp.IsZero() {
		m.Timestamp = time.Now().UTC()
	}
	m.FreeText = strings.TrimSpace(m.FreeText)
	if err := s.moods.Create(ctx, m); err != nil {
		return err
	}
	return invalidateAnalyses(s.cache, m.UserID)
}

func (s *ingestService) LogCompletion(ctx context.Context, c *domain.HabitCompletion) (err error) {
	defer observe(ctx, s.observer, "log-completion", time.Now(), map[string]any{"habit_id": c.HabitID}, &err)

	if c.HabitID == "" {
		return invalid("habit_id", "required")
	}
	h, err := s.habits.GetByID(ctx, c.HabitID)
	if err != nil {
		return err
	}
	if c.UserID == "" {
		c.UserID = h.UserID
	}
	if c.UserID != h.UserID {
		return invalid("habit_id", "habit belongs to another user")
	}
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	if c.Timestamp.IsZero() {
		c.Timestamp = time.Now().UTC()
	}
	c.HabitName = h.Name
	if err := s.completions.Create(ctx, c); err != nil {
		return err
	}
	return invalidateAnalyses(s.cache, c.UserID)
}
