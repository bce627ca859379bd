package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/lumen/internal/domain"
	"github.com/google/uuid"
)

var testPhoneCounter atomic.Int64

// BaseTime is a fixed Monday used by fixtures that need reproducible dates.
var BaseTime = time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC)

// Day returns BaseTime shifted by n days.
func Day(n int) time.Time {
	return BaseTime.AddDate(0, 0, n)
}

// User options
type UserOption func(*domain.User)

func WithPhone(phone string) UserOption {
	return func(u *domain.User) {
		u.Phone = phone
	}
}

func WithInteractionCount(n int) UserOption {
	return func(u *domain.User) {
		u.InteractionCount = n
	}
}

func NewTestUser(name string, opts ...UserOption) *domain.User {
	now := time.Now().UTC()
	u := &domain.User{
		ID:          uuid.New().String(),
		Phone:       fmt.Sprintf("+5700%06d", testPhoneCounter.Add(1)),
		DisplayName: name,
		Timezone:    domain.DefaultTimezone,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Habit options
type HabitOption func(*domain.Habit)

func WithCategory(c domain.HabitCategory) HabitOption {
	return func(h *domain.Habit) {
		h.Category = c
	}
}

func WithInactive() HabitOption {
	return func(h *domain.Habit) {
		h.Active = false
	}
}

func NewTestHabit(userID, name string, opts ...HabitOption) *domain.Habit {
	now := time.Now().UTC()
	h := &domain.Habit{
		ID:        uuid.New().String(),
		UserID:    userID,
		Name:      name,
		Category:  domain.CategoryOther,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Mood options
type MoodOption func(*domain.MoodSample)

func WithText(text string) MoodOption {
	return func(m *domain.MoodSample) {
		m.FreeText = text
	}
}

func NewTestMood(userID string, at time.Time, level int, opts ...MoodOption) *domain.MoodSample {
	m := &domain.MoodSample{
		ID:        uuid.New().String(),
		UserID:    userID,
		Timestamp: at,
		Level:     level,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Completion options
type CompletionOption func(*domain.HabitCompletion)

func WithMissed() CompletionOption {
	return func(c *domain.HabitCompletion) {
		c.Completed = false
	}
}

func NewTestCompletion(h *domain.Habit, at time.Time, opts ...CompletionOption) *domain.HabitCompletion {
	c := &domain.HabitCompletion{
		ID:        uuid.New().String(),
		UserID:    h.UserID,
		HabitID:   h.ID,
		HabitName: h.Name,
		Timestamp: at,
		Completed: true,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// DailyMoods builds one sample per day starting at start, one per level.
func DailyMoods(userID string, start time.Time, levels ...int) []domain.MoodSample {
	out := make([]domain.MoodSample, 0, len(levels))
	for i, lvl := range levels {
		out = append(out, *NewTestMood(userID, start.AddDate(0, 0, i), lvl))
	}
	return out
}
