package domain

import "time"

type HabitCategory string

const (
	CategoryPhysical  HabitCategory = "physical"
	CategoryMental    HabitCategory = "mental"
	CategorySocial    HabitCategory = "social"
	CategorySleep     HabitCategory = "sleep"
	CategoryNutrition HabitCategory = "nutrition"
	CategoryOther     HabitCategory = "other"
)

// ValidHabitCategory reports whether c is one of the known categories.
func ValidHabitCategory(c HabitCategory) bool {
	switch c {
	case CategoryPhysical, CategoryMental, CategorySocial, CategorySleep, CategoryNutrition, CategoryOther:
		return true
	}
	return false
}

type Habit struct {
	ID        string
	UserID    string
	Name      string
	Category  HabitCategory
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// HabitCompletion records whether a habit was done at a point in time.
// Completions are append-only; a missed day is stored with Completed=false.
type HabitCompletion struct {
	ID        string
	UserID    string
	HabitID   string
	HabitName string
	Timestamp time.Time
	Completed bool
}
