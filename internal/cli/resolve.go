package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/lumen/internal/domain"
)

// resolveHabit resolves a habit identifier among the user's active habits.
// The input can be:
//   - a full habit ID
//   - an ID prefix of at least 4 characters, as shown by `habit list`
//   - a habit name (case-insensitive)
func resolveHabit(ctx context.Context, a *App, userID, input string) (*domain.Habit, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, fmt.Errorf("habit is required")
	}
	habits, err := a.Habits.ListActive(ctx, userID)
	if err != nil {
		return nil, err
	}

	for i := range habits {
		if habits[i].ID == input || strings.EqualFold(habits[i].Name, input) {
			return &habits[i], nil
		}
	}

	if len(input) >= 4 {
		var match *domain.Habit
		for i := range habits {
			if strings.HasPrefix(habits[i].ID, input) {
				if match != nil {
					return nil, fmt.Errorf("habit prefix %q is ambiguous", input)
				}
				match = &habits[i]
			}
		}
		if match != nil {
			return match, nil
		}
	}
	return nil, fmt.Errorf("no active habit matches %q", input)
}
