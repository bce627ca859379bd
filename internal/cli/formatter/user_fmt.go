package formatter

import (
	"fmt"

	"github.com/alexanderramin/lumen/internal/domain"
)

func FormatUser(u *domain.User) string {
	return RenderBox("User", RenderKV([][2]string{
		{"ID", u.ID},
		{"Name", Bold(u.DisplayName)},
		{"Phone", u.Phone},
		{"Timezone", u.Timezone},
		{"Interactions", fmt.Sprintf("%d", u.InteractionCount)},
		{"Since", Timestamp(u.CreatedAt)},
	}))
}

func FormatHabits(habits []domain.Habit) string {
	if len(habits) == 0 {
		return Dim("No active habits.") + "\n"
	}
	headers := []string{"ID", "NAME", "CATEGORY", "CREATED"}
	rows := make([][]string, 0, len(habits))
	for _, h := range habits {
		rows = append(rows, []string{
			TruncID(h.ID),
			Bold(h.Name),
			StylePurple.Render(string(h.Category)),
			Timestamp(h.CreatedAt),
		})
	}
	return RenderBox("Habits", RenderTable(headers, rows))
}
