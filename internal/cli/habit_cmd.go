package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/lumen/internal/cli/formatter"
	"github.com/alexanderramin/lumen/internal/domain"
)

func newHabitCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "habit",
		Short: "Track habits and their completions",
	}
	cmd.AddCommand(
		newHabitAddCmd(a),
		newHabitListCmd(a),
		newHabitDoneCmd(a),
		newHabitArchiveCmd(a),
	)
	return cmd
}

func newHabitAddCmd(a *App) *cobra.Command {
	var name, category string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Start tracking a habit",
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := a.requireUser()
			if err != nil {
				return err
			}
			if name == "" {
				f := &habitFields{category: category}
				if err := a.prompt(cmd.Context(), habitAddForm(f), "name"); err != nil {
					return err
				}
				name, category = f.name, f.category
			}
			h := &domain.Habit{
				UserID:   userID,
				Name:     name,
				Category: domain.HabitCategory(category),
			}
			if err := a.Habits.Create(cmd.Context(), h); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added habit %s (%s)\n", h.Name, h.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Habit name")
	cmd.Flags().StringVar(&category, "category", string(domain.CategoryOther), "physical, mental, social, sleep, nutrition or other")
	return cmd
}

func newHabitListCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List active habits",
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := a.requireUser()
			if err != nil {
				return err
			}
			habits, err := a.Habits.ListActive(cmd.Context(), userID)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatHabits(habits))
			return nil
		},
	}
}

func newHabitDoneCmd(a *App) *cobra.Command {
	var habit, at string
	var missed bool

	cmd := &cobra.Command{
		Use:   "done",
		Short: "Record a habit completion, or a missed day with --missed",
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := a.requireUser()
			if err != nil {
				return err
			}
			h, err := resolveHabit(cmd.Context(), a, userID, habit)
			if err != nil {
				return err
			}
			ts, err := a.parseAt(at)
			if err != nil {
				return err
			}
			c := &domain.HabitCompletion{
				UserID:    userID,
				HabitID:   h.ID,
				Timestamp: ts,
				Completed: !missed,
			}
			if err := a.Ingest.LogCompletion(cmd.Context(), c); err != nil {
				return err
			}
			state := "done"
			if missed {
				state = "missed"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Marked %s %s on %s\n", h.Name, state, ts.Format("2006-01-02"))
			return nil
		},
	}
	cmd.Flags().StringVar(&habit, "habit", "", "Habit name or ID")
	cmd.Flags().BoolVar(&missed, "missed", false, "Record that the habit was skipped")
	cmd.Flags().StringVar(&at, "at", "", "When (default now)")
	_ = cmd.MarkFlagRequired("habit")
	return cmd
}

func newHabitArchiveCmd(a *App) *cobra.Command {
	var habit string

	cmd := &cobra.Command{
		Use:   "archive",
		Short: "Stop tracking a habit",
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := a.requireUser()
			if err != nil {
				return err
			}
			h, err := resolveHabit(cmd.Context(), a, userID, habit)
			if err != nil {
				return err
			}
			if err := a.Habits.Archive(cmd.Context(), h.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Archived habit %s\n", h.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&habit, "habit", "", "Habit name or ID")
	_ = cmd.MarkFlagRequired("habit")
	return cmd
}
