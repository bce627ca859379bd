package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/lumen/internal/domain"
)

func newMoodCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mood",
		Short: "Record mood samples",
	}
	cmd.AddCommand(newMoodLogCmd(a))
	return cmd
}

func newMoodLogCmd(a *App) *cobra.Command {
	var level int
	var note, at string

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Log a mood rating from 1 to 10",
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := a.requireUser()
			if err != nil {
				return err
			}
			ts, err := a.parseAt(at)
			if err != nil {
				return err
			}
			m := &domain.MoodSample{
				UserID:    userID,
				Timestamp: ts,
				Level:     level,
				FreeText:  note,
			}
			if err := a.Ingest.LogMood(cmd.Context(), m); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged mood %d at %s (%s)\n", m.Level, ts.Format("2006-01-02 15:04"), m.ID)
			return nil
		},
	}
	cmd.Flags().IntVar(&level, "level", 0, "Mood rating, 1 (worst) to 10 (best)")
	cmd.Flags().StringVar(&note, "note", "", "Free text describing the day")
	cmd.Flags().StringVar(&at, "at", "", "When the mood was felt (default now)")
	_ = cmd.MarkFlagRequired("level")
	return cmd
}
