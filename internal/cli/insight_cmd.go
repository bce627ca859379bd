package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/lumen/internal/app"
	"github.com/alexanderramin/lumen/internal/cli/formatter"
)

func newInsightCmd(a *App) *cobra.Command {
	var mood int
	var signal bool

	cmd := &cobra.Command{
		Use:   "insight",
		Short: "Pick the single most relevant insight",
		Long: `Pick the single most relevant insight for the next reply.

With --mood 1..4 the insight favors a habit that lifts the user's mood.
With --signal the full prompt signal is shown: insight, trust level,
tone policy and progress highlight.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := a.requireUser()
			if err != nil {
				return err
			}
			now := a.now()
			req := app.InsightRequest{UserID: userID, Now: &now}
			if cmd.Flags().Changed("mood") {
				req.CurrentMood = &mood
			}

			if signal {
				s, err := a.Insights.PromptSignal(cmd.Context(), req)
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatPromptSignal(s))
				return nil
			}

			in, err := a.Insights.GetRelevantInsight(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatInsight(in))
			return nil
		},
	}
	cmd.Flags().IntVar(&mood, "mood", 0, "Current mood, 1 to 10")
	cmd.Flags().BoolVar(&signal, "signal", false, "Show the full prompt signal")
	return cmd
}
