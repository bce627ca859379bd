package cli

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/alexanderramin/lumen/internal/app"
	"github.com/alexanderramin/lumen/internal/cli/formatter"
)

func addDaysFlag(cmd *cobra.Command, days *int) {
	cmd.Flags().IntVar(days, "days", 0, "Lookback window in days (default from config)")
}

func newPatternsCmd(a *App) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "patterns",
		Short: "Correlate habits with mood",
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := a.analysisRequest(days)
			if err != nil {
				return err
			}
			r, err := a.Analysis.AnalyzePatterns(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatPatterns(r))
			return nil
		},
	}
	addDaysFlag(cmd, &days)
	return cmd
}

func newCyclesCmd(a *App) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "cycles",
		Short: "Detect daily, weekly and monthly mood cycles",
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := a.analysisRequest(days)
			if err != nil {
				return err
			}
			r, err := a.Analysis.DetectCycles(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatCycles(r, *req.Now))
			return nil
		},
	}
	addDaysFlag(cmd, &days)
	return cmd
}

func newResilienceCmd(a *App) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "resilience",
		Short: "Measure recovery from low-mood periods",
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := a.analysisRequest(days)
			if err != nil {
				return err
			}
			r, err := a.Analysis.AnalyzeResilience(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatResilience(r))
			return nil
		},
	}
	addDaysFlag(cmd, &days)
	return cmd
}

func newProgressCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "progress",
		Short: "Show streaks and recent achievements",
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := a.analysisRequest(0)
			if err != nil {
				return err
			}
			r, err := a.Analysis.DetectProgress(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatProgress(r))
			return nil
		},
	}
}

func newDashboardCmd(a *App) *cobra.Command {
	var days int
	var interactive bool

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show every report at once",
		Long: `Show every report at once.
With --interactive, browse the reports one tab at a time. Refreshing in the
browser drops the user's cached reports and reloads them from storage.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := a.analysisRequest(days)
			if err != nil {
				return err
			}
			if interactive {
				return runDashboardBrowser(cmd, a, req)
			}
			d, err := a.Dashboard.Dashboard(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatDashboard(d))
			return nil
		},
	}
	addDaysFlag(cmd, &days)
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Browse the reports in a terminal UI")
	return cmd
}

var errNotInteractive = errors.New("--interactive needs a terminal")

// dashboardLoaderFor reloads the dashboard at the current clock. A fresh
// load drops every cached entry of the user first.
func dashboardLoaderFor(a *App, req app.AnalysisRequest) dashboardLoader {
	return func(ctx context.Context, fresh bool) (*app.DashboardResponse, error) {
		if fresh && a.Cache != nil {
			a.Cache.InvalidateUser(req.UserID)
		}
		now := a.now()
		req.Now = &now
		return a.Dashboard.Dashboard(ctx, req)
	}
}

func runDashboardBrowser(cmd *cobra.Command, a *App, req app.AnalysisRequest) error {
	if !a.Interactive {
		return errNotInteractive
	}
	ctx := cmd.Context()
	p := tea.NewProgram(
		newDashboardModel(ctx, dashboardLoaderFor(a, req)),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	)
	_, err := p.Run()
	return err
}
