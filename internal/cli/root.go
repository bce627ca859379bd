package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/alexanderramin/lumen/internal/app"
	"github.com/alexanderramin/lumen/internal/cache"
	"github.com/alexanderramin/lumen/internal/service"
)

// EnvUser supplies --user when the flag is omitted.
const EnvUser = "LUMEN_USER"

// App holds references to all use cases the commands call.
type App struct {
	Users     service.UserService
	Habits    service.HabitService
	Ingest    service.IngestService
	Analysis  service.AnalysisService
	Insights  service.InsightService
	Dashboard service.DashboardService
	Trust     app.TrustUseCase
	Cache     *cache.Registry
	Metrics   prometheus.Gatherer

	// Now is the command clock. Defaults to time.Now.
	Now func() time.Time

	// Setup, when set, runs before any command with the --config value and
	// fills in the fields above.
	Setup func(ctx context.Context, configPath string) error

	// Interactive enables forms for missing input and the dashboard browser.
	// Set only when stdin and stdout are terminals.
	Interactive bool

	userID  string
	runForm func(ctx context.Context, f *huh.Form) error
}

var errNoUser = errors.New("no user selected: pass --user or set " + EnvUser)

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now().UTC()
	}
	return time.Now().UTC()
}

func (a *App) requireUser() (string, error) {
	if a.userID != "" {
		return a.userID, nil
	}
	if id := os.Getenv(EnvUser); id != "" {
		return id, nil
	}
	return "", errNoUser
}

func (a *App) analysisRequest(days int) (app.AnalysisRequest, error) {
	userID, err := a.requireUser()
	if err != nil {
		return app.AnalysisRequest{}, err
	}
	now := a.now()
	return app.AnalysisRequest{UserID: userID, Days: days, Now: &now}, nil
}

// NewRootCmd creates the top-level "lumen" command and registers all
// subcommands against the provided App.
func NewRootCmd(a *App) *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "lumen",
		Short:         "Mood insights, habit correlations and trust levels",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if a.Setup == nil {
				return nil
			}
			return a.Setup(cmd.Context(), configPath)
		},
	}
	addGlobalFlags(root.PersistentFlags(), &configPath, &a.userID)

	root.AddCommand(
		newUserCmd(a),
		newMoodCmd(a),
		newHabitCmd(a),
		newPatternsCmd(a),
		newCyclesCmd(a),
		newResilienceCmd(a),
		newProgressCmd(a),
		newInsightCmd(a),
		newTrustCmd(a),
		newDashboardCmd(a),
		newCacheCmd(a),
	)
	return root
}

func addGlobalFlags(fs *pflag.FlagSet, configPath, userID *string) {
	fs.StringVar(configPath, "config", "", "Path to a YAML config file (default $LUMEN_CONFIG)")
	fs.StringVar(userID, "user", "", "User ID (default $"+EnvUser+")")
}

// parseAt accepts RFC 3339, "2006-01-02 15:04" or a bare date, all UTC.
// An empty string means now.
func (a *App) parseAt(s string) (time.Time, error) {
	if s == "" {
		return a.now(), nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04", "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid --at %q: use RFC 3339, YYYY-MM-DD HH:MM or YYYY-MM-DD", s)
}
