package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/lumen/internal/cli/formatter"
)

func newCacheCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect the insight cache",
	}
	cmd.AddCommand(newCacheStatsCmd(a))
	return cmd
}

func newCacheStatsCmd(a *App) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show hit, miss and size counters per namespace",
		Long: `Show hit, miss and size counters per namespace.

Counters live in process memory, so run this after other commands in the
same process (for example from a script driving the engine) to see
non-zero values.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch format {
			case "table":
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatCacheStats(a.Cache.Stats()))
				return nil
			case "prom":
				if a.Metrics == nil {
					return fmt.Errorf("metrics registry is not configured")
				}
				return formatter.WritePrometheus(cmd.OutOrStdout(), a.Metrics)
			default:
				return fmt.Errorf("unknown --format %q: use table or prom", format)
			}
		},
	}
	cmd.Flags().StringVar(&format, "format", "table", "Output format: table or prom")
	return cmd
}
