package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/lumen/internal/cli/formatter"
)

func newTrustCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trust",
		Short: "Inspect and advance the trust level",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Show level, counter and tone policy",
			RunE: func(cmd *cobra.Command, args []string) error {
				userID, err := a.requireUser()
				if err != nil {
					return err
				}
				info, err := a.Trust.GetTrustInfo(cmd.Context(), userID)
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTrust(info))
				return nil
			},
		},
		&cobra.Command{
			Use:   "register",
			Short: "Count one interaction",
			RunE: func(cmd *cobra.Command, args []string) error {
				userID, err := a.requireUser()
				if err != nil {
					return err
				}
				t, err := a.Trust.RegisterInteraction(cmd.Context(), userID)
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTransition(t))
				return nil
			},
		},
	)
	return cmd
}
