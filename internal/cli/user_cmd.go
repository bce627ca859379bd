package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/lumen/internal/cli/formatter"
)

func newUserCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Register and manage users",
	}
	cmd.AddCommand(
		newUserEnsureCmd(a),
		newUserShowCmd(a),
		newUserUpdateCmd(a),
		newUserResetCmd(a),
	)
	return cmd
}

func newUserEnsureCmd(a *App) *cobra.Command {
	var phone, name string

	cmd := &cobra.Command{
		Use:   "ensure",
		Short: "Get or create the user registered under a phone number",
		Long: `Get or create the user registered under a phone number.
On a terminal, a form asks for the phone and name when --phone is omitted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if phone == "" {
				f := &userFields{name: name}
				if err := a.prompt(cmd.Context(), userEnsureForm(f), "phone"); err != nil {
					return err
				}
				phone, name = f.phone, f.name
			}
			u, created, err := a.Users.Ensure(cmd.Context(), phone, name)
			if err != nil {
				return err
			}
			verb := "Found"
			if created {
				verb = "Created"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s user %s\n", verb, u.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&phone, "phone", "", "Phone number")
	cmd.Flags().StringVar(&name, "name", "", "Display name")
	return cmd
}

func newUserShowCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the selected user",
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := a.requireUser()
			if err != nil {
				return err
			}
			u, err := a.Users.Get(cmd.Context(), userID)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatUser(u))
			return nil
		},
	}
}

func newUserUpdateCmd(a *App) *cobra.Command {
	var name, tz string

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update display name or timezone",
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := a.requireUser()
			if err != nil {
				return err
			}
			u, err := a.Users.Get(cmd.Context(), userID)
			if err != nil {
				return err
			}
			updated := *u
			if cmd.Flags().Changed("name") {
				updated.DisplayName = name
			}
			if cmd.Flags().Changed("tz") {
				updated.Timezone = tz
			}
			if err := a.Users.UpdateProfile(cmd.Context(), &updated); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated user %s\n", updated.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Display name")
	cmd.Flags().StringVar(&tz, "tz", "", "IANA timezone")
	return cmd
}

func newUserResetCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Delete the selected user's moods, completions and correlations",
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := a.requireUser()
			if err != nil {
				return err
			}
			if err := a.Users.ResetData(cmd.Context(), userID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Reset data for user %s\n", userID)
			return nil
		},
	}
}
