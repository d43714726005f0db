package cli

import (
	"fmt"
	"path/filepath"

	"github.com/PixPMusic/pushmap/internal/startup"
	"github.com/spf13/cobra"
)

func newAutostartCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "autostart",
		Short: "Run pushmap headless at login",
	}

	enable := &cobra.Command{
		Use:   "enable",
		Short: "Register pushmap run --no-console at login",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := filepath.Abs(a.path)
			if err != nil {
				return err
			}
			entry, err := startup.NewEntry("run", "--no-console", "--config", path)
			if err != nil {
				return err
			}
			if err := startup.Enable(entry); err != nil {
				return fmt.Errorf("failed to enable autostart: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "enabled (%s)\n", startup.Location())
			return nil
		},
	}

	disable := &cobra.Command{
		Use:   "disable",
		Short: "Remove the login registration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := startup.Disable(); err != nil {
				return fmt.Errorf("failed to disable autostart: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "disabled")
			return nil
		},
	}

	status := &cobra.Command{
		Use:   "status",
		Short: "Report whether autostart is registered",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			state := "disabled"
			if startup.IsEnabled() {
				state = "enabled"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", state, startup.Location())
		},
	}

	cmd.AddCommand(enable, disable, status)
	return cmd
}
