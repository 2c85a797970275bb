package main

import (
	"fmt"

	idb "github.com/ciex/motor/internal/infra/database"

	"github.com/spf13/cobra"
)

func (c *cli) newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// bootstrap already migrates; this reports the state for operators.
			applied, err := idb.RunMigrations(cmd.Context(), c.app.DB)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d migrations applied\n", len(applied))
			return nil
		},
	}
}

// newSweepCmd runs a sweep once, for use from an external daily scheduler.
func (c *cli) newSweepCmd() *cobra.Command {
	sweep := &cobra.Command{
		Use:   "sweep",
		Short: "Run a notification sweep for today",
	}
	sweep.AddCommand(
		&cobra.Command{
			Use:   "reminders",
			Short: "Email members whose movements open the buffer of their next cycle today",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				report, err := c.app.SweepService.RunReminderSweep(cmd.Context())
				if report != nil {
					fmt.Fprintln(cmd.OutOrStdout(), report.String())
				}
				return err
			},
		},
		&cobra.Command{
			Use:   "roundups",
			Short: "Email members whose movements start a new cycle today",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				report, err := c.app.SweepService.RunRoundupSweep(cmd.Context())
				if report != nil {
					fmt.Fprintln(cmd.OutOrStdout(), report.String())
				}
				return err
			},
		},
	)
	return sweep
}
