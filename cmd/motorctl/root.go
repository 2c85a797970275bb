package main

import (
	"github.com/ciex/motor/internal/bootstrap"

	"github.com/spf13/cobra"
)

// cli carries the process dependencies, initialized before any subcommand runs.
type cli struct {
	app *bootstrap.App
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:           "motorctl",
		Short:         "Administer Motor movements and run the daily sweeps",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a, err := bootstrap.New(cmd.Context())
			if err != nil {
				return err
			}
			c.app = a
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if c.app != nil {
				return c.app.Close()
			}
			return nil
		},
	}

	root.AddCommand(
		c.newMigrateCmd(),
		c.newSweepCmd(),
		c.newMovementCmd(),
		c.newMemberCmd(),
		c.newGoalCmd(),
		c.newSeedCmd(),
	)
	return root
}

// adminID is the identity the CLI acts under for admin operations.
func (c *cli) adminID() int64 {
	return c.app.Config.AdminTelegramID
}
