package main

import (
	"fmt"
	"os"

	"github.com/ciex/motor/internal/infra/seed"

	"github.com/spf13/cobra"
)

func (c *cli) newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed FILE",
		Short: "Create personas and movements from a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			doc, err := seed.Parse(f)
			if err != nil {
				return err
			}
			res, err := seed.Apply(cmd.Context(), doc, c.app.AdminService, c.adminID(), c.app.MemberService)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d personas, %d movements, %d memberships\n", res.Personas, res.Movements, res.Members)
			return nil
		},
	}
}
