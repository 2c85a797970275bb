package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *cli) newMemberCmd() *cobra.Command {
	memberCmd := &cobra.Command{
		Use:   "member",
		Short: "Manage personas and their memberships",
	}

	var email string
	ensure := &cobra.Command{
		Use:   "ensure PERSONA_ID",
		Short: "Create a persona on first use; existing personas are left unchanged",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := c.app.MemberService.EnsurePersona(cmd.Context(), args[0], email)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s <%s>\n", p.ID, p.Name, p.Email)
			return nil
		},
	}
	ensure.Flags().StringVar(&email, "email", "", "contact address of the persona")
	_ = ensure.MarkFlagRequired("email")

	var movementID int64
	toggle := &cobra.Command{
		Use:   "toggle PERSONA_ID",
		Short: "Join a movement, or leave it if already a member",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			joined, err := c.app.MemberService.ToggleMembership(cmd.Context(), args[0], movementID)
			if err != nil {
				return err
			}
			if joined {
				fmt.Fprintf(cmd.OutOrStdout(), "%s joined movement %d\n", args[0], movementID)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "%s left movement %d\n", args[0], movementID)
			}
			return nil
		},
	}
	toggle.Flags().Int64Var(&movementID, "movement", 0, "movement ID")
	_ = toggle.MarkFlagRequired("movement")

	memberCmd.AddCommand(ensure, toggle)
	return memberCmd
}
