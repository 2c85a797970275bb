package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/ciex/motor/internal/domain/goal"

	"github.com/spf13/cobra"
)

func (c *cli) newGoalCmd() *cobra.Command {
	goalCmd := &cobra.Command{
		Use:   "goal",
		Short: "Manage goals on behalf of a persona",
	}

	var author string
	var movementID int64
	var cycle int
	add := &cobra.Command{
		Use:   "add DESCRIPTION",
		Short: "Add a goal for a future cycle; defaults to the next cycle",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := cycle
			if !cmd.Flags().Changed("cycle") {
				m, err := c.app.AdminService.GetMovement(cmd.Context(), c.adminID(), movementID)
				if err != nil {
					return err
				}
				target = m.NextCycle(c.app.Config.Now())
			}
			g, err := c.app.MemberService.CreateGoal(cmd.Context(), author, movementID, target, args[0])
			if err != nil {
				if errors.Is(err, goal.ErrGoalTooLong) {
					return fmt.Errorf("goals can have at most %d characters. Your goal: %s", goal.MaxDescriptionLength, goal.StripNonASCII(args[0]))
				}
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Goal %d created for cycle %d\n", g.ID, g.Cycle)
			return nil
		},
	}
	add.Flags().StringVar(&author, "author", "", "persona ID of the author")
	add.Flags().Int64Var(&movementID, "movement", 0, "movement ID")
	add.Flags().IntVar(&cycle, "cycle", 0, "target cycle index")
	_ = add.MarkFlagRequired("author")
	_ = add.MarkFlagRequired("movement")

	var deleteAuthor string
	del := &cobra.Command{
		Use:   "delete GOAL_ID",
		Short: "Delete a goal whose cycle has not started",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid goal ID %q: %w", args[0], err)
			}
			if err := c.app.MemberService.DeleteGoal(cmd.Context(), deleteAuthor, id); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Goal has been deleted")
			return nil
		},
	}
	del.Flags().StringVar(&deleteAuthor, "author", "", "persona ID of the author")
	_ = del.MarkFlagRequired("author")

	var listAuthor string
	var listMovement int64
	list := &cobra.Command{
		Use:   "list",
		Short: "List a persona's goals in a movement",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			goals, err := c.app.MemberService.ListGoals(cmd.Context(), listAuthor, listMovement)
			if err != nil {
				return err
			}
			for _, g := range goals {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\tcycle %d\t%s\n", g.ID, g.Cycle, g.Desc)
			}
			return nil
		},
	}
	list.Flags().StringVar(&listAuthor, "author", "", "persona ID of the author")
	list.Flags().Int64Var(&listMovement, "movement", 0, "movement ID")
	_ = list.MarkFlagRequired("author")
	_ = list.MarkFlagRequired("movement")

	goalCmd.AddCommand(add, del, list)
	return goalCmd
}
