package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/ciex/motor/internal/app"

	"github.com/spf13/cobra"
)

const dateLayout = "2006-01-02"

type movementFlags struct {
	name     string
	start    string
	duration int
	buffer   int
}

func (f *movementFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "movement name")
	cmd.Flags().StringVar(&f.start, "start", "", "start date of cycle 0 (YYYY-MM-DD)")
	cmd.Flags().IntVar(&f.duration, "duration", 14, "cycle duration in days")
	cmd.Flags().IntVar(&f.buffer, "buffer", 3, "days before a cycle start when reminders are sent")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("start")
}

func (f *movementFlags) config() (app.MovementConfig, error) {
	start, err := time.Parse(dateLayout, f.start)
	if err != nil {
		return app.MovementConfig{}, fmt.Errorf("invalid --start %q: %w", f.start, err)
	}
	return app.MovementConfig{
		Name:          f.name,
		CycleStart:    start,
		CycleDuration: f.duration,
		CycleBuffer:   f.buffer,
	}, nil
}

func (c *cli) newMovementCmd() *cobra.Command {
	movementCmd := &cobra.Command{
		Use:   "movement",
		Short: "Create, edit and list movements",
	}

	var createFlags movementFlags
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a movement",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := createFlags.config()
			if err != nil {
				return err
			}
			m, err := c.app.AdminService.CreateMovement(cmd.Context(), c.adminID(), cfg)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Movement '%s' successfully created (ID: %d)\n", m.Name, m.ID)
			return nil
		},
	}
	createFlags.register(create)

	var editFlags movementFlags
	edit := &cobra.Command{
		Use:   "edit ID",
		Short: "Change the name and cycle configuration of a movement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid movement ID %q: %w", args[0], err)
			}
			cfg, err := editFlags.config()
			if err != nil {
				return err
			}
			m, err := c.app.AdminService.UpdateMovementConfig(cmd.Context(), c.adminID(), id, cfg)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Movement '%s' (ID: %d) updated\n", m.Name, m.ID)
			return nil
		},
	}
	editFlags.register(edit)

	list := &cobra.Command{
		Use:   "list",
		Short: "List movements with their current and next cycle",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			movements, err := c.app.AdminService.ListMovements(cmd.Context(), c.adminID())
			if err != nil {
				return err
			}
			today := c.app.Config.Now()
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tMEMBERS\tCURRENT\tNEXT START\tREMINDERS")
			for _, m := range movements {
				current := "-"
				if m.Started(today) {
					current = strconv.Itoa(m.CurrentCycle(today))
				}
				next := m.NextCycle(today)
				fmt.Fprintf(w, "%d\t%s\t%d\t%s\t%s\t%s\n", m.ID, m.Name, len(m.Members), current,
					m.CycleStartDate(next).Format(dateLayout), m.BufferOpenDate(next).Format(dateLayout))
			}
			return w.Flush()
		},
	}

	movementCmd.AddCommand(create, edit, list)
	return movementCmd
}
