package telegram

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ciex/motor/internal/app"
	"github.com/ciex/motor/internal/domain/movement"
	"github.com/ciex/motor/internal/domain/notice"
	idb "github.com/ciex/motor/internal/infra/database"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

const dateLayout = "2006-01-02"

const msgUnauthorized = "Error: you are not allowed to run this command."

// RegisterAdminHandlers registers handlers for admin commands.
// It requires the bot instance, the services, and a clock for cycle display.
func RegisterAdminHandlers(
	ctx context.Context,
	b *telebot.Bot,
	adminService *app.AdminService,
	sweepService app.SweepService,
	now func() time.Time,
	baseLogger *logrus.Entry,
) {
	b.Handle("/add_movement", func(c telebot.Context) error {
		handlerLogger := baseLogger.WithFields(logrus.Fields{
			"handler":   "/add_movement",
			"sender_id": c.Sender().ID,
		})
		handlerLogger.Info("Command received")

		if !adminService.IsAdmin(c.Sender().ID) {
			handlerLogger.Warn("Unauthorized access attempt")
			return c.Send(msgUnauthorized)
		}

		// Expected format: /add_movement <YYYY-MM-DD> <duration> <buffer> <name...>
		cfg, err := parseMovementArgs(c.Args())
		if err != nil {
			handlerLogger.WithError(err).Warn("Invalid command format")
			return c.Send(fmt.Sprintf("Error: %v.\nUsage: /add_movement <YYYY-MM-DD> <duration days> <buffer days> <name>", err))
		}

		m, err := adminService.CreateMovement(ctx, c.Sender().ID, cfg)
		if err != nil {
			logWithError := handlerLogger.WithError(err)
			switch {
			case errors.Is(err, movement.ErrInvalidCycleConfig):
				logWithError.Warn("Invalid movement configuration")
				return c.Send(fmt.Sprintf("Error: %v", err))
			default:
				logWithError.Error("Failed to create movement")
				return c.Send(fmt.Sprintf("An error occurred while creating the movement: %s", err.Error()))
			}
		}

		handlerLogger.WithField("movement_id", m.ID).Info("Movement created successfully")
		return c.Send(fmt.Sprintf("Movement '%s' successfully created (ID: %d).", m.Name, m.ID))
	})

	b.Handle("/edit_movement", func(c telebot.Context) error {
		handlerLogger := baseLogger.WithFields(logrus.Fields{
			"handler":   "/edit_movement",
			"sender_id": c.Sender().ID,
		})
		handlerLogger.Info("Command received")

		if !adminService.IsAdmin(c.Sender().ID) {
			handlerLogger.Warn("Unauthorized access attempt")
			return c.Send(msgUnauthorized)
		}

		// Expected format: /edit_movement <ID> <YYYY-MM-DD> <duration> <buffer> <name...>
		args := c.Args()
		if len(args) < 1 {
			return c.Send("Usage: /edit_movement <ID> <YYYY-MM-DD> <duration days> <buffer days> <name>")
		}
		movementID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return c.Send("Error: movement ID must be a number.")
		}
		cfg, err := parseMovementArgs(args[1:])
		if err != nil {
			handlerLogger.WithError(err).Warn("Invalid command format")
			return c.Send(fmt.Sprintf("Error: %v.\nUsage: /edit_movement <ID> <YYYY-MM-DD> <duration days> <buffer days> <name>", err))
		}
		handlerLogger = handlerLogger.WithField("movement_id", movementID)

		m, err := adminService.UpdateMovementConfig(ctx, c.Sender().ID, movementID, cfg)
		if err != nil {
			logWithError := handlerLogger.WithError(err)
			switch {
			case errors.Is(err, idb.ErrMovementNotFound):
				logWithError.Warn("Movement to edit not found")
				return c.Send(fmt.Sprintf("The movement with the id %d could not be found.", movementID))
			case errors.Is(err, movement.ErrInvalidCycleConfig):
				logWithError.Warn("Invalid movement configuration")
				return c.Send(fmt.Sprintf("Error: %v", err))
			default:
				logWithError.Error("Failed to edit movement")
				return c.Send(fmt.Sprintf("An error occurred while editing the movement: %s", err.Error()))
			}
		}

		handlerLogger.Info("Movement updated successfully")
		return c.Send(fmt.Sprintf("Movement '%s' (ID: %d) updated.", m.Name, m.ID))
	})

	b.Handle("/movements", func(c telebot.Context) error {
		handlerLogger := baseLogger.WithFields(logrus.Fields{
			"handler":   "/movements",
			"sender_id": c.Sender().ID,
		})
		if !adminService.IsAdmin(c.Sender().ID) {
			handlerLogger.Warn("Unauthorized access attempt")
			return c.Send(msgUnauthorized)
		}

		movements, err := adminService.ListMovements(ctx, c.Sender().ID)
		if err != nil {
			handlerLogger.WithError(err).Error("Failed to get list of movements")
			return c.Send(fmt.Sprintf("An error occurred while listing movements: %s", err.Error()))
		}
		if len(movements) == 0 {
			return c.Send("No movements yet.")
		}

		handlerLogger.WithField("movements_count", len(movements)).Info("Successfully retrieved movement list")
		return c.Send(formatMovementList(movements, now()))
	})

	b.Handle("/sweep_reminders", func(c telebot.Context) error {
		return handleSweep(ctx, c, adminService, baseLogger, notice.KindReminder, sweepService.RunReminderSweep)
	})

	b.Handle("/sweep_roundups", func(c telebot.Context) error {
		return handleSweep(ctx, c, adminService, baseLogger, notice.KindRoundup, sweepService.RunRoundupSweep)
	})
}

func handleSweep(
	ctx context.Context,
	c telebot.Context,
	adminService *app.AdminService,
	baseLogger *logrus.Entry,
	kind notice.Kind,
	sweep func(context.Context) (*notice.SweepReport, error),
) error {
	handlerLogger := baseLogger.WithFields(logrus.Fields{
		"handler":   "/sweep",
		"sweep":     kind,
		"sender_id": c.Sender().ID,
	})
	handlerLogger.Info("Command received")

	if !adminService.IsAdmin(c.Sender().ID) {
		handlerLogger.Warn("Unauthorized access attempt")
		return c.Send(msgUnauthorized)
	}

	report, err := sweep(ctx)
	if err != nil {
		handlerLogger.WithError(err).Error("Sweep failed")
	}
	return c.Send(formatSweepResult(report, err))
}

// parseMovementArgs parses "<YYYY-MM-DD> <duration> <buffer> <name...>".
func parseMovementArgs(args []string) (app.MovementConfig, error) {
	if len(args) < 4 {
		return app.MovementConfig{}, fmt.Errorf("expected 4 or more arguments, got %d", len(args))
	}
	start, err := time.Parse(dateLayout, args[0])
	if err != nil {
		return app.MovementConfig{}, fmt.Errorf("cycle start must be a date like 2021-01-01")
	}
	duration, err := strconv.Atoi(args[1])
	if err != nil {
		return app.MovementConfig{}, fmt.Errorf("cycle duration must be a number of days")
	}
	buffer, err := strconv.Atoi(args[2])
	if err != nil {
		return app.MovementConfig{}, fmt.Errorf("cycle buffer must be a number of days")
	}
	return app.MovementConfig{
		Name:          strings.Join(args[3:], " "),
		CycleStart:    start,
		CycleDuration: duration,
		CycleBuffer:   buffer,
	}, nil
}

func formatMovementList(movements []*movement.Movement, now time.Time) string {
	var response strings.Builder
	response.WriteString("--- Movements ---\n")
	for _, m := range movements {
		current := "not started"
		if m.Started(now) {
			current = fmt.Sprintf("cycle %d since %s", m.CurrentCycle(now), m.CycleStartDate(m.CurrentCycle(now)).Format(dateLayout))
		}
		next := m.NextCycle(now)
		response.WriteString(fmt.Sprintf("ID: %d, %s, members: %d, %s, next cycle %d on %s (reminders %s)\n",
			m.ID,
			m.Name,
			len(m.Members),
			current,
			next,
			m.CycleStartDate(next).Format(dateLayout),
			m.BufferOpenDate(next).Format(dateLayout)))
	}
	return response.String()
}
