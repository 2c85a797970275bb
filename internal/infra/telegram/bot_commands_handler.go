// internal/infra/telegram/bot_commands_handler.go
package telegram

import (
	"strings"

	"github.com/ciex/motor/internal/app"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

func RegisterBotCommands(
	b *telebot.Bot,
	adminService *app.AdminService,
	baseLogger *logrus.Entry,
) {
	startHelpLogger := baseLogger.WithField("handler_group", "start_help")

	b.Handle("/start", func(c telebot.Context) error {
		senderID := c.Sender().ID
		logCtx := startHelpLogger.WithField("command", "/start").WithField("sender_id", senderID)
		logCtx.Info("Processing /start command")

		if adminService.IsAdmin(senderID) {
			logCtx.Info("User identified as Admin")
			return c.Send("Hello " + c.Sender().FirstName + "! Motor is running. Use /help for the list of commands.")
		}

		logCtx.Info("User is unknown")
		return c.Send("Hello! This bot administers Motor. Members receive their reminders and roundups by email.")
	})

	b.Handle("/help", func(c telebot.Context) error {
		senderID := c.Sender().ID
		logCtx := startHelpLogger.WithField("command", "/help").WithField("sender_id", senderID)
		logCtx.Info("Processing /help command")

		if !adminService.IsAdmin(senderID) {
			logCtx.Info("User is unknown, sending restricted help.")
			return c.Send("No commands are available to you.")
		}

		logCtx.Info("User identified as Admin, sending admin help.")
		return c.Send(adminHelpText(), &telebot.SendOptions{ParseMode: telebot.ModeMarkdown})
	})
}

func adminHelpText() string {
	var helpText strings.Builder
	helpText.WriteString("Admin commands:\n\n")
	helpText.WriteString("`/add_movement <YYYY-MM-DD> <duration> <buffer> <name>`\n - Create a movement whose cycle 0 starts on the given date.\n\n")
	helpText.WriteString("`/edit_movement <ID> <YYYY-MM-DD> <duration> <buffer> <name>`\n - Change the name and cycle configuration of a movement.\n\n")
	helpText.WriteString("`/movements`\n - List movements with their current and next cycle.\n\n")
	helpText.WriteString("`/sweep_reminders`\n - Send today's goal reminders now.\n\n")
	helpText.WriteString("`/sweep_roundups`\n - Send today's cycle roundups now.\n\n")
	helpText.WriteString("`/help`\n - Show this message.")
	return helpText.String()
}
