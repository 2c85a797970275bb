package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ciex/motor/internal/bootstrap"
	"github.com/ciex/motor/internal/infra/logger"
	"github.com/ciex/motor/internal/infra/scheduler"
	"github.com/ciex/motor/internal/infra/telegram"

	"gopkg.in/telebot.v3"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	motor, err := bootstrap.New(ctx)
	if err != nil {
		logger.Log.Fatalf("FATAL: %v", err)
	}
	defer motor.Close()
	cfg := motor.Config
	mainLogger := logger.Component("main")

	// Initialize the admin bot, if configured
	var bot *telebot.Bot
	var onReport scheduler.ReportFunc
	if cfg.TelegramToken != "" {
		pref := telebot.Settings{
			Token:  cfg.TelegramToken,
			Poller: &telebot.LongPoller{Timeout: 10 * time.Second},
			OnError: func(err error, c telebot.Context) { // Global error handler
				errLogger := logger.Component("telebot").WithError(err)
				if c != nil && c.Sender() != nil && c.Chat() != nil {
					errLogger = errLogger.WithField("sender_id", c.Sender().ID).WithField("chat_id", c.Chat().ID)
				}
				errLogger.Error("Telegram handler error")
			},
		}
		bot, err = telebot.NewBot(pref)
		if err != nil {
			mainLogger.Fatalf("FATAL: Could not create Telegram bot: %v", err)
		}

		botLogger := logger.Component("telegram")
		telegram.RegisterBotCommands(bot, motor.AdminService, botLogger)
		telegram.RegisterAdminHandlers(ctx, bot, motor.AdminService, motor.SweepService, cfg.Now, botLogger)
		onReport = telegram.NewAdminReporter(telegram.NewTelebotAdapter(bot), cfg.AdminTelegramID, botLogger)
		mainLogger.Info("Admin command handlers registered.")
	} else {
		mainLogger.Warn("TELEGRAM_TOKEN is not set, admin bot disabled.")
	}

	sweepScheduler := scheduler.NewSweepScheduler(
		motor.SweepService,
		logger.Component("scheduler"),
		cfg.Location,
		cfg.CronSpecReminders,
		cfg.CronSpecRoundups,
		onReport,
	)
	if err := sweepScheduler.Start(); err != nil {
		mainLogger.Fatalf("FATAL: Could not start scheduler: %v", err)
	}

	mainLogger.Info("Application setup complete. Scheduler is running.")

	// Start bot in a goroutine so it doesn't block graceful shutdown handling
	if bot != nil {
		go bot.Start()
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	mainLogger.Info("Shutting down application...")
	if bot != nil {
		bot.Stop()
	}
	sweepScheduler.Stop()
	cancel()
	mainLogger.Info("Application shut down gracefully.")
}
