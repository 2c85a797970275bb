package config

import (
	"fmt"
	"os"
	"strconv"
	"strings" // For LogLevel normalization
	"time"

	"github.com/joho/godotenv"
)

// AppConfig holds all configuration for the application
type AppConfig struct {
	DatabaseURL       string
	LogLevel          string
	Environment       string
	Location          *time.Location // Timezone that defines "today" and cron times
	CronSpecReminders string
	CronSpecRoundups  string
	MailSender        string
	AppURL            string
	SMTPHost          string // Empty disables SMTP delivery; messages are only logged
	SMTPPort          int
	SMTPUsername      string
	SMTPPassword      string
	TelegramToken     string // Empty disables the admin bot
	AdminTelegramID   int64
}

// Load reads configuration from environment variables and .env file (if present).
func Load() (*AppConfig, error) {
	// godotenv.Load will not override existing env variables.
	_ = godotenv.Load()

	cfg := &AppConfig{}
	var err error

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}

	cfg.LogLevel = strings.ToLower(os.Getenv("LOG_LEVEL"))
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	cfg.Environment = strings.ToLower(os.Getenv("ENVIRONMENT"))
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}

	tz := os.Getenv("TIMEZONE")
	if tz == "" {
		tz = "UTC"
	}
	cfg.Location, err = time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE: %w", err)
	}

	cfg.CronSpecReminders = os.Getenv("CRON_SPEC_REMINDERS")
	if cfg.CronSpecReminders == "" {
		cfg.CronSpecReminders = "0 6 * * *" // Default: 6:00 AM daily
	}
	cfg.CronSpecRoundups = os.Getenv("CRON_SPEC_ROUNDUPS")
	if cfg.CronSpecRoundups == "" {
		cfg.CronSpecRoundups = "0 7 * * *" // Default: 7:00 AM daily
	}

	cfg.MailSender = os.Getenv("MAIL_SENDER")
	if cfg.MailSender == "" {
		cfg.MailSender = "Souma Motor <noreply@souma-motor.appspotmail.com>"
	}
	cfg.AppURL = os.Getenv("APP_URL")
	if cfg.AppURL == "" {
		cfg.AppURL = "http://souma-motor.appspot.com/"
	}

	cfg.SMTPHost = os.Getenv("SMTP_HOST")
	cfg.SMTPPort = 587
	if portStr := os.Getenv("SMTP_PORT"); portStr != "" {
		cfg.SMTPPort, err = strconv.Atoi(portStr)
		if err != nil {
			return nil, fmt.Errorf("invalid SMTP_PORT: %w", err)
		}
	}
	cfg.SMTPUsername = os.Getenv("SMTP_USERNAME")
	cfg.SMTPPassword = os.Getenv("SMTP_PASSWORD")

	cfg.TelegramToken = os.Getenv("TELEGRAM_TOKEN")
	adminIDStr := os.Getenv("ADMIN_TELEGRAM_ID")
	if adminIDStr != "" {
		cfg.AdminTelegramID, err = strconv.ParseInt(adminIDStr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid ADMIN_TELEGRAM_ID: %w", err)
		}
	}
	if cfg.TelegramToken != "" && cfg.AdminTelegramID == 0 {
		return nil, fmt.Errorf("ADMIN_TELEGRAM_ID is not set")
	}

	return cfg, nil
}

// Now returns the current time in the configured timezone.
func (c *AppConfig) Now() time.Time {
	return time.Now().In(c.Location)
}
