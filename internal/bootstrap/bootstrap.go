// Package bootstrap wires configuration, storage and services shared by the motor binaries.
package bootstrap

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ciex/motor/internal/app"
	"github.com/ciex/motor/internal/domain/notice"
	"github.com/ciex/motor/internal/infra/config"
	idb "github.com/ciex/motor/internal/infra/database"
	"github.com/ciex/motor/internal/infra/logger"
	"github.com/ciex/motor/internal/infra/mail"
)

// App holds the initialized dependencies of a motor process.
type App struct {
	Config        *config.AppConfig
	DB            *sql.DB
	AdminService  *app.AdminService
	MemberService *app.MemberService
	SweepService  *app.SweepServiceImpl
}

// New loads configuration, initializes the logger, connects to and migrates
// the database, and builds the services.
func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("could not load application configuration: %w", err)
	}
	logger.Init(cfg)
	log := logger.Component("bootstrap")
	log.Infof("Configuration loaded. LogLevel: %s, Environment: %s, Timezone: %s", cfg.LogLevel, cfg.Environment, cfg.Location)

	db, err := idb.NewPostgresConnection(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("could not connect to database: %w", err)
	}
	log.Info("Database connection established successfully.")

	applied, err := idb.RunMigrations(ctx, db)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("could not apply migrations: %w", err)
	}
	if len(applied) > 0 {
		log.WithField("migrations", applied).Info("Database migrations applied.")
	}

	personaRepo := idb.NewPostgresPersonaRepository(db)
	movementRepo := idb.NewPostgresMovementRepository(db)
	goalRepo := idb.NewPostgresGoalRepository(db)

	sender, err := newSender(cfg)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &App{
		Config:        cfg,
		DB:            db,
		AdminService:  app.NewAdminService(movementRepo, cfg.AdminTelegramID),
		MemberService: app.NewMemberService(personaRepo, movementRepo, goalRepo, cfg.Now),
		SweepService: app.NewSweepServiceImpl(personaRepo, movementRepo, goalRepo, sender, logger.Component("sweep"), app.SweepOptions{
			MailFrom: cfg.MailSender,
			AppURL:   cfg.AppURL,
			Now:      cfg.Now,
		}),
	}, nil
}

func newSender(cfg *config.AppConfig) (notice.Sender, error) {
	if cfg.SMTPHost == "" {
		logger.Component("bootstrap").Warn("SMTP_HOST is not set, emails will only be logged.")
		return mail.NewLogSender(logger.Component("mail")), nil
	}
	sender, err := mail.NewSMTPSender(mail.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create mail sender: %w", err)
	}
	return sender, nil
}

// Close releases the database connection.
func (a *App) Close() error {
	return a.DB.Close()
}
