package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/ciex/motor/internal/app" // For SweepService interface
	"github.com/ciex/motor/internal/domain/notice"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

const sweepTimeout = 10 * time.Minute

// ReportFunc receives the summary of every finished sweep, e.g. to forward it to the admin.
type ReportFunc func(report *notice.SweepReport, err error)

type SweepScheduler struct {
	cronEngine        *cron.Cron
	sweepService      app.SweepService
	logger            *logrus.Entry
	cronSpecReminders string
	cronSpecRoundups  string
	onReport          ReportFunc
}

func NewSweepScheduler(
	sweepService app.SweepService,
	logger *logrus.Entry,
	location *time.Location,
	cronSpecReminders string, // e.g., "0 6 * * *" (6:00 AM daily)
	cronSpecRoundups string, // e.g., "0 7 * * *" (7:00 AM daily)
	onReport ReportFunc,
) *SweepScheduler {
	if location == nil {
		location = time.Local
	}
	return &SweepScheduler{
		cronEngine:        cron.New(cron.WithLocation(location)),
		sweepService:      sweepService,
		logger:            logger,
		cronSpecReminders: cronSpecReminders,
		cronSpecRoundups:  cronSpecRoundups,
		onReport:          onReport,
	}
}

// Start registers the daily sweep jobs and starts the cron engine.
func (s *SweepScheduler) Start() error {
	s.logger.Info("Starting sweep scheduler...")

	_, err := s.cronEngine.AddFunc(s.cronSpecReminders, func() {
		s.logger.Info("Cron job triggered for reminder sweep.")
		s.runSweep(notice.KindReminder, s.sweepService.RunReminderSweep)
	})
	if err != nil {
		return fmt.Errorf("could not add reminder sweep cron job %q: %w", s.cronSpecReminders, err)
	}

	_, err = s.cronEngine.AddFunc(s.cronSpecRoundups, func() {
		s.logger.Info("Cron job triggered for roundup sweep.")
		s.runSweep(notice.KindRoundup, s.sweepService.RunRoundupSweep)
	})
	if err != nil {
		return fmt.Errorf("could not add roundup sweep cron job %q: %w", s.cronSpecRoundups, err)
	}

	s.cronEngine.Start()
	s.logger.Info("Sweep scheduler started with jobs.")
	return nil
}

func (s *SweepScheduler) runSweep(kind notice.Kind, sweep func(context.Context) (*notice.SweepReport, error)) {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	report, err := sweep(ctx)
	if err != nil {
		s.logger.WithError(err).WithField("sweep", kind).Error("Error during sweep")
	}
	if s.onReport != nil {
		s.onReport(report, err)
	}
}

func (s *SweepScheduler) Stop() {
	s.logger.Info("Stopping sweep scheduler...")
	ctx := s.cronEngine.Stop() // Stops the scheduler from adding new jobs, waits for running jobs.
	<-ctx.Done()
	s.logger.Info("Sweep scheduler gracefully stopped.")
}
