package telegram

import (
	"fmt"

	"github.com/ciex/motor/internal/domain/notice"
	domainTelegram "github.com/ciex/motor/internal/domain/telegram"

	"github.com/sirupsen/logrus"
)

// NewAdminReporter returns a callback that forwards sweep summaries to the admin chat.
func NewAdminReporter(client domainTelegram.Client, adminTelegramID int64, logger *logrus.Entry) func(*notice.SweepReport, error) {
	return func(report *notice.SweepReport, sweepErr error) {
		text := formatSweepResult(report, sweepErr)
		if err := client.SendText(adminTelegramID, text); err != nil {
			logger.WithError(err).WithField("admin_id", adminTelegramID).Error("Failed to send sweep report to admin")
		}
	}
}

func formatSweepResult(report *notice.SweepReport, sweepErr error) string {
	if report == nil {
		return fmt.Sprintf("Sweep failed: %v", sweepErr)
	}
	if sweepErr != nil {
		return fmt.Sprintf("%s\nAborted: %v", report.String(), sweepErr)
	}
	return report.String()
}
