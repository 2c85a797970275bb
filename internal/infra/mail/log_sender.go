package mail

import (
	"context"

	"github.com/ciex/motor/internal/domain/notice"

	"github.com/sirupsen/logrus"
)

// LogSender implements notice.Sender by writing messages to the log.
// It is used when no SMTP server is configured.
type LogSender struct {
	logger *logrus.Entry
}

func NewLogSender(logger *logrus.Entry) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) Send(_ context.Context, msg notice.Message) error {
	s.logger.WithFields(logrus.Fields{
		"from":    msg.From,
		"to":      msg.To(),
		"subject": msg.Subject,
	}).Info(msg.Body)
	return nil
}
