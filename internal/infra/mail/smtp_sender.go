// internal/infra/mail/smtp_sender.go
package mail

import (
	"context"
	"fmt"

	"github.com/ciex/motor/internal/domain/notice"

	gomail "github.com/wneessen/go-mail"
)

// SMTPConfig holds the connection settings of an SMTPSender.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
}

// SMTPSender implements notice.Sender by delivering plain-text email over SMTP.
type SMTPSender struct {
	client *gomail.Client
}

func NewSMTPSender(cfg SMTPConfig) (*SMTPSender, error) {
	opts := []gomail.Option{
		gomail.WithPort(cfg.Port),
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
	}
	if cfg.Username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(cfg.Username),
			gomail.WithPassword(cfg.Password),
		)
	}
	client, err := gomail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create SMTP client for %s:%d: %w", cfg.Host, cfg.Port, err)
	}
	return &SMTPSender{client: client}, nil
}

// Send delivers one message. It dials the server per message; sweeps send at most one message per persona.
func (s *SMTPSender) Send(ctx context.Context, msg notice.Message) error {
	m, err := buildMsg(msg)
	if err != nil {
		return err
	}
	if err := s.client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", msg.To(), err)
	}
	return nil
}

func buildMsg(msg notice.Message) (*gomail.Msg, error) {
	m := gomail.NewMsg()
	if err := m.From(msg.From); err != nil {
		return nil, fmt.Errorf("invalid sender address %q: %w", msg.From, err)
	}
	if err := m.AddToFormat(msg.RecipientName, msg.RecipientEmail); err != nil {
		return nil, fmt.Errorf("invalid recipient address %q: %w", msg.To(), err)
	}
	m.Subject(msg.Subject)
	m.SetBodyString(gomail.TypeTextPlain, msg.Body)
	return m, nil
}
