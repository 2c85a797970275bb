// internal/domain/notice/notice.go
package notice

import (
	"context"
	"fmt"
	"time"
)

// Kind identifies which daily sweep produced a notice.
type Kind string

const (
	KindReminder Kind = "REMINDER" // Buffer window of the next cycle opened today
	KindRoundup  Kind = "ROUNDUP"  // A new cycle started today
)

// Message is one outbound plain-text email.
type Message struct {
	From           string // e.g. "Souma Motor <noreply@souma-motor.appspotmail.com>"
	RecipientName  string
	RecipientEmail string
	Subject        string
	Body           string
}

// To formats the recipient as "name <email>".
func (m Message) To() string {
	return fmt.Sprintf("%s <%s>", m.RecipientName, m.RecipientEmail)
}

// Sender delivers outbound messages. It decouples the sweeps from the mail transport.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// SweepReport summarizes one sweep run.
type SweepReport struct {
	RunID    string
	Kind     Kind
	Date     time.Time
	Personas int // Personas examined
	Sent     int // Messages delivered
	Skipped  int // Personas with nothing due or that could not be processed
	Failed   int // Deliveries that returned an error
}

// String renders the report for logs and the admin chat.
func (r SweepReport) String() string {
	return fmt.Sprintf("%s sweep %s for %s: %d personas, %d sent, %d skipped, %d failed",
		r.Kind, r.RunID, r.Date.Format("2006-01-02"), r.Personas, r.Sent, r.Skipped, r.Failed)
}
