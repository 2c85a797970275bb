// internal/app/sweep_service.go
package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ciex/motor/internal/domain/goal"
	"github.com/ciex/motor/internal/domain/movement"
	"github.com/ciex/motor/internal/domain/notice"
	"github.com/ciex/motor/internal/domain/persona"
	idb "github.com/ciex/motor/internal/infra/database"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	DefaultMailFrom = "Souma Motor <noreply@souma-motor.appspotmail.com>"
	DefaultAppURL   = "http://souma-motor.appspot.com/"

	noGoalsMarker = "---"
)

// SweepService runs the two daily notification passes.
// Each entry point is meant to run once per calendar day; re-running it on the
// same day resends the same messages.
type SweepService interface {
	RunReminderSweep(ctx context.Context) (*notice.SweepReport, error)
	RunRoundupSweep(ctx context.Context) (*notice.SweepReport, error)
}

// SweepOptions carries the message settings and the clock of a SweepServiceImpl.
type SweepOptions struct {
	MailFrom string
	AppURL   string
	Now      func() time.Time // Defaults to time.Now
}

// SweepServiceImpl implements the SweepService interface.
type SweepServiceImpl struct {
	personaRepo  persona.Repository
	movementRepo movement.Repository
	goalRepo     goal.Repository
	sender       notice.Sender
	logger       *logrus.Entry
	mailFrom     string
	appURL       string
	now          func() time.Time
}

func NewSweepServiceImpl(
	pr persona.Repository,
	mr movement.Repository,
	gr goal.Repository,
	sender notice.Sender,
	logger *logrus.Entry,
	opts SweepOptions,
) *SweepServiceImpl {
	s := &SweepServiceImpl{
		personaRepo:  pr,
		movementRepo: mr,
		goalRepo:     gr,
		sender:       sender,
		logger:       logger,
		mailFrom:     opts.MailFrom,
		appURL:       opts.AppURL,
		now:          opts.Now,
	}
	if s.mailFrom == "" {
		s.mailFrom = DefaultMailFrom
	}
	if s.appURL == "" {
		s.appURL = DefaultAppURL
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

type reminderItem struct {
	name  string
	goals int
}

// RunReminderSweep emails every persona whose movements open the buffer window
// of their next cycle today.
func (s *SweepServiceImpl) RunReminderSweep(ctx context.Context) (*notice.SweepReport, error) {
	report, log := s.beginRun(notice.KindReminder)

	personas, err := s.personaRepo.ListAll(ctx)
	if err != nil {
		log.WithError(err).Error("Failed to list personas")
		return report, fmt.Errorf("failed to list personas: %w", err)
	}

	for _, p := range personas {
		if err := ctx.Err(); err != nil {
			log.WithError(err).Warn("Reminder sweep interrupted")
			return report, err
		}
		report.Personas++
		pLog := log.WithField("persona_id", p.ID)

		items, err := s.collectReminders(ctx, p, report.Date)
		if err != nil {
			pLog.WithError(err).Error("Failed to collect reminders, skipping persona")
			report.Skipped++
			continue
		}
		if len(items) == 0 {
			pLog.Infof("No reminders for %s", p.Name)
			report.Skipped++
			continue
		}

		s.deliver(ctx, pLog, report, s.composeReminder(p, items), len(items))
	}

	log.Info(report.String())
	return report, nil
}

func (s *SweepServiceImpl) collectReminders(ctx context.Context, p *persona.Persona, today time.Time) ([]reminderItem, error) {
	movements, err := s.movementRepo.ListByMember(ctx, p.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list movements of persona %s: %w", p.ID, err)
	}

	var items []reminderItem
	for _, m := range movements {
		if !m.ReminderDue(today) {
			continue
		}
		// Counts goals of every cycle, not only the upcoming one.
		n, err := s.goalRepo.CountByAuthorAndMovement(ctx, p.ID, m.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to count goals of persona %s in movement %d: %w", p.ID, m.ID, err)
		}
		items = append(items, reminderItem{name: m.Name, goals: n})
	}
	return items, nil
}

func (s *SweepServiceImpl) composeReminder(p *persona.Persona, items []reminderItem) notice.Message {
	names := make([]string, len(items))
	var body strings.Builder
	fmt.Fprintf(&body, "Hello %s,\n\nthe following movements are approaching their next cycle. ", p.Name)
	body.WriteString("Take a minute and write down your goals.\n\n")
	for i, it := range items {
		names[i] = it.name
		fmt.Fprintf(&body, "* %s (%d current goals)\n", it.name, it.goals)
	}
	s.writeSignature(&body)

	return notice.Message{
		From:           s.mailFrom,
		RecipientName:  p.Name,
		RecipientEmail: p.Email,
		Subject:        fmt.Sprintf("What do you want to do next in %s?", strings.Join(names, ", ")),
		Body:           body.String(),
	}
}

// RunRoundupSweep emails every persona whose movements start a new cycle today,
// listing what each teammate committed to for that cycle.
func (s *SweepServiceImpl) RunRoundupSweep(ctx context.Context) (*notice.SweepReport, error) {
	report, log := s.beginRun(notice.KindRoundup)

	personas, err := s.personaRepo.ListAll(ctx)
	if err != nil {
		log.WithError(err).Error("Failed to list personas")
		return report, fmt.Errorf("failed to list personas: %w", err)
	}

	// A movement section is identical for every recipient, so build it once per run.
	sections := make(map[int64]string)

	for _, p := range personas {
		if err := ctx.Err(); err != nil {
			log.WithError(err).Warn("Roundup sweep interrupted")
			return report, err
		}
		report.Personas++
		pLog := log.WithField("persona_id", p.ID)

		movements, err := s.movementRepo.ListByMember(ctx, p.ID)
		if err != nil {
			pLog.WithError(err).Error("Failed to list movements, skipping persona")
			report.Skipped++
			continue
		}

		var due []*movement.Movement
		for _, m := range movements {
			if m.RoundupDue(report.Date) {
				due = append(due, m)
			}
		}
		if len(due) == 0 {
			pLog.Infof("No roundup for %s", p.Name)
			report.Skipped++
			continue
		}

		parts := make([]string, 0, len(due))
		for _, m := range due {
			section, ok := sections[m.ID]
			if !ok {
				section, err = s.buildRoundupSection(ctx, pLog, m, m.CurrentCycle(report.Date))
				if err != nil {
					break
				}
				sections[m.ID] = section
			}
			parts = append(parts, section)
		}
		if err != nil {
			pLog.WithError(err).Error("Failed to compose roundup, skipping persona")
			report.Skipped++
			continue
		}

		s.deliver(ctx, pLog, report, s.composeRoundup(p, due, parts), len(due))
	}

	log.Info(report.String())
	return report, nil
}

func (s *SweepServiceImpl) buildRoundupSection(ctx context.Context, log *logrus.Entry, m *movement.Movement, cycle int) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "--- %s ---\n\n", strings.ToUpper(m.Name))

	for _, memberID := range m.Members {
		member, err := s.personaRepo.GetByID(ctx, memberID)
		if err != nil {
			if errors.Is(err, idb.ErrPersonaNotFound) {
				log.WithFields(logrus.Fields{"movement_id": m.ID, "member_id": memberID}).Warn("Member of movement not found, leaving out of roundup")
				continue
			}
			return "", fmt.Errorf("failed to get member %s of movement %d: %w", memberID, m.ID, err)
		}

		goals, err := s.goalRepo.ListByAuthorMovementAndCycle(ctx, member.ID, m.ID, cycle)
		if err != nil {
			return "", fmt.Errorf("failed to list goals of member %s in movement %d: %w", member.ID, m.ID, err)
		}

		if len(goals) == 0 {
			fmt.Fprintf(&b, "%s (%s): %s\n\n", member.Name, member.Email, noGoalsMarker)
			continue
		}
		fmt.Fprintf(&b, "%s (%s):\n", member.Name, member.Email)
		for _, g := range goals {
			fmt.Fprintf(&b, "* %s\n", g.Desc)
		}
		b.WriteString("\n")
	}
	return b.String(), nil
}

func (s *SweepServiceImpl) composeRoundup(p *persona.Persona, due []*movement.Movement, sections []string) notice.Message {
	names := make([]string, len(due))
	for i, m := range due {
		names[i] = m.Name
	}

	var body strings.Builder
	fmt.Fprintf(&body, "Hello %s,\n\na new cycle is starting for these movements. See what your teammates are up to:\n\n", p.Name)
	for _, section := range sections {
		body.WriteString(section)
	}
	s.writeSignature(&body)

	return notice.Message{
		From:           s.mailFrom,
		RecipientName:  p.Name,
		RecipientEmail: p.Email,
		Subject:        fmt.Sprintf("See what's next in %s", strings.Join(names, ", ")),
		Body:           body.String(),
	}
}

func (s *SweepServiceImpl) writeSignature(b *strings.Builder) {
	fmt.Fprintf(b, "\n%s\n\nYours truly,\nMotor", s.appURL)
}

// deliver sends msg and records the outcome. Delivery errors are logged, never returned.
func (s *SweepServiceImpl) deliver(ctx context.Context, log *logrus.Entry, report *notice.SweepReport, msg notice.Message, movements int) {
	if msg.RecipientEmail == "" {
		log.Warnf("Persona %s has no email address, skipping %s", msg.RecipientName, strings.ToLower(string(report.Kind)))
		report.Skipped++
		return
	}
	if err := s.sender.Send(ctx, msg); err != nil {
		log.WithError(err).Errorf("Failed to send %s email to %s", strings.ToLower(string(report.Kind)), msg.To())
		report.Failed++
		return
	}
	log.WithField("movements", movements).Infof("Sent %s email about %d movements to %s", strings.ToLower(string(report.Kind)), movements, msg.RecipientName)
	log.Debug(msg.Body)
	report.Sent++
}

func (s *SweepServiceImpl) beginRun(kind notice.Kind) (*notice.SweepReport, *logrus.Entry) {
	report := &notice.SweepReport{
		RunID: uuid.NewString(),
		Kind:  kind,
		Date:  movement.Date(s.now()),
	}
	log := s.logger.WithFields(logrus.Fields{
		"sweep":  strings.ToLower(string(kind)),
		"run_id": report.RunID,
		"date":   report.Date.Format("2006-01-02"),
	})
	log.Info("Starting sweep")
	return report, log
}
