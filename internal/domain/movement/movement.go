// internal/domain/movement/movement.go
package movement

import (
	"fmt"
	"strings"
	"time"
)

// NoCycle is returned by CurrentCycle for a movement whose first cycle has not started yet.
const NoCycle = -1

var ErrInvalidCycleConfig = fmt.Errorf("invalid movement cycle configuration")

// Movement is a group of members that set goals in recurring cycles.
// Corresponds to the 'movements' table; Members is loaded from 'movement_members'.
type Movement struct {
	ID            int64
	Name          string
	CycleStart    time.Time // Start date of cycle 0
	CycleDuration int       // Days per cycle, > 0
	CycleBuffer   int       // Days before a cycle start when reminders go out, 0..CycleDuration
	Members       []string  // Persona IDs
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Validate checks the invariants a movement must satisfy before it is stored.
func (m *Movement) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return fmt.Errorf("%w: name is empty", ErrInvalidCycleConfig)
	}
	if m.CycleStart.IsZero() {
		return fmt.Errorf("%w: cycle start is not set", ErrInvalidCycleConfig)
	}
	if m.CycleDuration <= 0 {
		return fmt.Errorf("%w: cycle duration must be positive, got %d", ErrInvalidCycleConfig, m.CycleDuration)
	}
	if m.CycleBuffer < 0 || m.CycleBuffer > m.CycleDuration {
		return fmt.Errorf("%w: cycle buffer must be between 0 and %d, got %d", ErrInvalidCycleConfig, m.CycleDuration, m.CycleBuffer)
	}
	return nil
}

// HasMember reports whether the persona belongs to the movement.
func (m *Movement) HasMember(personaID string) bool {
	for _, id := range m.Members {
		if id == personaID {
			return true
		}
	}
	return false
}

// CycleStartDate returns the first day of the given cycle.
func (m *Movement) CycleStartDate(cycle int) time.Time {
	return Date(m.CycleStart).AddDate(0, 0, cycle*m.CycleDuration)
}

// BufferOpenDate returns the day reminders for the given cycle go out.
func (m *Movement) BufferOpenDate(cycle int) time.Time {
	return m.CycleStartDate(cycle).AddDate(0, 0, -m.CycleBuffer)
}

// Started reports whether cycle 0 has begun on or before today.
func (m *Movement) Started(today time.Time) bool {
	return !Date(today).Before(Date(m.CycleStart))
}

// CurrentCycle returns the index of the cycle running on today, or NoCycle
// if the movement has not started.
func (m *Movement) CurrentCycle(today time.Time) int {
	if !m.Started(today) {
		return NoCycle
	}
	days := DaysBetween(m.CycleStart, today)
	return days / m.CycleDuration
}

// NextCycle returns the index of the cycle following the current one.
func (m *Movement) NextCycle(today time.Time) int {
	return m.CurrentCycle(today) + 1
}

// ReminderDue reports whether the buffer window of the next cycle opens today.
func (m *Movement) ReminderDue(today time.Time) bool {
	if !m.Started(today) {
		return false
	}
	return m.BufferOpenDate(m.NextCycle(today)).Equal(Date(today))
}

// RoundupDue reports whether a new cycle starts today.
func (m *Movement) RoundupDue(today time.Time) bool {
	if !m.Started(today) {
		return false
	}
	return m.CycleStartDate(m.CurrentCycle(today)).Equal(Date(today))
}

// Date truncates t to its calendar date, expressed as midnight UTC.
func Date(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the number of calendar days from a to b.
func DaysBetween(a, b time.Time) int {
	return int(Date(b).Sub(Date(a)) / (24 * time.Hour))
}
