// internal/domain/goal/goal.go
package goal

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// MaxDescriptionLength is the longest goal description accepted at creation.
const MaxDescriptionLength = 500

var ErrGoalEmpty = fmt.Errorf("goal description is empty")
var ErrGoalTooLong = fmt.Errorf("goal description is too long")
var ErrGoalNotASCII = fmt.Errorf("goal description contains non-ASCII characters")

// Goal is what a member commits to for one cycle of a movement.
// Corresponds to the 'goals' table.
type Goal struct {
	ID         int64
	MovementID int64  // Foreign Key to movements.id
	AuthorID   string // Foreign Key to personas.id
	Cycle      int
	Desc       string
	CreatedAt  time.Time
}

// ValidateDescription enforces the limits on a new goal description.
func ValidateDescription(desc string) error {
	if strings.TrimSpace(desc) == "" {
		return ErrGoalEmpty
	}
	if n := utf8.RuneCountInString(desc); n > MaxDescriptionLength {
		return fmt.Errorf("%w: %d characters, at most %d allowed", ErrGoalTooLong, n, MaxDescriptionLength)
	}
	for i := 0; i < len(desc); i++ {
		if desc[i] >= utf8.RuneSelf {
			return ErrGoalNotASCII
		}
	}
	return nil
}

// StripNonASCII drops every non-ASCII character, for echoing rejected input back to the user.
func StripNonASCII(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r < utf8.RuneSelf {
			b.WriteRune(r)
		}
	}
	return b.String()
}
