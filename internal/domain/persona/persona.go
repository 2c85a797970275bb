package persona

import (
	"strings"
	"time"
)

// Persona is a member of one or more movements.
type Persona struct {
	ID        string // Subject of the authenticated account
	Name      string
	Email     string
	CreatedAt time.Time
}

// NameFromEmail derives a display name from the local part of an email address.
func NameFromEmail(email string) string {
	if i := strings.Index(email, "@"); i >= 0 {
		return email[:i]
	}
	return email
}
