// Package seed loads personas and movements from a YAML file.
package seed

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/ciex/motor/internal/app"

	"gopkg.in/yaml.v3"
)

const dateLayout = "2006-01-02"

// File is the layout of a seed document:
//
//	personas:
//	  - id: "42"
//	    email: ann@example.com
//	movements:
//	  - name: Running
//	    cycle_start: 2021-01-01
//	    cycle_duration: 14
//	    cycle_buffer: 3
//	    members: ["42"]
type File struct {
	Personas  []Persona  `yaml:"personas"`
	Movements []Movement `yaml:"movements"`
}

type Persona struct {
	ID    string `yaml:"id"`
	Email string `yaml:"email"`
}

type Movement struct {
	Name          string   `yaml:"name"`
	CycleStart    Date     `yaml:"cycle_start"`
	CycleDuration int      `yaml:"cycle_duration"`
	CycleBuffer   int      `yaml:"cycle_buffer"`
	Members       []string `yaml:"members"`
}

// Date is a calendar date written as YYYY-MM-DD.
type Date struct {
	time.Time
}

func (d *Date) UnmarshalYAML(value *yaml.Node) error {
	t, err := time.Parse(dateLayout, value.Value)
	if err != nil {
		return fmt.Errorf("line %d: invalid date %q, expected YYYY-MM-DD", value.Line, value.Value)
	}
	d.Time = t
	return nil
}

// Parse decodes a seed document. Unknown fields are rejected.
func Parse(r io.Reader) (*File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		if err == io.EOF {
			return &f, nil
		}
		return nil, fmt.Errorf("failed to decode seed file: %w", err)
	}
	return &f, nil
}

// Result counts what Apply created.
type Result struct {
	Personas  int
	Movements int
	Members   int
}

// Apply creates the personas, then every movement with its members.
// Existing personas are reused; movements are always created anew.
func Apply(ctx context.Context, f *File, admin *app.AdminService, adminID int64, members *app.MemberService) (Result, error) {
	var res Result
	for _, p := range f.Personas {
		if _, err := members.EnsurePersona(ctx, p.ID, p.Email); err != nil {
			return res, fmt.Errorf("failed to seed persona %s: %w", p.ID, err)
		}
		res.Personas++
	}

	for _, sm := range f.Movements {
		m, err := admin.CreateMovement(ctx, adminID, app.MovementConfig{
			Name:          sm.Name,
			CycleStart:    sm.CycleStart.Time,
			CycleDuration: sm.CycleDuration,
			CycleBuffer:   sm.CycleBuffer,
		})
		if err != nil {
			return res, fmt.Errorf("failed to seed movement %q: %w", sm.Name, err)
		}
		res.Movements++

		seen := make(map[string]bool, len(sm.Members))
		for _, personaID := range sm.Members {
			if seen[personaID] {
				continue // A second toggle would remove the member again
			}
			seen[personaID] = true
			joined, err := members.ToggleMembership(ctx, personaID, m.ID)
			if err != nil {
				return res, fmt.Errorf("failed to add %s to movement %q: %w", personaID, sm.Name, err)
			}
			if joined {
				res.Members++
			}
		}
	}
	return res, nil
}
