package app

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/ciex/motor/internal/domain/goal"
	"github.com/ciex/motor/internal/domain/movement"
	"github.com/ciex/motor/internal/domain/notice"
	"github.com/ciex/motor/internal/domain/persona"
	idb "github.com/ciex/motor/internal/infra/database"
)

// memStore is an in-memory stand-in for the Postgres repositories.
type memStore struct {
	personas     []*persona.Persona
	movements    map[int64]*movement.Movement
	goals        map[int64]*goal.Goal
	nextMovement int64
	nextGoal     int64

	listPersonasErr   error
	listByMemberErr   map[string]error
	getPersonaErr     map[string]error
	countGoalsErr     error
	goalCreateCounter int
}

func newMemStore() *memStore {
	return &memStore{
		movements:       make(map[int64]*movement.Movement),
		goals:           make(map[int64]*goal.Goal),
		listByMemberErr: make(map[string]error),
		getPersonaErr:   make(map[string]error),
	}
}

func (s *memStore) personaRepo() *fakePersonas   { return &fakePersonas{s} }
func (s *memStore) movementRepo() *fakeMovements { return &fakeMovements{s} }
func (s *memStore) goalRepo() *fakeGoals         { return &fakeGoals{s} }

func (s *memStore) addPersona(id, name, email string) *persona.Persona {
	p := &persona.Persona{ID: id, Name: name, Email: email}
	s.personas = append(s.personas, p)
	return p
}

func (s *memStore) addMovement(name, start string, duration, buffer int, members ...string) *movement.Movement {
	cycleStart, err := time.Parse("2006-01-02", start)
	if err != nil {
		panic(err)
	}
	s.nextMovement++
	m := &movement.Movement{
		ID:            s.nextMovement,
		Name:          name,
		CycleStart:    cycleStart,
		CycleDuration: duration,
		CycleBuffer:   buffer,
		Members:       append([]string{}, members...),
	}
	s.movements[m.ID] = m
	return m
}

func (s *memStore) addGoal(movementID int64, authorID string, cycle int, desc string) *goal.Goal {
	s.nextGoal++
	g := &goal.Goal{ID: s.nextGoal, MovementID: movementID, AuthorID: authorID, Cycle: cycle, Desc: desc}
	s.goals[g.ID] = g
	return g
}

func copyMovement(m *movement.Movement) *movement.Movement {
	c := *m
	c.Members = append([]string{}, m.Members...)
	return &c
}

type fakePersonas struct{ s *memStore }

func (r *fakePersonas) Create(_ context.Context, p *persona.Persona) error {
	for _, existing := range r.s.personas {
		if existing.ID == p.ID {
			return idb.ErrDuplicatePersona
		}
	}
	c := *p
	r.s.personas = append(r.s.personas, &c)
	return nil
}

func (r *fakePersonas) GetByID(_ context.Context, id string) (*persona.Persona, error) {
	if err := r.s.getPersonaErr[id]; err != nil {
		return nil, err
	}
	for _, p := range r.s.personas {
		if p.ID == id {
			c := *p
			return &c, nil
		}
	}
	return nil, idb.ErrPersonaNotFound
}

func (r *fakePersonas) ListAll(_ context.Context) ([]*persona.Persona, error) {
	if r.s.listPersonasErr != nil {
		return nil, r.s.listPersonasErr
	}
	out := make([]*persona.Persona, 0, len(r.s.personas))
	for _, p := range r.s.personas {
		c := *p
		out = append(out, &c)
	}
	return out, nil
}

type fakeMovements struct{ s *memStore }

func (r *fakeMovements) Create(_ context.Context, m *movement.Movement) error {
	r.s.nextMovement++
	m.ID = r.s.nextMovement
	if m.Members == nil {
		m.Members = []string{}
	}
	r.s.movements[m.ID] = copyMovement(m)
	return nil
}

func (r *fakeMovements) GetByID(_ context.Context, id int64) (*movement.Movement, error) {
	m, ok := r.s.movements[id]
	if !ok {
		return nil, idb.ErrMovementNotFound
	}
	return copyMovement(m), nil
}

func (r *fakeMovements) Update(_ context.Context, m *movement.Movement) error {
	existing, ok := r.s.movements[m.ID]
	if !ok {
		return idb.ErrMovementNotFound
	}
	existing.Name = m.Name
	existing.CycleStart = m.CycleStart
	existing.CycleDuration = m.CycleDuration
	existing.CycleBuffer = m.CycleBuffer
	return nil
}

func (r *fakeMovements) ListAll(_ context.Context) ([]*movement.Movement, error) {
	ids := make([]int64, 0, len(r.s.movements))
	for id := range r.s.movements {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]*movement.Movement, 0, len(ids))
	for _, id := range ids {
		out = append(out, copyMovement(r.s.movements[id]))
	}
	return out, nil
}

func (r *fakeMovements) ListByMember(ctx context.Context, personaID string) ([]*movement.Movement, error) {
	if err := r.s.listByMemberErr[personaID]; err != nil {
		return nil, err
	}
	all, _ := r.ListAll(ctx)
	var out []*movement.Movement
	for _, m := range all {
		if m.HasMember(personaID) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMovements) AddMember(_ context.Context, movementID int64, personaID string) error {
	m, ok := r.s.movements[movementID]
	if !ok {
		return idb.ErrMovementNotFound
	}
	if !m.HasMember(personaID) {
		m.Members = append(m.Members, personaID)
	}
	return nil
}

func (r *fakeMovements) RemoveMember(_ context.Context, movementID int64, personaID string) error {
	m, ok := r.s.movements[movementID]
	if !ok {
		return idb.ErrMovementNotFound
	}
	kept := m.Members[:0]
	for _, id := range m.Members {
		if id != personaID {
			kept = append(kept, id)
		}
	}
	m.Members = kept
	return nil
}

type fakeGoals struct{ s *memStore }

func (r *fakeGoals) Create(_ context.Context, g *goal.Goal) error {
	r.s.goalCreateCounter++
	r.s.nextGoal++
	g.ID = r.s.nextGoal
	c := *g
	r.s.goals[g.ID] = &c
	return nil
}

func (r *fakeGoals) GetByID(_ context.Context, id int64) (*goal.Goal, error) {
	g, ok := r.s.goals[id]
	if !ok {
		return nil, idb.ErrGoalNotFound
	}
	c := *g
	return &c, nil
}

func (r *fakeGoals) Delete(_ context.Context, id int64) error {
	if _, ok := r.s.goals[id]; !ok {
		return idb.ErrGoalNotFound
	}
	delete(r.s.goals, id)
	return nil
}

func (r *fakeGoals) list(match func(g *goal.Goal) bool) []*goal.Goal {
	out := make([]*goal.Goal, 0)
	for _, g := range r.s.goals {
		if match(g) {
			c := *g
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *fakeGoals) ListByAuthorAndMovement(_ context.Context, authorID string, movementID int64) ([]*goal.Goal, error) {
	return r.list(func(g *goal.Goal) bool { return g.AuthorID == authorID && g.MovementID == movementID }), nil
}

func (r *fakeGoals) ListByAuthorMovementAndCycle(_ context.Context, authorID string, movementID int64, cycle int) ([]*goal.Goal, error) {
	return r.list(func(g *goal.Goal) bool {
		return g.AuthorID == authorID && g.MovementID == movementID && g.Cycle == cycle
	}), nil
}

func (r *fakeGoals) CountByAuthorAndMovement(ctx context.Context, authorID string, movementID int64) (int, error) {
	if r.s.countGoalsErr != nil {
		return 0, r.s.countGoalsErr
	}
	goals, _ := r.ListByAuthorAndMovement(ctx, authorID, movementID)
	return len(goals), nil
}

// fakeSender records delivered messages and fails for configured recipients.
type fakeSender struct {
	sent    []notice.Message
	failFor map[string]error
}

func newFakeSender() *fakeSender {
	return &fakeSender{failFor: make(map[string]error)}
}

func (f *fakeSender) Send(_ context.Context, msg notice.Message) error {
	if err := f.failFor[msg.RecipientEmail]; err != nil {
		return err
	}
	f.sent = append(f.sent, msg)
	return nil
}

func (f *fakeSender) to(email string) []notice.Message {
	var out []notice.Message
	for _, m := range f.sent {
		if m.RecipientEmail == email {
			out = append(out, m)
		}
	}
	return out
}

func fixedClock(date string) func() time.Time {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(fmt.Sprintf("bad test date %q: %v", date, err))
	}
	t = t.Add(9 * time.Hour)
	return func() time.Time { return t }
}
