// internal/app/member_service.go
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ciex/motor/internal/domain/goal"
	"github.com/ciex/motor/internal/domain/movement"
	"github.com/ciex/motor/internal/domain/persona"
	idb "github.com/ciex/motor/internal/infra/database"
)

var ErrNotMember = fmt.Errorf("persona is not a member of the movement")
var ErrGoalCycleStarted = fmt.Errorf("goals can only be created or deleted for future cycles")
var ErrNotGoalAuthor = fmt.Errorf("goal belongs to another persona")

// MemberService holds the operations a member performs on their own behalf.
// The acting persona is always passed explicitly.
type MemberService struct {
	personaRepo  persona.Repository
	movementRepo movement.Repository
	goalRepo     goal.Repository
	now          func() time.Time
}

func NewMemberService(pr persona.Repository, mr movement.Repository, gr goal.Repository, now func() time.Time) *MemberService {
	if now == nil {
		now = time.Now
	}
	return &MemberService{
		personaRepo:  pr,
		movementRepo: mr,
		goalRepo:     gr,
		now:          now,
	}
}

// EnsurePersona returns the persona for an authenticated account, creating it on first access.
// Name and email are only set at creation.
func (s *MemberService) EnsurePersona(ctx context.Context, id string, email string) (*persona.Persona, error) {
	p, err := s.personaRepo.GetByID(ctx, id)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, idb.ErrPersonaNotFound) {
		return nil, fmt.Errorf("failed to check existing persona: %w", err)
	}

	p = &persona.Persona{
		ID:    id,
		Name:  persona.NameFromEmail(email),
		Email: email,
	}
	if err := s.personaRepo.Create(ctx, p); err != nil {
		if errors.Is(err, idb.ErrDuplicatePersona) { // Created concurrently by another request
			return s.personaRepo.GetByID(ctx, id)
		}
		return nil, fmt.Errorf("failed to create persona in repository: %w", err)
	}
	return p, nil
}

// ToggleMembership adds the actor to the movement, or removes them if they already belong to it.
// It reports whether the actor is a member afterwards.
func (s *MemberService) ToggleMembership(ctx context.Context, actorID string, movementID int64) (bool, error) {
	m, err := s.movementRepo.GetByID(ctx, movementID)
	if err != nil {
		return false, fmt.Errorf("failed to get movement %d: %w", movementID, err)
	}

	if m.HasMember(actorID) {
		if err := s.movementRepo.RemoveMember(ctx, movementID, actorID); err != nil {
			return true, fmt.Errorf("failed to leave movement %d: %w", movementID, err)
		}
		return false, nil
	}

	if err := s.movementRepo.AddMember(ctx, movementID, actorID); err != nil {
		return false, fmt.Errorf("failed to join movement %d: %w", movementID, err)
	}
	return true, nil
}

// CreateGoal stores a goal of the actor for a future cycle of a movement they belong to.
func (s *MemberService) CreateGoal(ctx context.Context, actorID string, movementID int64, cycle int, desc string) (*goal.Goal, error) {
	if _, err := s.personaRepo.GetByID(ctx, actorID); err != nil {
		return nil, fmt.Errorf("failed to get author %s: %w", actorID, err)
	}
	m, err := s.movementRepo.GetByID(ctx, movementID)
	if err != nil {
		return nil, fmt.Errorf("failed to get movement %d: %w", movementID, err)
	}
	if !m.HasMember(actorID) {
		return nil, ErrNotMember
	}
	if cycle <= m.CurrentCycle(s.now()) {
		return nil, fmt.Errorf("%w: cycle %d, current cycle %d", ErrGoalCycleStarted, cycle, m.CurrentCycle(s.now()))
	}
	if err := goal.ValidateDescription(desc); err != nil {
		return nil, err
	}

	g := &goal.Goal{
		MovementID: m.ID,
		AuthorID:   actorID,
		Cycle:      cycle,
		Desc:       desc,
	}
	if err := s.goalRepo.Create(ctx, g); err != nil {
		return nil, fmt.Errorf("failed to create goal in repository: %w", err)
	}
	return g, nil
}

// DeleteGoal removes one of the actor's goals whose cycle has not started yet.
func (s *MemberService) DeleteGoal(ctx context.Context, actorID string, goalID int64) error {
	g, err := s.goalRepo.GetByID(ctx, goalID)
	if err != nil {
		return fmt.Errorf("failed to get goal %d: %w", goalID, err)
	}
	if g.AuthorID != actorID {
		return ErrNotGoalAuthor
	}

	m, err := s.movementRepo.GetByID(ctx, g.MovementID)
	if err != nil {
		return fmt.Errorf("failed to get movement %d of goal %d: %w", g.MovementID, goalID, err)
	}
	if m.CurrentCycle(s.now()) >= g.Cycle {
		return ErrGoalCycleStarted
	}

	if err := s.goalRepo.Delete(ctx, goalID); err != nil {
		return fmt.Errorf("failed to delete goal %d: %w", goalID, err)
	}
	return nil
}

// ListGoals returns all of the actor's goals in a movement, ordered by cycle.
func (s *MemberService) ListGoals(ctx context.Context, actorID string, movementID int64) ([]*goal.Goal, error) {
	return s.goalRepo.ListByAuthorAndMovement(ctx, actorID, movementID)
}
