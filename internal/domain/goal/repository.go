package goal

import (
	"context"
)

// Repository defines operations for Goal entities.
type Repository interface {
	Create(ctx context.Context, g *Goal) error
	GetByID(ctx context.Context, id int64) (*Goal, error)
	Delete(ctx context.Context, id int64) error

	ListByAuthorAndMovement(ctx context.Context, authorID string, movementID int64) ([]*Goal, error)
	ListByAuthorMovementAndCycle(ctx context.Context, authorID string, movementID int64, cycle int) ([]*Goal, error)
	CountByAuthorAndMovement(ctx context.Context, authorID string, movementID int64) (int, error)
}
