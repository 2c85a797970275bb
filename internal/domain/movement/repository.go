// internal/domain/movement/repository.go
package movement

import (
	"context"
)

// Repository defines the operations for persisting and retrieving Movement entities.
// Every returned Movement has its Members loaded.
type Repository interface {
	Create(ctx context.Context, m *Movement) error
	GetByID(ctx context.Context, id int64) (*Movement, error)
	Update(ctx context.Context, m *Movement) error // Name and cycle configuration only
	ListAll(ctx context.Context) ([]*Movement, error)
	ListByMember(ctx context.Context, personaID string) ([]*Movement, error)

	AddMember(ctx context.Context, movementID int64, personaID string) error
	RemoveMember(ctx context.Context, movementID int64, personaID string) error
}
