package persona

import (
	"context"
)

// Repository defines the operations for persisting and retrieving Persona entities.
type Repository interface {
	Create(ctx context.Context, p *Persona) error
	GetByID(ctx context.Context, id string) (*Persona, error)
	ListAll(ctx context.Context) ([]*Persona, error)
}
