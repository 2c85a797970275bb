// internal/infra/database/postgres_movement_repository.go
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ciex/motor/internal/domain/movement"

	"github.com/lib/pq" // For pq.Array and driver registration
)

// Custom errors specific to movement repository
var ErrMovementNotFound = fmt.Errorf("movement not found")

const foreignKeyViolation = pq.ErrorCode("23503")

// selectMovements loads movements together with their member IDs.
// Callers append a WHERE clause, then GROUP BY/ORDER BY.
const selectMovements = `SELECT m.id, m.name, m.cycle_start, m.cycle_duration, m.cycle_buffer, m.created_at, m.updated_at,
               COALESCE(ARRAY_AGG(mm.persona_id ORDER BY mm.joined_at) FILTER (WHERE mm.persona_id IS NOT NULL), '{}') AS members
               FROM movements m
               LEFT JOIN movement_members mm ON mm.movement_id = m.id`

type PostgresMovementRepository struct {
	db *sql.DB
}

func NewPostgresMovementRepository(db *sql.DB) *PostgresMovementRepository {
	return &PostgresMovementRepository{db: db}
}

func (r *PostgresMovementRepository) Create(ctx context.Context, m *movement.Movement) error {
	query := `INSERT INTO movements (name, cycle_start, cycle_duration, cycle_buffer)
               VALUES ($1, $2, $3, $4)
               RETURNING id, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query, m.Name, movement.Date(m.CycleStart), m.CycleDuration, m.CycleBuffer).Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating movement: %w", err)
	}
	if m.Members == nil {
		m.Members = []string{}
	}
	return nil
}

func (r *PostgresMovementRepository) GetByID(ctx context.Context, id int64) (*movement.Movement, error) {
	query := selectMovements + ` WHERE m.id = $1 GROUP BY m.id`
	m, err := scanMovement(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMovementNotFound
		}
		return nil, fmt.Errorf("error getting movement by ID: %w", err)
	}
	return m, nil
}

func (r *PostgresMovementRepository) Update(ctx context.Context, m *movement.Movement) error {
	query := `UPDATE movements
               SET name = $1, cycle_start = $2, cycle_duration = $3, cycle_buffer = $4, updated_at = NOW()
               WHERE id = $5
               RETURNING updated_at`
	err := r.db.QueryRowContext(ctx, query, m.Name, movement.Date(m.CycleStart), m.CycleDuration, m.CycleBuffer, m.ID).Scan(&m.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrMovementNotFound
		}
		return fmt.Errorf("error updating movement: %w", err)
	}
	return nil
}

func (r *PostgresMovementRepository) ListAll(ctx context.Context) ([]*movement.Movement, error) {
	query := selectMovements + ` GROUP BY m.id ORDER BY m.id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing movements: %w", err)
	}
	defer rows.Close()
	return scanMovements(rows)
}

func (r *PostgresMovementRepository) ListByMember(ctx context.Context, personaID string) ([]*movement.Movement, error) {
	query := selectMovements + `
               WHERE m.id IN (SELECT movement_id FROM movement_members WHERE persona_id = $1)
               GROUP BY m.id ORDER BY m.id`
	rows, err := r.db.QueryContext(ctx, query, personaID)
	if err != nil {
		return nil, fmt.Errorf("error listing movements by member: %w", err)
	}
	defer rows.Close()
	return scanMovements(rows)
}

func (r *PostgresMovementRepository) AddMember(ctx context.Context, movementID int64, personaID string) error {
	query := `INSERT INTO movement_members (movement_id, persona_id) VALUES ($1, $2)
               ON CONFLICT (movement_id, persona_id) DO NOTHING`
	_, err := r.db.ExecContext(ctx, query, movementID, personaID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == foreignKeyViolation {
			if pqErr.Constraint == "movement_members_persona_id_fkey" {
				return ErrPersonaNotFound
			}
			return ErrMovementNotFound
		}
		return fmt.Errorf("error adding member to movement: %w", err)
	}
	return nil
}

func (r *PostgresMovementRepository) RemoveMember(ctx context.Context, movementID int64, personaID string) error {
	query := `DELETE FROM movement_members WHERE movement_id = $1 AND persona_id = $2`
	if _, err := r.db.ExecContext(ctx, query, movementID, personaID); err != nil {
		return fmt.Errorf("error removing member from movement: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMovement(row rowScanner) (*movement.Movement, error) {
	m := &movement.Movement{}
	err := row.Scan(&m.ID, &m.Name, &m.CycleStart, &m.CycleDuration, &m.CycleBuffer, &m.CreatedAt, &m.UpdatedAt, pq.Array(&m.Members))
	if err != nil {
		return nil, err
	}
	m.CycleStart = movement.Date(m.CycleStart)
	return m, nil
}

// Helper to scan multiple rows
func scanMovements(rows *sql.Rows) ([]*movement.Movement, error) {
	movements := make([]*movement.Movement, 0)
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning movement row: %w", err)
		}
		movements = append(movements, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating movement rows: %w", err)
	}
	return movements, nil
}
