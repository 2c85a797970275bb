package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ciex/motor/internal/domain/persona"

	"github.com/lib/pq"
)

// Custom errors
var ErrPersonaNotFound = fmt.Errorf("persona not found")
var ErrDuplicatePersona = fmt.Errorf("persona with this ID already exists")

const uniqueViolation = pq.ErrorCode("23505")

type PostgresPersonaRepository struct {
	db *sql.DB
}

func NewPostgresPersonaRepository(db *sql.DB) *PostgresPersonaRepository {
	return &PostgresPersonaRepository{db: db}
}

func (r *PostgresPersonaRepository) Create(ctx context.Context, p *persona.Persona) error {
	query := `INSERT INTO personas (id, name, email)
               VALUES ($1, $2, $3)
               RETURNING created_at`

	err := r.db.QueryRowContext(ctx, query, p.ID, p.Name, p.Email).Scan(&p.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicatePersona
		}
		return fmt.Errorf("error creating persona: %w", err)
	}
	return nil
}

func (r *PostgresPersonaRepository) GetByID(ctx context.Context, id string) (*persona.Persona, error) {
	query := `SELECT id, name, email, created_at FROM personas WHERE id = $1`
	p := &persona.Persona{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.Name, &p.Email, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPersonaNotFound
		}
		return nil, fmt.Errorf("error getting persona by ID: %w", err)
	}
	return p, nil
}

func (r *PostgresPersonaRepository) ListAll(ctx context.Context) ([]*persona.Persona, error) {
	query := `SELECT id, name, email, created_at FROM personas ORDER BY created_at, id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing personas: %w", err)
	}
	defer rows.Close()

	personas := make([]*persona.Persona, 0)
	for rows.Next() {
		p := &persona.Persona{}
		if err := rows.Scan(&p.ID, &p.Name, &p.Email, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning persona: %w", err)
		}
		personas = append(personas, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating personas: %w", err)
	}
	return personas, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
