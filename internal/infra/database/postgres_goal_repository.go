// internal/infra/database/postgres_goal_repository.go
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ciex/motor/internal/domain/goal"
)

var ErrGoalNotFound = fmt.Errorf("goal not found")

type PostgresGoalRepository struct {
	db *sql.DB
}

func NewPostgresGoalRepository(db *sql.DB) *PostgresGoalRepository {
	return &PostgresGoalRepository{db: db}
}

func (r *PostgresGoalRepository) Create(ctx context.Context, g *goal.Goal) error {
	query := `INSERT INTO goals (movement_id, author_id, cycle, description)
               VALUES ($1, $2, $3, $4)
               RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, query, g.MovementID, g.AuthorID, g.Cycle, g.Desc).Scan(&g.ID, &g.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating goal: %w", err)
	}
	return nil
}

func (r *PostgresGoalRepository) GetByID(ctx context.Context, id int64) (*goal.Goal, error) {
	query := `SELECT id, movement_id, author_id, cycle, description, created_at FROM goals WHERE id = $1`
	g := goal.Goal{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&g.ID, &g.MovementID, &g.AuthorID, &g.Cycle, &g.Desc, &g.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGoalNotFound
		}
		return nil, fmt.Errorf("error getting goal by ID: %w", err)
	}
	return &g, nil
}

func (r *PostgresGoalRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM goals WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting goal: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error reading deleted goal count: %w", err)
	}
	if n == 0 {
		return ErrGoalNotFound
	}
	return nil
}

func (r *PostgresGoalRepository) ListByAuthorAndMovement(ctx context.Context, authorID string, movementID int64) ([]*goal.Goal, error) {
	query := `SELECT id, movement_id, author_id, cycle, description, created_at
               FROM goals
               WHERE author_id = $1 AND movement_id = $2
               ORDER BY cycle, id`
	rows, err := r.db.QueryContext(ctx, query, authorID, movementID)
	if err != nil {
		return nil, fmt.Errorf("error querying goals by author and movement: %w", err)
	}
	defer rows.Close()
	return scanGoals(rows)
}

func (r *PostgresGoalRepository) ListByAuthorMovementAndCycle(ctx context.Context, authorID string, movementID int64, cycle int) ([]*goal.Goal, error) {
	query := `SELECT id, movement_id, author_id, cycle, description, created_at
               FROM goals
               WHERE author_id = $1 AND movement_id = $2 AND cycle = $3
               ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, authorID, movementID, cycle)
	if err != nil {
		return nil, fmt.Errorf("error querying goals by author, movement and cycle: %w", err)
	}
	defer rows.Close()
	return scanGoals(rows)
}

func (r *PostgresGoalRepository) CountByAuthorAndMovement(ctx context.Context, authorID string, movementID int64) (int, error) {
	query := `SELECT COUNT(*) FROM goals WHERE author_id = $1 AND movement_id = $2`
	var n int
	if err := r.db.QueryRowContext(ctx, query, authorID, movementID).Scan(&n); err != nil {
		return 0, fmt.Errorf("error counting goals: %w", err)
	}
	return n, nil
}

func scanGoals(rows *sql.Rows) ([]*goal.Goal, error) {
	goals := make([]*goal.Goal, 0)
	for rows.Next() {
		g := goal.Goal{}
		if err := rows.Scan(&g.ID, &g.MovementID, &g.AuthorID, &g.Cycle, &g.Desc, &g.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning goal row: %w", err)
		}
		goals = append(goals, &g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating goal rows: %w", err)
	}
	return goals, nil
}
