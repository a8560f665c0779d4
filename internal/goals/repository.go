package goals

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fintrack/fintrack/backend/go-services/internal/models"
)

// ErrNotFound covers both a missing goal and one owned by another user.
var ErrNotFound = errors.New("goal not found")

// Repository defines persistence operations for savings goals
type Repository interface {
	Create(ctx context.Context, g *models.Goal) (int64, error)
	ListByUser(ctx context.Context, userID int64) ([]models.Goal, error)
	Update(ctx context.Context, g *models.Goal) error
	Delete(ctx context.Context, userID, id int64) error
}

// PostgresRepository implements Repository with parameterized queries.
type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, g *models.Goal) (int64, error) {
	const query = `INSERT INTO goals (user_id, goal_name, target_amount, current_savings, target_date)
		VALUES ($1, $2, $3, $4, $5) RETURNING id`
	var id int64
	err := r.db.QueryRowContext(ctx, query,
		g.UserID, g.GoalName, g.TargetAmount, g.CurrentSavings, g.TargetDate).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert goal: %w", err)
	}
	return id, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID int64) ([]models.Goal, error) {
	const query = `SELECT id, user_id, goal_name, target_amount, current_savings, target_date, created_at
		FROM goals WHERE user_id = $1 ORDER BY target_date ASC, id ASC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("select goals: %w", err)
	}
	defer rows.Close()

	var out []models.Goal
	for rows.Next() {
		var g models.Goal
		if err := rows.Scan(&g.ID, &g.UserID, &g.GoalName, &g.TargetAmount,
			&g.CurrentSavings, &g.TargetDate, &g.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan goal: %w", err)
		}
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate goals: %w", err)
	}
	return out, nil
}

// Update rewrites a goal's fields. The user id in the WHERE clause keeps one
// user from touching another's rows.
func (r *PostgresRepository) Update(ctx context.Context, g *models.Goal) error {
	const query = `UPDATE goals SET goal_name = $1, target_amount = $2, current_savings = $3, target_date = $4
		WHERE id = $5 AND user_id = $6`
	res, err := r.db.ExecContext(ctx, query,
		g.GoalName, g.TargetAmount, g.CurrentSavings, g.TargetDate, g.ID, g.UserID)
	if err != nil {
		return fmt.Errorf("update goal: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update goal: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM goals WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("delete goal: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete goal: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
