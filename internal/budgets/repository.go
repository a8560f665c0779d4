package budgets

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fintrack/fintrack/backend/go-services/internal/models"
)

// Repository defines persistence operations for budgets
type Repository interface {
	Create(ctx context.Context, b *models.Budget) (int64, error)
	ListByUser(ctx context.Context, userID int64, month, year int) ([]models.Budget, error)
}

// PostgresRepository implements Repository with parameterized queries.
type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, b *models.Budget) (int64, error) {
	const query = `INSERT INTO budgets (user_id, category, amount, month, year)
		VALUES ($1, $2, $3, $4, $5) RETURNING id`
	var id int64
	err := r.db.QueryRowContext(ctx, query, b.UserID, b.Category, b.Amount, b.Month, b.Year).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert budget: %w", err)
	}
	return id, nil
}

// ListByUser returns the user's budgets. Month and year each narrow the
// result independently when non-zero.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID int64, month, year int) ([]models.Budget, error) {
	query := `SELECT id, user_id, category, amount, month, year, created_at FROM budgets WHERE user_id = $1`
	args := []interface{}{userID}
	if month > 0 {
		args = append(args, month)
		query += fmt.Sprintf(` AND month = $%d`, len(args))
	}
	if year > 0 {
		args = append(args, year)
		query += fmt.Sprintf(` AND year = $%d`, len(args))
	}
	query += ` ORDER BY year DESC, month DESC, category ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select budgets: %w", err)
	}
	defer rows.Close()

	var out []models.Budget
	for rows.Next() {
		var b models.Budget
		if err := rows.Scan(&b.ID, &b.UserID, &b.Category, &b.Amount, &b.Month, &b.Year, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan budget: %w", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate budgets: %w", err)
	}
	return out, nil
}
