package reports

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fintrack/fintrack/backend/go-services/internal/models"
)

// Repository runs the aggregation queries behind reports and dashboards
type Repository interface {
	MonthlyReport(ctx context.Context, userID int64, year int) ([]models.PeriodTotals, error)
	YearlyReport(ctx context.Context, userID int64, year int) ([]models.PeriodTotals, error)
	MonthSummary(ctx context.Context, userID int64, month, year int) (income, expenses float64, err error)
	RecentMonths(ctx context.Context, userID int64, limit int) ([]models.MonthTotals, error)
}

// PostgresRepository implements Repository with plain GROUP BY statements.
type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) periodReport(ctx context.Context, query string, userID int64, year int) ([]models.PeriodTotals, error) {
	rows, err := r.db.QueryContext(ctx, query, userID, year)
	if err != nil {
		return nil, fmt.Errorf("report query: %w", err)
	}
	defer rows.Close()

	var out []models.PeriodTotals
	for rows.Next() {
		var p models.PeriodTotals
		if err := rows.Scan(&p.Period, &p.Income, &p.Expenses); err != nil {
			return nil, fmt.Errorf("scan report row: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate report rows: %w", err)
	}
	return out, nil
}

func (r *PostgresRepository) MonthlyReport(ctx context.Context, userID int64, year int) ([]models.PeriodTotals, error) {
	const query = `SELECT
			to_char(transaction_date, 'YYYY-MM') AS period,
			COALESCE(SUM(CASE WHEN type = 'income' THEN amount ELSE 0 END), 0) AS income,
			COALESCE(SUM(CASE WHEN type = 'expense' THEN amount ELSE 0 END), 0) AS expenses
		FROM transactions
		WHERE user_id = $1 AND EXTRACT(YEAR FROM transaction_date) = $2
		GROUP BY period
		ORDER BY period ASC`
	return r.periodReport(ctx, query, userID, year)
}

func (r *PostgresRepository) YearlyReport(ctx context.Context, userID int64, year int) ([]models.PeriodTotals, error) {
	const query = `SELECT
			to_char(transaction_date, 'YYYY') AS period,
			COALESCE(SUM(CASE WHEN type = 'income' THEN amount ELSE 0 END), 0) AS income,
			COALESCE(SUM(CASE WHEN type = 'expense' THEN amount ELSE 0 END), 0) AS expenses
		FROM transactions
		WHERE user_id = $1 AND EXTRACT(YEAR FROM transaction_date) = $2
		GROUP BY period
		ORDER BY period ASC`
	return r.periodReport(ctx, query, userID, year)
}

// MonthSummary totals income and expenses for one calendar month.
func (r *PostgresRepository) MonthSummary(ctx context.Context, userID int64, month, year int) (float64, float64, error) {
	const query = `SELECT
			COALESCE(SUM(CASE WHEN type = 'income' THEN amount ELSE 0 END), 0) AS income,
			COALESCE(SUM(CASE WHEN type = 'expense' THEN amount ELSE 0 END), 0) AS expenses
		FROM transactions
		WHERE user_id = $1
		  AND EXTRACT(MONTH FROM transaction_date) = $2
		  AND EXTRACT(YEAR FROM transaction_date) = $3`
	var income, expenses float64
	if err := r.db.QueryRowContext(ctx, query, userID, month, year).Scan(&income, &expenses); err != nil {
		return 0, 0, fmt.Errorf("summary query: %w", err)
	}
	return income, expenses, nil
}

// RecentMonths returns an oldest-first series of per-month totals for the
// dashboard chart, capped at limit months.
func (r *PostgresRepository) RecentMonths(ctx context.Context, userID int64, limit int) ([]models.MonthTotals, error) {
	const query = `SELECT
			to_char(date_trunc('month', transaction_date), 'Mon') AS month,
			COALESCE(SUM(CASE WHEN type = 'income' THEN amount ELSE 0 END), 0) AS income,
			COALESCE(SUM(CASE WHEN type = 'expense' THEN amount ELSE 0 END), 0) AS expenses
		FROM transactions
		WHERE user_id = $1
		GROUP BY date_trunc('month', transaction_date)
		ORDER BY date_trunc('month', transaction_date) ASC
		LIMIT $2`
	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("monthly data query: %w", err)
	}
	defer rows.Close()

	var out []models.MonthTotals
	for rows.Next() {
		var m models.MonthTotals
		if err := rows.Scan(&m.Month, &m.Income, &m.Expenses); err != nil {
			return nil, fmt.Errorf("scan monthly row: %w", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate monthly rows: %w", err)
	}
	return out, nil
}
