package transactions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fintrack/fintrack/backend/go-services/internal/models"
)

// ErrNotFound is returned when a transaction does not exist or belongs to a
// different user; the two cases are deliberately not distinguished.
var ErrNotFound = errors.New("transaction not found")

// Repository defines persistence operations for transactions
type Repository interface {
	Create(ctx context.Context, tx *models.Transaction) (int64, error)
	ListByUser(ctx context.Context, userID int64) ([]models.Transaction, error)
	GetByID(ctx context.Context, userID, id int64) (*models.Transaction, error)
	Delete(ctx context.Context, userID, id int64) error
	SetReceiptKey(ctx context.Context, userID, id int64, key string) error
}

// PostgresRepository implements Repository with parameterized queries.
type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, tx *models.Transaction) (int64, error) {
	const query = `INSERT INTO transactions (user_id, type, amount, category, description, transaction_date)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	var id int64
	err := r.db.QueryRowContext(ctx, query,
		tx.UserID, tx.Type, tx.Amount, tx.Category, tx.Description, tx.TransactionDate).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert transaction: %w", err)
	}
	return id, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID int64) ([]models.Transaction, error) {
	const query = `SELECT id, user_id, type, amount, category, description, receipt_key, transaction_date, created_at
		FROM transactions WHERE user_id = $1 ORDER BY transaction_date DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("select transactions: %w", err)
	}
	defer rows.Close()

	var out []models.Transaction
	for rows.Next() {
		var t models.Transaction
		if err := rows.Scan(&t.ID, &t.UserID, &t.Type, &t.Amount, &t.Category,
			&t.Description, &t.ReceiptKey, &t.TransactionDate, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return out, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, userID, id int64) (*models.Transaction, error) {
	const query = `SELECT id, user_id, type, amount, category, description, receipt_key, transaction_date, created_at
		FROM transactions WHERE id = $1 AND user_id = $2`
	var t models.Transaction
	err := r.db.QueryRowContext(ctx, query, id, userID).Scan(&t.ID, &t.UserID, &t.Type, &t.Amount,
		&t.Category, &t.Description, &t.ReceiptKey, &t.TransactionDate, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("select transaction: %w", err)
	}
	return &t, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) SetReceiptKey(ctx context.Context, userID, id int64, key string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE transactions SET receipt_key = $1 WHERE id = $2 AND user_id = $3`, key, id, userID)
	if err != nil {
		return fmt.Errorf("update receipt key: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update receipt key: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
