package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/fintrack/fintrack/backend/go-services/internal/models"
)

// Repository defines persistence operations for users
type Repository interface {
	Create(ctx context.Context, u *models.User) (int64, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

// PostgresRepository implements Repository with parameterized queries.
type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// uniqueViolation is the Postgres SQLSTATE for unique-index conflicts.
const uniqueViolation = "23505"

// Create inserts the user and returns the assigned id. A unique-index
// conflict on email is translated to ErrDuplicateEmail; the index is the
// authoritative guard against concurrent registrations.
func (r *PostgresRepository) Create(ctx context.Context, u *models.User) (int64, error) {
	const query = `INSERT INTO users (name, email, password) VALUES ($1, $2, $3) RETURNING id`
	var id int64
	if err := r.db.QueryRowContext(ctx, query, u.Name, u.Email, u.Password).Scan(&id); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return 0, ErrDuplicateEmail
		}
		return 0, fmt.Errorf("insert user: %w", err)
	}
	return id, nil
}

// GetByEmail loads a user by exact email match. Returns (nil, nil) when absent.
func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	const query = `SELECT id, name, email, password, created_at FROM users WHERE email = $1`
	var u models.User
	err := r.db.QueryRowContext(ctx, query, email).Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select user by email: %w", err)
	}
	return &u, nil
}

// GetByID loads a user by id. Returns (nil, nil) when absent.
func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	const query = `SELECT id, name, email, password, created_at FROM users WHERE id = $1`
	var u models.User
	err := r.db.QueryRowContext(ctx, query, id).Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select user by id: %w", err)
	}
	return &u, nil
}
