package transactions

import (
	"context"
	"time"

	"github.com/fintrack/fintrack/backend/go-services/internal/models"
)

// ValidationError describes rejected transaction input.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// Service encapsulates transaction business logic
type Service struct {
	repo Repository
}

func NewService(r Repository) *Service {
	return &Service{repo: r}
}

// Add validates and records a transaction for the given user. A zero
// transaction date defaults to today.
func (s *Service) Add(ctx context.Context, userID int64, t *models.Transaction) (int64, error) {
	if t.Type != models.TransactionIncome && t.Type != models.TransactionExpense {
		return 0, &ValidationError{Reason: "type must be income or expense"}
	}
	if t.Amount <= 0 {
		return 0, &ValidationError{Reason: "amount must be positive"}
	}
	if t.Category == "" {
		return 0, &ValidationError{Reason: "category is required"}
	}
	if t.TransactionDate.IsZero() {
		t.TransactionDate = time.Now().UTC().Truncate(24 * time.Hour)
	}
	t.UserID = userID
	return s.repo.Create(ctx, t)
}

func (s *Service) List(ctx context.Context, userID int64) ([]models.Transaction, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *Service) Get(ctx context.Context, userID, id int64) (*models.Transaction, error) {
	return s.repo.GetByID(ctx, userID, id)
}

func (s *Service) Delete(ctx context.Context, userID, id int64) error {
	return s.repo.Delete(ctx, userID, id)
}

// AttachReceipt records the object-store key of an uploaded receipt.
func (s *Service) AttachReceipt(ctx context.Context, userID, id int64, key string) error {
	return s.repo.SetReceiptKey(ctx, userID, id, key)
}
