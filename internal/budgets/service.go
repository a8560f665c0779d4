package budgets

import (
	"context"

	"github.com/fintrack/fintrack/backend/go-services/internal/models"
)

// ValidationError describes rejected budget input.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// Service encapsulates budget business logic
type Service struct {
	repo Repository
}

func NewService(r Repository) *Service {
	return &Service{repo: r}
}

// Add validates and records a monthly category budget.
func (s *Service) Add(ctx context.Context, userID int64, b *models.Budget) (int64, error) {
	if b.Category == "" {
		return 0, &ValidationError{Reason: "category is required"}
	}
	if b.Amount <= 0 {
		return 0, &ValidationError{Reason: "amount must be positive"}
	}
	if b.Month < 1 || b.Month > 12 {
		return 0, &ValidationError{Reason: "month must be between 1 and 12"}
	}
	if b.Year < 2000 {
		return 0, &ValidationError{Reason: "year is required"}
	}
	b.UserID = userID
	return s.repo.Create(ctx, b)
}

func (s *Service) List(ctx context.Context, userID int64, month, year int) ([]models.Budget, error) {
	return s.repo.ListByUser(ctx, userID, month, year)
}
