package goals

import (
	"context"

	"github.com/fintrack/fintrack/backend/go-services/internal/models"
)

// ValidationError describes rejected goal input.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// Service encapsulates savings-goal business logic
type Service struct {
	repo Repository
}

func NewService(r Repository) *Service {
	return &Service{repo: r}
}

func validate(g *models.Goal) error {
	if g.GoalName == "" {
		return &ValidationError{Reason: "goal name is required"}
	}
	if g.TargetAmount <= 0 {
		return &ValidationError{Reason: "target amount must be positive"}
	}
	if g.CurrentSavings < 0 {
		return &ValidationError{Reason: "current savings cannot be negative"}
	}
	return nil
}

func (s *Service) Add(ctx context.Context, userID int64, g *models.Goal) (int64, error) {
	if err := validate(g); err != nil {
		return 0, err
	}
	g.UserID = userID
	return s.repo.Create(ctx, g)
}

func (s *Service) List(ctx context.Context, userID int64) ([]models.Goal, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *Service) Update(ctx context.Context, userID, id int64, g *models.Goal) error {
	if err := validate(g); err != nil {
		return err
	}
	g.ID = id
	g.UserID = userID
	return s.repo.Update(ctx, g)
}

func (s *Service) Delete(ctx context.Context, userID, id int64) error {
	return s.repo.Delete(ctx, userID, id)
}
