package users

import (
	"context"
	"fmt"
	"regexp"

	"github.com/fintrack/fintrack/backend/go-services/internal/models"
	"github.com/fintrack/fintrack/backend/go-services/internal/passwords"
	"github.com/fintrack/fintrack/backend/go-services/internal/tokens"
)

var emailShape = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const minPasswordLen = 6

// Service orchestrates registration, login and profile lookups.
type Service struct {
	repo   Repository
	tokens *tokens.Manager
}

func NewService(r Repository, tm *tokens.Manager) *Service {
	return &Service{repo: r, tokens: tm}
}

// Register validates the input, hashes the password and creates the user.
// Returns the assigned user id. The email pre-check is best effort only; a
// race between two registrations is settled by the store's unique index,
// which Create reports as the same ErrDuplicateEmail.
func (s *Service) Register(ctx context.Context, name, email, password string) (int64, error) {
	if name == "" || email == "" || password == "" {
		return 0, &ValidationError{Reason: "all fields are required"}
	}
	if !emailShape.MatchString(email) {
		return 0, &ValidationError{Reason: "invalid email format"}
	}
	if len(password) < minPasswordLen {
		return 0, &ValidationError{Reason: "password must be at least 6 characters long"}
	}

	existing, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return 0, fmt.Errorf("email pre-check: %w", err)
	}
	if existing != nil {
		return 0, ErrDuplicateEmail
	}

	hash, err := passwords.Hash(password)
	if err != nil {
		return 0, fmt.Errorf("hash password: %w", err)
	}
	return s.repo.Create(ctx, &models.User{Name: name, Email: email, Password: hash})
}

// Login checks the credentials and issues a signed token. Unknown email and
// wrong password are indistinguishable from the caller's perspective.
func (s *Service) Login(ctx context.Context, email, password string) (string, models.Summary, error) {
	if email == "" || password == "" {
		return "", models.Summary{}, &ValidationError{Reason: "email and password are required"}
	}

	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return "", models.Summary{}, fmt.Errorf("user lookup: %w", err)
	}
	if u == nil || !passwords.Verify(password, u.Password) {
		return "", models.Summary{}, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(u.ID, u.Email)
	if err != nil {
		return "", models.Summary{}, fmt.Errorf("issue token: %w", err)
	}
	return token, u.Summary(), nil
}

// Profile returns the non-sensitive summary for an already-verified identity.
func (s *Service) Profile(ctx context.Context, id int64) (models.Summary, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return models.Summary{}, fmt.Errorf("user lookup: %w", err)
	}
	if u == nil {
		return models.Summary{}, ErrNotFound
	}
	return u.Summary(), nil
}
