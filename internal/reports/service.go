package reports

import (
	"context"
	"time"

	"github.com/fintrack/fintrack/backend/go-services/internal/models"
)

// Report granularities accepted by the API.
const (
	TypeMonthly = "monthly"
	TypeYearly  = "yearly"
)

// recentMonthsLimit caps the dashboard chart series.
const recentMonthsLimit = 6

// ValidationError describes a rejected report request.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// Service wraps report aggregation queries
type Service struct {
	repo Repository
}

func NewService(r Repository) *Service {
	return &Service{repo: r}
}

// Report returns per-period income/expense totals for one year.
func (s *Service) Report(ctx context.Context, userID int64, reportType string, year int) ([]models.PeriodTotals, error) {
	if year <= 0 {
		return nil, &ValidationError{Reason: "year is required"}
	}
	switch reportType {
	case TypeMonthly:
		return s.repo.MonthlyReport(ctx, userID, year)
	case TypeYearly:
		return s.repo.YearlyReport(ctx, userID, year)
	}
	return nil, &ValidationError{Reason: "invalid report type, must be monthly or yearly"}
}

// Summary aggregates the current calendar month for the dashboard header.
func (s *Service) Summary(ctx context.Context, userID int64) (*models.FinancialSummary, error) {
	now := time.Now()
	income, expenses, err := s.repo.MonthSummary(ctx, userID, int(now.Month()), now.Year())
	if err != nil {
		return nil, err
	}
	balance := income - expenses
	status := "On Track"
	if balance < 0 {
		status = "Over Budget"
	}
	return &models.FinancialSummary{Income: income, Expenses: expenses, Balance: balance, BudgetStatus: status}, nil
}

// MonthlySeries returns the recent per-month totals for the dashboard chart.
func (s *Service) MonthlySeries(ctx context.Context, userID int64) ([]models.MonthTotals, error) {
	return s.repo.RecentMonths(ctx, userID, recentMonthsLimit)
}
