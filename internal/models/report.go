package models

// PeriodTotals is one aggregated report row ("2024-03" or "2024" period).
type PeriodTotals struct {
	Period   string  `json:"period"`
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
}

// MonthTotals is one row of the recent-months dashboard series.
type MonthTotals struct {
	Month    string  `json:"month"`
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
}

// FinancialSummary aggregates the current month for the dashboard header.
type FinancialSummary struct {
	Income       float64 `json:"income"`
	Expenses     float64 `json:"expenses"`
	Balance      float64 `json:"balance"`
	BudgetStatus string  `json:"budgetStatus"`
}
