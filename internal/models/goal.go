package models

import "time"

// Goal is a savings target with running progress.
type Goal struct {
	ID             int64     `json:"id"`
	UserID         int64     `json:"userId"`
	GoalName       string    `json:"goalName"`
	TargetAmount   float64   `json:"targetAmount"`
	CurrentSavings float64   `json:"currentSavings"`
	TargetDate     time.Time `json:"targetDate"`
	CreatedAt      time.Time `json:"createdAt"`
}
