package models

import "time"

// Transaction types accepted by the API and enforced by the schema.
const (
	TransactionIncome  = "income"
	TransactionExpense = "expense"
)

// Transaction is a single income or expense entry.
type Transaction struct {
	ID              int64     `json:"id"`
	UserID          int64     `json:"userId"`
	Type            string    `json:"type"`
	Amount          float64   `json:"amount"`
	Category        string    `json:"category"`
	Description     string    `json:"description,omitempty"`
	ReceiptKey      string    `json:"receiptKey,omitempty"`
	TransactionDate time.Time `json:"transactionDate"`
	CreatedAt       time.Time `json:"createdAt"`
}
