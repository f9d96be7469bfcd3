package models

import "time"

// BudgetConfig is the monthly target for one category of one type.
type BudgetConfig struct {
	ID           int64           `json:"id"`
	UserID       int64           `json:"user_id"`
	Month        int             `json:"month"`
	Year         int             `json:"year"`
	Category     string          `json:"category"`
	TargetAmount string          `json:"target_amount"`
	Type         TransactionType `json:"type"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
