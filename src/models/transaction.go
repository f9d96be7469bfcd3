package models

import "time"

// Transaction is one ledger entry. Amount travels as a decimal string so no
// precision is lost between the store and the client.
type Transaction struct {
	ID          string          `json:"id"`
	UserID      int64           `json:"user_id"`
	Date        Date            `json:"date"`
	Description string          `json:"description"`
	Amount      string          `json:"amount"`
	Category    string          `json:"category"`
	Type        TransactionType `json:"type"`
	CreatedAt   time.Time       `json:"created_at"`
}

// TransactionFilter scopes a transaction read. Month and Year are applied
// only when both are set.
type TransactionFilter struct {
	Month int
	Year  int
	Type  TransactionType
}
