package events

import (
	"encoding/json"
	"time"

	"budget-planner/src/models"
)

type Kind string

const (
	TransactionCreated Kind = "transaction.created"
	TransactionAmended Kind = "transaction.amended"
	CategorySettled    Kind = "category.settled"
)

// TransactionMessage tells consumers that a month of a user's ledger changed.
// It carries enough to re-fetch; it is not a replica of the row.
type TransactionMessage struct {
	Kind          Kind                   `json:"kind"`
	UserID        int64                  `json:"user_id"`
	TransactionID string                 `json:"transaction_id"`
	Month         int                    `json:"month"`
	Year          int                    `json:"year"`
	Type          models.TransactionType `json:"type"`
	Category      string                 `json:"category"`
	Amount        string                 `json:"amount"`
	Timestamp     time.Time              `json:"timestamp"`
}

func NewTransactionMessage(kind Kind, t models.Transaction) *TransactionMessage {
	return &TransactionMessage{
		Kind:          kind,
		UserID:        t.UserID,
		TransactionID: t.ID,
		Month:         int(t.Date.Month()),
		Year:          t.Date.Year(),
		Type:          t.Type,
		Category:      t.Category,
		Amount:        t.Amount,
		Timestamp:     time.Now().UTC(),
	}
}

func (m *TransactionMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func TransactionMessageFromJSON(data []byte) (*TransactionMessage, error) {
	var msg TransactionMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
