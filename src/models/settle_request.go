package models

// SettleRequest asks for one category of one month to be marked as paid.
type SettleRequest struct {
	Month    int             `json:"month"`
	Year     int             `json:"year"`
	Type     TransactionType `json:"type"`
	Category string          `json:"category"`
}
