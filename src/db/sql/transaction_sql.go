package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"budget-planner/src/apperr"
	"budget-planner/src/models"

	"github.com/google/uuid"
)

const transactionColumns = `id::text, user_id, date, description, amount::text, category, type, created_at`

func scanTransaction(row interface{ Scan(...any) error }) (models.Transaction, error) {
	var t models.Transaction
	var date time.Time
	var typ string
	err := row.Scan(&t.ID, &t.UserID, &date, &t.Description, &t.Amount, &t.Category, &typ, &t.CreatedAt)
	if err != nil {
		return models.Transaction{}, err
	}
	t.Date = models.DateOf(date)
	t.Type = models.TransactionType(typ)
	return t, nil
}

func listTransactions(ctx context.Context, q querier, userID int64, f models.TransactionFilter) ([]models.Transaction, error) {
	where := []string{"user_id = $1"}
	args := []any{userID}
	if f.Month != 0 && f.Year != 0 {
		start := models.NewDate(f.Year, time.Month(f.Month), 1)
		args = append(args, start.Time, start.AddDate(0, 1, 0))
		where = append(where, fmt.Sprintf("date >= $%d AND date < $%d", len(args)-1, len(args)))
	}
	if f.Type != "" {
		args = append(args, string(f.Type))
		where = append(where, fmt.Sprintf("type = $%d", len(args)))
	}

	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE ` +
		strings.Join(where, " AND ") + ` ORDER BY date ASC, created_at ASC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, "transactions")
	}
	defer rows.Close()

	txs := []models.Transaction{}
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txs = append(txs, t)
	}
	return txs, rows.Err()
}

func insertTransaction(ctx context.Context, q querier, t models.Transaction) (models.Transaction, error) {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	query := `
		INSERT INTO transactions (id, user_id, date, description, amount, category, type)
		VALUES ($1, $2, $3, $4, $5::numeric, $6, $7)
		RETURNING ` + transactionColumns
	created, err := scanTransaction(q.QueryRow(ctx, query,
		t.ID, t.UserID, t.Date.Time, t.Description, t.Amount, t.Category, string(t.Type),
	))
	if err != nil {
		return models.Transaction{}, mapError(err, "transaction")
	}
	return created, nil
}

// ListTransactions returns the owner's transactions in date order. Month and
// year narrow the range only when both are set.
func (s *Store) ListTransactions(ctx context.Context, userID int64, f models.TransactionFilter) ([]models.Transaction, error) {
	return listTransactions(ctx, s.pool, userID, f)
}

func (s *Store) CreateTransaction(ctx context.Context, t models.Transaction) (models.Transaction, error) {
	return insertTransaction(ctx, s.pool, t)
}

// UpdateTransactionAmount changes the amount of a transaction the owner holds.
// A transaction owned by someone else reads as not found.
func (s *Store) UpdateTransactionAmount(ctx context.Context, userID int64, id, amount string) (models.Transaction, error) {
	if _, err := uuid.Parse(id); err != nil {
		return models.Transaction{}, apperr.NotFound("transaction")
	}
	query := `
		UPDATE transactions SET amount = $1::numeric
		WHERE id = $2 AND user_id = $3
		RETURNING ` + transactionColumns
	t, err := scanTransaction(s.pool.QueryRow(ctx, query, amount, id, userID))
	if err != nil {
		return models.Transaction{}, mapError(err, "transaction")
	}
	return t, nil
}
