package db

import (
	"context"
	"fmt"
	"time"

	"budget-planner/src/budget"
	"budget-planner/src/models"

	"github.com/jackc/pgx/v5"
)

// Settle marks one category of one month as paid. An advisory lock on the
// category is held for the whole transaction and actual is re-read under it,
// so concurrent calls for the same category write at most one entry. ok is
// false when the category was already met.
func (s *Store) Settle(ctx context.Context, userID int64, p budget.Period, t models.TransactionType, category string, now time.Time) (models.Transaction, bool, error) {
	var (
		created models.Transaction
		ok      bool
	)
	err := s.inTx(ctx, func(tx pgx.Tx) error {
		lockKey := fmt.Sprintf("settle|%d|%d|%d|%s|%s", userID, p.Year, p.Month, t, category)
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`, lockKey); err != nil {
			return fmt.Errorf("acquire settlement lock: %w", err)
		}

		cfg, err := budgetConfigFor(ctx, tx, userID, p.Month, p.Year, t, category)
		if err != nil {
			return err
		}
		txs, err := listTransactions(ctx, tx, userID, models.TransactionFilter{Month: p.Month, Year: p.Year, Type: t})
		if err != nil {
			return err
		}

		line, found := budget.FindCategoryLine([]models.BudgetConfig{cfg}, txs, t, category)
		if !found {
			return fmt.Errorf("category line missing for %s %q", t, category)
		}
		settlement, needed, err := budget.Settle(line, p, now)
		if err != nil || !needed {
			return err
		}

		settlement.UserID = userID
		created, err = insertTransaction(ctx, tx, settlement)
		if err != nil {
			return err
		}
		ok = true
		return nil
	})
	if err != nil {
		return models.Transaction{}, false, err
	}
	return created, ok, nil
}
