package db

import (
	"context"
	"fmt"

	"budget-planner/src/budget"
	"budget-planner/src/models"

	"github.com/jackc/pgx/v5"
)

// ReplaceMonth deletes the owner's transactions and configs for p and writes
// the given ones in their place, all in one transaction.
func (s *Store) ReplaceMonth(ctx context.Context, userID int64, p budget.Period, configs []models.BudgetConfig, txs []models.Transaction) error {
	return s.inTx(ctx, func(tx pgx.Tx) error {
		start, end := p.Start(), p.End()
		if _, err := tx.Exec(ctx,
			`DELETE FROM transactions WHERE user_id = $1 AND date >= $2 AND date < $3`,
			userID, start.Time, end.Time,
		); err != nil {
			return fmt.Errorf("clear transactions: %w", err)
		}
		if _, err := tx.Exec(ctx,
			`DELETE FROM budget_configs WHERE user_id = $1 AND month = $2 AND year = $3`,
			userID, p.Month, p.Year,
		); err != nil {
			return fmt.Errorf("clear budget configs: %w", err)
		}

		for _, c := range configs {
			c.UserID, c.Month, c.Year = userID, p.Month, p.Year
			if _, err := insertBudgetConfig(ctx, tx, c); err != nil {
				return err
			}
		}
		for _, t := range txs {
			t.UserID = userID
			if _, err := insertTransaction(ctx, tx, t); err != nil {
				return err
			}
		}
		return nil
	})
}
