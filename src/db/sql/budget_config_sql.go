package db

import (
	"context"

	"budget-planner/src/models"
)

const budgetConfigColumns = `id, user_id, month, year, category, target_amount::text, type, created_at, updated_at`

func scanBudgetConfig(row interface{ Scan(...any) error }) (models.BudgetConfig, error) {
	var c models.BudgetConfig
	var typ string
	err := row.Scan(&c.ID, &c.UserID, &c.Month, &c.Year, &c.Category, &c.TargetAmount, &typ, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return models.BudgetConfig{}, err
	}
	c.Type = models.TransactionType(typ)
	return c, nil
}

func listBudgetConfigs(ctx context.Context, q querier, userID int64, month, year int) ([]models.BudgetConfig, error) {
	query := `
		SELECT ` + budgetConfigColumns + `
		FROM budget_configs
		WHERE user_id = $1 AND month = $2 AND year = $3
		ORDER BY type ASC, category ASC
	`
	rows, err := q.Query(ctx, query, userID, month, year)
	if err != nil {
		return nil, mapError(err, "budget configs")
	}
	defer rows.Close()

	configs := []models.BudgetConfig{}
	for rows.Next() {
		c, err := scanBudgetConfig(rows)
		if err != nil {
			return nil, err
		}
		configs = append(configs, c)
	}
	return configs, rows.Err()
}

func insertBudgetConfig(ctx context.Context, q querier, c models.BudgetConfig) (models.BudgetConfig, error) {
	query := `
		INSERT INTO budget_configs (user_id, month, year, category, target_amount, type)
		VALUES ($1, $2, $3, $4, $5::numeric, $6)
		RETURNING ` + budgetConfigColumns
	created, err := scanBudgetConfig(q.QueryRow(ctx, query,
		c.UserID, c.Month, c.Year, c.Category, c.TargetAmount, string(c.Type),
	))
	if err != nil {
		return models.BudgetConfig{}, mapError(err, "budget config")
	}
	return created, nil
}

// ListBudgetConfigs returns one month of configs ordered by type then category.
func (s *Store) ListBudgetConfigs(ctx context.Context, userID int64, month, year int) ([]models.BudgetConfig, error) {
	return listBudgetConfigs(ctx, s.pool, userID, month, year)
}

func (s *Store) CreateBudgetConfig(ctx context.Context, c models.BudgetConfig) (models.BudgetConfig, error) {
	return insertBudgetConfig(ctx, s.pool, c)
}

func (s *Store) UpdateBudgetConfigTarget(ctx context.Context, userID, id int64, target string) (models.BudgetConfig, error) {
	query := `
		UPDATE budget_configs
		SET target_amount = $1::numeric, updated_at = NOW()
		WHERE id = $2 AND user_id = $3
		RETURNING ` + budgetConfigColumns
	c, err := scanBudgetConfig(s.pool.QueryRow(ctx, query, target, id, userID))
	if err != nil {
		return models.BudgetConfig{}, mapError(err, "budget config")
	}
	return c, nil
}

func (s *Store) DeleteBudgetConfig(ctx context.Context, userID, id int64) (models.BudgetConfig, error) {
	query := `DELETE FROM budget_configs WHERE id = $1 AND user_id = $2 RETURNING ` + budgetConfigColumns
	c, err := scanBudgetConfig(s.pool.QueryRow(ctx, query, id, userID))
	if err != nil {
		return models.BudgetConfig{}, mapError(err, "budget config")
	}
	return c, nil
}

// budgetConfigFor is used under the settlement lock.
func budgetConfigFor(ctx context.Context, q querier, userID int64, month, year int, t models.TransactionType, category string) (models.BudgetConfig, error) {
	query := `
		SELECT ` + budgetConfigColumns + `
		FROM budget_configs
		WHERE user_id = $1 AND month = $2 AND year = $3 AND type = $4 AND category = $5
	`
	c, err := scanBudgetConfig(q.QueryRow(ctx, query, userID, month, year, string(t), category))
	if err != nil {
		return models.BudgetConfig{}, mapError(err, "budget config")
	}
	return c, nil
}
