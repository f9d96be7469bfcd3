// Package seed loads the demo month into a user's account.
package seed

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"budget-planner/src/budget"
	"budget-planner/src/models"

	"gopkg.in/yaml.v3"
)

//go:embed march.yaml
var marchYAML []byte

type ConfigEntry struct {
	Category string `yaml:"category"`
	Target   string `yaml:"target"`
	Type     string `yaml:"type"`
}

type TransactionEntry struct {
	Day         int    `yaml:"day"`
	Description string `yaml:"description"`
	Amount      string `yaml:"amount"`
	Category    string `yaml:"category"`
	Type        string `yaml:"type"`
}

type Dataset struct {
	Configs      []ConfigEntry      `yaml:"configs"`
	Transactions []TransactionEntry `yaml:"transactions"`
}

// Default is the built-in demo month.
func Default() (Dataset, error) {
	return Parse(marchYAML)
}

func Parse(data []byte) (Dataset, error) {
	var d Dataset
	if err := yaml.Unmarshal(data, &d); err != nil {
		return Dataset{}, fmt.Errorf("parse seed data: %w", err)
	}
	return d, nil
}

// Build places the dataset in period p. Amounts are normalized to two
// decimals; any entry with a bad type, amount or day is rejected.
func (d Dataset) Build(p budget.Period) ([]models.BudgetConfig, []models.Transaction, error) {
	if err := p.Validate(); err != nil {
		return nil, nil, err
	}
	lastDay := p.End().AddDate(0, 0, -1).Day()

	configs := make([]models.BudgetConfig, 0, len(d.Configs))
	for i, c := range d.Configs {
		typ, err := models.ParseTransactionType(c.Type)
		if err != nil {
			return nil, nil, fmt.Errorf("config %d: %w", i, err)
		}
		target, err := budget.ParseAmountStrict(c.Target)
		if err != nil || target.IsNegative() {
			return nil, nil, fmt.Errorf("config %d: invalid target %q", i, c.Target)
		}
		configs = append(configs, models.BudgetConfig{
			Month:        p.Month,
			Year:         p.Year,
			Category:     c.Category,
			TargetAmount: budget.FormatAmount(target),
			Type:         typ,
		})
	}

	txs := make([]models.Transaction, 0, len(d.Transactions))
	for i, t := range d.Transactions {
		typ, err := models.ParseTransactionType(t.Type)
		if err != nil {
			return nil, nil, fmt.Errorf("transaction %d: %w", i, err)
		}
		amount, err := budget.ParseAmountStrict(t.Amount)
		if err != nil || amount.IsNegative() {
			return nil, nil, fmt.Errorf("transaction %d: invalid amount %q", i, t.Amount)
		}
		if t.Day < 1 || t.Day > lastDay {
			return nil, nil, fmt.Errorf("transaction %d: day %d outside %d/%d", i, t.Day, p.Month, p.Year)
		}
		txs = append(txs, models.Transaction{
			Date:        models.NewDate(p.Year, time.Month(p.Month), t.Day),
			Description: t.Description,
			Amount:      budget.FormatAmount(amount),
			Category:    t.Category,
			Type:        typ,
		})
	}
	return configs, txs, nil
}

// MonthReplacer is the store operation seeding needs.
type MonthReplacer interface {
	ReplaceMonth(ctx context.Context, userID int64, p budget.Period, configs []models.BudgetConfig, txs []models.Transaction) error
}

// Run clears p for the user and writes the dataset in its place.
func Run(ctx context.Context, store MonthReplacer, userID int64, p budget.Period, d Dataset) (int, int, error) {
	configs, txs, err := d.Build(p)
	if err != nil {
		return 0, 0, err
	}
	if err := store.ReplaceMonth(ctx, userID, p, configs, txs); err != nil {
		return 0, 0, fmt.Errorf("replace month: %w", err)
	}
	return len(configs), len(txs), nil
}
