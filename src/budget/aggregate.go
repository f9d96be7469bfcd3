package budget

import (
	"budget-planner/src/models"

	"github.com/shopspring/decimal"
)

// Bucket labels used by the spending summary and breakdown.
const (
	BucketBills    = "Bills"
	BucketExpenses = "Expenses"
	BucketDebts    = "Debts"
	BucketSavings  = "Savings"
)

// IsOutflow reports whether money of this type leaves the monthly income.
func IsOutflow(t models.TransactionType) bool {
	switch t {
	case models.Bill, models.Expense, models.Debt, models.Saving:
		return true
	case models.Income:
		return false
	}
	return false
}

// Bucket returns the coarse spending bucket for an outflow type.
func Bucket(t models.TransactionType) (string, bool) {
	switch t {
	case models.Bill:
		return BucketBills, true
	case models.Expense:
		return BucketExpenses, true
	case models.Debt:
		return BucketDebts, true
	case models.Saving:
		return BucketSavings, true
	case models.Income:
		return "", false
	}
	return "", false
}

func sumTransactions(txs []models.Transaction, keep func(models.TransactionType) bool) decimal.Decimal {
	total := decimal.Zero
	for _, t := range txs {
		if keep(t.Type) {
			total = total.Add(ParseAmount(t.Amount))
		}
	}
	return total
}

func sumTargets(configs []models.BudgetConfig, keep func(models.TransactionType) bool) decimal.Decimal {
	total := decimal.Zero
	for _, c := range configs {
		if keep(c.Type) {
			total = total.Add(ParseAmount(c.TargetAmount))
		}
	}
	return total
}

func isType(t models.TransactionType) func(models.TransactionType) bool {
	return func(other models.TransactionType) bool { return other == t }
}

func floorZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// TotalIncome sums INCOME transactions.
func TotalIncome(txs []models.Transaction) decimal.Decimal {
	return sumTransactions(txs, isType(models.Income))
}

// TotalSpent sums EXPENSE transactions only. See TotalSpending for all outflows.
func TotalSpent(txs []models.Transaction) decimal.Decimal {
	return sumTransactions(txs, isType(models.Expense))
}

// TotalBudget is the available budget: the sum of INCOME targets.
func TotalBudget(configs []models.BudgetConfig) decimal.Decimal {
	return sumTargets(configs, isType(models.Income))
}

// RemainingBudget is budget minus spent, floored at zero.
func RemainingBudget(totalBudget, totalSpent decimal.Decimal) decimal.Decimal {
	return floorZero(totalBudget.Sub(totalSpent))
}

// TotalSpending sums BILL, EXPENSE, DEBT and SAVING transactions.
func TotalSpending(txs []models.Transaction) decimal.Decimal {
	return sumTransactions(txs, IsOutflow)
}

// RemainingSpending is income minus all outflows, floored at zero.
func RemainingSpending(totalIncome, totalSpending decimal.Decimal) decimal.Decimal {
	return floorZero(totalIncome.Sub(totalSpending))
}

// ActualByType sums the transactions of one type.
func ActualByType(txs []models.Transaction, t models.TransactionType) decimal.Decimal {
	return sumTransactions(txs, isType(t))
}

// TargetByType sums the configured targets of one type.
func TargetByType(configs []models.BudgetConfig, t models.TransactionType) decimal.Decimal {
	return sumTargets(configs, isType(t))
}

// Totals are the month-level figures behind the hero cards.
type Totals struct {
	Income            decimal.Decimal
	Spent             decimal.Decimal
	Budget            decimal.Decimal
	RemainingBudget   decimal.Decimal
	Spending          decimal.Decimal
	RemainingSpending decimal.Decimal
}

// ComputeTotals derives every month-level total.
func ComputeTotals(txs []models.Transaction, configs []models.BudgetConfig) Totals {
	t := Totals{
		Income:   TotalIncome(txs),
		Spent:    TotalSpent(txs),
		Budget:   TotalBudget(configs),
		Spending: TotalSpending(txs),
	}
	t.RemainingBudget = RemainingBudget(t.Budget, t.Spent)
	t.RemainingSpending = RemainingSpending(t.Income, t.Spending)
	return t
}

// CategoryKey joins configs to transactions. Category matching is exact and
// case-sensitive.
type CategoryKey struct {
	Type     models.TransactionType
	Category string
}

// CategoryActual is what the ledger recorded for one category.
type CategoryActual struct {
	Sum            decimal.Decimal
	Earliest       models.Date
	TransactionIDs []string
}

// ActualByCategory groups transactions by (type, category). Transaction ids
// keep the order they were encountered in.
func ActualByCategory(txs []models.Transaction) map[CategoryKey]*CategoryActual {
	out := make(map[CategoryKey]*CategoryActual)
	for _, t := range txs {
		key := CategoryKey{Type: t.Type, Category: t.Category}
		a, ok := out[key]
		if !ok {
			a = &CategoryActual{Sum: decimal.Zero, Earliest: t.Date}
			out[key] = a
		}
		a.Sum = a.Sum.Add(ParseAmount(t.Amount))
		if t.Date.Before(a.Earliest.Time) {
			a.Earliest = t.Date
		}
		a.TransactionIDs = append(a.TransactionIDs, t.ID)
	}
	return out
}

// CategoryLine pairs one config with the transactions recorded against it.
type CategoryLine struct {
	Type               models.TransactionType
	Category           string
	Target             decimal.Decimal
	Actual             decimal.Decimal
	Earliest           *models.Date
	FirstTransactionID string
}

// Met is true once actual reaches target. A zero target is always met.
func (l CategoryLine) Met() bool {
	return l.Actual.GreaterThanOrEqual(l.Target)
}

// Remainder is target minus actual; zero or negative when met.
func (l CategoryLine) Remainder() decimal.Decimal {
	return l.Target.Sub(l.Actual)
}

// CategoryLines returns one line per config of type t, in config order.
// Transactions whose category has no config are not represented.
func CategoryLines(configs []models.BudgetConfig, txs []models.Transaction, t models.TransactionType) []CategoryLine {
	actuals := ActualByCategory(txs)
	var lines []CategoryLine
	for _, c := range configs {
		if c.Type != t {
			continue
		}
		line := CategoryLine{
			Type:     t,
			Category: c.Category,
			Target:   ParseAmount(c.TargetAmount),
			Actual:   decimal.Zero,
		}
		if a, ok := actuals[CategoryKey{Type: t, Category: c.Category}]; ok {
			line.Actual = a.Sum
			earliest := a.Earliest
			line.Earliest = &earliest
			if len(a.TransactionIDs) > 0 {
				line.FirstTransactionID = a.TransactionIDs[0]
			}
		}
		lines = append(lines, line)
	}
	return lines
}

// FindCategoryLine builds the line for a single (type, category) pair.
func FindCategoryLine(configs []models.BudgetConfig, txs []models.Transaction, t models.TransactionType, category string) (CategoryLine, bool) {
	for _, l := range CategoryLines(configs, txs, t) {
		if l.Category == category {
			return l, true
		}
	}
	return CategoryLine{}, false
}
