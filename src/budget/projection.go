package budget

import (
	"fmt"
	"sort"

	"budget-planner/src/models"

	"github.com/shopspring/decimal"
)

const (
	dueLayout    = "Jan 2"
	ledgerLayout = "Jan 02"
)

var hundred = decimal.NewFromInt(100)

// TableRow is one category of a bills, debts or savings table.
type TableRow struct {
	ID            string                 `json:"id"`
	Label         string                 `json:"label"`
	Due           string                 `json:"due,omitempty"`
	Budget        string                 `json:"budget"`
	Actual        string                 `json:"actual"`
	Checked       bool                   `json:"checked"`
	TransactionID string                 `json:"transaction_id,omitempty"`
	Type          models.TransactionType `json:"type"`
}

type Table struct {
	Title       string     `json:"title"`
	Rows        []TableRow `json:"rows"`
	BudgetTotal string     `json:"budget_total"`
	ActualTotal string     `json:"actual_total"`
}

// BuildTable lays out the configured categories of type t. Bills and debts
// carry a due label taken from the earliest transaction of the category.
func BuildTable(title string, configs []models.BudgetConfig, txs []models.Transaction, t models.TransactionType) Table {
	hasDue := t == models.Bill || t == models.Debt
	lines := CategoryLines(configs, txs, t)

	table := Table{Title: title, Rows: make([]TableRow, 0, len(lines))}
	budgetTotal, actualTotal := decimal.Zero, decimal.Zero
	for i, l := range lines {
		row := TableRow{
			ID:            fmt.Sprintf("%s-%s-%d", t, l.Category, i),
			Label:         l.Category,
			Budget:        FormatAmount(l.Target),
			Actual:        FormatAmount(l.Actual),
			Checked:       l.Met(),
			TransactionID: l.FirstTransactionID,
			Type:          t,
		}
		if hasDue && l.Earliest != nil {
			row.Due = l.Earliest.Format(dueLayout)
		}
		table.Rows = append(table.Rows, row)
		budgetTotal = budgetTotal.Add(l.Target)
		actualTotal = actualTotal.Add(l.Actual)
	}
	table.BudgetTotal = FormatAmount(budgetTotal)
	table.ActualTotal = FormatAmount(actualTotal)
	return table
}

// Percent is actual as a share of target, 0 when target is not positive.
// It is not capped at 100.
func Percent(actual, target decimal.Decimal) decimal.Decimal {
	if !target.IsPositive() {
		return decimal.Zero
	}
	return actual.Div(target).Mul(hundred)
}

type SummaryRow struct {
	Label   string  `json:"label"`
	Budget  string  `json:"budget"`
	Actual  string  `json:"actual"`
	Percent float64 `json:"percent"`
}

type Summary struct {
	Title string       `json:"title"`
	Rows  []SummaryRow `json:"rows"`
	Total SummaryRow   `json:"total"`
}

func summaryRow(label string, target, actual decimal.Decimal) SummaryRow {
	return SummaryRow{
		Label:   label,
		Budget:  FormatAmount(target),
		Actual:  FormatAmount(actual),
		Percent: Percent(actual, target).Round(2).InexactFloat64(),
	}
}

type summaryInput struct {
	label          string
	target, actual decimal.Decimal
}

func buildSummary(title string, inputs []summaryInput) Summary {
	s := Summary{Title: title, Rows: make([]SummaryRow, 0, len(inputs))}
	targetTotal, actualTotal := decimal.Zero, decimal.Zero
	for _, in := range inputs {
		s.Rows = append(s.Rows, summaryRow(in.label, in.target, in.actual))
		targetTotal = targetTotal.Add(in.target)
		actualTotal = actualTotal.Add(in.actual)
	}
	s.Total = summaryRow("Total", targetTotal, actualTotal)
	return s
}

// IncomeSummary has one row per income config.
func IncomeSummary(configs []models.BudgetConfig, txs []models.Transaction) Summary {
	var inputs []summaryInput
	for _, l := range CategoryLines(configs, txs, models.Income) {
		inputs = append(inputs, summaryInput{label: l.Category, target: l.Target, actual: l.Actual})
	}
	return buildSummary("Income", inputs)
}

// SpendingSummary has the four outflow buckets in a fixed order.
func SpendingSummary(configs []models.BudgetConfig, txs []models.Transaction) Summary {
	order := []models.TransactionType{models.Bill, models.Expense, models.Saving, models.Debt}
	inputs := make([]summaryInput, 0, len(order))
	for _, t := range order {
		label, _ := Bucket(t)
		inputs = append(inputs, summaryInput{
			label:  label,
			target: TargetByType(configs, t),
			actual: ActualByType(txs, t),
		})
	}
	return buildSummary("Spending", inputs)
}

// Slice is one segment of a category-share chart.
type Slice struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// groupSlices sums amounts by the name returned from group, keeping the order
// in which names first appear. Transactions for which group returns false are
// skipped.
func groupSlices(txs []models.Transaction, group func(models.Transaction) (string, bool)) []Slice {
	var order []string
	sums := make(map[string]decimal.Decimal)
	for _, t := range txs {
		name, ok := group(t)
		if !ok {
			continue
		}
		if _, seen := sums[name]; !seen {
			order = append(order, name)
			sums[name] = decimal.Zero
		}
		sums[name] = sums[name].Add(ParseAmount(t.Amount))
	}
	slices := make([]Slice, 0, len(order))
	for _, name := range order {
		slices = append(slices, Slice{Name: name, Value: FormatAmount(sums[name])})
	}
	return slices
}

// IncomeBreakdown groups income by category.
func IncomeBreakdown(txs []models.Transaction) []Slice {
	return groupSlices(txs, func(t models.Transaction) (string, bool) {
		return t.Category, t.Type == models.Income
	})
}

// SpendingBreakdown groups outflows by bucket rather than by category.
func SpendingBreakdown(txs []models.Transaction) []Slice {
	return groupSlices(txs, func(t models.Transaction) (string, bool) {
		return Bucket(t.Type)
	})
}

type LedgerRow struct {
	ID          string                 `json:"id"`
	Date        string                 `json:"date"`
	Category    string                 `json:"category"`
	Description string                 `json:"description"`
	Amount      string                 `json:"amount"`
	Type        models.TransactionType `json:"type"`
}

// Ledger lists every outflow, newest first.
func Ledger(txs []models.Transaction) []LedgerRow {
	outflows := make([]models.Transaction, 0, len(txs))
	for _, t := range txs {
		if IsOutflow(t.Type) {
			outflows = append(outflows, t)
		}
	}
	sort.SliceStable(outflows, func(i, j int) bool {
		return outflows[i].Date.After(outflows[j].Date.Time)
	})
	rows := make([]LedgerRow, 0, len(outflows))
	for _, t := range outflows {
		rows = append(rows, LedgerRow{
			ID:          t.ID,
			Date:        t.Date.Format(ledgerLayout),
			Category:    t.Category,
			Description: t.Description,
			Amount:      FormatAmount(ParseAmount(t.Amount)),
			Type:        t.Type,
		})
	}
	return rows
}

type HeroCards struct {
	AvailableBudget   string `json:"available_budget"`
	AvailableSpending string `json:"available_spending"`
	RemainingBudget   string `json:"remaining_budget"`
	RemainingSpending string `json:"remaining_spending"`
}

type TotalsView struct {
	Income            string `json:"total_income"`
	Spent             string `json:"total_spent"`
	Budget            string `json:"total_budget"`
	RemainingBudget   string `json:"remaining_budget"`
	Spending          string `json:"total_spending"`
	RemainingSpending string `json:"remaining_spending"`
}

// Dashboard is everything the month view renders.
type Dashboard struct {
	Period            Period      `json:"period"`
	Cards             HeroCards   `json:"cards"`
	Totals            TotalsView  `json:"totals"`
	IncomeBreakdown   []Slice     `json:"income_breakdown"`
	SpendingBreakdown []Slice     `json:"spending_breakdown"`
	IncomeSummary     Summary     `json:"income_summary"`
	SpendingSummary   Summary     `json:"spending_summary"`
	Bills             Table       `json:"bills"`
	Debts             Table       `json:"debts"`
	Savings           Table       `json:"savings"`
	Ledger            []LedgerRow `json:"ledger"`
}

// BuildDashboard projects one month of data. txs and configs must already be
// scoped to a single owner and to p.
func BuildDashboard(p Period, txs []models.Transaction, configs []models.BudgetConfig) Dashboard {
	totals := ComputeTotals(txs, configs)
	return Dashboard{
		Period: p,
		Cards: HeroCards{
			AvailableBudget:   FormatAmount(totals.Budget),
			AvailableSpending: FormatAmount(totals.Income),
			RemainingBudget:   FormatAmount(totals.RemainingBudget),
			RemainingSpending: FormatAmount(totals.RemainingSpending),
		},
		Totals: TotalsView{
			Income:            FormatAmount(totals.Income),
			Spent:             FormatAmount(totals.Spent),
			Budget:            FormatAmount(totals.Budget),
			RemainingBudget:   FormatAmount(totals.RemainingBudget),
			Spending:          FormatAmount(totals.Spending),
			RemainingSpending: FormatAmount(totals.RemainingSpending),
		},
		IncomeBreakdown:   IncomeBreakdown(txs),
		SpendingBreakdown: SpendingBreakdown(txs),
		IncomeSummary:     IncomeSummary(configs, txs),
		SpendingSummary:   SpendingSummary(configs, txs),
		Bills:             BuildTable("Bills", configs, txs, models.Bill),
		Debts:             BuildTable("Debts", configs, txs, models.Debt),
		Savings:           BuildTable("Savings", configs, txs, models.Saving),
		Ledger:            Ledger(txs),
	}
}
