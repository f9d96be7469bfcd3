package budget

import (
	"testing"

	"budget-planner/src/models"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestTotals(t *testing.T) {
	totals := ComputeTotals(marchTransactions(), marchConfigs())

	cases := []struct {
		name string
		got  decimal.Decimal
		want string
	}{
		{"income", totals.Income, "9500"},
		{"spent", totals.Spent, "268"},
		{"budget", totals.Budget, "10600"},
		{"remaining budget", totals.RemainingBudget, "10332"},
		{"spending", totals.Spending, "3073"},
		{"remaining spending", totals.RemainingSpending, "6427"},
	}
	for _, tc := range cases {
		if !tc.got.Equal(dec(tc.want)) {
			t.Errorf("%s = %s, want %s", tc.name, tc.got, tc.want)
		}
	}
}

func TestTotalSpendingPartitionsByType(t *testing.T) {
	txs := marchTransactions()
	sum := decimal.Zero
	for _, typ := range []models.TransactionType{models.Bill, models.Expense, models.Debt, models.Saving} {
		sum = sum.Add(ActualByType(txs, typ))
	}
	if !sum.Equal(TotalSpending(txs)) {
		t.Fatalf("bucket sum %s != total spending %s", sum, TotalSpending(txs))
	}
}

func TestRemainingNeverNegative(t *testing.T) {
	cases := []struct{ a, b string }{
		{"100", "50"},
		{"50", "100"},
		{"0", "0"},
		{"0", "0.01"},
	}
	for _, tc := range cases {
		if RemainingBudget(dec(tc.a), dec(tc.b)).IsNegative() {
			t.Errorf("RemainingBudget(%s, %s) negative", tc.a, tc.b)
		}
		if RemainingSpending(dec(tc.a), dec(tc.b)).IsNegative() {
			t.Errorf("RemainingSpending(%s, %s) negative", tc.a, tc.b)
		}
	}
	if got := RemainingBudget(dec("50"), dec("100")); !got.IsZero() {
		t.Fatalf("overspending should floor at zero, got %s", got)
	}
}

func TestMalformedAmountsContributeZero(t *testing.T) {
	txs := []models.Transaction{
		tx("a", 1, models.Expense, "Fuel", "40"),
		tx("b", 2, models.Expense, "Fuel", "not-a-number"),
	}
	if got := TotalSpent(txs); !got.Equal(dec("40")) {
		t.Fatalf("expected 40, got %s", got)
	}
}

func TestCategoryLinesJoin(t *testing.T) {
	lines := CategoryLines(marchConfigs(), marchTransactions(), models.Expense)
	if len(lines) != 2 {
		t.Fatalf("expected 2 expense lines, got %d", len(lines))
	}
	groceries := lines[0]
	if groceries.Category != "Groceries" || !groceries.Actual.Equal(dec("175")) {
		t.Fatalf("unexpected groceries line: %+v", groceries)
	}
	if groceries.Met() {
		t.Fatal("groceries should not be met")
	}
	if groceries.FirstTransactionID != "t13" {
		t.Fatalf("expected first transaction t13, got %s", groceries.FirstTransactionID)
	}
	if groceries.Earliest == nil || groceries.Earliest.Day() != 2 {
		t.Fatalf("expected earliest on the 2nd, got %v", groceries.Earliest)
	}
	for _, l := range lines {
		if l.Category == "Gas Station" {
			t.Fatal("unconfigured category must not produce a line")
		}
	}
	if !TotalSpent(marchTransactions()).Equal(dec("268")) {
		t.Fatal("unconfigured category must still count towards totals")
	}
}

func TestCategoryLinesExactMatch(t *testing.T) {
	configs := []models.BudgetConfig{cfg(models.Bill, "Internet", "120")}
	txs := []models.Transaction{
		tx("a", 1, models.Bill, "internet", "65"),
		tx("b", 1, models.Bill, "Internet ", "10"),
		tx("c", 1, models.Expense, "Internet", "5"),
	}
	lines := CategoryLines(configs, txs, models.Bill)
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	if !lines[0].Actual.IsZero() || lines[0].Earliest != nil {
		t.Fatalf("expected no matches, got %+v", lines[0])
	}
}

func TestMet(t *testing.T) {
	cases := []struct {
		target, actual string
		met            bool
	}{
		{"120", "65", false},
		{"120", "120", true},
		{"120", "150", true},
		{"0", "0", true},
	}
	for _, tc := range cases {
		l := CategoryLine{Target: dec(tc.target), Actual: dec(tc.actual)}
		if l.Met() != tc.met {
			t.Errorf("target %s actual %s: met = %v, want %v", tc.target, tc.actual, l.Met(), tc.met)
		}
	}
}

// Every kind must be classified explicitly so a new kind cannot slip through
// the aggregates unnoticed.
func TestEveryTypeClassified(t *testing.T) {
	for _, typ := range models.TransactionTypes {
		_, bucketed := Bucket(typ)
		if bucketed != IsOutflow(typ) {
			t.Errorf("%s: bucket and outflow classification disagree", typ)
		}
		if typ != models.Income && !bucketed {
			t.Errorf("%s has no spending bucket", typ)
		}
	}
}
