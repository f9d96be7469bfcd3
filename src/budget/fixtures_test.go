package budget

import (
	"fmt"
	"time"

	"budget-planner/src/models"
)

var march = Period{Month: 3, Year: 2025}

func tx(id string, day int, typ models.TransactionType, category, amount string) models.Transaction {
	return models.Transaction{
		ID:          id,
		UserID:      1,
		Date:        models.NewDate(2025, time.March, day),
		Description: fmt.Sprintf("%s %s", category, id),
		Amount:      amount,
		Category:    category,
		Type:        typ,
	}
}

func cfg(typ models.TransactionType, category, target string) models.BudgetConfig {
	return models.BudgetConfig{
		UserID:       1,
		Month:        3,
		Year:         2025,
		Category:     category,
		TargetAmount: target,
		Type:         typ,
	}
}

// marchConfigs and marchTransactions mirror the demo month shipped with the seed command.
func marchConfigs() []models.BudgetConfig {
	return []models.BudgetConfig{
		cfg(models.Income, "Salary", "6000"),
		cfg(models.Income, "Freelance", "3000"),
		cfg(models.Income, "Etsy", "1600"),
		cfg(models.Bill, "Water Supply", "50"),
		cfg(models.Bill, "Electricity", "100"),
		cfg(models.Bill, "Cellphone", "100"),
		cfg(models.Bill, "Internet", "120"),
		cfg(models.Debt, "Car Installment", "1000"),
		cfg(models.Debt, "Phone Installment", "1000"),
		cfg(models.Debt, "Credit Card", "1000"),
		cfg(models.Saving, "Account A", "800"),
		cfg(models.Saving, "Account B", "100"),
		cfg(models.Expense, "Groceries", "600"),
		cfg(models.Expense, "Dining Out", "400"),
	}
}

func marchTransactions() []models.Transaction {
	return []models.Transaction{
		tx("t1", 1, models.Income, "Salary", "5800"),
		tx("t2", 5, models.Income, "Freelance", "1800"),
		tx("t3", 10, models.Income, "Etsy", "1900"),
		tx("t4", 10, models.Bill, "Water Supply", "10"),
		tx("t5", 10, models.Bill, "Electricity", "80"),
		tx("t6", 25, models.Bill, "Cellphone", "50"),
		tx("t7", 15, models.Bill, "Internet", "65"),
		tx("t8", 10, models.Debt, "Car Installment", "1000"),
		tx("t9", 11, models.Debt, "Phone Installment", "200"),
		tx("t10", 20, models.Debt, "Credit Card", "500"),
		tx("t11", 1, models.Saving, "Account A", "800"),
		tx("t12", 1, models.Saving, "Account B", "100"),
		tx("t13", 2, models.Expense, "Groceries", "80"),
		tx("t14", 10, models.Expense, "Dining Out", "38"),
		tx("t15", 22, models.Expense, "Groceries", "95"),
		tx("t16", 15, models.Expense, "Gas Station", "55"),
	}
}
