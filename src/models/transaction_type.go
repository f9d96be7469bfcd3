package models

import (
	"fmt"
	"strings"
)

type TransactionType string

const (
	Income  TransactionType = "INCOME"
	Expense TransactionType = "EXPENSE"
	Bill    TransactionType = "BILL"
	Debt    TransactionType = "DEBT"
	Saving  TransactionType = "SAVING"
)

// TransactionTypes lists every kind in display order.
var TransactionTypes = []TransactionType{Income, Expense, Bill, Debt, Saving}

func (t TransactionType) Valid() bool {
	switch t {
	case Income, Expense, Bill, Debt, Saving:
		return true
	}
	return false
}

func ParseTransactionType(s string) (TransactionType, error) {
	t := TransactionType(s)
	if !t.Valid() {
		names := make([]string, len(TransactionTypes))
		for i, k := range TransactionTypes {
			names[i] = string(k)
		}
		return "", fmt.Errorf("type must be one of: %s", strings.Join(names, ", "))
	}
	return t, nil
}
