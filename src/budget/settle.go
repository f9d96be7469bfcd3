package budget

import (
	"errors"
	"fmt"
	"time"

	"budget-planner/src/models"
)

const (
	SettlementDescriptionPrefix = "Paid in full: "

	// day used for entries dated in a month other than the current one
	fallbackDay = 15
	minYear     = 1900
	maxYear     = 9999
)

var (
	ErrInvalidPeriod = errors.New("invalid month or year")
	ErrNotSettleable = errors.New("only BILL, DEBT and SAVING categories can be marked as paid")
)

// Period is the month being viewed.
type Period struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

func (p Period) Validate() error {
	if p.Month < 1 || p.Month > 12 || p.Year < minYear || p.Year > maxYear {
		return fmt.Errorf("%w: %d/%d", ErrInvalidPeriod, p.Month, p.Year)
	}
	return nil
}

// Start is the first day of the period.
func (p Period) Start() models.Date {
	return models.NewDate(p.Year, time.Month(p.Month), 1)
}

// End is the first day of the following period.
func (p Period) End() models.Date {
	return models.Date{Time: p.Start().AddDate(0, 1, 0)}
}

func (p Period) Contains(d models.Date) bool {
	return d.Year() == p.Year && int(d.Month()) == p.Month
}

// EntryDate picks the date for an entry created while viewing p: today when
// today falls inside p, otherwise the 15th of p.
func EntryDate(p Period, now time.Time) models.Date {
	today := models.DateOf(now)
	if p.Contains(today) {
		return today
	}
	return models.NewDate(p.Year, time.Month(p.Month), fallbackDay)
}

// Settleable reports whether a category of type t can be marked as paid.
func Settleable(t models.TransactionType) bool {
	switch t {
	case models.Bill, models.Debt, models.Saving:
		return true
	case models.Income, models.Expense:
		return false
	}
	return false
}

// Settle computes the entry that tops line up to its target. ok is false when
// the line is already met, in which case nothing should be written. The
// returned transaction has no id or owner; the store assigns both.
func Settle(line CategoryLine, p Period, now time.Time) (tx models.Transaction, ok bool, err error) {
	if !Settleable(line.Type) {
		return models.Transaction{}, false, ErrNotSettleable
	}
	if err := p.Validate(); err != nil {
		return models.Transaction{}, false, err
	}
	remainder := line.Remainder()
	if !remainder.IsPositive() {
		return models.Transaction{}, false, nil
	}
	return models.Transaction{
		Date:        EntryDate(p, now),
		Description: SettlementDescriptionPrefix + line.Category,
		Amount:      FormatAmount(remainder),
		Category:    line.Category,
		Type:        line.Type,
	}, true, nil
}
