package util

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"budget-planner/src/budget"

	"github.com/shopspring/decimal"
)

const (
	maxCategoryLength    = 100
	maxDescriptionLength = 500
)

var (
	emailRe   = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	lowerRe   = regexp.MustCompile("[a-z]")
	upperRe   = regexp.MustCompile("[A-Z]")
	digitRe   = regexp.MustCompile("[0-9]")
	specialRe = regexp.MustCompile(`[^A-Za-z0-9]`)

	// NUMERIC(12,2)
	maxAmount = decimal.RequireFromString("9999999999.99")
)

func ValidateEmail(email string) bool {
	return emailRe.MatchString(email)
}

func ValidateUsername(username string) bool {
	return len(username) >= 3 && len(username) <= 30
}

func ValidatePassword(password string) bool {
	if len(password) < 8 {
		return false
	}
	return lowerRe.MatchString(password) &&
		upperRe.MatchString(password) &&
		digitRe.MatchString(password) &&
		specialRe.MatchString(password)
}

// ValidateCategory accepts any non-blank name up to 100 characters. Case and
// inner spacing are kept as given.
func ValidateCategory(category string) bool {
	return strings.TrimSpace(category) != "" && utf8.RuneCountInString(category) <= maxCategoryLength
}

func ValidateDescription(description string) bool {
	return utf8.RuneCountInString(description) <= maxDescriptionLength
}

// ValidateAmount parses a request amount. It must be a number between 0 and
// the column maximum with at most two decimals.
func ValidateAmount(v any) (decimal.Decimal, bool) {
	d, err := budget.ParseAmountStrict(v)
	if err != nil {
		return decimal.Zero, false
	}
	if d.IsNegative() || d.GreaterThan(maxAmount) || !d.Equal(d.Truncate(2)) {
		return decimal.Zero, false
	}
	return d, true
}

// ValidatePositiveAmount is ValidateAmount without zero. Transactions record
// money that moved, so an empty entry is rejected.
func ValidatePositiveAmount(v any) (decimal.Decimal, bool) {
	d, ok := ValidateAmount(v)
	if !ok || !d.IsPositive() {
		return decimal.Zero, false
	}
	return d, true
}
