// Package budget derives monthly totals, per-category progress and settlement
// entries from a user's transactions and budget configs. Everything here is a
// pure function of its inputs; fetching and persisting belong to the caller.
package budget

import (
	"encoding/json"
	"errors"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrInvalidAmount = errors.New("invalid amount")

// ParseAmount normalizes a monetary value into a decimal. Strings may carry
// thousands separators ("1,234.56"). Anything that cannot be read as a number
// yields zero, so totals degrade instead of failing on bad data. Callers that
// need to reject bad input use ParseAmountStrict first.
func ParseAmount(v any) decimal.Decimal {
	d, err := ParseAmountStrict(v)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// ParseAmountStrict is ParseAmount with the failure reported.
func ParseAmountStrict(v any) (decimal.Decimal, error) {
	switch x := v.(type) {
	case decimal.Decimal:
		return x, nil
	case *decimal.Decimal:
		if x == nil {
			return decimal.Zero, ErrInvalidAmount
		}
		return *x, nil
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return decimal.Zero, ErrInvalidAmount
		}
		return decimal.NewFromFloat(x), nil
	case float32:
		if math.IsNaN(float64(x)) || math.IsInf(float64(x), 0) {
			return decimal.Zero, ErrInvalidAmount
		}
		return decimal.NewFromFloat32(x), nil
	case int:
		return decimal.NewFromInt(int64(x)), nil
	case int32:
		return decimal.NewFromInt32(x), nil
	case int64:
		return decimal.NewFromInt(x), nil
	case json.Number:
		return parseAmountString(string(x))
	case string:
		return parseAmountString(x)
	}
	return decimal.Zero, ErrInvalidAmount
}

func parseAmountString(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}

// FormatAmount renders d with exactly two decimals and no grouping.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}
