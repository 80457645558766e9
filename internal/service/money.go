package service

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// minorUnitsExp is the exponent of one minor currency unit (cents).
const minorUnitsExp = -2

// FormatMinorUnits renders an amount of minor currency units as a
// two-decimal string prefixed with the currency symbol, e.g. 6500 -> "$65.00".
func FormatMinorUnits(amount decimal.Decimal, symbol string) string {
	return symbol + amount.Shift(minorUnitsExp).StringFixed(2)
}

// parseMinorUnits reads an integral amount of minor units from a decoded JSON value.
func parseMinorUnits(v any) (decimal.Decimal, error) {
	var amount decimal.Decimal

	switch val := v.(type) {
	case nil:
		return decimal.Zero, fmt.Errorf("%w: missing", ErrInvalidFare)
	case json.Number:
		d, err := decimal.NewFromString(val.String())
		if err != nil {
			return decimal.Zero, fmt.Errorf("%w: %q is not a number", ErrInvalidFare, val.String())
		}
		amount = d
	case float64:
		amount = decimal.NewFromFloat(val)
	case int:
		amount = decimal.NewFromInt(int64(val))
	case int64:
		amount = decimal.NewFromInt(val)
	default:
		return decimal.Zero, fmt.Errorf("%w: expected a number, got %T", ErrInvalidFare, v)
	}

	if !amount.IsInteger() {
		return decimal.Zero, fmt.Errorf("%w: %s is not a whole number of minor units", ErrInvalidFare, amount)
	}
	return amount, nil
}
