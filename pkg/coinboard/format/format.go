package format

import (
	"strings"

	"github.com/shopspring/decimal"
)

// NA is shown for an absent change window.
const NA = "N/A"

// PriceChange renders a percentage change with two decimals and an explicit
// sign, e.g. "+3.14%" or "-2.50%". Values that round to zero get "+".
func PriceChange(v decimal.NullDecimal) string {
	if !v.Valid {
		return NA
	}
	r := v.Decimal.Round(2)
	s := r.StringFixed(2)
	if r.Sign() >= 0 {
		return "+" + s + "%"
	}
	return s + "%"
}

// Price renders integers without a fraction and anything else with at most
// eight decimal digits.
func Price(d decimal.Decimal) string {
	if d.IsInteger() {
		return d.StringFixed(0)
	}
	// String drops trailing zeros after rounding
	return d.Round(8).String()
}

// USD prefixes Price with a dollar sign.
func USD(d decimal.Decimal) string { return "$" + Price(d) }

// Symbol upper-cases a ticker.
func Symbol(s string) string { return strings.ToUpper(strings.TrimSpace(s)) }
