// Package renderer turns engine reports into markdown tables for
// presentation collaborators (terminal, files).
package renderer

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// formatMoney formats a decimal amount in the given currency, using the
// currency's own fraction and symbol conventions. An unknown currency code
// falls back to a plain decimal rendering.
func formatMoney(d decimal.Decimal, currency string) string {
	if currency == "" {
		return d.String()
	}
	cur := *money.New(0, currency).Currency()
	shifted := d.Shift(int32(cur.Fraction))
	return cur.Formatter().Format(shifted.Round(0).IntPart())
}

// formatNullMoney renders an absent value as "n/a": a missing price is an
// expected outcome, visibly distinct from a zero amount.
func formatNullMoney(d decimal.NullDecimal, currency string) string {
	if !d.Valid {
		return "n/a"
	}
	return formatMoney(d.Decimal, currency)
}

func formatNullDecimal(d decimal.NullDecimal) string {
	if !d.Valid {
		return "n/a"
	}
	return d.Decimal.String()
}
