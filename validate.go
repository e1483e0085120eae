package ledgerval

import (
	"github.com/shopspring/decimal"
)

// DefaultPrecision is the number of decimal places at which leg totals are
// rounded before comparing to zero. Precision is a contract parameter of
// the validation, not a constant of the data.
const DefaultPrecision int32 = 5

// Balanced reports whether the transaction legs net to zero at the default
// precision.
func Balanced(legs []Entry) bool { return BalancedAt(legs, DefaultPrecision) }

// BalancedAt reports whether the transaction legs net to zero per
// instrument at the given precision, after cost-basis reconciliation.
//
// Legs that record a conversion carry their quantity in one instrument and
// their cost in another. Reconciliation attributes such a leg to the
// instrument it actually moved: its cost is credited against the cost
// type's total and its quantity is withdrawn from its own quantity type's
// total. A transaction is balanced when every instrument it touches then
// sums to zero. This generalizes plain double-entry (debit = credit) to
// multi-currency, multi-leg postings.
//
// Only entries of kind Transaction participate; an empty leg set is
// trivially balanced.
func BalancedAt(legs []Entry, places int32) bool {
	var txs []Entry
	for _, e := range legs {
		if e.Kind == Transaction {
			txs = append(txs, e)
		}
	}
	if len(txs) == 0 {
		return true
	}

	// Per-instrument quantity sums, tracking first-observed order so the
	// checks below are deterministic.
	totals := make(map[string]decimal.Decimal)
	var types []string
	for _, e := range txs {
		if _, ok := totals[e.QuantityType]; !ok {
			types = append(types, e.QuantityType)
		}
		totals[e.QuantityType] = totals[e.QuantityType].Add(e.quantity())
	}

	// Single-instrument fast path: plain zero-sum check.
	if len(types) == 1 {
		return totals[types[0]].Round(places).IsZero()
	}

	// Instruments whose raw sum is non-zero are provisionally invalid and
	// need cost-basis reconciliation.
	var invalid []string
	for _, t := range types {
		if !totals[t].IsZero() {
			invalid = append(invalid, t)
		}
	}

	affected := append([]string(nil), invalid...)
	for _, t := range invalid {
		for _, e := range txs {
			if e.CostType != t || !e.Cost.Valid {
				continue
			}
			totals[t] = totals[t].Sub(e.Cost.Decimal)
			totals[e.QuantityType] = totals[e.QuantityType].Sub(e.quantity())
			if e.QuantityType != t {
				affected = append(affected, e.QuantityType)
			}
		}
	}

	for _, t := range affected {
		if !totals[t].Round(places).IsZero() {
			return false
		}
	}
	return true
}

// ValidationRow is the per-transaction outcome of a validation run.
type ValidationRow struct {
	TransactionID string
	Valid         bool
}

// ValidationReport lists the validity of every transaction id, in
// first-observed order. An imbalance is data, not an error: the caller
// decides whether an invalid transaction is fatal for the overall run.
type ValidationReport struct {
	Precision int32
	Rows      []ValidationRow
}
