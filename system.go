package ledgerval

import (
	"github.com/rs/zerolog"
)

// ValuationSystem ties a ledger to the engine operations that read it:
// price resolution, transaction validation and aggregation.
//
// Every operation is a pure function over the ledger snapshot; the system
// holds no mutable state besides the ledger itself. Diagnostics go through
// the injected logger, never through a global sink.
type ValuationSystem struct {
	Ledger *Ledger
	Log    zerolog.Logger
}

// NewValuationSystem creates a valuation system over a ledger with a no-op
// logger. Callers wanting diagnostics set Log.
func NewValuationSystem(ledger *Ledger) *ValuationSystem {
	return &ValuationSystem{Ledger: ledger, Log: zerolog.Nop()}
}

// PriceGraph builds a price graph from the ledger's price observations.
// A maxDepth below 1 selects the default depth bound.
func (s *ValuationSystem) PriceGraph(maxDepth int) *PriceGraph {
	return NewPriceGraph(s.Ledger.PriceUpdates()).
		WithMaxDepth(maxDepth).
		WithLogger(s.Log)
}

// NewValidation checks every transaction id in the ledger for double-entry
// balance at the default precision. Filters scope the checked entries
// before partitioning by id.
func (s *ValuationSystem) NewValidation(filters []Filter) *ValidationReport {
	return s.NewValidationAt(filters, DefaultPrecision)
}

// NewValidationAt is like NewValidation with an explicit rounding precision.
func (s *ValuationSystem) NewValidationAt(filters []Filter, places int32) *ValidationReport {
	scoped := Apply(s.Ledger.All(), filters)

	legs := make(map[string][]Entry)
	var ids []string
	for _, e := range scoped {
		if e.Kind != Transaction {
			continue
		}
		if _, ok := legs[e.ID]; !ok {
			ids = append(ids, e.ID)
		}
		legs[e.ID] = append(legs[e.ID], e)
	}

	report := &ValidationReport{Precision: places}
	for _, id := range ids {
		valid := BalancedAt(legs[id], places)
		if !valid {
			s.Log.Warn().Str("transaction_id", id).Msg("transaction does not balance")
		}
		report.Rows = append(report.Rows, ValidationRow{TransactionID: id, Valid: valid})
	}
	return report
}
