package ledgerval

import (
	"fmt"
	"math/rand"

	"github.com/shopspring/decimal"
)

// BenchmarkOptions configures benchmark entry generation.
type BenchmarkOptions struct {
	// Account is the account whose transactions are mirrored.
	Account string
	// Ticker is the benchmark instrument the mirrored flows are converted into.
	Ticker string
	// IDContains optionally restricts the mirrored transactions to ids
	// containing this substring (e.g. one broker's prefix).
	IDContains string
	// MaxDepth bounds the price resolver; 0 selects the default.
	MaxDepth int
}

// NewBenchmark derives Benchmark entries mirroring the account's
// transactions: each leg's quantity is converted into whole units of the
// benchmark ticker at the price resolved on the leg's date. The generated
// legs are negated so that, merged back into the ledger, the benchmark
// position grows opposite to the mirrored flows. A leg whose price cannot
// be resolved yields a zero benchmark quantity.
//
// The generated entries are returned, not appended; the caller owns the
// merge.
func (s *ValuationSystem) NewBenchmark(opts BenchmarkOptions) ([]Entry, error) {
	if opts.Account == "" || opts.Ticker == "" {
		return nil, fmt.Errorf("benchmark needs both an account and a ticker")
	}

	graph := s.PriceGraph(opts.MaxDepth)

	predicates := []func(Entry) bool{ByAccount(opts.Account)}
	var out []Entry
	for _, e := range s.Ledger.Entries(predicates...) {
		if e.Kind != Transaction || !e.Quantity.Valid {
			continue
		}
		if opts.IDContains != "" && !ByIDContains(opts.IDContains)(e) {
			continue
		}

		quantity := decimal.Zero
		if price, ok := graph.Resolve(opts.Ticker, e.QuantityType, e.Date); ok && !price.IsZero() {
			quantity = e.Quantity.Decimal.Div(price).Round(0)
		} else {
			s.Log.Warn().
				Str("ticker", opts.Ticker).
				Str("quantity_type", e.QuantityType).
				Stringer("on", e.Date).
				Msg("benchmark price unavailable, recording zero quantity")
		}

		out = append(out, Entry{
			Date:         e.Date,
			Kind:         Benchmark,
			ID:           fmt.Sprintf("Benchmark_%d", rand.Int63n(100_000_000_000_000)),
			Name:         opts.Ticker,
			Account:      "Benchmark",
			Quantity:     decimal.NewNullDecimal(quantity.Neg()),
			QuantityType: opts.Ticker,
			Cost:         decimal.NewNullDecimal(e.Quantity.Decimal.Neg()),
			CostType:     e.QuantityType,
		})
	}
	return out, nil
}
