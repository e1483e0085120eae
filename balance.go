package ledgerval

import (
	"sort"

	"github.com/okonma/ledgerval/date"
	"github.com/shopspring/decimal"
)

// BalanceOptions configures a point-in-time balance aggregation. All
// parameters are explicit; there is no hidden configuration source.
type BalanceOptions struct {
	// Filters scope the aggregated entries.
	Filters []Filter
	// FairValueCurrency enables the fair-value overlay when non-empty.
	FairValueCurrency string
	// AsOf is the valuation date for the fair-value overlay. The zero date
	// selects the newest ledger date.
	AsOf date.Date
	// GroupTypes collapses the instrument dimension after valuation,
	// summing fair values per account.
	GroupTypes bool
	// MaxDepth bounds the price resolver; 0 selects the default.
	MaxDepth int
}

// BalanceRow is one cell of the dense account × instrument balance table.
// Price and ChangeFairValue are set only when the fair-value overlay is
// requested and a price could be resolved; an unresolved price leaves them
// absent rather than zero.
type BalanceRow struct {
	Account         string
	QuantityType    string
	Change          decimal.Decimal
	Price           decimal.NullDecimal
	ChangeFairValue decimal.NullDecimal
}

// BalanceReport is the point-in-time balance table.
type BalanceReport struct {
	AsOf     date.Date
	Currency string // valuation currency, empty without fair-value overlay
	Grouped  bool
	Rows     []BalanceRow
}

// NewBalance aggregates per-account, per-instrument balances as the sum of
// entry quantities, over the dense cross product of the accounts and
// instruments observed in the scoped data. Cells with no activity appear
// with a zero change, they are not dropped.
func (s *ValuationSystem) NewBalance(opts BalanceOptions) (*BalanceReport, error) {
	scoped := Apply(s.Ledger.All(), opts.Filters)

	asOf := opts.AsOf
	if asOf.IsZero() {
		asOf = s.Ledger.NewestDate()
	}

	accounts, types := keyDomain(scoped)

	type key struct{ account, quantityType string }
	change := make(map[key]decimal.Decimal)
	for _, e := range scoped {
		if e.Account == "" || e.QuantityType == "" {
			continue
		}
		k := key{e.Account, e.QuantityType}
		change[k] = change[k].Add(e.quantity())
	}

	report := &BalanceReport{AsOf: asOf, Currency: opts.FairValueCurrency}

	var graph *PriceGraph
	if opts.FairValueCurrency != "" {
		graph = s.PriceGraph(opts.MaxDepth)
	}

	for _, account := range accounts {
		for _, quantityType := range types {
			row := BalanceRow{
				Account:      account,
				QuantityType: quantityType,
				Change:       change[key{account, quantityType}],
			}
			if graph != nil {
				if price, ok := graph.Resolve(quantityType, opts.FairValueCurrency, asOf); ok {
					row.Price = decimal.NewNullDecimal(price)
					row.ChangeFairValue = decimal.NewNullDecimal(row.Change.Mul(price))
				}
			}
			report.Rows = append(report.Rows, row)
		}
	}

	if opts.GroupTypes && opts.FairValueCurrency != "" {
		report.Rows = groupBalanceRows(report.Rows)
		report.Grouped = true
	}
	return report, nil
}

// groupBalanceRows collapses the instrument dimension, summing fair values
// per account. The per-instrument breakdown is intentionally discarded:
// once everything is expressed in one valuation currency the sums are
// commensurable.
func groupBalanceRows(rows []BalanceRow) []BalanceRow {
	totals := make(map[string]decimal.Decimal)
	var accounts []string
	for _, r := range rows {
		if _, ok := totals[r.Account]; !ok {
			accounts = append(accounts, r.Account)
		}
		if r.ChangeFairValue.Valid {
			totals[r.Account] = totals[r.Account].Add(r.ChangeFairValue.Decimal)
		}
	}
	out := make([]BalanceRow, 0, len(accounts))
	for _, account := range accounts {
		out = append(out, BalanceRow{
			Account:         account,
			ChangeFairValue: decimal.NewNullDecimal(totals[account]),
		})
	}
	return out
}

// keyDomain returns the distinct non-empty accounts and quantity types
// observed in the entries, sorted for deterministic output.
func keyDomain(entries []Entry) (accounts, types []string) {
	seenAccounts := make(map[string]struct{})
	seenTypes := make(map[string]struct{})
	for _, e := range entries {
		if e.Account != "" {
			if _, ok := seenAccounts[e.Account]; !ok {
				seenAccounts[e.Account] = struct{}{}
				accounts = append(accounts, e.Account)
			}
		}
		if e.QuantityType != "" {
			if _, ok := seenTypes[e.QuantityType]; !ok {
				seenTypes[e.QuantityType] = struct{}{}
				types = append(types, e.QuantityType)
			}
		}
	}
	sort.Strings(accounts)
	sort.Strings(types)
	return accounts, types
}
