package ledgerval

import (
	"github.com/okonma/ledgerval/date"
	"github.com/shopspring/decimal"
)

// RunningTotalOptions configures a time-series aggregation.
type RunningTotalOptions struct {
	// Filters scope the aggregated entries.
	Filters []Filter
	// Increment is the calendar bucketing of the series.
	Increment date.Period
	// FairValueCurrency enables the fair-value overlay when non-empty.
	FairValueCurrency string
	// GroupTypes collapses the instrument dimension after valuation,
	// summing fair values per (period, account).
	GroupTypes bool
	// MaxDepth bounds the price resolver; 0 selects the default.
	MaxDepth int
}

// RunningTotalRow is one cell of the dense period × account × instrument
// table. Date is the end of the period bucket. RunningTotal is the
// cumulative sum of Change over the buckets of one (account, instrument)
// series, in chronological order.
type RunningTotalRow struct {
	Date                  date.Date
	Period                string // bucket label, e.g. "2024-05" or "2024-Q2"
	Account               string
	QuantityType          string
	Change                decimal.Decimal
	RunningTotal          decimal.Decimal
	Price                 decimal.NullDecimal
	ChangeFairValue       decimal.NullDecimal
	RunningTotalFairValue decimal.NullDecimal
}

// RunningTotalReport is the time-series balance table. Rows are emitted
// period-major in chronological order, so each (account, instrument)
// series reads as a monotonic accumulation record.
type RunningTotalReport struct {
	Increment date.Period
	Currency  string // valuation currency, empty without fair-value overlay
	Grouped   bool
	Rows      []RunningTotalRow
}

// NewRunningTotal reconstructs per-account, per-instrument balances over
// calendar increments: the scoped data's date span is bucketed at the
// increment, deltas are summed per (bucket, account, instrument) over the
// dense cross product of the three domains, and running totals accumulate
// the deltas per series. An empty scoped input yields an empty report.
func (s *ValuationSystem) NewRunningTotal(opts RunningTotalOptions) (*RunningTotalReport, error) {
	scoped := Apply(s.Ledger.All(), opts.Filters)
	report := &RunningTotalReport{Increment: opts.Increment, Currency: opts.FairValueCurrency}
	if len(scoped) == 0 {
		return report, nil
	}

	span := dateSpan(scoped)
	var buckets []date.Range
	for bucket := range date.NewRange(span.From, span.To).Periods(opts.Increment) {
		buckets = append(buckets, bucket)
	}

	accounts, types := keyDomain(scoped)

	type key struct {
		bucket       date.Date // period end
		account      string
		quantityType string
	}
	change := make(map[key]decimal.Decimal)
	for _, e := range scoped {
		if e.Account == "" || e.QuantityType == "" {
			continue
		}
		k := key{e.Date.EndOf(opts.Increment), e.Account, e.QuantityType}
		change[k] = change[k].Add(e.quantity())
	}

	var graph *PriceGraph
	if opts.FairValueCurrency != "" {
		graph = s.PriceGraph(opts.MaxDepth)
	}

	type series struct{ account, quantityType string }
	running := make(map[series]decimal.Decimal)

	for _, bucket := range buckets {
		// One price per (bucket, instrument), valid as of the bucket end.
		prices := make(map[string]decimal.NullDecimal, len(types))
		if graph != nil {
			for _, quantityType := range types {
				if price, ok := graph.Resolve(quantityType, opts.FairValueCurrency, bucket.To); ok {
					prices[quantityType] = decimal.NewNullDecimal(price)
				}
			}
		}

		for _, account := range accounts {
			for _, quantityType := range types {
				delta := change[key{bucket.To, account, quantityType}]
				k := series{account, quantityType}
				running[k] = running[k].Add(delta)

				row := RunningTotalRow{
					Date:         bucket.To,
					Period:       bucket.Identifier(),
					Account:      account,
					QuantityType: quantityType,
					Change:       delta,
					RunningTotal: running[k],
				}
				if price, ok := prices[quantityType]; ok && price.Valid {
					row.Price = price
					row.ChangeFairValue = decimal.NewNullDecimal(delta.Mul(price.Decimal))
					row.RunningTotalFairValue = decimal.NewNullDecimal(running[k].Mul(price.Decimal))
				}
				report.Rows = append(report.Rows, row)
			}
		}
	}

	if opts.GroupTypes && opts.FairValueCurrency != "" {
		report.Rows = groupRunningTotalRows(report.Rows)
		report.Grouped = true
	}
	return report, nil
}

// groupRunningTotalRows collapses the instrument dimension, summing fair
// values per (period, account).
func groupRunningTotalRows(rows []RunningTotalRow) []RunningTotalRow {
	type key struct {
		bucket  date.Date
		account string
	}
	changes := make(map[key]decimal.Decimal)
	totals := make(map[key]decimal.Decimal)
	labels := make(map[key]string)
	var order []key
	for _, r := range rows {
		k := key{r.Date, r.Account}
		if _, ok := labels[k]; !ok {
			order = append(order, k)
			labels[k] = r.Period
		}
		if r.ChangeFairValue.Valid {
			changes[k] = changes[k].Add(r.ChangeFairValue.Decimal)
		}
		if r.RunningTotalFairValue.Valid {
			totals[k] = totals[k].Add(r.RunningTotalFairValue.Decimal)
		}
	}
	out := make([]RunningTotalRow, 0, len(order))
	for _, k := range order {
		out = append(out, RunningTotalRow{
			Date:                  k.bucket,
			Period:                labels[k],
			Account:               k.account,
			ChangeFairValue:       decimal.NewNullDecimal(changes[k]),
			RunningTotalFairValue: decimal.NewNullDecimal(totals[k]),
		})
	}
	return out
}

// dateSpan returns the [min, max] date range observed in the entries.
func dateSpan(entries []Entry) date.Range {
	span := date.Range{From: entries[0].Date, To: entries[0].Date}
	for _, e := range entries[1:] {
		if e.Date.Before(span.From) {
			span.From = e.Date
		}
		if e.Date.After(span.To) {
			span.To = e.Date
		}
	}
	return span
}
