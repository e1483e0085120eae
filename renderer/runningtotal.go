package renderer

import (
	"bytes"
	"fmt"

	md "github.com/nao1215/markdown"
	"github.com/okonma/ledgerval"
)

// RunningTotal renders a running-total report to a markdown string.
func RunningTotal(r *ledgerval.RunningTotalReport) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	if r.Currency != "" {
		doc.H1(fmt.Sprintf("Running totals per %s in %s", r.Increment.Name(), r.Currency))
	} else {
		doc.H1(fmt.Sprintf("Running totals per %s", r.Increment.Name()))
	}

	var table md.TableSet
	switch {
	case r.Grouped:
		table = md.TableSet{
			Alignment: []md.TableAlignment{
				md.AlignLeft, md.AlignLeft, md.AlignRight, md.AlignRight,
			},
			Header: []string{"Period", "Account", "Change", "Running Total"},
		}
		for _, row := range r.Rows {
			table.Rows = append(table.Rows, []string{
				row.Period,
				row.Account,
				formatNullMoney(row.ChangeFairValue, r.Currency),
				formatNullMoney(row.RunningTotalFairValue, r.Currency),
			})
		}
	case r.Currency != "":
		table = md.TableSet{
			Alignment: []md.TableAlignment{
				md.AlignLeft, md.AlignLeft, md.AlignLeft,
				md.AlignRight, md.AlignRight, md.AlignRight, md.AlignRight, md.AlignRight,
			},
			Header: []string{
				"Period", "Account", "Instrument",
				"Change", "Running Total", "Price", "Change Value", "Total Value",
			},
		}
		for _, row := range r.Rows {
			table.Rows = append(table.Rows, []string{
				row.Period,
				row.Account,
				row.QuantityType,
				row.Change.String(),
				row.RunningTotal.String(),
				formatNullDecimal(row.Price),
				formatNullMoney(row.ChangeFairValue, r.Currency),
				formatNullMoney(row.RunningTotalFairValue, r.Currency),
			})
		}
	default:
		table = md.TableSet{
			Alignment: []md.TableAlignment{
				md.AlignLeft, md.AlignLeft, md.AlignLeft, md.AlignRight, md.AlignRight,
			},
			Header: []string{"Period", "Account", "Instrument", "Change", "Running Total"},
		}
		for _, row := range r.Rows {
			table.Rows = append(table.Rows, []string{
				row.Period,
				row.Account,
				row.QuantityType,
				row.Change.String(),
				row.RunningTotal.String(),
			})
		}
	}
	doc.Table(table)

	return doc.String()
}
