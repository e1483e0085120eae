package renderer

import (
	"bytes"
	"fmt"

	md "github.com/nao1215/markdown"
	"github.com/okonma/ledgerval"
)

// Balance renders a balance report to a markdown string.
func Balance(r *ledgerval.BalanceReport) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	if r.Currency != "" {
		doc.H1(fmt.Sprintf("Balance as of %s in %s", r.AsOf, r.Currency))
	} else {
		doc.H1(fmt.Sprintf("Balance as of %s", r.AsOf))
	}

	var table md.TableSet
	switch {
	case r.Grouped:
		table = md.TableSet{
			Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
			Header:    []string{"Account", "Fair Value"},
		}
		for _, row := range r.Rows {
			table.Rows = append(table.Rows, []string{
				row.Account,
				formatNullMoney(row.ChangeFairValue, r.Currency),
			})
		}
	case r.Currency != "":
		table = md.TableSet{
			Alignment: []md.TableAlignment{
				md.AlignLeft, md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignRight,
			},
			Header: []string{"Account", "Instrument", "Change", "Price", "Fair Value"},
		}
		for _, row := range r.Rows {
			table.Rows = append(table.Rows, []string{
				row.Account,
				row.QuantityType,
				row.Change.String(),
				formatNullDecimal(row.Price),
				formatNullMoney(row.ChangeFairValue, r.Currency),
			})
		}
	default:
		table = md.TableSet{
			Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft, md.AlignRight},
			Header:    []string{"Account", "Instrument", "Change"},
		}
		for _, row := range r.Rows {
			table.Rows = append(table.Rows, []string{
				row.Account,
				row.QuantityType,
				row.Change.String(),
			})
		}
	}
	doc.Table(table)

	return doc.String()
}
