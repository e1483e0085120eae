package renderer

import (
	"bytes"
	"fmt"

	md "github.com/nao1215/markdown"
	"github.com/okonma/ledgerval"
)

// Validation renders a validation report to a markdown string.
func Validation(r *ledgerval.ValidationReport) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Transaction validation")

	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignCenter},
		Header:    []string{"Transaction", "Balanced"},
	}
	invalid := 0
	for _, row := range r.Rows {
		mark := "ok"
		if !row.Valid {
			mark = "IMBALANCED"
			invalid++
		}
		table.Rows = append(table.Rows, []string{row.TransactionID, mark})
	}
	doc.Table(table)

	if invalid > 0 {
		doc.PlainText(fmt.Sprintf("%d of %d transactions do not balance.", invalid, len(r.Rows)))
	} else {
		doc.PlainText(fmt.Sprintf("All %d transactions balance.", len(r.Rows)))
	}

	return doc.String()
}
