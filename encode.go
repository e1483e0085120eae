package ledgerval

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/okonma/ledgerval/date"
	"github.com/shopspring/decimal"
)

// entryHeader is the column layout of the normalized entry format. Filter
// specs address columns by these names.
var entryHeader = []string{
	"Date", "Type", "ID", "Name", "Account",
	"Quantity", "Quantity_Type", "Cost", "Cost_Type",
}

// DecodeEntries reads entries in the normalized character-separated format
// from r into a new ledger. The first record must be the canonical header.
// Empty Quantity and Cost cells decode as absent, not zero.
func DecodeEntries(r io.Reader, separator rune) (*Ledger, error) {
	reader := csv.NewReader(r)
	reader.Comma = separator
	reader.FieldsPerRecord = len(entryHeader)

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("could not read entries: %w", err)
	}
	ledger := NewLedger()
	if len(records) == 0 {
		return ledger, nil
	}
	for i, want := range entryHeader {
		if records[0][i] != want {
			return nil, fmt.Errorf("unexpected header column %q, want %q", records[0][i], want)
		}
	}

	entries := make([]Entry, 0, len(records)-1)
	for n, record := range records[1:] {
		e, err := decodeEntry(record)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", n+2, err)
		}
		entries = append(entries, e)
	}
	if err := ledger.Append(entries...); err != nil {
		return nil, err
	}
	return ledger, nil
}

func decodeEntry(record []string) (Entry, error) {
	var e Entry
	var err error
	if e.Date, err = date.Parse(record[0]); err != nil {
		return e, err
	}
	if e.Kind, err = ParseKind(record[1]); err != nil {
		return e, err
	}
	e.ID, e.Name, e.Account = record[2], record[3], record[4]
	if e.Quantity, err = decodeNullDecimal(record[5]); err != nil {
		return e, fmt.Errorf("invalid quantity: %w", err)
	}
	e.QuantityType = record[6]
	if e.Cost, err = decodeNullDecimal(record[7]); err != nil {
		return e, fmt.Errorf("invalid cost: %w", err)
	}
	e.CostType = record[8]
	return e, nil
}

func decodeNullDecimal(s string) (decimal.NullDecimal, error) {
	if s == "" {
		return decimal.NullDecimal{}, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}, err
	}
	return decimal.NewNullDecimal(d), nil
}

func encodeNullDecimal(d decimal.NullDecimal) string {
	if !d.Valid {
		return ""
	}
	return d.Decimal.String()
}

// EncodeEntries writes the ledger in the normalized character-separated
// format, header first.
func EncodeEntries(w io.Writer, separator rune, ledger *Ledger) error {
	writer := csv.NewWriter(w)
	writer.Comma = separator
	if err := writer.Write(entryHeader); err != nil {
		return err
	}
	for _, e := range ledger.Entries() {
		record := []string{
			e.Date.String(),
			e.Kind.String(),
			e.ID,
			e.Name,
			e.Account,
			encodeNullDecimal(e.Quantity),
			e.QuantityType,
			encodeNullDecimal(e.Cost),
			e.CostType,
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// EncodeBalance writes a balance report as a character-separated table.
func EncodeBalance(w io.Writer, separator rune, report *BalanceReport) error {
	writer := csv.NewWriter(w)
	writer.Comma = separator

	var err error
	switch {
	case report.Grouped:
		err = writer.Write([]string{"Account", "Change_FairValue"})
	case report.Currency != "":
		err = writer.Write([]string{"Account", "Quantity_Type", "Change", "Price", "Change_FairValue"})
	default:
		err = writer.Write([]string{"Account", "Quantity_Type", "Change"})
	}
	if err != nil {
		return err
	}

	for _, row := range report.Rows {
		var record []string
		switch {
		case report.Grouped:
			record = []string{row.Account, encodeNullDecimal(row.ChangeFairValue)}
		case report.Currency != "":
			record = []string{
				row.Account, row.QuantityType, row.Change.String(),
				encodeNullDecimal(row.Price), encodeNullDecimal(row.ChangeFairValue),
			}
		default:
			record = []string{row.Account, row.QuantityType, row.Change.String()}
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// EncodeRunningTotal writes a running-total report as a character-separated
// table, rows in chronological order.
func EncodeRunningTotal(w io.Writer, separator rune, report *RunningTotalReport) error {
	writer := csv.NewWriter(w)
	writer.Comma = separator

	var err error
	switch {
	case report.Grouped:
		err = writer.Write([]string{"Date", "Account", "Change_FairValue", "RunningTotal_FairValue"})
	case report.Currency != "":
		err = writer.Write([]string{
			"Date", "Account", "Quantity_Type", "Change", "RunningTotal",
			"Price", "Change_FairValue", "RunningTotal_FairValue",
		})
	default:
		err = writer.Write([]string{"Date", "Account", "Quantity_Type", "Change", "RunningTotal"})
	}
	if err != nil {
		return err
	}

	for _, row := range report.Rows {
		var record []string
		switch {
		case report.Grouped:
			record = []string{
				row.Date.String(), row.Account,
				encodeNullDecimal(row.ChangeFairValue),
				encodeNullDecimal(row.RunningTotalFairValue),
			}
		case report.Currency != "":
			record = []string{
				row.Date.String(), row.Account, row.QuantityType,
				row.Change.String(), row.RunningTotal.String(),
				encodeNullDecimal(row.Price),
				encodeNullDecimal(row.ChangeFairValue),
				encodeNullDecimal(row.RunningTotalFairValue),
			}
		default:
			record = []string{
				row.Date.String(), row.Account, row.QuantityType,
				row.Change.String(), row.RunningTotal.String(),
			}
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// EncodeValidation writes a validation report as a character-separated table.
func EncodeValidation(w io.Writer, separator rune, report *ValidationReport) error {
	writer := csv.NewWriter(w)
	writer.Comma = separator
	if err := writer.Write([]string{"Transaction_ID", "Valid"}); err != nil {
		return err
	}
	for _, row := range report.Rows {
		if err := writer.Write([]string{row.TransactionID, fmt.Sprintf("%t", row.Valid)}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
