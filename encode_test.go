package ledgerval

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const sampleEntries = `Date;Type;ID;Name;Account;Quantity;Quantity_Type;Cost;Cost_Type
2024-01-10;Transaction;T1;Apple buy;Broker;10;AAPL;-1500;USD
2024-01-10;Transaction;T1;Apple buy;Broker;-1500;USD;;
2024-01-15;PriceUpdate;PriceUpdate_AAPL;AAPL;;;AAPL;155;USD
`

func TestDecodeEntries(t *testing.T) {
	ledger, err := DecodeEntries(strings.NewReader(sampleEntries), ';')
	if err != nil {
		t.Fatalf("DecodeEntries() error = %v", err)
	}
	if ledger.Len() != 3 {
		t.Fatalf("decoded %d entries, want 3", ledger.Len())
	}

	entries := ledger.All()
	first := entries[0]
	if first.Kind != Transaction || first.ID != "T1" || first.Account != "Broker" {
		t.Errorf("first entry = %+v", first)
	}
	if !first.Quantity.Valid || !first.Quantity.Decimal.Equal(dec("10")) {
		t.Errorf("first entry quantity = %+v, want 10", first.Quantity)
	}
	if !first.Cost.Valid || !first.Cost.Decimal.Equal(dec("-1500")) {
		t.Errorf("first entry cost = %+v, want -1500", first.Cost)
	}

	// Empty cells decode as absent values, not zeros.
	second := entries[1]
	if second.Cost.Valid {
		t.Errorf("second entry cost = %+v, want absent", second.Cost)
	}
	price := entries[2]
	if price.Quantity.Valid {
		t.Errorf("price entry quantity = %+v, want absent", price.Quantity)
	}
}

func TestDecodeEntries_RejectsBadHeader(t *testing.T) {
	in := "Date;Kind;ID;Name;Account;Quantity;Quantity_Type;Cost;Cost_Type\n"
	if _, err := DecodeEntries(strings.NewReader(in), ';'); err == nil {
		t.Fatal("DecodeEntries() error = nil, want header error")
	}
}

func TestDecodeEntries_RejectsBadCells(t *testing.T) {
	testCases := []struct {
		name string
		row  string
	}{
		{"bad date", "2024-13-45;Transaction;T1;;Bank;1;EUR;;"},
		{"bad kind", "2024-01-01;Trade;T1;;Bank;1;EUR;;"},
		{"bad quantity", "2024-01-01;Transaction;T1;;Bank;ten;EUR;;"},
		{"bad cost", "2024-01-01;Transaction;T1;;Bank;1;EUR;much;USD"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			in := strings.Join(entryHeader, ";") + "\n" + tc.row + "\n"
			if _, err := DecodeEntries(strings.NewReader(in), ';'); err == nil {
				t.Errorf("DecodeEntries() error = nil, want cell error")
			}
		})
	}
}

func TestEncodeEntries_RoundTrip(t *testing.T) {
	ledger, err := DecodeEntries(strings.NewReader(sampleEntries), ';')
	if err != nil {
		t.Fatalf("DecodeEntries() error = %v", err)
	}

	var out strings.Builder
	if err := EncodeEntries(&out, ';', ledger); err != nil {
		t.Fatalf("EncodeEntries() error = %v", err)
	}

	again, err := DecodeEntries(strings.NewReader(out.String()), ';')
	if err != nil {
		t.Fatalf("DecodeEntries(round trip) error = %v", err)
	}
	if diff := cmp.Diff(ledger.All(), again.All(), dateCmp, decimalCmp, nullDecimalCmp); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeBalance(t *testing.T) {
	report := &BalanceReport{
		AsOf:     day("2024-02-01"),
		Currency: "USD",
		Rows: []BalanceRow{
			{Account: "Broker", QuantityType: "AAPL", Change: dec("10"), Price: nd("155"), ChangeFairValue: nd("1550")},
			{Account: "Broker", QuantityType: "GOOG", Change: dec("0")},
		},
	}

	var out strings.Builder
	if err := EncodeBalance(&out, ';', report); err != nil {
		t.Fatalf("EncodeBalance() error = %v", err)
	}

	want := "Account;Quantity_Type;Change;Price;Change_FairValue\n" +
		"Broker;AAPL;10;155;1550\n" +
		"Broker;GOOG;0;;\n"
	if out.String() != want {
		t.Errorf("EncodeBalance() =\n%q\nwant\n%q", out.String(), want)
	}
}

func TestEncodeRunningTotal(t *testing.T) {
	report := &RunningTotalReport{
		Rows: []RunningTotalRow{
			{Date: day("2024-01-31"), Period: "2024-01", Account: "Broker", QuantityType: "AAPL", Change: dec("50"), RunningTotal: dec("50")},
			{Date: day("2024-02-29"), Period: "2024-02", Account: "Broker", QuantityType: "AAPL", Change: dec("0"), RunningTotal: dec("50")},
		},
	}

	var out strings.Builder
	if err := EncodeRunningTotal(&out, ';', report); err != nil {
		t.Fatalf("EncodeRunningTotal() error = %v", err)
	}

	want := "Date;Account;Quantity_Type;Change;RunningTotal\n" +
		"2024-01-31;Broker;AAPL;50;50\n" +
		"2024-02-29;Broker;AAPL;0;50\n"
	if out.String() != want {
		t.Errorf("EncodeRunningTotal() =\n%q\nwant\n%q", out.String(), want)
	}
}

func TestEncodeValidation(t *testing.T) {
	report := &ValidationReport{
		Precision: DefaultPrecision,
		Rows: []ValidationRow{
			{TransactionID: "T1", Valid: true},
			{TransactionID: "T2", Valid: false},
		},
	}

	var out strings.Builder
	if err := EncodeValidation(&out, ';', report); err != nil {
		t.Fatalf("EncodeValidation() error = %v", err)
	}

	want := "Transaction_ID;Valid\nT1;true\nT2;false\n"
	if out.String() != want {
		t.Errorf("EncodeValidation() =\n%q\nwant\n%q", out.String(), want)
	}
}
