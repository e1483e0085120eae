package ledgerval

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewBalance_DenseZeroFill(t *testing.T) {
	// Two accounts and three instruments observed, activity in only three
	// of the six cells. Every combination must still appear.
	ledger := NewLedger()
	err := ledger.Append(
		NewTransaction(day("2024-01-10"), "T1", "", "Broker", dec("10"), "AAPL"),
		NewTransaction(day("2024-01-10"), "T1", "", "Broker", dec("-1500"), "USD"),
		NewTransaction(day("2024-02-01"), "T2", "", "Bank", dec("500"), "EUR"),
	)
	if err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	report, err := NewValuationSystem(ledger).NewBalance(BalanceOptions{})
	if err != nil {
		t.Fatalf("NewBalance() error = %v", err)
	}

	want := []BalanceRow{
		{Account: "Bank", QuantityType: "AAPL", Change: dec("0")},
		{Account: "Bank", QuantityType: "EUR", Change: dec("500")},
		{Account: "Bank", QuantityType: "USD", Change: dec("0")},
		{Account: "Broker", QuantityType: "AAPL", Change: dec("10")},
		{Account: "Broker", QuantityType: "EUR", Change: dec("0")},
		{Account: "Broker", QuantityType: "USD", Change: dec("-1500")},
	}
	if diff := cmp.Diff(want, report.Rows, decimalCmp, nullDecimalCmp); diff != "" {
		t.Errorf("NewBalance() rows mismatch (-want +got):\n%s", diff)
	}
	if report.AsOf != day("2024-02-01") {
		t.Errorf("report.AsOf = %s, want the newest ledger date", report.AsOf)
	}
}

func TestNewBalance_FairValue(t *testing.T) {
	ledger := NewLedger()
	err := ledger.Append(
		NewTransaction(day("2024-01-10"), "T1", "", "Broker", dec("10"), "AAPL"),
		NewTransaction(day("2024-01-10"), "T1", "", "Broker", dec("-1500"), "USD"),
		NewPriceUpdate(day("2024-01-15"), "AAPL", dec("155"), "USD"),
	)
	if err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	report, err := NewValuationSystem(ledger).NewBalance(BalanceOptions{
		FairValueCurrency: "USD",
	})
	if err != nil {
		t.Fatalf("NewBalance() error = %v", err)
	}

	want := []BalanceRow{
		{Account: "Broker", QuantityType: "AAPL", Change: dec("10"), Price: nd("155"), ChangeFairValue: nd("1550")},
		{Account: "Broker", QuantityType: "USD", Change: dec("-1500"), Price: nd("1"), ChangeFairValue: nd("-1500")},
	}
	if diff := cmp.Diff(want, report.Rows, decimalCmp, nullDecimalCmp); diff != "" {
		t.Errorf("NewBalance() rows mismatch (-want +got):\n%s", diff)
	}
}

func TestNewBalance_UnresolvedPriceStaysAbsent(t *testing.T) {
	ledger := NewLedger()
	err := ledger.Append(
		NewTransaction(day("2024-01-10"), "T1", "", "Broker", dec("10"), "AAPL"),
	)
	if err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	report, err := NewValuationSystem(ledger).NewBalance(BalanceOptions{
		FairValueCurrency: "USD",
	})
	if err != nil {
		t.Fatalf("NewBalance() error = %v", err)
	}

	if len(report.Rows) != 1 {
		t.Fatalf("report has %d rows, want 1", len(report.Rows))
	}
	row := report.Rows[0]
	if row.Price.Valid || row.ChangeFairValue.Valid {
		t.Errorf("unpriced row = %+v, want absent Price and ChangeFairValue", row)
	}
	if !row.Change.Equal(dec("10")) {
		t.Errorf("row.Change = %s, want 10", row.Change)
	}
}

func TestNewBalance_AsOfRestrictsPrices(t *testing.T) {
	ledger := NewLedger()
	err := ledger.Append(
		NewTransaction(day("2024-01-10"), "T1", "", "Broker", dec("10"), "AAPL"),
		NewPriceUpdate(day("2024-01-15"), "AAPL", dec("155"), "USD"),
		NewPriceUpdate(day("2024-03-15"), "AAPL", dec("170"), "USD"),
	)
	if err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	report, err := NewValuationSystem(ledger).NewBalance(BalanceOptions{
		FairValueCurrency: "USD",
		AsOf:              day("2024-02-01"),
	})
	if err != nil {
		t.Fatalf("NewBalance() error = %v", err)
	}

	for _, row := range report.Rows {
		if row.QuantityType == "AAPL" {
			if !row.Price.Valid || !row.Price.Decimal.Equal(dec("155")) {
				t.Errorf("AAPL price as of 2024-02-01 = %+v, want 155", row.Price)
			}
		}
	}
}

func TestNewBalance_Grouped(t *testing.T) {
	ledger := NewLedger()
	err := ledger.Append(
		NewTransaction(day("2024-01-10"), "T1", "", "Broker", dec("10"), "AAPL"),
		NewTransaction(day("2024-01-10"), "T1", "", "Broker", dec("-1500"), "USD"),
		NewTransaction(day("2024-01-12"), "T2", "", "Bank", dec("200"), "USD"),
		NewPriceUpdate(day("2024-01-15"), "AAPL", dec("155"), "USD"),
	)
	if err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	report, err := NewValuationSystem(ledger).NewBalance(BalanceOptions{
		FairValueCurrency: "USD",
		GroupTypes:        true,
	})
	if err != nil {
		t.Fatalf("NewBalance() error = %v", err)
	}

	if !report.Grouped {
		t.Fatal("report.Grouped = false, want true")
	}
	want := []BalanceRow{
		{Account: "Bank", ChangeFairValue: nd("200")},
		{Account: "Broker", ChangeFairValue: nd("50")}, // 10*155 - 1500
	}
	if diff := cmp.Diff(want, report.Rows, decimalCmp, nullDecimalCmp); diff != "" {
		t.Errorf("grouped rows mismatch (-want +got):\n%s", diff)
	}
}

func TestNewBalance_GroupWithoutCurrencyIsIgnored(t *testing.T) {
	ledger := NewLedger()
	err := ledger.Append(
		NewTransaction(day("2024-01-10"), "T1", "", "Broker", dec("10"), "AAPL"),
	)
	if err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	report, err := NewValuationSystem(ledger).NewBalance(BalanceOptions{GroupTypes: true})
	if err != nil {
		t.Fatalf("NewBalance() error = %v", err)
	}
	if report.Grouped {
		t.Error("report.Grouped = true, want false without a valuation currency")
	}
}

func TestNewBalance_Filtered(t *testing.T) {
	ledger := NewLedger()
	err := ledger.Append(
		NewTransaction(day("2024-01-10"), "T1", "", "Broker", dec("10"), "AAPL"),
		NewTransaction(day("2024-02-01"), "T2", "", "Bank", dec("500"), "EUR"),
	)
	if err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	report, err := NewValuationSystem(ledger).NewBalance(BalanceOptions{
		Filters: []Filter{{Type: FilterEquals, Column: "Account", Value: "Bank"}},
	})
	if err != nil {
		t.Fatalf("NewBalance() error = %v", err)
	}

	// The filter narrows the key domain too: Broker and AAPL are gone.
	want := []BalanceRow{
		{Account: "Bank", QuantityType: "EUR", Change: dec("500")},
	}
	if diff := cmp.Diff(want, report.Rows, decimalCmp, nullDecimalCmp); diff != "" {
		t.Errorf("filtered rows mismatch (-want +got):\n%s", diff)
	}
}
