package ledgerval

import (
	"slices"
	"testing"
)

func TestLedger_AppendSorts(t *testing.T) {
	ledger := NewLedger()
	err := ledger.Append(
		NewTransaction(day("2024-03-01"), "T3", "", "Bank", dec("1"), "EUR"),
		NewTransaction(day("2024-01-01"), "T1", "", "Bank", dec("2"), "EUR"),
		NewTransaction(day("2024-02-01"), "T2", "", "Bank", dec("3"), "EUR"),
	)
	if err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	var ids []string
	for _, e := range ledger.Entries() {
		ids = append(ids, e.ID)
	}
	want := []string{"T1", "T2", "T3"}
	if !slices.Equal(ids, want) {
		t.Errorf("entries order = %v, want %v", ids, want)
	}
}

func TestLedger_AppendKeepsSameDayOrder(t *testing.T) {
	// Legs of one transaction share a date; appending must not shuffle them.
	ledger := NewLedger()
	err := ledger.Append(
		NewTransaction(day("2024-01-10"), "T1", "", "Broker", dec("10"), "AAPL"),
		NewTransaction(day("2024-01-10"), "T1", "", "Broker", dec("-1500"), "USD"),
	)
	if err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	legs := ledger.Legs("T1")
	if len(legs) != 2 {
		t.Fatalf("Legs(T1) returned %d legs, want 2", len(legs))
	}
	if legs[0].QuantityType != "AAPL" || legs[1].QuantityType != "USD" {
		t.Errorf("Legs(T1) order = %s, %s; want AAPL, USD", legs[0].QuantityType, legs[1].QuantityType)
	}
}

func TestLedger_AppendRejectsMalformedEntries(t *testing.T) {
	ledger := NewLedger()

	// A transaction leg with neither quantity nor cost carries no
	// information and is rejected as a whole batch.
	err := ledger.Append(
		NewTransaction(day("2024-01-01"), "T1", "", "Bank", dec("1"), "EUR"),
		Entry{Date: day("2024-01-02"), Kind: Transaction, ID: "T2"},
	)
	if err == nil {
		t.Fatal("Append() error = nil, want structural error")
	}
	if ledger.Len() != 0 {
		t.Errorf("ledger has %d entries after a rejected batch, want 0", ledger.Len())
	}
}

func TestLedger_TransactionIDs(t *testing.T) {
	ledger := NewLedger()
	err := ledger.Append(
		NewTransaction(day("2024-01-10"), "T1", "", "Broker", dec("10"), "AAPL"),
		NewTransaction(day("2024-01-10"), "T1", "", "Broker", dec("-1500"), "USD"),
		NewTransaction(day("2024-02-01"), "T2", "", "Bank", dec("500"), "EUR"),
		NewPriceUpdate(day("2024-03-15"), "AAPL", dec("170"), "USD"),
	)
	if err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	var ids []string
	for id := range ledger.TransactionIDs() {
		ids = append(ids, id)
	}
	want := []string{"T1", "T2"}
	if !slices.Equal(ids, want) {
		t.Errorf("TransactionIDs() = %v, want %v", ids, want)
	}
}

func TestLedger_Predicates(t *testing.T) {
	ledger := NewLedger()
	err := ledger.Append(
		NewTransaction(day("2024-01-10"), "T1", "", "Broker", dec("10"), "AAPL"),
		NewTransaction(day("2024-02-01"), "T2", "", "Bank", dec("500"), "EUR"),
		NewPriceUpdate(day("2024-03-15"), "AAPL", dec("170"), "USD"),
	)
	if err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	var count int
	for range ledger.Entries(ByAccount("Bank")) {
		count++
	}
	if count != 1 {
		t.Errorf("Entries(ByAccount) yielded %d entries, want 1", count)
	}

	// Predicates combine as a union: an entry passes if any accepts it.
	count = 0
	for range ledger.Entries(ByKind(Transaction), ByAccount("Bank")) {
		count++
	}
	if count != 2 {
		t.Errorf("Entries(ByKind, ByAccount) yielded %d entries, want 2", count)
	}

	if got := len(ledger.PriceUpdates()); got != 1 {
		t.Errorf("PriceUpdates() returned %d entries, want 1", got)
	}
}

func TestLedger_DateBounds(t *testing.T) {
	ledger := NewLedger()
	if !ledger.OldestDate().IsZero() || !ledger.NewestDate().IsZero() {
		t.Error("empty ledger date bounds are not zero")
	}

	err := ledger.Append(
		NewTransaction(day("2024-02-01"), "T2", "", "Bank", dec("1"), "EUR"),
		NewTransaction(day("2024-01-10"), "T1", "", "Bank", dec("1"), "EUR"),
	)
	if err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if got := ledger.OldestDate(); got != day("2024-01-10") {
		t.Errorf("OldestDate() = %s, want 2024-01-10", got)
	}
	if got := ledger.NewestDate(); got != day("2024-02-01") {
		t.Errorf("NewestDate() = %s, want 2024-02-01", got)
	}
}
