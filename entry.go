package ledgerval

import (
	"fmt"

	"github.com/okonma/ledgerval/date"
	"github.com/shopspring/decimal"
)

// Kind identifies the role of an entry in the ledger.
type Kind int

const (
	// Transaction is one leg of a double-entry posting; all legs of one
	// logical event share an ID.
	Transaction Kind = iota
	// PriceUpdate is a dated price observation: one unit of QuantityType
	// costs Cost units of CostType.
	PriceUpdate
	// Benchmark is a synthetic leg tracking a benchmark instrument.
	Benchmark
)

func (k Kind) String() string {
	switch k {
	case Transaction:
		return "Transaction"
	case PriceUpdate:
		return "PriceUpdate"
	case Benchmark:
		return "Benchmark"
	default:
		return "unknown"
	}
}

// ParseKind parses an entry kind from its canonical name.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "Transaction":
		return Transaction, nil
	case "PriceUpdate":
		return PriceUpdate, nil
	case "Benchmark":
		return Benchmark, nil
	default:
		return 0, fmt.Errorf("unknown entry kind: %q", s)
	}
}

// Entry is the atomic ledger record.
//
// Quantity and Cost are nullable: a price row carries no quantity, and a
// plain transaction leg carries no cost. An absent decimal is not the same
// as a zero one.
type Entry struct {
	Date         date.Date
	Kind         Kind
	ID           string
	Name         string
	Account      string
	Quantity     decimal.NullDecimal
	QuantityType string
	Cost         decimal.NullDecimal
	CostType     string
}

// NewTransaction creates a transaction leg without a cost basis.
func NewTransaction(on date.Date, id, name, account string, quantity decimal.Decimal, quantityType string) Entry {
	return Entry{
		Date:         on,
		Kind:         Transaction,
		ID:           id,
		Name:         name,
		Account:      account,
		Quantity:     decimal.NewNullDecimal(quantity),
		QuantityType: quantityType,
	}
}

// NewConversion creates a transaction leg that records a cost basis in
// another instrument, e.g. shares acquired for a cash amount.
func NewConversion(on date.Date, id, name, account string, quantity decimal.Decimal, quantityType string, cost decimal.Decimal, costType string) Entry {
	e := NewTransaction(on, id, name, account, quantity, quantityType)
	e.Cost = decimal.NewNullDecimal(cost)
	e.CostType = costType
	return e
}

// NewPriceUpdate creates a price observation: on 'on', one unit of 'ticker'
// costs 'price' units of 'currency'.
func NewPriceUpdate(on date.Date, ticker string, price decimal.Decimal, currency string) Entry {
	return Entry{
		Date:         on,
		Kind:         PriceUpdate,
		ID:           "PriceUpdate_" + ticker,
		Name:         ticker,
		QuantityType: ticker,
		Cost:         decimal.NewNullDecimal(price),
		CostType:     currency,
	}
}

// quantity returns the entry quantity, treating an absent value as zero.
func (e Entry) quantity() decimal.Decimal {
	if !e.Quantity.Valid {
		return decimal.Zero
	}
	return e.Quantity.Decimal
}

// Check verifies the structural invariants of the entry. It is the only
// hard failure in the package: malformed fields are the responsibility of
// ingestion, but an entry violating these invariants would silently corrupt
// every downstream computation.
func (e Entry) Check() error {
	if e.Kind == Transaction && !e.Quantity.Valid && !e.Cost.Valid {
		return fmt.Errorf("transaction entry %q on %s has neither quantity nor cost", e.ID, e.Date)
	}
	if e.Kind == PriceUpdate && (!e.Cost.Valid || e.QuantityType == "" || e.CostType == "") {
		return fmt.Errorf("price update entry on %s must carry a (quantity type, cost, cost type) edge", e.Date)
	}
	return nil
}
