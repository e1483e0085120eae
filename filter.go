package ledgerval

import (
	"strings"

	"github.com/okonma/ledgerval/date"
	"github.com/shopspring/decimal"
)

// FilterType is the comparison applied by a Filter.
type FilterType int

const (
	// FilterUnknown is a pass-through: callers composing filter specs from
	// external input should degrade gracefully, not fail the pipeline.
	FilterUnknown FilterType = iota
	// FilterMin keeps rows where column >= value.
	FilterMin
	// FilterMax keeps rows where column <= value.
	FilterMax
	// FilterContains keeps rows where column contains value as a substring.
	FilterContains
	// FilterEquals keeps rows where column == value.
	FilterEquals
)

func (t FilterType) String() string {
	switch t {
	case FilterMin:
		return "Min"
	case FilterMax:
		return "Max"
	case FilterContains:
		return "Contains"
	case FilterEquals:
		return "Equals"
	default:
		return "Unknown"
	}
}

// ParseFilterType parses a filter type name. Unrecognized names map to
// FilterUnknown rather than an error.
func ParseFilterType(s string) FilterType {
	switch s {
	case "Min":
		return FilterMin
	case "Max":
		return FilterMax
	case "Contains":
		return FilterContains
	case "Equals":
		return FilterEquals
	default:
		return FilterUnknown
	}
}

// Filter is one predicate of the pipeline: a comparison of an entry column
// against a literal value. Column names are the CSV header names
// (Date, Type, ID, Name, Account, Quantity, Quantity_Type, Cost, Cost_Type).
type Filter struct {
	Type   FilterType
	Column string
	Value  string
}

// Apply narrows entries through the filters sequentially (logical AND).
// An empty filter list is the identity. A filter with an unknown type or an
// unknown column is a pass-through.
func Apply(entries []Entry, filters []Filter) []Entry {
	out := entries
	for _, f := range filters {
		if f.passthrough() {
			continue
		}
		kept := make([]Entry, 0, len(out))
		for _, e := range out {
			if f.match(e) {
				kept = append(kept, e)
			}
		}
		out = kept
	}
	return out
}

func (f Filter) passthrough() bool {
	if f.Type == FilterUnknown {
		return true
	}
	switch f.Column {
	case "Date", "Type", "ID", "Name", "Account", "Quantity", "Quantity_Type", "Cost", "Cost_Type":
		return false
	default:
		return true
	}
}

func (f Filter) match(e Entry) bool {
	switch f.Column {
	case "Date":
		want, err := date.Parse(f.Value)
		if err != nil {
			return false
		}
		return f.compareDate(e.Date, want)
	case "Quantity":
		return f.compareDecimal(e.Quantity)
	case "Cost":
		return f.compareDecimal(e.Cost)
	default:
		return f.compareString(columnString(e, f.Column))
	}
}

func (f Filter) compareDate(got, want date.Date) bool {
	switch f.Type {
	case FilterMin:
		return !got.Before(want)
	case FilterMax:
		return !got.After(want)
	case FilterContains:
		return strings.Contains(got.String(), want.String())
	case FilterEquals:
		return got == want
	}
	return true
}

// compareDecimal compares a nullable decimal column. An absent value never
// matches, mirroring how comparisons against missing cells behave in the
// source tables.
func (f Filter) compareDecimal(got decimal.NullDecimal) bool {
	if !got.Valid {
		return false
	}
	switch f.Type {
	case FilterContains:
		return strings.Contains(got.Decimal.String(), f.Value)
	}
	want, err := decimal.NewFromString(f.Value)
	if err != nil {
		return false
	}
	switch f.Type {
	case FilterMin:
		return got.Decimal.GreaterThanOrEqual(want)
	case FilterMax:
		return got.Decimal.LessThanOrEqual(want)
	case FilterEquals:
		return got.Decimal.Equal(want)
	}
	return true
}

func (f Filter) compareString(got string) bool {
	switch f.Type {
	case FilterMin:
		return got >= f.Value
	case FilterMax:
		return got <= f.Value
	case FilterContains:
		return strings.Contains(got, f.Value)
	case FilterEquals:
		return got == f.Value
	}
	return true
}

func columnString(e Entry, column string) string {
	switch column {
	case "Type":
		return e.Kind.String()
	case "ID":
		return e.ID
	case "Name":
		return e.Name
	case "Account":
		return e.Account
	case "Quantity_Type":
		return e.QuantityType
	case "Cost_Type":
		return e.CostType
	default:
		return ""
	}
}
