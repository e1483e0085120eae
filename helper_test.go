package ledgerval

import (
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/okonma/ledgerval/date"
	"github.com/shopspring/decimal"
)

// dec is a helper for tests to build a decimal from a constant.
func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// nd is a helper for tests to build a present nullable decimal from a constant.
func nd(s string) decimal.NullDecimal { return decimal.NewNullDecimal(dec(s)) }

// day is a helper for tests to parse a date literal.
func day(s string) date.Date { return date.MustParse(s) }

// dateCmp lets cmp compare date.Date values, which are comparable but have
// unexported fields.
var dateCmp = cmpopts.EquateComparable(date.Date{})

// decimalCmp compares decimals by value, not by internal representation:
// 1.10 and 1.1 are the same number.
var decimalCmp = cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) })

var nullDecimalCmp = cmp.Comparer(func(a, b decimal.NullDecimal) bool {
	if a.Valid != b.Valid {
		return false
	}
	return !a.Valid || a.Decimal.Equal(b.Decimal)
})
