package ledgerval

import (
	"iter"
	"sort"
	"strings"

	"github.com/okonma/ledgerval/date"
)

// Ledger is an ordered in-memory collection of entries, the shared
// substrate every other component reads.
//
// Entries are immutable once appended: the engine only derives new rows
// and tables from them. A Ledger is always in chronological order.
type Ledger struct {
	entries []Entry
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{entries: make([]Entry, 0)}
}

// Append adds entries to the ledger, maintaining chronological order.
// It fails on the first entry violating the structural invariants and
// leaves the ledger unchanged in that case.
func (l *Ledger) Append(entries ...Entry) error {
	for _, e := range entries {
		if err := e.Check(); err != nil {
			return err
		}
	}
	l.entries = append(l.entries, entries...)
	l.stableSort()
	return nil
}

// stableSort sorts the ledger by date. Entries on the same day keep their
// original relative order.
func (l *Ledger) stableSort() {
	sort.SliceStable(l.entries, func(i, j int) bool {
		return l.entries[i].Date.Before(l.entries[j].Date)
	})
}

// Len returns the number of entries in the ledger.
func (l *Ledger) Len() int { return len(l.entries) }

// Entries returns an iterator over entries in chronological order.
// When predicates are given, an entry is yielded if any of them accepts it.
func (l *Ledger) Entries(predicates ...func(Entry) bool) iter.Seq2[int, Entry] {
	return func(yield func(int, Entry) bool) {
		for i, e := range l.entries {
			if len(predicates) > 0 {
				accept := false
				for _, p := range predicates {
					if p(e) {
						accept = true
						break
					}
				}
				if !accept {
					continue
				}
			}
			if !yield(i, e) {
				return
			}
		}
	}
}

// All returns a copy of all entries in chronological order.
func (l *Ledger) All() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// PriceUpdates returns the price observation entries in chronological order.
func (l *Ledger) PriceUpdates() []Entry {
	var out []Entry
	for _, e := range l.entries {
		if e.Kind == PriceUpdate {
			out = append(out, e)
		}
	}
	return out
}

// TransactionIDs returns an iterator over the distinct ids of transaction
// entries, in first-observed order.
func (l *Ledger) TransactionIDs() iter.Seq[string] {
	return func(yield func(string) bool) {
		seen := make(map[string]struct{})
		for _, e := range l.entries {
			if e.Kind != Transaction {
				continue
			}
			if _, ok := seen[e.ID]; ok {
				continue
			}
			seen[e.ID] = struct{}{}
			if !yield(e.ID) {
				return
			}
		}
	}
}

// Legs returns all transaction entries sharing the given id.
func (l *Ledger) Legs(id string) []Entry {
	var out []Entry
	for _, e := range l.entries {
		if e.Kind == Transaction && e.ID == id {
			out = append(out, e)
		}
	}
	return out
}

// OldestDate returns the date of the earliest entry, or the zero Date for
// an empty ledger.
func (l *Ledger) OldestDate() date.Date {
	if len(l.entries) == 0 {
		return date.Date{}
	}
	return l.entries[0].Date
}

// NewestDate returns the date of the latest entry, or the zero Date for an
// empty ledger.
func (l *Ledger) NewestDate() date.Date {
	if len(l.entries) == 0 {
		return date.Date{}
	}
	return l.entries[len(l.entries)-1].Date
}

// ByKind returns a predicate that filters entries by kind.
func ByKind(k Kind) func(Entry) bool {
	return func(e Entry) bool { return e.Kind == k }
}

// ByAccount returns a predicate that filters entries by exact account path.
func ByAccount(account string) func(Entry) bool {
	return func(e Entry) bool { return e.Account == account }
}

// ByIDContains returns a predicate that filters entries whose id contains
// the given substring.
func ByIDContains(sub string) func(Entry) bool {
	return func(e Entry) bool { return strings.Contains(e.ID, sub) }
}
