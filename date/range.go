package date

import (
	"fmt"
	"iter"
)

// Range represents an inclusive range of dates.
type Range struct{ From, To Date }

// NewRange creates a new date range. If 'from' is after 'to' they are swapped.
func NewRange(from, to Date) Range {
	if from.After(to) {
		from, to = to, from
	}
	return Range{From: from, To: to}
}

// Contains reports whether the date is included in the range, boundaries included.
func (r Range) Contains(d Date) bool { return !d.Before(r.From) && !d.After(r.To) }

// Days returns an iterator over each date within the range, inclusive.
func (r Range) Days() iter.Seq[Date] {
	return func(yield func(Date) bool) {
		for d := r.From; !d.After(r.To); d = d.Add(1) {
			if !yield(d) {
				return
			}
		}
	}
}

// Periods returns an iterator over each consecutive range of period 'p'
// containing at least one day of r. The yielded ranges cover full periods,
// so the first may start before r.From and the last may end after r.To.
func (r Range) Periods(p Period) iter.Seq[Range] {
	return func(yield func(Range) bool) {
		for current := r.From; !current.After(r.To); {
			bucket := p.Range(current)
			if !yield(bucket) {
				return
			}
			current = bucket.To.Add(1)
		}
	}
}

// Identifier computes a short unique label for the range when it is a full
// calendar period (e.g. "2024-Q2", "2024-05"), or "from_to" otherwise.
func (r Range) Identifier() string {
	switch {
	case r.From == r.To:
		return r.From.String()
	case r.From == r.From.StartOf(Weekly) && r.To == r.From.EndOf(Weekly):
		_, week := r.From.ISOWeek()
		return fmt.Sprintf("%d-W%02d", r.From.Year(), week)
	case r.From == r.From.StartOf(Monthly) && r.To == r.From.EndOf(Monthly):
		return r.From.Format("2006-01")
	case r.From == r.From.StartOf(Quarterly) && r.To == r.From.EndOf(Quarterly):
		return fmt.Sprintf("%d-Q%d", r.From.Year(), (r.From.Month()-1)/3+1)
	case r.From == r.From.StartOf(Yearly) && r.To == r.From.EndOf(Yearly):
		return r.From.Format("2006")
	default:
		return fmt.Sprintf("%s_%s", r.From, r.To)
	}
}
