// Package period selects the transactions that feed a ledger query: a flow
// window over an inclusive date range, or a cutoff for point-in-time balances.
package period

import (
	"fmt"
	"time"

	"github.com/cleared-dev/cashbook/internal/model"
)

// KeyFormat is the layout of Period.Key and ParseMonth.
const KeyFormat = "2006-01"

// Period is an inclusive date range.
type Period struct {
	Start time.Time
	End   time.Time
}

// Month returns the calendar month as [first instant, last instant].
func Month(year int, month time.Month, loc *time.Location) Period {
	if loc == nil {
		loc = time.UTC
	}
	start := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	return Period{Start: start, End: start.AddDate(0, 1, 0).Add(-time.Nanosecond)}
}

// MonthOf returns the calendar month containing t, in t's location.
func MonthOf(t time.Time) Period {
	return Month(t.Year(), t.Month(), t.Location())
}

// ParseMonth parses "YYYY-MM" into a month period.
func ParseMonth(s string, loc *time.Location) (Period, error) {
	if loc == nil {
		loc = time.UTC
	}
	t, err := time.ParseInLocation(KeyFormat, s, loc)
	if err != nil {
		return Period{}, fmt.Errorf("parsing month %q: %w", s, err)
	}
	return MonthOf(t), nil
}

// Key returns "YYYY-MM" of the period start.
func (p Period) Key() string {
	return p.Start.Format(KeyFormat)
}

// Contains reports whether Start <= t <= End.
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Start) && !t.After(p.End)
}

// Prev returns the month before the month starting at p.Start.
func (p Period) Prev() Period {
	s := p.Start.AddDate(0, -1, 0)
	return Month(s.Year(), s.Month(), s.Location())
}

// Next returns the month after the month starting at p.Start.
func (p Period) Next() Period {
	s := p.Start.AddDate(0, 1, 0)
	return Month(s.Year(), s.Month(), s.Location())
}

func (p Period) String() string {
	return fmt.Sprintf("%s..%s", p.Start.Format(time.RFC3339), p.End.Format(time.RFC3339))
}

// Months returns consecutive calendar months covering from through to.
// Empty when to precedes from.
func Months(from, to time.Time) []Period {
	if to.Before(from) {
		return nil
	}
	var out []Period
	for p := MonthOf(from); !p.Start.After(to); p = p.Next() {
		out = append(out, p)
	}
	return out
}

// LastMonths returns the n months ending with the month containing end.
func LastMonths(end time.Time, n int) []Period {
	if n <= 0 {
		return nil
	}
	out := make([]Period, n)
	p := MonthOf(end)
	for i := n - 1; i >= 0; i-- {
		out[i] = p
		p = p.Prev()
	}
	return out
}

// Filter selects transactions for a ledger query.
type Filter func(model.Transaction) bool

// All selects every transaction.
func All() Filter {
	return func(model.Transaction) bool { return true }
}

// Flow selects transactions dated within p, bounds inclusive.
func Flow(p Period) Filter {
	return func(tx model.Transaction) bool { return p.Contains(tx.Date) }
}

// Cutoff selects transactions dated at or before t.
func Cutoff(t time.Time) Filter {
	return func(tx model.Transaction) bool { return !tx.Date.After(t) }
}

// Before selects transactions dated strictly before t.
func Before(t time.Time) Filter {
	return func(tx model.Transaction) bool { return tx.Date.Before(t) }
}

// Select returns the transactions accepted by f, preserving order.
func Select(txs []model.Transaction, f Filter) []model.Transaction {
	var out []model.Transaction
	for _, tx := range txs {
		if f(tx) {
			out = append(out, tx)
		}
	}
	return out
}
