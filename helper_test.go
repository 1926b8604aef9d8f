package holdings

import (
	"testing"

	"github.com/etnz/holdings/date"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// USD is a helper for test to create usd money from const
func USD(v float64) Money { return M(v, "USD") }

// NO is a helper for test to create money from const with no currency set
func NO(v float64) Money { return M(v, "") }

// day is a helper for test to parse an ISO date.
func day(s string) date.Date { return date.MustParse(s) }

// decimalOpts compare Quantity, Money and date.Date by value.
var decimalOpts = cmp.Options{
	cmp.Comparer(func(a, b Quantity) bool { return a.Equal(b) }),
	cmp.Comparer(func(a, b Money) bool { return a.Decimal().Equal(b.Decimal()) }),
	cmp.Comparer(func(a, b date.Date) bool { return a == b }),
	cmpopts.IgnoreUnexported(Lot{}, Transaction{}),
}

// newTestStore creates a store or fails the test.
func newTestStore(t *testing.T, txs ...Transaction) *Store {
	t.Helper()
	s, err := NewStore(txs...)
	if err != nil {
		t.Fatalf("NewStore() failed: %v", err)
	}
	return s
}

// newTestCalendar creates a calendar or fails the test.
func newTestCalendar(t *testing.T, days ...string) Calendar {
	t.Helper()
	var ds []date.Date
	for _, d := range days {
		ds = append(ds, day(d))
	}
	cal, err := NewCalendar(ds...)
	if err != nil {
		t.Fatalf("NewCalendar() failed: %v", err)
	}
	return cal
}
