package holdings

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestReconstruct(t *testing.T) {
	s := newTestStore(t,
		NewBuy(day("2024-01-02"), "AAPL", Q(10), USD(5)),
		NewBuy(day("2024-01-03"), "MSFT", Q(3), USD(300)),
		NewBuy(day("2024-01-04"), "AAPL", Q(10), USD(7)),
		NewSell(day("2024-01-05"), "AAPL", Q(15)),
		NewSell(day("2024-01-08"), "MSFT", Q(3)),
	)

	testCases := []struct {
		name string
		asOf string
		want map[string]Quantity
	}{
		{name: "before any transaction", asOf: "2024-01-01", want: map[string]Quantity{}},
		{name: "first buy", asOf: "2024-01-02", want: map[string]Quantity{"AAPL": Q(10)}},
		{name: "two symbols", asOf: "2024-01-04", want: map[string]Quantity{"AAPL": Q(20), "MSFT": Q(3)}},
		{name: "after the fifo sell", asOf: "2024-01-05", want: map[string]Quantity{"AAPL": Q(5), "MSFT": Q(3)}},
		{name: "sold out", asOf: "2024-02-01", want: map[string]Quantity{"AAPL": Q(5)}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			positions, err := Reconstruct(s, day(tc.asOf))
			if err != nil {
				t.Fatalf("Reconstruct() failed: %v", err)
			}
			got := make(map[string]Quantity)
			for symbol, lots := range positions.Open() {
				got[symbol] = lots.Open()
			}
			if diff := cmp.Diff(tc.want, got, decimalOpts); diff != "" {
				t.Errorf("Reconstruct() open quantities mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestReconstruct_Idempotent(t *testing.T) {
	s := newTestStore(t,
		NewBuy(day("2024-01-02"), "AAPL", Q(10), USD(5)),
		NewBuy(day("2024-01-03"), "AAPL", Q(10), USD(7)),
		NewSell(day("2024-01-04"), "AAPL", Q(12)),
	)
	first, err := Reconstruct(s, day("2024-01-31"))
	if err != nil {
		t.Fatalf("Reconstruct() failed: %v", err)
	}
	second, err := Reconstruct(s, day("2024-01-31"))
	if err != nil {
		t.Fatalf("Reconstruct() failed: %v", err)
	}
	if diff := cmp.Diff(first, second, decimalOpts); diff != "" {
		t.Errorf("Reconstruct() is not deterministic (-first +second):\n%s", diff)
	}
}

func TestReconstruct_SameDayBuyThenSell(t *testing.T) {
	// the sell comes first in the input, buys of the day are applied before.
	s := newTestStore(t,
		NewSell(day("2024-01-02"), "AAPL", Q(4)),
		NewBuy(day("2024-01-02"), "AAPL", Q(10), USD(100)),
	)
	positions, err := Reconstruct(s, day("2024-01-02"))
	if err != nil {
		t.Fatalf("Reconstruct() failed: %v", err)
	}
	if got := positions.Quantity("AAPL"); !got.Equal(Q(6)) {
		t.Errorf("Quantity(AAPL) = %v, want 6", got)
	}
}

func TestReconstruct_Oversell(t *testing.T) {
	s := newTestStore(t,
		NewBuy(day("2024-01-02"), "AAPL", Q(10), USD(100)),
		NewSell(day("2024-01-03"), "AAPL", Q(11)),
	)
	if _, err := Reconstruct(s, day("2024-01-03")); !errors.Is(err, ErrInsufficientLots) {
		t.Errorf("Reconstruct() error = %v, want %v", err, ErrInsufficientLots)
	}
	// the oversell is out of reach before its date.
	if _, err := Reconstruct(s, day("2024-01-02")); err != nil {
		t.Errorf("Reconstruct() before the oversell failed: %v", err)
	}
}
