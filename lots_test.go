package holdings

import (
	"errors"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestApplySell(t *testing.T) {
	b1 := newLot(NewBuy(day("2024-01-02"), "AAPL", Q(10), USD(5)))
	b2 := newLot(NewBuy(day("2024-01-03"), "AAPL", Q(10), USD(7)))
	b2.seq = 1

	testCases := []struct {
		name          string
		lots          Lots
		sell          Transaction
		wantRemaining []Quantity
		wantCost      Money
	}{
		{
			name:          "oldest lot first",
			lots:          Lots{b1, b2},
			sell:          NewSell(day("2024-01-04"), "AAPL", Q(15)),
			wantRemaining: []Quantity{Q(0), Q(5)},
			wantCost:      USD(85), // 10*5 + 5*7
		},
		{
			name:          "lots out of order",
			lots:          Lots{b2, b1},
			sell:          NewSell(day("2024-01-04"), "AAPL", Q(15)),
			wantRemaining: []Quantity{Q(5), Q(0)},
			wantCost:      USD(85),
		},
		{
			name:          "partial first lot",
			lots:          Lots{b1, b2},
			sell:          NewSell(day("2024-01-04"), "AAPL", Q(4)),
			wantRemaining: []Quantity{Q(6), Q(10)},
			wantCost:      USD(20),
		},
		{
			name:          "whole position",
			lots:          Lots{b1, b2},
			sell:          NewSell(day("2024-01-04"), "AAPL", Q(20)),
			wantRemaining: []Quantity{Q(0), Q(0)},
			wantCost:      USD(120),
		},
		{
			name:          "later lots are not eligible",
			lots:          Lots{b1, b2},
			sell:          NewSell(day("2024-01-02"), "AAPL", Q(10)),
			wantRemaining: []Quantity{Q(0), Q(10)},
			wantCost:      USD(50),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			before := slices.Clone(tc.lots)
			got, cost, err := ApplySell(tc.lots, tc.sell)
			if err != nil {
				t.Fatalf("ApplySell() failed: %v", err)
			}
			var remaining []Quantity
			for _, lot := range got {
				remaining = append(remaining, lot.Remaining)
			}
			if diff := cmp.Diff(tc.wantRemaining, remaining, decimalOpts); diff != "" {
				t.Errorf("ApplySell() remaining mismatch (-want +got):\n%s", diff)
			}
			if !cost.Equal(tc.wantCost) {
				t.Errorf("ApplySell() cost = %v, want %v", cost, tc.wantCost)
			}
			if diff := cmp.Diff(before, tc.lots, decimalOpts); diff != "" {
				t.Errorf("ApplySell() modified its input (-before +after):\n%s", diff)
			}
		})
	}
}

func TestApplySell_SameDayTie(t *testing.T) {
	first := newLot(NewBuy(day("2024-01-02"), "AAPL", Q(10), USD(5)))
	second := newLot(NewBuy(day("2024-01-02"), "AAPL", Q(10), USD(7)))
	first.seq, second.seq = 3, 4

	got, cost, err := ApplySell(Lots{second, first}, NewSell(day("2024-01-02"), "AAPL", Q(12)))
	if err != nil {
		t.Fatalf("ApplySell() failed: %v", err)
	}
	if !cost.Equal(USD(64)) { // 10*5 + 2*7
		t.Errorf("ApplySell() cost = %v, want $64.00", cost)
	}
	if !got[0].Remaining.Equal(Q(8)) || !got[1].Remaining.Equal(Q(0)) {
		t.Errorf("ApplySell() remaining = %v, %v, want 8, 0", got[0].Remaining, got[1].Remaining)
	}
}

func TestApplySell_Oversell(t *testing.T) {
	lots := Lots{
		newLot(NewBuy(day("2024-01-02"), "AAPL", Q(10), USD(5))),
		newLot(NewBuy(day("2024-01-03"), "AAPL", Q(10), USD(7))),
	}
	before := slices.Clone(lots)

	got, cost, err := ApplySell(lots, NewSell(day("2024-01-04"), "AAPL", Q(25)))
	if !errors.Is(err, ErrInsufficientLots) {
		t.Fatalf("ApplySell() error = %v, want %v", err, ErrInsufficientLots)
	}
	var ile *InsufficientLotsError
	if !errors.As(err, &ile) {
		t.Fatalf("ApplySell() error is %T, want *InsufficientLotsError", err)
	}
	if !ile.Shortfall().Equal(Q(5)) {
		t.Errorf("Shortfall() = %v, want 5", ile.Shortfall())
	}
	if !cost.IsZero() {
		t.Errorf("ApplySell() cost = %v, want zero", cost)
	}
	if diff := cmp.Diff(before, got, decimalOpts); diff != "" {
		t.Errorf("ApplySell() returned modified lots (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(before, lots, decimalOpts); diff != "" {
		t.Errorf("ApplySell() modified its input (-want +got):\n%s", diff)
	}
}

func TestApplySell_NotASell(t *testing.T) {
	lots := Lots{newLot(NewBuy(day("2024-01-02"), "AAPL", Q(10), USD(5)))}
	if _, _, err := ApplySell(lots, NewBuy(day("2024-01-03"), "AAPL", Q(1), USD(5))); err == nil {
		t.Error("ApplySell() with a buy succeeded, want an error")
	}
	if _, _, err := ApplySell(lots, NewSell(day("2024-01-03"), "MSFT", Q(1))); err == nil || errors.Is(err, ErrInsufficientLots) {
		t.Errorf("ApplySell() of another symbol error = %v, want a mismatch error", err)
	}
}

func TestLots_AverageCost(t *testing.T) {
	lots := Lots{
		newLot(NewBuy(day("2024-01-02"), "AAPL", Q(10), USD(5))),
		newLot(NewBuy(day("2024-01-03"), "AAPL", Q(30), USD(7))),
	}
	if got, want := lots.Open(), Q(40); !got.Equal(want) {
		t.Errorf("Open() = %v, want %v", got, want)
	}
	if got, want := lots.CostBasis(), USD(260); !got.Equal(want) {
		t.Errorf("CostBasis() = %v, want %v", got, want)
	}
	if got, want := lots.AverageCost(), USD(6.5); !got.Equal(want) {
		t.Errorf("AverageCost() = %v, want %v", got, want)
	}
	if got := (Lots{}).AverageCost(); !got.IsZero() {
		t.Errorf("AverageCost() of no lots = %v, want zero", got)
	}
}
