package holdings

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestMoney_String(t *testing.T) {
	testCases := []struct {
		money      Money
		want       string
		wantSigned string
	}{
		{USD(1234.5), "$1,234.50", "+$1,234.50"},
		{USD(-3), "-$3.00", "-$3.00"},
		{USD(0.001), "$0.00", "-"},
		{NO(7), "7.00", "+7.00"},
	}
	for _, tc := range testCases {
		t.Run(tc.want, func(t *testing.T) {
			if got := tc.money.String(); got != tc.want {
				t.Errorf("String() = %q, want %q", got, tc.want)
			}
			if got := tc.money.SignedString(); got != tc.wantSigned {
				t.Errorf("SignedString() = %q, want %q", got, tc.wantSigned)
			}
		})
	}
}

func TestMoney_Arithmetic(t *testing.T) {
	if got := NO(2).Add(USD(3)); !got.Equal(USD(5)) {
		t.Errorf("Add() = %v, want $5.00: no currency is weak", got)
	}
	if got := USD(100).Ratio(USD(80)); !got.Equal(decimal.RequireFromString("1.25")) {
		t.Errorf("Ratio() = %v, want 1.25", got)
	}
	if got := USD(100).Ratio(Money{}); !got.IsZero() {
		t.Errorf("Ratio() by zero = %v, want 0", got)
	}
	if got := USD(1000).Scale(decimal.RequireFromString("0.05")); !got.Equal(USD(50)) {
		t.Errorf("Scale() = %v, want $50.00", got)
	}
	if got := USD(10).Mul(Q(3)).Div(Q(4)); !got.Equal(USD(7.5)) {
		t.Errorf("Mul().Div() = %v, want $7.50", got)
	}

	defer func() {
		if recover() == nil {
			t.Error("Add() of two currencies did not panic")
		}
	}()
	USD(1).Add(M(1, "EUR"))
}

func TestParseMoney(t *testing.T) {
	for _, s := range []string{"1234.5", "$1,234.50", " 1234.50 "} {
		m, err := ParseMoney(s, "USD")
		if err != nil {
			t.Fatalf("ParseMoney(%q) failed: %v", s, err)
		}
		if !m.Equal(USD(1234.5)) {
			t.Errorf("ParseMoney(%q) = %v, want $1,234.50", s, m)
		}
	}
	if _, err := ParseMoney("12a", "USD"); err == nil {
		t.Error("ParseMoney(12a) succeeded, want an error")
	}
}

func TestPercent(t *testing.T) {
	p := NewPercent(decimal.RequireFromString("0.0525"))
	if !p.Equal(5.25) {
		t.Errorf("NewPercent(0.0525) = %v, want 5.25%%", p)
	}
	if got := p.SignedString(); got != "+5.25%" {
		t.Errorf("SignedString() = %q, want +5.25%%", got)
	}
	if got := NewPercent(decimal.Zero).SignedString(); got != "-" {
		t.Errorf("SignedString() of zero = %q, want -", got)
	}
}

func TestParseKindAndPolicy(t *testing.T) {
	for s, want := range map[string]Kind{"Buy": Buy, "Buy.Limit": Buy, " Sell.FIFO ": SellFIFO} {
		if got, err := ParseKind(s); err != nil || got != want {
			t.Errorf("ParseKind(%q) = %v, %v, want %v", s, got, err, want)
		}
	}
	if _, err := ParseKind("Sell"); err == nil {
		t.Error("ParseKind(Sell) succeeded, want an error")
	}
	for s, want := range map[string]CalendarPolicy{"": ShiftForward, "shift": ShiftForward, "reject": Reject} {
		if got, err := ParseCalendarPolicy(s); err != nil || got != want {
			t.Errorf("ParseCalendarPolicy(%q) = %v, %v, want %v", s, got, err, want)
		}
	}
	if _, err := ParseCalendarPolicy("skip"); err == nil {
		t.Error("ParseCalendarPolicy(skip) succeeded, want an error")
	}
}
