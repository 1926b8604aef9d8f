package holdings

import (
	"errors"
	"fmt"
	"strings"

	"github.com/etnz/holdings/date"
)

// Kind identifies what a transaction does to the lots of its symbol.
type Kind int

const (
	// Buy opens a new lot.
	Buy Kind = iota + 1
	// SellFIFO consumes the oldest open lots first.
	SellFIFO
)

func (k Kind) String() string {
	switch k {
	case Buy:
		return "Buy"
	case SellFIFO:
		return "Sell.FIFO"
	default:
		return "unknown"
	}
}

// ParseKind parses a transaction type. "Sell.FIFO" is the FIFO sell, any other
// type containing "Buy" is a buy ("Buy", "Buy.Open", ...).
func ParseKind(s string) (Kind, error) {
	s = strings.TrimSpace(s)
	switch {
	case s == "Sell.FIFO":
		return SellFIFO, nil
	case strings.Contains(s, "Buy"):
		return Buy, nil
	default:
		return 0, fmt.Errorf("unknown transaction type %q", s)
	}
}

// Transaction is a single buy or FIFO sell of a security.
//
// Transactions are values, they are never modified once loaded in a Store.
type Transaction struct {
	Symbol   string
	Kind     Kind
	Date     date.Date
	Quantity Quantity
	Price    Money // cost per share of a buy, zero when unknown
	Line     int   // 1-based line in the input, 0 when not decoded from a file

	seq int // position in the store, tie-breaker for same-day transactions
}

// NewBuy creates a new Buy transaction. price can be the zero Money when unknown.
func NewBuy(day date.Date, symbol string, quantity Quantity, price Money) Transaction {
	return Transaction{Symbol: symbol, Kind: Buy, Date: day, Quantity: quantity, Price: price}
}

// NewSell creates a new FIFO sell transaction.
func NewSell(day date.Date, symbol string, quantity Quantity) Transaction {
	return Transaction{Symbol: symbol, Kind: SellFIFO, Date: day, Quantity: quantity}
}

// HasPrice reports whether the transaction carries a cost per share.
func (t Transaction) HasPrice() bool { return !t.Price.IsZero() }

func (t Transaction) String() string {
	if t.HasPrice() {
		return fmt.Sprintf("%s %s %s %s@%s", t.Date, t.Kind, t.Symbol, t.Quantity, t.Price)
	}
	return fmt.Sprintf("%s %s %s %s", t.Date, t.Kind, t.Symbol, t.Quantity)
}

// Validate checks the transaction's fields and returns a normalized copy.
// Sells recorded with a negative quantity are turned positive.
func (t Transaction) Validate() (Transaction, error) {
	malformed := func(field, value string, err error) (Transaction, error) {
		return t, &MalformedTransactionError{Line: t.Line, Field: field, Value: value, Err: err}
	}
	if strings.TrimSpace(t.Symbol) == "" {
		return malformed("symbol", t.Symbol, errors.New("symbol is missing"))
	}
	t.Symbol = strings.TrimSpace(t.Symbol)
	if t.Date.IsZero() {
		return malformed("date", "", errors.New("date is missing"))
	}
	switch t.Kind {
	case Buy:
		if !t.Quantity.IsPositive() {
			return malformed("quantity", t.Quantity.String(), errors.New("buy quantity must be positive"))
		}
	case SellFIFO:
		if t.Quantity.IsZero() {
			return malformed("quantity", t.Quantity.String(), errors.New("sell quantity cannot be zero"))
		}
		t.Quantity = t.Quantity.Abs()
	default:
		return malformed("type", t.Kind.String(), errors.New("unsupported transaction type"))
	}
	if t.Price.IsNegative() {
		return malformed("price", t.Price.Decimal().String(), errors.New("price must be positive"))
	}
	return t, nil
}
