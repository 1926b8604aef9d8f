package holdings

import (
	"errors"
	"fmt"

	"github.com/etnz/holdings/date"
)

// Sentinel errors, use errors.Is to test the category of an error returned by
// this package.
var (
	ErrMalformedTransaction = errors.New("malformed transaction")
	ErrInsufficientLots     = errors.New("insufficient lots")
	ErrMissingPriceData     = errors.New("missing price data")
	ErrCalendarGap          = errors.New("calendar gap")
	ErrCalendarOrder        = errors.New("calendar is not strictly increasing")
)

// MalformedTransactionError reports a transaction that cannot be parsed or is
// invalid. It is fatal: bad input invalidates all downstream lot states.
type MalformedTransactionError struct {
	Line  int    // 1-based input line, 0 when unknown
	Field string // faulty field
	Value string // faulty value
	Err   error
}

func (e *MalformedTransactionError) Error() string {
	msg := fmt.Sprintf("invalid %s %q", e.Field, e.Value)
	if e.Line > 0 {
		msg = fmt.Sprintf("line %d: %s", e.Line, msg)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *MalformedTransactionError) Is(target error) bool { return target == ErrMalformedTransaction }
func (e *MalformedTransactionError) Unwrap() error        { return e.Err }

// InsufficientLotsError reports a sell of more shares than the lots open for
// its symbol on its date.
type InsufficientLotsError struct {
	Symbol    string
	Date      date.Date
	Requested Quantity
	Available Quantity
}

// Shortfall returns the quantity that could not be matched.
func (e *InsufficientLotsError) Shortfall() Quantity { return e.Requested.Sub(e.Available) }

func (e *InsufficientLotsError) Error() string {
	return fmt.Sprintf("on %s, cannot sell %v of %s, open lots hold only %v (shortfall %v)",
		e.Date, e.Requested, e.Symbol, e.Available, e.Shortfall())
}

func (e *InsufficientLotsError) Is(target error) bool { return target == ErrInsufficientLots }

// Gap is a holding that could not be valued because a close price, of the
// symbol or of the benchmark, is missing on that date.
type Gap struct {
	Date   date.Date
	Symbol string // the symbol whose close is missing
	Holder string // the holding that was excluded, equal to Symbol unless the benchmark is missing
}

func (g Gap) Error() string {
	if g.Holder != "" && g.Holder != g.Symbol {
		return fmt.Sprintf("no close for benchmark %s on %s to value %s", g.Symbol, g.Date, g.Holder)
	}
	return fmt.Sprintf("no close for %s on %s", g.Symbol, g.Date)
}

func (g Gap) Is(target error) bool { return target == ErrMissingPriceData }

// CalendarGapError reports a transaction dated on a day missing from the
// trading calendar, under the Reject policy.
type CalendarGapError struct {
	Transaction Transaction
}

func (e *CalendarGapError) Error() string {
	t := e.Transaction
	return fmt.Sprintf("%s %s of %s on %s: not a trading day", t.Kind, t.Quantity, t.Symbol, t.Date)
}

func (e *CalendarGapError) Is(target error) bool { return target == ErrCalendarGap }
