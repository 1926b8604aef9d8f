package holdings

import (
	"fmt"
	"slices"

	"github.com/etnz/holdings/date"
)

// Lot represents a single purchase of a security, used for cost basis calculations.
//
// A lot is only ever reduced by FIFO matching. Fully sold lots are kept with a
// zero remaining quantity.
type Lot struct {
	Symbol       string
	Opened       date.Date
	Original     Quantity
	Remaining    Quantity
	CostPerShare Money

	seq int // opening order, tie-breaker for lots opened the same day
}

// newLot opens a lot for a buy transaction.
func newLot(buy Transaction) Lot {
	return Lot{
		Symbol:       buy.Symbol,
		Opened:       buy.Date,
		Original:     buy.Quantity,
		Remaining:    buy.Quantity,
		CostPerShare: buy.Price,
		seq:          buy.seq,
	}
}

// IsOpen reports whether some shares of the lot are still held.
func (l Lot) IsOpen() bool { return l.Remaining.IsPositive() }

// Cost returns the cost of the remaining shares.
func (l Lot) Cost() Money { return l.CostPerShare.Mul(l.Remaining) }

// Lots are the lots of a single symbol, in opening order.
type Lots []Lot

// Open returns the total remaining quantity.
func (l Lots) Open() Quantity {
	var total Quantity
	for _, lot := range l {
		total = total.Add(lot.Remaining)
	}
	return total
}

// CostBasis returns the total cost of the remaining shares.
func (l Lots) CostBasis() Money {
	var total Money
	for _, lot := range l {
		total = total.Add(lot.Cost())
	}
	return total
}

// AverageCost returns the quantity-weighted average cost per share of the
// remaining shares, or zero if none remains.
func (l Lots) AverageCost() Money {
	open := l.Open()
	if open.IsZero() {
		return Money{}
	}
	return l.CostBasis().Div(open)
}

// fifoOrder returns the indexes of the lots, oldest first, ties broken by
// opening order.
func (l Lots) fifoOrder() []int {
	order := make([]int, len(l))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(i, j int) int {
		if c := l[i].Opened.Compare(l[j].Opened); c != 0 {
			return c
		}
		return l[i].seq - l[j].seq
	})
	return order
}

// ApplySell matches a FIFO sell against lots: the oldest eligible lots are
// consumed first. Eligible lots are opened on or before the sell date and
// still open.
//
// It returns the updated lots and the cost of the sold shares. lots is never
// modified: when the eligible quantity cannot cover the sell, the error is an
// *InsufficientLotsError and lots is returned as is.
func ApplySell(lots Lots, sell Transaction) (Lots, Money, error) {
	if sell.Kind != SellFIFO {
		return lots, Money{}, fmt.Errorf("cannot match a %s transaction against lots", sell.Kind)
	}

	for _, lot := range lots {
		if lot.Symbol != sell.Symbol {
			return lots, Money{}, fmt.Errorf("cannot match a sell of %s against a lot of %s", sell.Symbol, lot.Symbol)
		}
	}

	order := lots.fifoOrder()
	eligible := func(lot Lot) bool {
		return lot.IsOpen() && !lot.Opened.After(sell.Date)
	}

	var available Quantity
	for _, i := range order {
		if eligible(lots[i]) {
			available = available.Add(lots[i].Remaining)
		}
	}
	if available.LessThan(sell.Quantity) {
		return lots, Money{}, &InsufficientLotsError{
			Symbol:    sell.Symbol,
			Date:      sell.Date,
			Requested: sell.Quantity,
			Available: available,
		}
	}

	updated := slices.Clone(lots)
	var cost Money
	toSell := sell.Quantity
	for _, i := range order {
		if toSell.IsZero() {
			break
		}
		if !eligible(updated[i]) {
			continue
		}
		consumed := updated[i].Remaining.Min(toSell)
		updated[i].Remaining = updated[i].Remaining.Sub(consumed)
		toSell = toSell.Sub(consumed)
		cost = cost.Add(updated[i].CostPerShare.Mul(consumed))
	}
	return updated, cost, nil
}
