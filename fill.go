package holdings

import (
	"errors"
	"fmt"
	"log"

	"github.com/etnz/holdings/date"
)

// DailyHoldingSnapshot is the holding of a symbol at the end of a trading day.
type DailyHoldingSnapshot struct {
	Date         date.Date
	Symbol       string
	Quantity     Quantity // sum of the remaining quantity of the open lots
	CostPerShare Money    // quantity-weighted average cost of the open lots
	CostBasis    Money    // total cost of the open lots, zero when unknown
}

// Cost returns the cost basis of the holding. It falls back to the average
// cost times the quantity when the exact cost basis is unknown.
func (s DailyHoldingSnapshot) Cost() Money {
	if s.CostBasis.IsZero() {
		return s.CostPerShare.Mul(s.Quantity)
	}
	return s.CostBasis
}

// Block holds the snapshots of one trading day, in symbol order. A day
// without any holding has an empty block.
type Block struct {
	Date     date.Date
	Holdings []DailyHoldingSnapshot
}

// Disposal is the result of a FIFO sell: the quantity sold and the cost of the
// lots it consumed.
type Disposal struct {
	Date     date.Date
	Symbol   string
	Quantity Quantity
	Cost     Money
}

// Adjustment records a transaction applied on the next trading day because it
// was dated on a day missing from the calendar.
type Adjustment struct {
	Transaction Transaction
	From, To    date.Date
}

// Fill is the day-by-day evolution of the holdings over a trading calendar.
type Fill struct {
	Window      date.Range
	Blocks      []Block      // exactly one per trading day, in order
	Disposals   []Disposal   // FIFO sells applied within the window
	Adjustments []Adjustment // transactions moved to the next trading day
	Final       Positions    // lots at the end of the last trading day
}

// Snapshots returns all the snapshots ordered by (date, symbol).
func (f *Fill) Snapshots() []DailyHoldingSnapshot {
	var all []DailyHoldingSnapshot
	for _, b := range f.Blocks {
		all = append(all, b.Holdings...)
	}
	return all
}

// On returns the block of a trading day.
func (f *Fill) On(day date.Date) (Block, bool) {
	for _, b := range f.Blocks {
		if b.Date == day {
			return b, true
		}
	}
	return Block{}, false
}

// snapshot returns the block of a day from the current positions.
func (p Positions) snapshot(day date.Date) Block {
	block := Block{Date: day}
	for symbol, lots := range p.Open() {
		block.Holdings = append(block.Holdings, DailyHoldingSnapshot{
			Date:         day,
			Symbol:       symbol,
			Quantity:     lots.Open(),
			CostPerShare: lots.AverageCost(),
			CostBasis:    lots.CostBasis(),
		})
	}
	return block
}

// FillDaily walks the trading calendar and returns the holdings of every
// trading day.
//
// The state before the first trading day is the reconstruction of all the
// transactions strictly before it. Each trading day then applies its own
// transactions, buys before sells. Transactions dated within the calendar
// range on a non trading day follow policy.
func FillDaily(s *Store, cal Calendar, policy CalendarPolicy) (*Fill, error) {
	if cal.Len() == 0 {
		return nil, errors.New("empty trading calendar")
	}
	window := cal.Range()

	positions, err := Reconstruct(s, window.From.Add(-1))
	if err != nil {
		return nil, fmt.Errorf("could not reconstruct positions before %s: %w", window.From, err)
	}

	fill := &Fill{Window: window}

	// dispatch the transactions of the window to the trading day they apply to.
	byDay := make(map[date.Date][]Transaction)
	for tx := range s.Between(window) {
		day := tx.Date
		if !cal.Contains(day) {
			if policy == Reject {
				return nil, &CalendarGapError{Transaction: tx}
			}
			// the window ends on a trading day, so there is always a next one.
			day, _ = cal.Next(tx.Date)
			log.Printf("%v: shift %s %s %s to %v", tx.Date, tx.Kind, tx.Symbol, tx.Quantity, day)
			fill.Adjustments = append(fill.Adjustments, Adjustment{Transaction: tx, From: tx.Date, To: day})
		}
		byDay[day] = append(byDay[day], tx)
	}

	for day := range cal.Days() {
		disposals, err := positions.applyDay(day, byDay[day])
		if err != nil {
			return nil, fmt.Errorf("could not fill holdings on %s: %w", day, err)
		}
		fill.Disposals = append(fill.Disposals, disposals...)
		fill.Blocks = append(fill.Blocks, positions.snapshot(day))
	}
	fill.Final = positions
	return fill, nil
}
