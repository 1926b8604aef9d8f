package holdings

import (
	"iter"
	"maps"
	"slices"

	"github.com/etnz/holdings/date"
)

// Positions maps each symbol to its lots, in opening order.
type Positions map[string]Lots

// Symbols returns the sorted list of symbols that ever had a lot.
func (p Positions) Symbols() []string {
	return slices.Sorted(maps.Keys(p))
}

// Open returns an iterator over the symbols with a nonzero open quantity, in
// symbol order.
func (p Positions) Open() iter.Seq2[string, Lots] {
	return func(yield func(string, Lots) bool) {
		for _, symbol := range p.Symbols() {
			lots := p[symbol]
			if lots.Open().IsZero() {
				continue
			}
			if !yield(symbol, lots) {
				return
			}
		}
	}
}

// Lots returns the lots of a symbol.
func (p Positions) Lots(symbol string) Lots { return p[symbol] }

// Quantity returns the open quantity of a symbol.
func (p Positions) Quantity(symbol string) Quantity { return p[symbol].Open() }

// buy opens a new lot.
func (p Positions) buy(tx Transaction) {
	p[tx.Symbol] = append(p[tx.Symbol], newLot(tx))
}

// sell applies a FIFO sell on day, the lots are left untouched on error.
// Lots are matched on the sell's own date, which is earlier than day when the
// sell was shifted.
func (p Positions) sell(day date.Date, tx Transaction) (Disposal, error) {
	updated, cost, err := ApplySell(p[tx.Symbol], tx)
	if err != nil {
		return Disposal{}, err
	}
	p[tx.Symbol] = updated
	return Disposal{Date: day, Symbol: tx.Symbol, Quantity: tx.Quantity, Cost: cost}, nil
}

// applyDay applies the transactions of a single trading day: buys first, so
// that a lot bought during the day can be sold the same day, then sells, each
// group in replay order.
func (p Positions) applyDay(day date.Date, txs []Transaction) ([]Disposal, error) {
	for _, tx := range txs {
		if tx.Kind == Buy {
			p.buy(tx)
		}
	}
	var disposals []Disposal
	for _, tx := range txs {
		if tx.Kind != SellFIFO {
			continue
		}
		d, err := p.sell(day, tx)
		if err != nil {
			return disposals, err
		}
		disposals = append(disposals, d)
	}
	return disposals, nil
}

// Reconstruct replays every transaction dated on or before asOf and returns
// the resulting lots of each symbol.
//
// Transactions of a same day are applied with the same rule as the daily fill
// (buys before sells), so Reconstruct(s, d) is the state FillDaily reaches at
// the end of d.
func Reconstruct(s *Store, asOf date.Date) (Positions, error) {
	positions, _, err := replay(s.Until(asOf))
	return positions, err
}

// replay applies a chronological sequence of transactions, day by day.
func replay(txs iter.Seq[Transaction]) (Positions, []Disposal, error) {
	positions := make(Positions)
	var disposals []Disposal
	var day []Transaction
	flush := func() error {
		if len(day) == 0 {
			return nil
		}
		d, err := positions.applyDay(day[0].Date, day)
		disposals = append(disposals, d...)
		day = day[:0]
		return err
	}
	for tx := range txs {
		if len(day) > 0 && day[0].Date != tx.Date {
			if err := flush(); err != nil {
				return nil, nil, err
			}
		}
		day = append(day, tx)
	}
	if err := flush(); err != nil {
		return nil, nil, err
	}
	return positions, disposals, nil
}
