package holdings

import (
	"maps"
	"slices"

	"github.com/etnz/holdings/date"
	"github.com/shopspring/decimal"
)

// Series is the chronological adjusted close prices of a single symbol.
type Series struct {
	symbol string
	cur    string
	closes date.History[decimal.Decimal]
}

// NewSeries returns an empty series of prices of symbol in currency.
func NewSeries(symbol, currency string) *Series { return &Series{symbol: symbol, cur: currency} }

// Symbol returns the symbol the series is about.
func (s *Series) Symbol() string { return s.symbol }

// Set records the close of a day, replacing any previous one.
func (s *Series) Set(day date.Date, close decimal.Decimal) *Series {
	s.closes.Append(day, close)
	return s
}

// Close returns the close of a day.
func (s *Series) Close(day date.Date) (Money, bool) {
	v, ok := s.closes.Get(day)
	return M(v, s.cur), ok
}

// CloseAsOf returns the close of a day, or the latest close before it.
func (s *Series) CloseAsOf(day date.Date) (Money, bool) {
	v, ok := s.closes.ValueAsOf(day)
	return M(v, s.cur), ok
}

// Len returns the number of closes.
func (s *Series) Len() int { return s.closes.Len() }

// Calendar returns the days with a close as a trading calendar.
func (s *Series) Calendar() Calendar { return Calendar{days: s.closes.Days()} }

// PriceTable holds the adjusted close price of each symbol on each day.
type PriceTable struct {
	cur    string
	series map[string]*Series
}

// NewPriceTable returns an empty price table whose prices are in currency.
func NewPriceTable(currency string) *PriceTable {
	return &PriceTable{cur: currency, series: make(map[string]*Series)}
}

// Currency returns the currency of all the prices of the table.
func (t *PriceTable) Currency() string { return t.cur }

// Set records the close of a symbol on a day.
func (t *PriceTable) Set(symbol string, day date.Date, close decimal.Decimal) {
	s, ok := t.series[symbol]
	if !ok {
		s = NewSeries(symbol, t.cur)
		t.series[symbol] = s
	}
	s.Set(day, close)
}

// Series returns the prices of a symbol, or nil if the symbol is unknown.
func (t *PriceTable) Series(symbol string) *Series { return t.series[symbol] }

// Symbols returns the sorted list of symbols with prices.
func (t *PriceTable) Symbols() []string { return slices.Sorted(maps.Keys(t.series)) }

// Close returns the close of a symbol on a day.
func (t *PriceTable) Close(symbol string, day date.Date) (Money, bool) {
	s, ok := t.series[symbol]
	if !ok {
		return Money{}, false
	}
	return s.Close(day)
}

// CloseAsOf returns the close of a symbol on a day, or the latest before it.
func (t *PriceTable) CloseAsOf(symbol string, day date.Date) (Money, bool) {
	s, ok := t.series[symbol]
	if !ok {
		return Money{}, false
	}
	return s.CloseAsOf(day)
}

// Calendar returns the days on which symbol has a close as a trading
// calendar. It is empty if the symbol is unknown.
func (t *PriceTable) Calendar(symbol string) Calendar {
	s, ok := t.series[symbol]
	if !ok {
		return Calendar{}
	}
	return s.Calendar()
}
