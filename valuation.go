package holdings

import (
	"errors"
	"fmt"
	"log"

	"github.com/etnz/holdings/date"
	"github.com/shopspring/decimal"
)

// Metric is the valuation of one holding on one trading day, compared with the
// same dollar exposure invested in the benchmark.
type Metric struct {
	Date           date.Date
	Symbol         string
	Quantity       Quantity
	Close          Money
	CostPerShare   Money // modified cost per share: weighted average cost of the open lots
	MarketValue    Money
	CostBasis      Money
	UnrealizedGain Money

	// Reference is the day the comparison starts from: the window start for
	// holdings held then, the first valued day otherwise.
	Reference       date.Date
	Exposure        Money           // market value on the reference day
	TickerReturn    decimal.Decimal // close / reference close - 1
	BenchmarkReturn decimal.Decimal // benchmark close / benchmark reference close - 1
	StockGain       Money           // Exposure * TickerReturn
	BenchmarkGain   Money           // Exposure * BenchmarkReturn
}

// ExcessReturn returns the ticker return above the benchmark return.
func (m Metric) ExcessReturn() decimal.Decimal { return m.TickerReturn.Sub(m.BenchmarkReturn) }

// ExcessGain returns the stock gain above the benchmark gain.
func (m Metric) ExcessGain() Money { return m.StockGain.Sub(m.BenchmarkGain) }

// Total aggregates the valued holdings of one trading day.
type Total struct {
	Date           date.Date
	Holdings       int // number of valued holdings
	Excluded       int // number of holdings excluded for a missing close
	MarketValue    Money
	CostBasis      Money
	UnrealizedGain Money
	Exposure       Money
	StockGain      Money
	BenchmarkGain  Money
}

// StockReturn returns the aggregated stock gain relative to the exposure.
func (t Total) StockReturn() decimal.Decimal { return t.StockGain.Ratio(t.Exposure) }

// BenchmarkReturn returns the aggregated benchmark gain relative to the exposure.
func (t Total) BenchmarkReturn() decimal.Decimal { return t.BenchmarkGain.Ratio(t.Exposure) }

// ExcessGain returns the stock gain above the benchmark gain.
func (t Total) ExcessGain() Money { return t.StockGain.Sub(t.BenchmarkGain) }

func (t *Total) add(m Metric) {
	t.Holdings++
	t.MarketValue = t.MarketValue.Add(m.MarketValue)
	t.CostBasis = t.CostBasis.Add(m.CostBasis)
	t.UnrealizedGain = t.UnrealizedGain.Add(m.UnrealizedGain)
	t.Exposure = t.Exposure.Add(m.Exposure)
	t.StockGain = t.StockGain.Add(m.StockGain)
	t.BenchmarkGain = t.BenchmarkGain.Add(m.BenchmarkGain)
}

// Valuation holds the metrics of every valued holding, the totals of every
// trading day with holdings, and the holdings that could not be valued.
type Valuation struct {
	Start     date.Date
	Benchmark string
	Metrics   []Metric // ordered by (date, symbol)
	Totals    []Total  // one per day with at least one holding
	Gaps      []Gap
}

// On returns the metrics of a trading day.
func (v *Valuation) On(day date.Date) []Metric {
	var metrics []Metric
	for _, m := range v.Metrics {
		if m.Date == day {
			metrics = append(metrics, m)
		}
	}
	return metrics
}

// Latest returns the total of the last trading day, false if there is none.
func (v *Valuation) Latest() (Total, bool) {
	if len(v.Totals) == 0 {
		return Total{}, false
	}
	return v.Totals[len(v.Totals)-1], true
}

// Err returns all the gaps joined as a single error, or nil.
func (v *Valuation) Err() error {
	errs := make([]error, 0, len(v.Gaps))
	for _, g := range v.Gaps {
		errs = append(errs, g)
	}
	return errors.Join(errs...)
}

// reference is the starting point of the comparison of a symbol.
type reference struct {
	day      date.Date
	close    Money
	bench    Money
	exposure Money
}

// Compute values the snapshots with the symbols' closes and compares each of
// them with the benchmark.
//
// A holding whose close, or the benchmark's, is missing on its day is recorded
// as a Gap and left out of that day's total; the computation carries on.
// snapshots must be ordered by (date, symbol) and their costs in the currency
// of prices. Those before windowStart are ignored.
func Compute(snapshots []DailyHoldingSnapshot, prices *PriceTable, benchmark *Series, windowStart date.Date) (*Valuation, error) {
	if prices == nil {
		return nil, errors.New("missing price table")
	}
	if benchmark == nil {
		return nil, errors.New("missing benchmark prices")
	}
	for i, s := range snapshots {
		if cur := s.CostPerShare.Currency(); cur != "" && cur != prices.Currency() {
			return nil, fmt.Errorf("%s %s costs are in %s, prices are in %s", s.Date, s.Symbol, cur, prices.Currency())
		}
		if i == 0 {
			continue
		}
		a, b := snapshots[i-1], s
		if c := a.Date.Compare(b.Date); c > 0 || (c == 0 && a.Symbol >= b.Symbol) {
			return nil, fmt.Errorf("snapshots are not ordered by date and symbol: %s %s follows %s %s", b.Date, b.Symbol, a.Date, a.Symbol)
		}
	}

	v := &Valuation{Start: windowStart, Benchmark: benchmark.Symbol()}
	refs := make(map[string]reference)
	one := decimal.NewFromInt(1)
	zero := M(0, prices.Currency())

	for _, s := range snapshots {
		if s.Date.Before(windowStart) {
			continue
		}
		if len(v.Totals) == 0 || v.Totals[len(v.Totals)-1].Date != s.Date {
			v.Totals = append(v.Totals, Total{
				Date:           s.Date,
				MarketValue:    zero,
				CostBasis:      zero,
				UnrealizedGain: zero,
				Exposure:       zero,
				StockGain:      zero,
				BenchmarkGain:  zero,
			})
		}
		total := &v.Totals[len(v.Totals)-1]

		closePrice, ok := prices.Close(s.Symbol, s.Date)
		if !ok || !closePrice.IsPositive() {
			v.gap(total, Gap{Date: s.Date, Symbol: s.Symbol, Holder: s.Symbol})
			continue
		}
		bench, ok := benchmark.Close(s.Date)
		if !ok || !bench.IsPositive() {
			v.gap(total, Gap{Date: s.Date, Symbol: benchmark.Symbol(), Holder: s.Symbol})
			continue
		}

		ref, ok := refs[s.Symbol]
		if !ok {
			ref = reference{day: s.Date, close: closePrice, bench: bench, exposure: closePrice.Mul(s.Quantity)}
			refs[s.Symbol] = ref
		}

		m := Metric{
			Date:            s.Date,
			Symbol:          s.Symbol,
			Quantity:        s.Quantity,
			Close:           closePrice,
			CostPerShare:    s.CostPerShare,
			MarketValue:     closePrice.Mul(s.Quantity),
			CostBasis:       s.Cost(),
			Reference:       ref.day,
			Exposure:        ref.exposure,
			TickerReturn:    closePrice.Ratio(ref.close).Sub(one),
			BenchmarkReturn: bench.Ratio(ref.bench).Sub(one),
		}
		m.UnrealizedGain = m.MarketValue.Sub(m.CostBasis)
		m.StockGain = m.Exposure.Scale(m.TickerReturn)
		m.BenchmarkGain = m.Exposure.Scale(m.BenchmarkReturn)

		v.Metrics = append(v.Metrics, m)
		total.add(m)
	}
	return v, nil
}

func (v *Valuation) gap(total *Total, g Gap) {
	log.Printf("%v: %v, %s excluded from the total", g.Date, g, g.Holder)
	total.Excluded++
	v.Gaps = append(v.Gaps, g)
}
