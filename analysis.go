package holdings

import (
	"fmt"
)

// Options configures an analysis.
type Options struct {
	Benchmark      string         // symbol of the benchmark in the price table
	CalendarPolicy CalendarPolicy // what to do with transactions on non trading days
}

// Report is the outcome of an analysis: the daily holdings and their valuation.
type Report struct {
	Options   Options
	Fill      *Fill
	Valuation *Valuation
}

// Analyze fills the daily holdings of the store over the calendar and values
// them against the benchmark.
//
// Buys without a price are priced with the close of their day, and every
// price must be in the currency of the price table, see Store.ResolveCosts. Missing closes during the valuation are reported in
// Report.Valuation.Gaps and do not fail the analysis.
func Analyze(s *Store, cal Calendar, prices *PriceTable, opts Options) (*Report, error) {
	benchmark := prices.Series(opts.Benchmark)
	if benchmark == nil {
		return nil, fmt.Errorf("benchmark %q has no prices", opts.Benchmark)
	}
	s, err := s.ResolveCosts(prices)
	if err != nil {
		return nil, fmt.Errorf("could not resolve costs: %w", err)
	}

	fill, err := FillDaily(s, cal, opts.CalendarPolicy)
	if err != nil {
		return nil, err
	}

	valuation, err := Compute(fill.Snapshots(), prices, benchmark, fill.Window.From)
	if err != nil {
		return nil, fmt.Errorf("could not value holdings: %w", err)
	}

	return &Report{Options: opts, Fill: fill, Valuation: valuation}, nil
}
