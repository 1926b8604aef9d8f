package cmd

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/etnz/holdings"
	"github.com/etnz/holdings/renderer"
	"github.com/google/subcommands"
)

// performanceCmd holds the flags for the 'performance' subcommand.
type performanceCmd struct {
	from      string
	to        string
	benchmark string
	format    string
}

func (*performanceCmd) Name() string { return "performance" }
func (*performanceCmd) Synopsis() string {
	return "compare the holdings with the same exposure in a benchmark"
}
func (*performanceCmd) Usage() string {
	return `hld performance [-from <date>] [-to <date>] [-benchmark <symbol>] [-format md|jsonl]

  Values the daily holdings at their adjusted close and compares each of them
  with the same dollar exposure invested in the benchmark, starting from the
  first day of the window or the first day the symbol is held.

  Holdings whose close, or the benchmark's, is missing on a day are left out
  of that day's total and listed as missing prices.
`
}

func (c *performanceCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.from, "from", "", "First day, the start of the calendar by default")
	f.StringVar(&c.to, "to", "", "Last day, the end of the calendar by default")
	f.StringVar(&c.benchmark, "benchmark", "", "Benchmark symbol, SPY by default")
	f.StringVar(&c.format, "format", "md", "Output format: md or jsonl")
}

func (c *performanceCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := config()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitUsageError
	}
	cfg = cfg.With(Config{Benchmark: c.benchmark})
	policy, err := holdings.ParseCalendarPolicy(cfg.CalendarPolicy)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	store, err := DecodeStore(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading transactions: %v\n", err)
		return subcommands.ExitFailure
	}
	prices, err := DecodePrices(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading prices: %v\n", err)
		return subcommands.ExitFailure
	}
	cal, err := DecodeCalendar(cfg, prices)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading calendar: %v\n", err)
		return subcommands.ExitFailure
	}
	if cal, err = window(cal, c.from, c.to); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	report, err := holdings.Analyze(store, cal, prices, holdings.Options{
		Benchmark:      cfg.Benchmark,
		CalendarPolicy: policy,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error analyzing holdings: %v\n", err)
		return subcommands.ExitFailure
	}
	if n := len(report.Valuation.Gaps); n > 0 {
		log.Printf("warning, %d holdings could not be valued for a missing close", n)
	}

	switch c.format {
	case "jsonl":
		if err := holdings.EncodeMetrics(os.Stdout, report.Valuation); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing metrics: %v\n", err)
			return subcommands.ExitFailure
		}
	case "md":
		printMarkdown(renderer.PerformanceMarkdown(report.Valuation))
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown format %q\n", c.format)
		return subcommands.ExitUsageError
	}
	return subcommands.ExitSuccess
}
