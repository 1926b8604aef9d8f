// Package cmd implements the hld command line application: daily holdings,
// lots and performance against a benchmark.
package cmd

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/holdings"
	"github.com/etnz/holdings/date"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&holdingsCmd{}, "analysis")
	c.Register(&lotsCmd{}, "analysis")
	c.Register(&performanceCmd{}, "analysis")

	c.Register(&topicCmd{}, "help")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	configFile       = flag.String("config", "holdings.yaml", "Path to the YAML configuration file, ignored if missing")
	transactionsFile = flag.String("transactions", "", "Path to the transactions file (CSV, or JSONL with a .jsonl extension)")
	pricesFile       = flag.String("prices", "", "Path to the adjusted close prices file (CSV)")
	calendarFile     = flag.String("calendar", "", "Path to the trading calendar file, defaults to the days the benchmark has a close")
	currency         = flag.String("currency", "", "Currency of prices and costs")
	calendarPolicy   = flag.String("calendar-policy", "", "What to do with transactions on non trading days: shift or reject")
)

// config returns the configuration with the global flags applied.
func config() (Config, error) {
	cfg, err := LoadConfig(*configFile)
	if err != nil {
		return cfg, err
	}
	return cfg.With(Config{
		Transactions:   *transactionsFile,
		Prices:         *pricesFile,
		Calendar:       *calendarFile,
		Currency:       *currency,
		CalendarPolicy: *calendarPolicy,
	}), nil
}

// DecodeStore decodes the transactions file of the configuration.
func DecodeStore(cfg Config) (*holdings.Store, error) {
	f, err := os.Open(cfg.Transactions)
	if err != nil {
		return nil, fmt.Errorf("could not open transactions file: %w", err)
	}
	defer f.Close()
	if strings.EqualFold(filepath.Ext(cfg.Transactions), ".jsonl") {
		return holdings.DecodeTransactionsJSONL(f, cfg.Currency)
	}
	return holdings.DecodeTransactions(f, cfg.Currency)
}

// DecodePrices decodes the prices file of the configuration.
func DecodePrices(cfg Config) (*holdings.PriceTable, error) {
	f, err := os.Open(cfg.Prices)
	if err != nil {
		return nil, fmt.Errorf("could not open prices file: %w", err)
	}
	defer f.Close()
	return holdings.DecodePrices(f, cfg.Currency)
}

// DecodeCalendar decodes the calendar file of the configuration, or uses the
// days the benchmark has a close when there is none.
func DecodeCalendar(cfg Config, prices *holdings.PriceTable) (holdings.Calendar, error) {
	if cfg.Calendar == "" {
		cal := prices.Calendar(cfg.Benchmark)
		if cal.Len() == 0 {
			return cal, fmt.Errorf("no calendar file and no prices for benchmark %q", cfg.Benchmark)
		}
		log.Printf("using the %d days of %s prices as the trading calendar", cal.Len(), cfg.Benchmark)
		return cal, nil
	}
	f, err := os.Open(cfg.Calendar)
	if err != nil {
		return holdings.Calendar{}, fmt.Errorf("could not open calendar file: %w", err)
	}
	defer f.Close()
	return holdings.DecodeCalendar(f)
}

// window restricts the calendar to the optional from and to dates.
func window(cal holdings.Calendar, from, to string) (holdings.Calendar, error) {
	r := cal.Range()
	if from != "" {
		d, err := date.Parse(from)
		if err != nil {
			return cal, fmt.Errorf("invalid -from: %w", err)
		}
		r.From = d
	}
	if to != "" {
		d, err := date.Parse(to)
		if err != nil {
			return cal, fmt.Errorf("invalid -to: %w", err)
		}
		r.To = d
	}
	w := cal.Window(r)
	if w.Len() == 0 {
		return w, fmt.Errorf("no trading day in %s", r)
	}
	return w, nil
}

// printMarkdown renders markdown for the terminal, or prints it as is if it cannot.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		log.Printf("could not render markdown: %v", err)
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}
