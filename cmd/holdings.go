package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/holdings"
	"github.com/etnz/holdings/renderer"
	"github.com/google/subcommands"
)

// holdingsCmd holds the flags for the 'holdings' subcommand.
type holdingsCmd struct {
	from   string
	to     string
	format string
}

func (*holdingsCmd) Name() string     { return "holdings" }
func (*holdingsCmd) Synopsis() string { return "display the holdings of every trading day" }
func (*holdingsCmd) Usage() string {
	return `hld holdings [-from <date>] [-to <date>] [-format md|jsonl]

  Replays the transactions over the trading calendar and displays, for each
  trading day, the quantity held of each symbol and its average cost per share.
  Sells are matched against the oldest lots first (FIFO).
`
}

func (c *holdingsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.from, "from", "", "First day, the start of the calendar by default")
	f.StringVar(&c.to, "to", "", "Last day, the end of the calendar by default")
	f.StringVar(&c.format, "format", "md", "Output format: md or jsonl")
}

func (c *holdingsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := config()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitUsageError
	}
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

	store, err = store.ResolveCosts(prices)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error resolving costs: %v\n", err)
		return subcommands.ExitFailure
	}
	fill, err := holdings.FillDaily(store, cal, policy)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error filling holdings: %v\n", err)
		return subcommands.ExitFailure
	}

	switch c.format {
	case "jsonl":
		if err := holdings.EncodeSnapshots(os.Stdout, fill); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing holdings: %v\n", err)
			return subcommands.ExitFailure
		}
	case "md":
		printMarkdown(renderer.HoldingsMarkdown(fill))
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown format %q\n", c.format)
		return subcommands.ExitUsageError
	}
	return subcommands.ExitSuccess
}
