package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/holdings"
	"github.com/etnz/holdings/date"
	"github.com/etnz/holdings/renderer"
	"github.com/google/subcommands"
)

// lotsCmd holds the flags for the 'lots' subcommand.
type lotsCmd struct {
	date string
}

func (*lotsCmd) Name() string     { return "lots" }
func (*lotsCmd) Synopsis() string { return "display the open lots on a given date" }
func (*lotsCmd) Usage() string {
	return `hld lots [-d <date>]

  Replays every transaction up to the given date and displays the lots still
  open for each symbol, oldest first.
`
}

func (c *lotsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", date.Today().String(), "Date of the lots")
}

func (c *lotsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on, err := date.Parse(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	cfg, err := config()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
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
	store, err = store.ResolveCosts(prices)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error resolving costs: %v\n", err)
		return subcommands.ExitFailure
	}

	positions, err := holdings.Reconstruct(store, on)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reconstructing lots: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.LotsMarkdown(on, positions))
	return subcommands.ExitSuccess
}
