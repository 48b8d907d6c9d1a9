package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/capgains"
	"github.com/etnz/capgains/renderer"
	"github.com/google/subcommands"
)

// holdingsCmd holds the flags for the 'holdings' subcommand.
type holdingsCmd struct {
	date       string
	ledgerFile string
}

func (*holdingsCmd) Name() string     { return "holdings" }
func (*holdingsCmd) Synopsis() string { return "open positions and remaining lots at a date" }
func (*holdingsCmd) Usage() string {
	return `cgt holdings [-d <date>]

  Replays the trade history up to a date and reports each security's open
  quantity and the acquisition lots it is made of.
`
}

func (c *holdingsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", capgains.Today().String(), "Date of the holdings snapshot (YYYY-MM-DD)")
	f.StringVar(&c.ledgerFile, "l", "", "Ledger to report on. Defaults to the only ledger if one exists.")
}

func (c *holdingsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on, err := capgains.ParseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}

	ledger, err := loadLedger(c.ledgerFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledger %q: %v\n", c.ledgerFile, err)
		return subcommands.ExitFailure
	}

	holdings := capgains.HoldingsOn(ledger, on)
	printMarkdown(renderer.HoldingsMarkdown(holdings, on))

	return subcommands.ExitSuccess
}
