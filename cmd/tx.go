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

// txCmd holds the flags for the 'tx' subcommand.
type txCmd struct {
	year       string
	ticker     string
	ledgerFile string
}

func (*txCmd) Name() string     { return "tx" }
func (*txCmd) Synopsis() string { return "list the trades of a period" }
func (*txCmd) Usage() string {
	return `cgt tx [-year <tax year>] [-ticker <security>]

  Lists the buy and sell trades of the requested scope, with their fees.
`
}

func (c *txCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.year, "year", "all", "Tax year ending 30 June (e.g. 2025 for FY2024-25), or 'all'")
	f.StringVar(&c.ticker, "ticker", "", "Only list trades for this security")
	f.StringVar(&c.ledgerFile, "l", "", "Ledger to report on. Defaults to the only ledger if one exists.")
}

func (c *txCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	filter, status := parseFilter(c.year, c.ticker)
	if status != subcommands.ExitSuccess {
		return status
	}

	ledger, err := loadLedger(c.ledgerFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledger %q: %v\n", c.ledgerFile, err)
		return subcommands.ExitFailure
	}
	printNotices(ledger.Notices())

	var trades []capgains.Trade
	for t := range ledger.Trades() {
		if filter.Trade(t) {
			trades = append(trades, t)
		}
	}

	printMarkdown(renderer.TransactionsMarkdown(trades, filter))
	return subcommands.ExitSuccess
}
