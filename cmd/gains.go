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

// gainsCmd holds the flags for the 'gains' subcommand.
type gainsCmd struct {
	year       string
	ticker     string
	ledgerFile string
}

func (*gainsCmd) Name() string     { return "gains" }
func (*gainsCmd) Synopsis() string { return "realized capital gains report using FIFO matching" }
func (*gainsCmd) Usage() string {
	return `cgt gains [-year <tax year>] [-ticker <security>]

  Replays the full trade history, matches each sale against the oldest
  acquisition lots (FIFO), and reports realized capital gains and losses
  for the requested tax year.
`
}

func (c *gainsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.year, "year", "all", "Tax year ending 30 June (e.g. 2025 for FY2024-25), or 'all'")
	f.StringVar(&c.ticker, "ticker", "", "Only report gains for this security")
	f.StringVar(&c.ledgerFile, "l", "", "Ledger to report on. Defaults to the only ledger if one exists.")
}

func (c *gainsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	filter, status := parseFilter(c.year, c.ticker)
	if status != subcommands.ExitSuccess {
		return status
	}

	ledger, err := loadLedger(c.ledgerFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledger %q: %v\n", c.ledgerFile, err)
		return subcommands.ExitFailure
	}

	result := capgains.MatchFIFO(ledger)
	printNotices(result.Notices)

	md := renderer.GainsMarkdown(result, filter)
	printMarkdown(md)

	return subcommands.ExitSuccess
}

// parseFilter validates the period and security selectors before any
// replay. Selector errors are usage errors, distinct from data-quality
// notices.
func parseFilter(year, ticker string) (capgains.Filter, subcommands.ExitStatus) {
	var filter capgains.Filter

	y, err := capgains.ParseTaxYear(year)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing tax year: %v\n", err)
		return filter, subcommands.ExitUsageError
	}
	filter.Year = y

	if ticker != "" {
		if err := capgains.ValidTicker(ticker); err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing ticker: %v\n", err)
			return filter, subcommands.ExitUsageError
		}
		filter.Security = ticker
	}
	return filter, subcommands.ExitSuccess
}
