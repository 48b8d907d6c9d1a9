// Package cmd implements the CLI application to compute FIFO capital gains.
package cmd

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/capgains"
	"github.com/google/subcommands"
)

// Commands lists the subcommands of the cgt application. A main package
// registers them all and executes the user-selected one.
var Commands = []subcommands.Command{
	&gainsCmd{},
	&holdingsCmd{},
	&txCmd{},
	&buyCmd{},
	&sellCmd{},
	&publishCmd{},
	&topicCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var ledgerPath = flag.String("ledger-path", ".", "Path to the folder containing trade ledgers (JSONL format)")

// loadLedger returns the ledger matching the name under the ledger path.
func loadLedger(name string) (*capgains.Ledger, error) {
	return capgains.FindLedger(*ledgerPath, name)
}

// appendTrade validates a trade and appends it to the named ledger file,
// creating the file if needed.
func appendTrade(name string, t capgains.Trade) subcommands.ExitStatus {
	if name == "" {
		name = "trades"
	}
	if err := t.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid trade: %v\n", err)
		return subcommands.ExitUsageError
	}

	filename := filepath.Join(*ledgerPath, name+".jsonl")
	f, err := os.OpenFile(filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening ledger file %q: %v\n", filename, err)
		return subcommands.ExitFailure
	}
	defer f.Close()

	if err := capgains.EncodeTrade(f, t); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing to ledger file %q: %v\n", filename, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Successfully appended trade to %s\n", filename)
	return subcommands.ExitSuccess
}

// printNotices surfaces the replay's non-fatal diagnostics as warnings.
func printNotices(notices []capgains.Notice) {
	for _, n := range notices {
		fmt.Fprintf(os.Stderr, "warning: %s\n", n)
	}
}

// printMarkdown renders a markdown document on the terminal.
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(0),
	)
	if err != nil {
		fmt.Print(md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}
