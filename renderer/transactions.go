package renderer

import (
	"fmt"
	"strings"

	"github.com/etnz/capgains"
)

// TransactionsMarkdown renders a table of the trades in a scope, with
// their fees.
func TransactionsMarkdown(trades []capgains.Trade, f capgains.Filter) string {
	var b strings.Builder

	if f.Year != capgains.AllYears {
		fmt.Fprintf(&b, "# Transactions - %s\n\n", f.Year)
	} else {
		fmt.Fprint(&b, "# Transactions\n\n")
	}

	if len(trades) == 0 {
		fmt.Fprint(&b, "No transactions in this period.\n")
		return b.String()
	}

	fmt.Fprintln(&b, "| Date | Action | Security | Quantity | Price | Fee |")
	fmt.Fprintln(&b, "|------|--------|----------|----------|-------|-----|")
	for _, t := range trades {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s |\n",
			t.Date, strings.ToUpper(string(t.Action)), t.Security, t.Quantity, t.Price, t.Fee)
	}

	return b.String()
}
