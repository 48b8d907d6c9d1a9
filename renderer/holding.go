package renderer

import (
	"fmt"
	"strings"

	"github.com/etnz/capgains"
)

// HoldingsMarkdown renders the open positions at a date, with the open
// lots each position is made of.
func HoldingsMarkdown(holdings []capgains.Holding, on capgains.Date) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Holdings as of %s\n\n", on)

	if len(holdings) == 0 {
		fmt.Fprint(&b, "No open positions.\n")
		return b.String()
	}

	fmt.Fprintln(&b, "| Security | Quantity | Cost Basis |")
	fmt.Fprintln(&b, "|----------|----------|------------|")
	for _, h := range holdings {
		fmt.Fprintf(&b, "| %s | %s | %s |\n", h.Security, h.Quantity, h.CostBasis)
	}

	fmt.Fprint(&b, "\n## Open Lots\n\n")
	for _, h := range holdings {
		fmt.Fprintf(&b, "**%s**\n", h.Security)
		for _, lot := range h.Lots {
			fmt.Fprintf(&b, "- %s of %s units acquired %s @ %s\n", lot.Remaining, lot.Original, lot.Acquired, lot.UnitCost)
		}
		fmt.Fprint(&b, "\n")
	}

	return b.String()
}
