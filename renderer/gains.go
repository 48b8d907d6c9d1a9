package renderer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/etnz/capgains"
)

// GainsMarkdown renders the capital gains report for one scope: summary
// totals with the discount split, a per-security summary, the detailed
// match records, and the breakdown by acquisition lot.
func GainsMarkdown(result *capgains.MatchResult, f capgains.Filter) string {
	var b strings.Builder

	summary := capgains.Summarize(result, f)

	var records []capgains.Match
	for _, m := range result.Matches {
		if f.Match(m) {
			records = append(records, m)
		}
	}

	fmt.Fprintf(&b, "# %s\n\n", scopeTitle(f))

	if len(records) == 0 {
		fmt.Fprint(&b, "No capital gains/losses to report for this period.\n")
		writeUnmatched(&b, summary)
		return b.String()
	}

	fmt.Fprint(&b, "## Summary\n\n")
	fmt.Fprintf(&b, "- **Total sales**: %d\n", summary.Sales)
	fmt.Fprintf(&b, "- **Total units sold**: %s\n", summary.UnitsSold)
	fmt.Fprintf(&b, "- **Total capital gains**: %s\n", summary.Gains)
	fmt.Fprintf(&b, "  - Discount-eligible (held >12 months): %s\n", summary.EligibleGains)
	fmt.Fprintf(&b, "  - Non-discount (held ≤12 months): %s\n", summary.IneligibleGains)
	fmt.Fprintf(&b, "- **Total capital losses**: %s\n", summary.Losses)
	fmt.Fprintf(&b, "- **Net capital gain/loss**: %s\n", summary.Net.SignedString())
	fmt.Fprintf(&b, "- **Net after 50%% discount**: %s\n\n", summary.DiscountedNet.SignedString())

	if f.Security == "" {
		fmt.Fprint(&b, "## Summary by Security\n\n")
		for _, sec := range summary.Securities {
			fmt.Fprintf(&b, "- **%s**: %d sales, Net: %s\n", sec.Security, sec.Sales, sec.Net.SignedString())
		}
		fmt.Fprint(&b, "\n")
	}

	fmt.Fprint(&b, "## Detailed Records\n\n")
	fmt.Fprintln(&b, "| Date Sold | Security | Quantity | Held | Cost per Unit | Sale Price | Cost Basis | Proceeds | Gain/Loss |")
	fmt.Fprintln(&b, "|-----------|----------|----------|------|---------------|------------|------------|----------|-----------|")

	byDateSold := make([]capgains.Match, len(records))
	copy(byDateSold, records)
	sort.SliceStable(byDateSold, func(i, j int) bool {
		return byDateSold[i].Sold.Before(byDateSold[j].Sold)
	})
	for _, m := range byDateSold {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s | %s | %s |\n",
			m.Sold, m.Security, m.Quantity, held(m),
			m.UnitCost, m.UnitPrice,
			m.CostBasis, m.Proceeds, m.Gain.SignedString(),
		)
	}

	fmt.Fprint(&b, "\n## Breakdown by Acquisition Lot\n\n")
	byLot := make([]capgains.Match, len(records))
	copy(byLot, records)
	sort.SliceStable(byLot, func(i, j int) bool {
		if byLot[i].Security != byLot[j].Security {
			return byLot[i].Security < byLot[j].Security
		}
		return byLot[i].Acquired.Before(byLot[j].Acquired)
	})
	for _, m := range byLot {
		fmt.Fprintf(&b, "**%s** - %s units\n", m.Security, m.Quantity)
		fmt.Fprintf(&b, "- Acquired: %s @ %s\n", m.Acquired, m.UnitCost)
		fmt.Fprintf(&b, "- Sold: %s @ %s\n", m.Sold, m.UnitPrice)
		fmt.Fprintf(&b, "- Cost basis: %s\n", m.CostBasis)
		fmt.Fprintf(&b, "- Proceeds: %s\n", m.Proceeds)
		fmt.Fprintf(&b, "- Capital gain/loss: %s\n\n", m.Gain.SignedString())
	}

	writeUnmatched(&b, summary)
	return b.String()
}

// writeUnmatched appends the unmatched-remainder warnings, when any.
func writeUnmatched(b *strings.Builder, summary *capgains.Summary) {
	if len(summary.Unmatched) == 0 {
		return
	}
	fmt.Fprint(b, "## Warnings\n\n")
	for _, r := range summary.Unmatched {
		fmt.Fprintf(b, "- %s %s: %s units sold without a matching acquisition lot\n", r.Sold, r.Security, r.Quantity)
	}
	fmt.Fprint(b, "\n")
}
