// Package renderer renders capgains results into markdown documents.
package renderer

import (
	"fmt"

	"github.com/etnz/capgains"
)

// held formats a holding duration in years and months, with a trailing
// check mark for discount-eligible slices.
func held(m capgains.Match) string {
	years := m.DaysHeld / 365
	months := m.DaysHeld % 365 / 30

	var s string
	if years > 0 {
		s = fmt.Sprintf("%dy %dm", years, months)
	} else {
		s = fmt.Sprintf("%dm", months)
	}
	if m.DiscountEligible {
		s += " ✓"
	}
	return s
}

// scopeTitle names the report scope from its filter.
func scopeTitle(f capgains.Filter) string {
	switch {
	case f.Year != capgains.AllYears:
		return fmt.Sprintf("Capital Gains Report - %s (%s - %s)", f.Year, f.Year.From(), f.Year.To())
	case f.Security != "":
		return fmt.Sprintf("Capital Gains Report - %s", f.Security)
	default:
		return "Capital Gains Report (All Time)"
	}
}
