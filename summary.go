package capgains

// Filter selects match records for aggregation. The zero value selects the
// full history.
type Filter struct {
	Year     TaxYear // AllYears (zero) selects every period
	Security string  // empty selects every security
}

// Match reports whether a match record passes the filter: its disposal
// date must classify into the period and its security must match.
func (f Filter) Match(m Match) bool {
	if !f.Year.Contains(m.Sold) {
		return false
	}
	return f.Security == "" || f.Security == m.Security
}

// Remainder reports whether an unmatched remainder passes the filter.
func (f Filter) Remainder(r Remainder) bool {
	if !f.Year.Contains(r.Sold) {
		return false
	}
	return f.Security == "" || f.Security == r.Security
}

// Trade reports whether a trade passes the filter, by its own date.
func (f Filter) Trade(t Trade) bool {
	if !f.Year.Contains(t.Date) {
		return false
	}
	return f.Security == "" || f.Security == t.Security
}

// SecuritySummary aggregates the filtered match records of one security.
type SecuritySummary struct {
	Security string
	Sales    int      // number of match records
	Units    Quantity // units sold
	Gains    Money    // sum of positive gains
	Losses   Money    // sum of magnitudes of negative gains
	Net      Money    // Gains - Losses
}

// Summary is the aggregation of a match result for a requested scope.
// It is derived and stateless: recomputing from the same inputs yields an
// identical value.
type Summary struct {
	Year     TaxYear // requested period, AllYears for the full history
	Security string  // requested security, empty for all

	Sales     int      // number of match records selected
	UnitsSold Quantity // total units matched

	Gains           Money // sum of positive gains
	EligibleGains   Money // positive gains from discount-eligible slices
	IneligibleGains Money // positive gains from slices held 12 months or less
	Losses          Money // sum of magnitudes of negative gains
	Net             Money // Gains - Losses
	// DiscountedNet halves each discount-eligible positive gain before
	// summing; losses and ineligible gains are unchanged.
	DiscountedNet Money

	// Securities groups the selected records per security in
	// first-occurrence order across the filtered set.
	Securities []SecuritySummary

	// Unmatched carries the remainders of disposals the open lots could
	// not cover within the requested scope.
	Unmatched []Remainder
}

// Summarize reduces a match result into totals for the requested scope.
// An empty selection is a valid, empty summary, not an error.
func Summarize(r *MatchResult, f Filter) *Summary {
	s := &Summary{Year: f.Year, Security: f.Security}

	perSecurity := make(map[string]int) // ticker -> index in s.Securities

	for _, m := range r.Matches {
		if !f.Match(m) {
			continue
		}

		s.Sales++
		s.UnitsSold = s.UnitsSold.Add(m.Quantity)

		i, ok := perSecurity[m.Security]
		if !ok {
			i = len(s.Securities)
			perSecurity[m.Security] = i
			s.Securities = append(s.Securities, SecuritySummary{Security: m.Security})
		}
		sec := &s.Securities[i]
		sec.Sales++
		sec.Units = sec.Units.Add(m.Quantity)

		switch {
		case m.Gain.IsPositive():
			s.Gains = s.Gains.Add(m.Gain)
			sec.Gains = sec.Gains.Add(m.Gain)
			if m.DiscountEligible {
				s.EligibleGains = s.EligibleGains.Add(m.Gain)
				s.DiscountedNet = s.DiscountedNet.Add(m.Gain.Half())
			} else {
				s.IneligibleGains = s.IneligibleGains.Add(m.Gain)
				s.DiscountedNet = s.DiscountedNet.Add(m.Gain)
			}
		case m.Gain.IsNegative():
			s.Losses = s.Losses.Add(m.Gain.Abs())
			sec.Losses = sec.Losses.Add(m.Gain.Abs())
			s.DiscountedNet = s.DiscountedNet.Add(m.Gain)
		}

		s.Net = s.Net.Add(m.Gain)
		sec.Net = sec.Net.Add(m.Gain)
	}

	for _, rem := range r.Remainders {
		if f.Remainder(rem) {
			s.Unmatched = append(s.Unmatched, rem)
		}
	}

	return s
}
