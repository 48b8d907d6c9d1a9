package capgains

import "testing"

// fixtureResult replays a small two-security history spanning two tax
// years, with one long-held winning slice, one short-held winning slice,
// one losing slice, and one unmatched remainder.
func fixtureResult(t *testing.T) *MatchResult {
	t.Helper()
	ledger := ledgerOf(
		buy("2022-08-01", "VAS", 10, 50, 0),
		buy("2024-01-15", "VAS", 10, 80, 0),
		buy("2023-02-01", "NDQ", 10, 30, 0),
		// FY2023-24: held since 2022, gain of 400, discount-eligible.
		sell("2024-05-01", "VAS", 10, 90, 0),
		// FY2024-25: held six months, gain of 100, not eligible.
		sell("2024-08-01", "VAS", 10, 90, 0),
		// FY2024-25: loss of 50, plus 5 unmatched units.
		sell("2024-09-01", "NDQ", 15, 25, 0),
	)
	return MatchFIFO(ledger)
}

func TestSummarizeFullHistory(t *testing.T) {
	s := Summarize(fixtureResult(t), Filter{})

	if s.Sales != 3 {
		t.Errorf("Sales = %d, want 3", s.Sales)
	}
	if !s.UnitsSold.Equal(Q(30)) {
		t.Errorf("UnitsSold = %s, want 30", s.UnitsSold)
	}
	if !s.Gains.Equal(AUD(500)) {
		t.Errorf("Gains = %s, want 500", s.Gains)
	}
	if !s.EligibleGains.Equal(AUD(400)) {
		t.Errorf("EligibleGains = %s, want 400", s.EligibleGains)
	}
	if !s.IneligibleGains.Equal(AUD(100)) {
		t.Errorf("IneligibleGains = %s, want 100", s.IneligibleGains)
	}
	if !s.Losses.Equal(AUD(50)) {
		t.Errorf("Losses = %s, want 50", s.Losses)
	}
	if !s.Net.Equal(AUD(450)) {
		t.Errorf("Net = %s, want 450", s.Net)
	}
	// 400/2 + 100 - 50
	if !s.DiscountedNet.Equal(AUD(250)) {
		t.Errorf("DiscountedNet = %s, want 250", s.DiscountedNet)
	}
	if len(s.Unmatched) != 1 || !s.Unmatched[0].Quantity.Equal(Q(5)) {
		t.Errorf("Unmatched = %v, want one remainder of 5 units", s.Unmatched)
	}
}

func TestSummarizeGroupsBySecurity(t *testing.T) {
	s := Summarize(fixtureResult(t), Filter{})

	if len(s.Securities) != 2 {
		t.Fatalf("len(Securities) = %d, want 2", len(s.Securities))
	}
	// First-occurrence order of the filtered match records.
	vas, ndq := s.Securities[0], s.Securities[1]
	if vas.Security != "VAS" || ndq.Security != "NDQ" {
		t.Fatalf("securities = %s, %s, want VAS, NDQ", vas.Security, ndq.Security)
	}
	if vas.Sales != 2 || !vas.Net.Equal(AUD(500)) {
		t.Errorf("VAS: %d sales net %s, want 2 sales net 500", vas.Sales, vas.Net)
	}
	if ndq.Sales != 1 || !ndq.Net.Equal(AUD(-50)) {
		t.Errorf("NDQ: %d sales net %s, want 1 sale net -50", ndq.Sales, ndq.Net)
	}
}

func TestSummarizeYearFilter(t *testing.T) {
	r := fixtureResult(t)

	s := Summarize(r, Filter{Year: TaxYear(2024)})
	if s.Sales != 1 || !s.Net.Equal(AUD(400)) {
		t.Errorf("FY2023-24: %d sales net %s, want 1 sale net 400", s.Sales, s.Net)
	}
	if len(s.Unmatched) != 0 {
		t.Errorf("FY2023-24 has no remainders, got %v", s.Unmatched)
	}

	s = Summarize(r, Filter{Year: TaxYear(2025)})
	if s.Sales != 2 || !s.Net.Equal(AUD(50)) {
		t.Errorf("FY2024-25: %d sales net %s, want 2 sales net 50", s.Sales, s.Net)
	}
	if len(s.Unmatched) != 1 {
		t.Errorf("FY2024-25 should carry the remainder, got %v", s.Unmatched)
	}
}

func TestSummarizeSecurityFilter(t *testing.T) {
	s := Summarize(fixtureResult(t), Filter{Security: "NDQ"})

	if s.Sales != 1 || !s.Net.Equal(AUD(-50)) {
		t.Errorf("NDQ scope: %d sales net %s, want 1 sale net -50", s.Sales, s.Net)
	}
	if len(s.Securities) != 1 || s.Securities[0].Security != "NDQ" {
		t.Errorf("NDQ scope groups = %v, want only NDQ", s.Securities)
	}
}

func TestSummarizeEmptySelection(t *testing.T) {
	s := Summarize(fixtureResult(t), Filter{Year: TaxYear(2019)})

	if s.Sales != 0 || len(s.Securities) != 0 || len(s.Unmatched) != 0 {
		t.Errorf("a period with no activity should yield an empty summary, got %+v", s)
	}
	if !s.Net.IsZero() {
		t.Errorf("Net of an empty summary = %s, want zero", s.Net)
	}
}
