package capgains

import (
	"math"
	"reflect"
	"strings"
	"testing"
)

func TestMatchFIFOWorkedScenario(t *testing.T) {
	// Three acquisitions, one disposal spanning the first two lots.
	ledger := ledgerOf(
		buy("2023-08-15", "VAS", 11, 86.64, 0),
		buy("2023-11-20", "VAS", 57, 87.62, 0),
		buy("2024-02-05", "VAS", 11, 90.29, 0),
		sell("2025-02-10", "VAS", 40, 95.00, 0),
	)

	r := MatchFIFO(ledger)

	if len(r.Remainders) != 0 {
		t.Fatalf("unexpected remainders: %v", r.Remainders)
	}
	if len(r.Matches) != 2 {
		t.Fatalf("len(Matches) = %d, want 2", len(r.Matches))
	}

	first, second := r.Matches[0], r.Matches[1]

	if !first.Quantity.Equal(Q(11)) || first.Acquired != MustParse("2023-08-15") {
		t.Errorf("first match = %s units from %s, want 11 from 2023-08-15", first.Quantity, first.Acquired)
	}
	if !first.CostBasis.Equal(AUD(953.04)) {
		t.Errorf("first cost basis = %s, want 953.04", first.CostBasis)
	}
	if !second.Quantity.Equal(Q(29)) || second.Acquired != MustParse("2023-11-20") {
		t.Errorf("second match = %s units from %s, want 29 from 2023-11-20", second.Quantity, second.Acquired)
	}
	if !second.CostBasis.Equal(AUD(2540.98)) {
		t.Errorf("second cost basis = %s, want 2540.98", second.CostBasis)
	}

	totalCost := first.CostBasis.Add(second.CostBasis)
	if !totalCost.Equal(AUD(3494.02)) {
		t.Errorf("total cost = %s, want 3494.02", totalCost)
	}
	totalProceeds := first.Proceeds.Add(second.Proceeds)
	if !totalProceeds.Equal(AUD(3800)) {
		t.Errorf("total proceeds = %s, want 3800.00", totalProceeds)
	}
	netGain := first.Gain.Add(second.Gain)
	if !netGain.Equal(AUD(305.98)) {
		t.Errorf("net gain = %s, want 305.98", netGain)
	}

	// The untouched third lot is still open.
	open := r.OpenLots("VAS")
	wantOpen := []struct {
		acquired  string
		remaining float64
	}{
		{"2023-11-20", 28},
		{"2024-02-05", 11},
	}
	if len(open) != len(wantOpen) {
		t.Fatalf("len(open) = %d, want %d", len(open), len(wantOpen))
	}
	for i, want := range wantOpen {
		if open[i].Acquired != MustParse(want.acquired) || !open[i].Remaining.Equal(Q(want.remaining)) {
			t.Errorf("open[%d] = %s units from %s, want %g from %s",
				i, open[i].Remaining, open[i].Acquired, want.remaining, want.acquired)
		}
	}
}

func TestMatchFIFOShortfall(t *testing.T) {
	// Only 30 units across open lots, disposal of 50.
	ledger := ledgerOf(
		buy("2023-01-10", "NDQ", 10, 20, 0),
		buy("2023-03-10", "NDQ", 20, 22, 0),
		sell("2024-01-10", "NDQ", 50, 25, 0),
	)

	r := MatchFIFO(ledger)

	var matched Quantity
	for _, m := range r.Matches {
		matched = matched.Add(m.Quantity)
	}
	if !matched.Equal(Q(30)) {
		t.Errorf("matched units = %s, want 30", matched)
	}
	if len(r.Remainders) != 1 {
		t.Fatalf("len(Remainders) = %d, want 1", len(r.Remainders))
	}
	rem := r.Remainders[0]
	if !rem.Quantity.Equal(Q(20)) || rem.Security != "NDQ" || rem.Sold != MustParse("2024-01-10") {
		t.Errorf("remainder = %s %s on %s, want 20 NDQ on 2024-01-10", rem.Quantity, rem.Security, rem.Sold)
	}
	if len(r.Notices) == 0 {
		t.Errorf("a shortfall should emit a notice")
	}
}

func TestMatchFIFOConservation(t *testing.T) {
	// A disposal fully satisfied by lots: matched quantities sum to the
	// disposal quantity.
	ledger := ledgerOf(
		buy("2023-01-10", "VGS", 7, 100, 5),
		buy("2023-04-10", "VGS", 13, 105, 5),
		buy("2023-06-10", "VGS", 25, 110, 5),
		sell("2024-05-01", "VGS", 33, 120, 10),
	)

	r := MatchFIFO(ledger)

	var matched Quantity
	for _, m := range r.Matches {
		matched = matched.Add(m.Quantity)
	}
	if !matched.Equal(Q(33)) {
		t.Errorf("matched units = %s, want 33", matched)
	}
	if len(r.Remainders) != 0 {
		t.Errorf("unexpected remainders: %v", r.Remainders)
	}
}

func TestMatchFIFOOrdering(t *testing.T) {
	// No unit of a younger lot is consumed while an older lot has
	// remaining quantity.
	ledger := ledgerOf(
		buy("2023-01-10", "VAS", 10, 50, 0),
		buy("2023-02-10", "VAS", 10, 60, 0),
		buy("2023-03-10", "VAS", 10, 70, 0),
		sell("2023-06-01", "VAS", 5, 80, 0),
		sell("2023-07-01", "VAS", 10, 80, 0),
		sell("2023-08-01", "VAS", 15, 80, 0),
	)

	r := MatchFIFO(ledger)

	var consumed []string
	for _, m := range r.Matches {
		consumed = append(consumed, m.Acquired.String())
	}
	want := []string{
		"2023-01-10",           // 5 from the oldest
		"2023-01-10", "2023-02-10", // 5 finishing the oldest, 5 from the next
		"2023-02-10", "2023-03-10", // finishing the second, then the youngest
	}
	if !reflect.DeepEqual(consumed, want) {
		t.Errorf("consumption order = %v, want %v", consumed, want)
	}
}

func TestMatchFIFOFeeAllocation(t *testing.T) {
	// Disposal fee shares across all matches of one disposal sum to the
	// disposal's fee; acquisition fee shares of a fully consumed lot sum
	// to the lot's fee.
	ledger := ledgerOf(
		buy("2023-01-10", "IVV", 10, 400, 19.95),
		buy("2023-02-10", "IVV", 20, 410, 12.50),
		sell("2024-03-01", "IVV", 30, 450, 29.85),
	)

	r := MatchFIFO(ledger)
	if len(r.Matches) != 2 {
		t.Fatalf("len(Matches) = %d, want 2", len(r.Matches))
	}

	// Proceeds are quantity*price minus the disposal fee share, so the
	// allocated disposal fee is recoverable per match.
	var disposalFee float64
	for _, m := range r.Matches {
		gross := m.UnitPrice.Mul(m.Quantity)
		disposalFee += gross.Sub(m.Proceeds).InexactFloat64()
	}
	if math.Abs(disposalFee-29.85) > 0.01 {
		t.Errorf("summed disposal fee shares = %v, want 29.85", disposalFee)
	}

	// Both lots are fully consumed: cost bases include the whole fees.
	var totalCost float64
	for _, m := range r.Matches {
		totalCost += m.CostBasis.InexactFloat64()
	}
	want := 10*400 + 19.95 + 20*410 + 12.50
	if math.Abs(totalCost-want) > 0.01 {
		t.Errorf("summed cost bases = %v, want %v", totalCost, want)
	}
}

func TestMatchFIFODiscountThreshold(t *testing.T) {
	acquired := "2020-01-10"
	testCases := []struct {
		daysHeld int
		want     bool
	}{
		{daysHeld: 364, want: false},
		{daysHeld: 365, want: false},
		{daysHeld: 366, want: true},
	}
	for _, tc := range testCases {
		sold := MustParse(acquired).Add(tc.daysHeld)
		ledger := ledgerOf(
			buy(acquired, "VAS", 10, 50, 0),
			NewSell(sold, "VAS", Q(10), AUD(60), AUD(0)),
		)
		r := MatchFIFO(ledger)
		if len(r.Matches) != 1 {
			t.Fatalf("len(Matches) = %d, want 1", len(r.Matches))
		}
		m := r.Matches[0]
		if m.DaysHeld != tc.daysHeld {
			t.Errorf("DaysHeld = %d, want %d", m.DaysHeld, tc.daysHeld)
		}
		if m.DiscountEligible != tc.want {
			t.Errorf("held %d days: DiscountEligible = %v, want %v", tc.daysHeld, m.DiscountEligible, tc.want)
		}
	}
}

func TestMatchFIFOSkipsMalformedTrades(t *testing.T) {
	bad := buy("2023-01-10", "VAS", 10, 50, 0)
	bad.Quantity = Q(-10)

	noSecurity := sell("2023-02-10", "VAS", 10, 50, 0)
	noSecurity.Security = ""

	ledger := ledgerOf(
		buy("2023-01-01", "VAS", 10, 50, 0),
		bad,
		noSecurity,
		sell("2023-03-10", "VAS", 10, 60, 0),
	)

	r := MatchFIFO(ledger)

	if len(r.Matches) != 1 {
		t.Fatalf("len(Matches) = %d, want 1", len(r.Matches))
	}
	if !r.Matches[0].Quantity.Equal(Q(10)) {
		t.Errorf("match quantity = %s, want 10", r.Matches[0].Quantity)
	}
	if len(r.Notices) != 2 {
		t.Fatalf("len(Notices) = %d, want 2: %v", len(r.Notices), r.Notices)
	}
	for _, n := range r.Notices {
		if !strings.Contains(n.Message, "malformed") {
			t.Errorf("notice %q should mention the malformed trade", n.Message)
		}
	}
}

func TestMatchFIFOIdempotence(t *testing.T) {
	ledger := ledgerOf(
		buy("2023-01-10", "VAS", 11, 86.64, 9.5),
		buy("2023-02-10", "NDQ", 20, 30, 9.5),
		sell("2023-06-01", "VAS", 5, 90, 9.5),
		sell("2024-06-01", "NDQ", 25, 35, 9.5),
	)

	first := MatchFIFO(ledger)
	second := MatchFIFO(ledger)

	if !reflect.DeepEqual(first.Matches, second.Matches) {
		t.Errorf("two replays over the same ledger differ in matches")
	}
	if !reflect.DeepEqual(first.Remainders, second.Remainders) {
		t.Errorf("two replays over the same ledger differ in remainders")
	}
	if !reflect.DeepEqual(Summarize(first, Filter{}), Summarize(second, Filter{})) {
		t.Errorf("two replays over the same ledger differ in summaries")
	}
}

func TestMatchFIFOTimeTiebreak(t *testing.T) {
	// On the same date, the stated time orders the trades: the afternoon
	// buy must not be available to the morning sell.
	morningSell := sell("2023-05-10", "VAS", 10, 60, 0)
	morningSell.Time = "09:30:00"
	afternoonBuy := buy("2023-05-10", "VAS", 10, 55, 0)
	afternoonBuy.Time = "15:00:00"

	ledger := ledgerOf(
		buy("2023-01-10", "VAS", 10, 50, 0),
		afternoonBuy,
		morningSell,
	)

	r := MatchFIFO(ledger)
	if len(r.Matches) != 1 {
		t.Fatalf("len(Matches) = %d, want 1", len(r.Matches))
	}
	if !r.Matches[0].UnitCost.Equal(AUD(50)) {
		t.Errorf("sell matched lot at %s, want the 50.00 January lot", r.Matches[0].UnitCost)
	}
	if open := r.OpenLots("VAS"); len(open) != 1 || !open[0].UnitCost.Equal(AUD(55)) {
		t.Errorf("the afternoon lot should remain open")
	}
}
