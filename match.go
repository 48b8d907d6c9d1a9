package capgains

import "fmt"

// discountThresholdDays is the long-term holding threshold: a slice is
// discount-eligible when it was held strictly more than this many days
// (the acquisition day itself is not counted). 365 days held is not
// eligible, 366 is.
const discountThresholdDays = 365

// Match records the disposal of a quantity matched against one acquisition
// lot. A disposal spanning several lots yields one Match per lot.
// Immutable once produced.
type Match struct {
	Sold             Date     // disposal date
	Security         string   // ticker
	Quantity         Quantity // units matched against this lot
	Acquired         Date     // the lot's acquisition date
	UnitCost         Money    // the lot's acquisition price per unit
	UnitPrice        Money    // the disposal price per unit
	CostBasis        Money    // allocated cost including the acquisition fee share
	Proceeds         Money    // allocated sale value net of the disposal fee share
	Gain             Money    // Proceeds - CostBasis
	DaysHeld         int      // whole days between acquisition and disposal
	DiscountEligible bool     // held strictly more than 12 months
}

// Remainder marks the part of a disposal that no open lot could cover.
// Expected with incomplete historical data; never aborts a run.
type Remainder struct {
	Sold     Date
	Security string
	Quantity Quantity // unmatched units
}

// MatchResult is the outcome of one full FIFO replay of a trade history.
type MatchResult struct {
	Matches    []Match
	Remainders []Remainder
	Notices    []Notice

	queues map[string]*lotQueue
	order  []string // securities in first-appearance order
}

// MatchFIFO replays the ledger's full chronological trade history once and
// matches every disposal against that security's oldest open lots.
//
// The replay is a pure function of the trade sequence: malformed trades are
// skipped with a notice, disposals exceeding the open lots produce a
// Remainder, and everything else flows into Match records. Re-running over
// the same ledger yields identical results.
func MatchFIFO(l *Ledger) *MatchResult {
	r := &MatchResult{
		queues: make(map[string]*lotQueue),
	}
	r.Notices = append(r.Notices, l.Notices()...)

	for t := range l.Trades() {
		if err := t.Validate(); err != nil {
			r.Notices = append(r.Notices, Notice{
				Date:     t.Date,
				Security: t.Security,
				Message:  fmt.Sprintf("skipping malformed trade: %v", err),
			})
			continue
		}

		queue := r.queue(t.Security)
		switch t.Action {
		case ActionBuy:
			queue.enqueue(Lot{
				Acquired:  t.Date,
				Original:  t.Quantity,
				Remaining: t.Quantity,
				UnitCost:  t.Price,
				Fee:       t.Fee,
			})
		case ActionSell:
			r.dispose(queue, t)
		}
	}
	return r
}

// queue returns the security's lot queue, creating it on first use and
// recording the first-appearance order.
func (r *MatchResult) queue(security string) *lotQueue {
	q, ok := r.queues[security]
	if !ok {
		q = &lotQueue{}
		r.queues[security] = q
		r.order = append(r.order, security)
	}
	return q
}

// dispose matches one sell trade against the queue's oldest lots and emits
// the resulting match records, and a remainder when the lots run out.
func (r *MatchResult) dispose(queue *lotQueue, t Trade) {
	fills, shortfall := queue.consume(t.Quantity)

	for _, f := range fills {
		// Fees are apportioned proportionally: the lot's acquisition fee by
		// the share of the lot taken, the trade's disposal fee by the share
		// of the disposal satisfied from this lot.
		acquisitionFee := f.lot.FeeShare(f.taken)
		disposalFee := t.Fee.Mul(f.taken).Div(t.Quantity)

		costBasis := f.lot.UnitCost.Mul(f.taken).Add(acquisitionFee)
		proceeds := t.Price.Mul(f.taken).Sub(disposalFee)
		daysHeld := t.Date.DaysSince(f.lot.Acquired)

		r.Matches = append(r.Matches, Match{
			Sold:             t.Date,
			Security:         t.Security,
			Quantity:         f.taken,
			Acquired:         f.lot.Acquired,
			UnitCost:         f.lot.UnitCost,
			UnitPrice:        t.Price,
			CostBasis:        costBasis,
			Proceeds:         proceeds,
			Gain:             proceeds.Sub(costBasis),
			DaysHeld:         daysHeld,
			DiscountEligible: daysHeld > discountThresholdDays,
		})
	}

	if shortfall.IsPositive() {
		r.Remainders = append(r.Remainders, Remainder{
			Sold:     t.Date,
			Security: t.Security,
			Quantity: shortfall,
		})
		r.Notices = append(r.Notices, Notice{
			Date:     t.Date,
			Security: t.Security,
			Message:  fmt.Sprintf("disposal of %s exceeds open lots by %s units", t.Quantity, shortfall),
		})
	}
}

// Securities returns the securities seen during the replay, in
// first-appearance order.
func (r *MatchResult) Securities() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// OpenLots returns copies of the security's remaining open lots after the
// replay, oldest first.
func (r *MatchResult) OpenLots(security string) []Lot {
	q, ok := r.queues[security]
	if !ok {
		return nil
	}
	return q.open()
}

// Position returns the security's total open quantity after the replay.
func (r *MatchResult) Position(security string) Quantity {
	q, ok := r.queues[security]
	if !ok {
		return Quantity{}
	}
	return q.position()
}
