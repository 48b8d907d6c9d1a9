package capgains

import "fmt"

// Lot represents a single block of units acquired together on one date at
// one price, tracked until fully disposed. The acquisition fee is kept
// separately from the unit cost and amortized over disposals
// proportionally to the quantity they take.
type Lot struct {
	Acquired  Date     // acquisition date
	Original  Quantity // quantity originally acquired
	Remaining Quantity // quantity still held
	UnitCost  Money    // acquisition price per unit, fee excluded
	Fee       Money    // fee paid to acquire the whole lot
}

// FeeShare returns the portion of the lot's acquisition fee attributable to
// a taken quantity.
func (l Lot) FeeShare(taken Quantity) Money {
	return l.Fee.Mul(taken).Div(l.Original)
}

// CostBasis returns the cost basis of the lot's remaining units, including
// their share of the acquisition fee.
func (l Lot) CostBasis() Money {
	return l.UnitCost.Mul(l.Remaining).Add(l.FeeShare(l.Remaining))
}

// lotQueue is one security's ordered collection of open lots, oldest first.
// The order is acquisition order (date, then supply order for same-date
// lots) and never changes after insertion.
type lotQueue struct {
	lots []Lot
}

// fill is the consumption of a taken quantity from one lot.
type fill struct {
	lot   Lot // snapshot of the lot being consumed
	taken Quantity
}

// enqueue appends a newly acquired lot to the tail.
func (q *lotQueue) enqueue(l Lot) {
	q.lots = append(q.lots, l)
}

// consume removes up to quantity units starting from the oldest lot. It
// returns the ordered fills actually consumed and the shortfall left when
// the queue is exhausted first. A partially consumed lot stays at the head
// with its remaining quantity reduced; an exhausted lot is removed.
func (q *lotQueue) consume(quantity Quantity) (fills []fill, shortfall Quantity) {
	for quantity.IsPositive() && len(q.lots) > 0 {
		head := &q.lots[0]
		taken := quantity.Min(head.Remaining)

		fills = append(fills, fill{lot: *head, taken: taken})

		head.Remaining = head.Remaining.Sub(taken)
		if head.Remaining.IsNegative() || head.Remaining.GreaterThan(head.Original) {
			// The matching algorithm itself is broken: this is not a data
			// problem and must not be recovered from.
			panic(fmt.Sprintf("lot remaining quantity %s out of range [0, %s]", head.Remaining, head.Original))
		}
		if head.Remaining.IsZero() {
			q.lots = q.lots[1:]
		}

		quantity = quantity.Sub(taken)
	}
	return fills, quantity
}

// open returns copies of the remaining open lots, oldest first.
func (q *lotQueue) open() []Lot {
	out := make([]Lot, len(q.lots))
	copy(out, q.lots)
	return out
}

// position returns the total remaining quantity across open lots.
func (q *lotQueue) position() Quantity {
	var total Quantity
	for _, l := range q.lots {
		total = total.Add(l.Remaining)
	}
	return total
}
