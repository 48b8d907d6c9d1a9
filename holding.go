package capgains

// Holding is one security's open position at a date: the total quantity
// still held and the open lots it is made of.
type Holding struct {
	Security  string
	Quantity  Quantity
	Lots      []Lot // open lots, oldest first
	CostBasis Money // remaining cost including unamortized acquisition fees
}

// HoldingsOn replays the trade history up to and including a date and
// returns the open positions, in order of first appearance in the ledger.
// Securities fully disposed of by that date are omitted.
func HoldingsOn(l *Ledger, on Date) []Holding {
	var upTo []Trade
	for t := range l.Trades() {
		if !t.Date.After(on) {
			upTo = append(upTo, t)
		}
	}
	sub := NewLedger()
	sub.Append(upTo...)

	r := MatchFIFO(sub)

	var holdings []Holding
	for _, sec := range r.Securities() {
		position := r.Position(sec)
		if position.IsZero() {
			continue
		}
		h := Holding{
			Security: sec,
			Quantity: position,
			Lots:     r.OpenLots(sec),
		}
		for _, lot := range h.Lots {
			h.CostBasis = h.CostBasis.Add(lot.CostBasis())
		}
		holdings = append(holdings, h)
	}
	return holdings
}
