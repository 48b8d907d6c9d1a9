package capgains

import (
	"iter"
	"sort"
)

// Ledger is the full, chronologically ordered trade history.
//
// Trades are kept sorted by (date, time, sequence) ascending. The sequence
// index equals the order in which trades were supplied, so the sort is
// deterministic: ties on date and time preserve supply order.
type Ledger struct {
	trades  []Trade
	notices []Notice // non-fatal issues found while loading
	name    string
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{trades: make([]Trade, 0)}
}

// Name returns the ledger's name, set by the loader.
func (l *Ledger) Name() string { return l.name }

// Len returns the number of trades in the ledger.
func (l *Ledger) Len() int { return len(l.trades) }

// Append adds trades to the ledger, assigning each its stable sequence
// index, and restores chronological order.
func (l *Ledger) Append(trades ...Trade) {
	for _, t := range trades {
		t.seq = len(l.trades)
		l.trades = append(l.trades, t)
	}
	l.stableSort()
}

// stableSort orders the trades by date, then intra-day time, then sequence.
// An absent time sorts before any stated time on the same date.
func (l *Ledger) stableSort() {
	sort.SliceStable(l.trades, func(i, j int) bool {
		a, b := l.trades[i], l.trades[j]
		if a.Date != b.Date {
			return a.Date.Before(b.Date)
		}
		if a.Time != b.Time {
			return a.Time < b.Time
		}
		return a.seq < b.seq
	})
}

// Trades returns an iterator over the trades in chronological order.
func (l *Ledger) Trades() iter.Seq[Trade] {
	return func(yield func(Trade) bool) {
		for _, t := range l.trades {
			if !yield(t) {
				return
			}
		}
	}
}

// Notices returns the non-fatal diagnostics collected while loading the
// ledger, one per skipped record.
func (l *Ledger) Notices() []Notice { return l.notices }

// Securities returns the tickers present in the ledger, in order of first
// appearance in the chronological trade sequence.
func (l *Ledger) Securities() []string {
	seen := make(map[string]bool)
	var order []string
	for _, t := range l.trades {
		if t.Security == "" || seen[t.Security] {
			continue
		}
		seen[t.Security] = true
		order = append(order, t.Security)
	}
	return order
}

// TaxYears returns the tax years in which the ledger has at least one
// trade, in ascending order.
func (l *Ledger) TaxYears() []TaxYear {
	seen := make(map[TaxYear]bool)
	var years []TaxYear
	for _, t := range l.trades {
		y := TaxYearOf(t.Date)
		if !seen[y] {
			seen[y] = true
			years = append(years, y)
		}
	}
	sort.Slice(years, func(i, j int) bool { return years[i] < years[j] })
	return years
}
