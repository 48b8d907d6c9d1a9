package capgains

// AUD is a helper for tests to create money from const
func AUD(v float64) Money { return M(v, "AUD") }

// buy is a helper for tests to create an acquisition trade from consts.
func buy(day, security string, quantity, price, fee float64) Trade {
	return NewBuy(MustParse(day), security, Q(quantity), AUD(price), AUD(fee))
}

// sell is a helper for tests to create a disposal trade from consts.
func sell(day, security string, quantity, price, fee float64) Trade {
	return NewSell(MustParse(day), security, Q(quantity), AUD(price), AUD(fee))
}

// ledgerOf is a helper for tests to build a ledger from trades.
func ledgerOf(trades ...Trade) *Ledger {
	l := NewLedger()
	l.Append(trades...)
	return l
}
