package capgains

import (
	"fmt"
	"regexp"
	"time"
)

// Action is the kind of a trade: an acquisition or a disposal.
type Action string

const (
	// ActionBuy acquires a quantity of a security.
	ActionBuy Action = "buy"
	// ActionSell disposes of a quantity of a security.
	ActionSell Action = "sell"
)

// ParseAction parses a trade action.
func ParseAction(s string) (Action, error) {
	switch Action(s) {
	case ActionBuy, ActionSell:
		return Action(s), nil
	default:
		return "", fmt.Errorf("unknown trade action %q, want %q or %q", s, ActionBuy, ActionSell)
	}
}

// DefaultCurrency is assumed for trades that do not state one.
const DefaultCurrency = "AUD"

// timeFormat is the optional intra-day ordering tiebreak format.
const timeFormat = "15:04:05"

// tickerRE is the accepted security identifier syntax.
var tickerRE = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9.\-]*$`)

// ValidTicker reports an error when the security identifier syntax is not
// acceptable as a selector.
func ValidTicker(ticker string) error {
	if !tickerRE.MatchString(ticker) {
		return fmt.Errorf("invalid security identifier %q", ticker)
	}
	return nil
}

// Trade is one normalized, immutable transaction fact: the acquisition or
// disposal of a quantity of a security on a date, at a unit price, with a
// transaction fee. Trades are created by the ledger decoder and never
// mutated afterwards.
type Trade struct {
	Date     Date     // settlement date
	Time     string   // optional HH:MM:SS ordering tiebreak within a date
	Security string   // ticker of the traded security
	Action   Action   // buy or sell
	Quantity Quantity // number of units, positive
	Price    Money    // price per unit
	Fee      Money    // transaction fee, non negative
	Memo     string   // optional free-form note

	seq int // supply order, assigned by the decoder, breaks remaining ties
}

// NewBuy creates an acquisition trade.
func NewBuy(day Date, security string, quantity Quantity, price, fee Money) Trade {
	return Trade{Date: day, Security: security, Action: ActionBuy, Quantity: quantity, Price: price, Fee: fee}
}

// NewSell creates a disposal trade.
func NewSell(day Date, security string, quantity Quantity, price, fee Money) Trade {
	return Trade{Date: day, Security: security, Action: ActionSell, Quantity: quantity, Price: price, Fee: fee}
}

// Amount returns the trade's total value (quantity times unit price),
// excluding the fee.
func (t Trade) Amount() Money { return t.Price.Mul(t.Quantity) }

// Seq returns the trade's stable sequence index in supply order.
func (t Trade) Seq() int { return t.seq }

// Validate checks the trade's fields. A failing trade is malformed: the
// matcher skips it with a notice instead of aborting the replay.
func (t Trade) Validate() error {
	if t.Date.IsZero() {
		return fmt.Errorf("trade has no date")
	}
	if t.Time != "" {
		if _, err := time.Parse(timeFormat, t.Time); err != nil {
			return fmt.Errorf("invalid trade time %q, want format %q", t.Time, timeFormat)
		}
	}
	if t.Security == "" {
		return fmt.Errorf("trade has no security")
	}
	if err := ValidTicker(t.Security); err != nil {
		return err
	}
	if _, err := ParseAction(string(t.Action)); err != nil {
		return err
	}
	if !t.Quantity.IsPositive() {
		return fmt.Errorf("trade quantity must be positive, got %s", t.Quantity)
	}
	if t.Price.IsNegative() {
		return fmt.Errorf("trade price must not be negative, got %s", t.Price)
	}
	if t.Fee.IsNegative() {
		return fmt.Errorf("trade fee must not be negative, got %s", t.Fee)
	}
	return nil
}

// Equal reports whether two trades hold the same fact, ignoring the
// sequence index.
func (t Trade) Equal(o Trade) bool {
	return t.Date == o.Date &&
		t.Time == o.Time &&
		t.Security == o.Security &&
		t.Action == o.Action &&
		t.Quantity.Equal(o.Quantity) &&
		t.Price.Equal(o.Price) &&
		t.Fee.Equal(o.Fee) &&
		t.Memo == o.Memo
}

// MarshalJSON implements the json.Marshaler interface for Trade, keeping a
// stable field order in the ledger file.
func (t Trade) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("date", t.Date)
	w.Optional("time", t.Time)
	w.Append("action", t.Action)
	w.Append("security", t.Security)
	w.Append("quantity", t.Quantity)
	w.Append("price", t.Price.value)
	if !t.Fee.IsZero() {
		w.Append("fee", t.Fee.value)
	}
	if c := t.Price.Currency(); c != DefaultCurrency {
		w.Optional("currency", c)
	}
	w.Optional("memo", t.Memo)
	return w.MarshalJSON()
}
