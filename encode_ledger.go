package capgains

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// tradeCmd is a specialized struct for decoding one ledger line.
type tradeCmd struct {
	Date     Date            `json:"date"`
	Time     string          `json:"time"`
	Action   string          `json:"action"`
	Security string          `json:"security"`
	Quantity Quantity        `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Fee      decimal.Decimal `json:"fee"`
	Currency string          `json:"currency"`
	Memo     string          `json:"memo"`
}

func (c tradeCmd) trade() Trade {
	currency := c.Currency
	if currency == "" {
		currency = DefaultCurrency
	}
	return Trade{
		Date:     c.Date,
		Time:     c.Time,
		Security: c.Security,
		Action:   Action(c.Action),
		Quantity: c.Quantity,
		Price:    M(c.Price, currency),
		Fee:      M(c.Fee, currency),
		Memo:     c.Memo,
	}
}

// DecodeLedger decodes trades from a stream of JSONL data, one trade per
// line, and returns a chronologically sorted Ledger.
//
// A line that cannot be decoded (broken JSON, unparseable date) is skipped
// with a notice rather than aborting the load: the matcher later surfaces
// these notices on its diagnostics stream. Only a read failure is an error.
func DecodeLedger(r io.Reader) (*Ledger, error) {
	ledger := NewLedger()
	scanner := bufio.NewScanner(r)

	var trades []Trade
	line := 0
	for scanner.Scan() {
		line++
		lineBytes := scanner.Bytes()
		if len(lineBytes) == 0 {
			continue // Skip empty lines
		}

		var temp tradeCmd
		if err := json.Unmarshal(lineBytes, &temp); err != nil {
			ledger.notices = append(ledger.notices, Notice{
				Message: fmt.Sprintf("skipping ledger line %d: %v", line, err),
			})
			continue
		}
		trades = append(trades, temp.trade())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading from input: %w", err)
	}

	ledger.Append(trades...)
	return ledger, nil
}

// EncodeTrade marshals a single trade to JSON and writes it to the writer,
// followed by a newline, in JSONL format.
func EncodeTrade(w io.Writer, t Trade) error {
	data, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("failed to marshal trade: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write trade: %w", err)
	}
	return nil
}

// EncodeLedger persists the ledger's trades to an io.Writer in JSONL
// format, in chronological order.
func EncodeLedger(w io.Writer, ledger *Ledger) error {
	for t := range ledger.Trades() {
		if err := EncodeTrade(w, t); err != nil {
			return err
		}
	}
	return nil
}
