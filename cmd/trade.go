package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/capgains"
	"github.com/google/subcommands"
)

// tradeFlags are the flags shared by the 'buy' and 'sell' subcommands.
type tradeFlags struct {
	date       string
	time       string
	security   string
	quantity   float64
	price      float64
	fee        float64
	memo       string
	ledgerFile string
}

func (c *tradeFlags) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", capgains.Today().String(), "Trade date (YYYY-MM-DD)")
	f.StringVar(&c.time, "time", "", "Optional trade time (HH:MM:SS), orders trades within a date")
	f.StringVar(&c.security, "s", "", "Security ticker")
	f.Float64Var(&c.quantity, "q", 0, "Number of units")
	f.Float64Var(&c.price, "p", 0, "Price per unit")
	f.Float64Var(&c.fee, "f", 0, "Transaction fee")
	f.StringVar(&c.memo, "memo", "", "Optional note for the trade")
	f.StringVar(&c.ledgerFile, "l", "", "Ledger to append to. Defaults to 'trades'.")
}

// trade assembles the trade from the flags.
func (c *tradeFlags) trade(action capgains.Action) (capgains.Trade, error) {
	day, err := capgains.ParseDate(c.date)
	if err != nil {
		return capgains.Trade{}, err
	}
	t := capgains.Trade{
		Date:     day,
		Time:     c.time,
		Security: c.security,
		Action:   action,
		Quantity: capgains.Q(c.quantity),
		Price:    capgains.M(c.price, capgains.DefaultCurrency),
		Fee:      capgains.M(c.fee, capgains.DefaultCurrency),
		Memo:     c.memo,
	}
	return t, nil
}

type buyCmd struct{ tradeFlags }

func (*buyCmd) Name() string     { return "buy" }
func (*buyCmd) Synopsis() string { return "record the acquisition of a security" }
func (*buyCmd) Usage() string {
	return `cgt buy -s <security> -q <quantity> -p <price> [-f <fee>] [-d <date>]

  Appends an acquisition trade to the ledger.
`
}

func (c *buyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	t, err := c.trade(capgains.ActionBuy)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	return appendTrade(c.ledgerFile, t)
}

type sellCmd struct{ tradeFlags }

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "record the disposal of a security" }
func (*sellCmd) Usage() string {
	return `cgt sell -s <security> -q <quantity> -p <price> [-f <fee>] [-d <date>]

  Appends a disposal trade to the ledger.
`
}

func (c *sellCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	t, err := c.trade(capgains.ActionSell)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	return appendTrade(c.ledgerFile, t)
}
