package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/capgains/cmd"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// completion describes the command line for shell completion.
var completion = &complete.Command{
	Flags: map[string]complete.Predictor{
		"ledger-path": predict.Dirs("*"),
	},
	Sub: map[string]*complete.Command{
		"gains": {Flags: map[string]complete.Predictor{
			"year":   predict.Something,
			"ticker": predict.Something,
			"l":      predict.Files("*.jsonl"),
		}},
		"holdings": {Flags: map[string]complete.Predictor{
			"d": predict.Something,
			"l": predict.Files("*.jsonl"),
		}},
		"tx": {Flags: map[string]complete.Predictor{
			"year":   predict.Something,
			"ticker": predict.Something,
			"l":      predict.Files("*.jsonl"),
		}},
		"buy":  {Flags: tradeFlagPredictors},
		"sell": {Flags: tradeFlagPredictors},
		"publish": {Flags: map[string]complete.Predictor{
			"o":           predict.Dirs("*"),
			"frontmatter": predict.Files("*"),
			"l":           predict.Files("*.jsonl"),
		}},
		"topic": {Args: predict.Set{"readme", "fifo", "ledger", "tax-years"}},
	},
}

var tradeFlagPredictors = map[string]complete.Predictor{
	"d":    predict.Something,
	"time": predict.Something,
	"s":    predict.Something,
	"q":    predict.Something,
	"p":    predict.Something,
	"f":    predict.Something,
	"memo": predict.Nothing,
	"l":    predict.Files("*.jsonl"),
}

func main() {
	completion.Complete("cgt")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))

	for _, c := range cmd.Commands {
		commander.Register(c, "")
	}
	commander.Register(commander.HelpCommand(), "help")
	commander.Register(commander.FlagsCommand(), "help")

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
