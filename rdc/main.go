package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/AndreFelix74/divulga-rentab/cmd"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// completion describes the command line for shell completion. Install it
// with COMP_INSTALL=1 rdc.
var completion = &complete.Command{
	Flags: map[string]complete.Predictor{
		"config": predict.Files("*.yaml"),
	},
	Sub: map[string]*complete.Command{
		"aggregate": {Flags: map[string]complete.Predictor{"name": predict.Nothing}},
		"entities":  {Flags: map[string]complete.Predictor{"strict": predict.Nothing}},
		"reconcile": {Flags: map[string]complete.Predictor{"tolerance": predict.Nothing}},
		"topic":     {Args: predict.Set{"readme", "aggregation", "reconciliation", "configuration"}},
	},
}

func main() {
	completion.Complete("rdc")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))

	for _, c := range cmd.Commands {
		commander.Register(c, "")
	}
	commander.Register(commander.HelpCommand(), "help")

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
