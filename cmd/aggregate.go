package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/AndreFelix74/divulga-rentab"
	"github.com/AndreFelix74/divulga-rentab/renderer"
	"github.com/google/subcommands"
)

type aggregateCmd struct {
	consolidated string
}

func (*aggregateCmd) Name() string { return "aggregate" }
func (*aggregateCmd) Synopsis() string {
	return "compute the monthly and year-to-date returns per grouping"
}
func (*aggregateCmd) Usage() string {
	return `rdc aggregate [-name <label>]

  Reads the movement extracts and the plan register, computes the
  value-weighted monthly return and the compounded year-to-date return of
  every grouping, and writes the standardized table into a fresh run folder.

Usage Examples:
# Computes and writes divulga_rentab_agregados.csv.
$ rdc aggregate

`
}

func (c *aggregateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.consolidated, "name", "", "Label of the consolidated rows. Defaults to the configured one.")
}

func (c *aggregateCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := LoadConfig(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid configuration: %v\n", err)
		return subcommands.ExitFailure
	}
	if c.consolidated != "" {
		cfg.ConsolidatedName = c.consolidated
	}

	rows, in, warnings, err := aggregate(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	logWarnings(warnings)

	runID, dir, err := newRunDir(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := writeFile(dir, aggregatedFile, func(w io.Writer) error {
		return rentab.EncodeAggregated(w, rows)
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.RenderRunSummary(runSummary(runID, dir, in, rows, warnings)))
	return subcommands.ExitSuccess
}

// aggregate runs the computation half of the pipeline: load inputs, join and
// aggregate. The returned warnings cover both decoding and aggregation.
func aggregate(cfg Config) ([]rentab.AggregatedReturn, inputs, []rentab.Warning, error) {
	in, err := loadInputs(cfg)
	if err != nil {
		return nil, in, nil, err
	}

	agg := rentab.Aggregator{ConsolidatedName: cfg.ConsolidatedName}
	rows, warnings, err := agg.Aggregate(in.movements, in.plans)
	if err != nil {
		return nil, in, nil, err
	}
	return rows, in, append(in.warnings, warnings...), nil
}

// runSummary assembles the report data common to all pipeline commands.
func runSummary(runID, dir string, in inputs, rows []rentab.AggregatedReturn, warnings []rentab.Warning) *renderer.RunSummary {
	return &renderer.RunSummary{
		RunID:         runID,
		MovementFiles: len(in.files),
		Movements:     len(in.movements),
		Plans:         len(in.plans),
		TotalAssets:   rentab.TotalAssets(in.movements),
		Aggregated:    len(rows),
		Warnings:      warnings,
		OutputDir:     dir,
	}
}
