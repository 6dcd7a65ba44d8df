package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/AndreFelix74/divulga-rentab"
	"github.com/AndreFelix74/divulga-rentab/renderer"
	"github.com/google/subcommands"
)

type reconcileCmd struct {
	tolerance float64
}

func (*reconcileCmd) Name() string { return "reconcile" }
func (*reconcileCmd) Synopsis() string {
	return "run the full pipeline and compare against the official figures"
}
func (*reconcileCmd) Usage() string {
	return `rdc reconcile [-tolerance <fraction>]

  Runs the full disclosure pipeline: aggregates the local returns, resolves
  entities against Maestro, fetches the official return series and classifies
  every comparison. The run folder receives the aggregated table, the entity
  resolution table, the full comparison table and a markdown summary.

Usage Examples:
# Full reconciliation with a relative tolerance of one basis point.
$ rdc reconcile -tolerance 0.0001

`
}

func (c *reconcileCmd) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&c.tolerance, "tolerance", -1, "Relative tolerance. Defaults to the configured one.")
}

func (c *reconcileCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := LoadConfig(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid configuration: %v\n", err)
		return subcommands.ExitFailure
	}
	if c.tolerance >= 0 {
		cfg.Tolerance = c.tolerance
	}

	rows, in, warnings, err := aggregate(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	logWarnings(warnings)

	client, err := maestroClient(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	entities, err := client.FetchEntities()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	official, err := client.FetchOfficialReturns()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	reconciled := rentab.Resolve(rows, rentab.NewEntityCatalog(entities))
	discrepancies := rentab.Compare(reconciled, rentab.NewOfficialReturnCatalog(official), cfg.Tolerance)

	runID, dir, err := newRunDir(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	outputs := []struct {
		name   string
		encode func(io.Writer) error
	}{
		{aggregatedFile, func(w io.Writer) error { return rentab.EncodeAggregated(w, rows) }},
		{entitiesFile, func(w io.Writer) error { return rentab.EncodeReconciled(w, reconciled) }},
		{discrepanciesFile, func(w io.Writer) error { return rentab.EncodeDiscrepancies(w, discrepancies) }},
	}
	for _, out := range outputs {
		if err := writeFile(dir, out.name, out.encode); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
	}

	summary := runSummary(runID, dir, in, rows, warnings)
	summary.Unresolved = rentab.UnresolvedByKind(reconciled)
	summary.Discrepancies = renderer.CountDiscrepancies(discrepancies)

	doc := renderer.RenderRunSummary(summary)
	if err := writeFile(dir, summaryFile, func(w io.Writer) error {
		_, err := io.Copy(w, strings.NewReader(doc))
		return err
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(doc)

	return subcommands.ExitSuccess
}
