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

type entitiesCmd struct {
	strict bool
}

func (*entitiesCmd) Name() string { return "entities" }
func (*entitiesCmd) Synopsis() string {
	return "resolve local entities against the Maestro register"
}
func (*entitiesCmd) Usage() string {
	return `rdc entities [-strict]

  Computes the aggregated returns, fetches the entity register from Maestro
  and resolves every local entity to its Maestro identifier. Unresolved
  entities are kept in the output and reported.

Usage Examples:
# Resolves entities, failing the run when any is unresolved.
$ rdc entities -strict

`
}

func (c *entitiesCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.strict, "strict", false, "Fail when an entity cannot be resolved.")
}

func (c *entitiesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := LoadConfig(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid configuration: %v\n", err)
		return subcommands.ExitFailure
	}

	rows, in, warnings, err := aggregate(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	logWarnings(warnings)

	reconciled, err := resolveEntities(cfg, rows)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	runID, dir, err := newRunDir(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := writeFile(dir, entitiesFile, func(w io.Writer) error {
		return rentab.EncodeReconciled(w, reconciled)
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	unresolved := rentab.UnresolvedByKind(reconciled)
	summary := runSummary(runID, dir, in, rows, warnings)
	summary.Unresolved = unresolved
	printMarkdown(renderer.RenderRunSummary(summary))

	// The consolidated total has no Maestro identifier, it does not count
	// against a strict run.
	var missing int
	for kind, n := range unresolved {
		if kind != rentab.KindConsolidated {
			missing += n
		}
	}
	if missing > 0 {
		fmt.Fprintf(os.Stderr, "%d entities could not be resolved\n", missing)
		if c.strict {
			return subcommands.ExitFailure
		}
	}
	return subcommands.ExitSuccess
}

// resolveEntities fetches the Maestro entity register and resolves the
// aggregated rows against it.
func resolveEntities(cfg Config, rows []rentab.AggregatedReturn) ([]rentab.ReconciledEntity, error) {
	client, err := maestroClient(cfg)
	if err != nil {
		return nil, err
	}
	entities, err := client.FetchEntities()
	if err != nil {
		return nil, err
	}
	return rentab.Resolve(rows, rentab.NewEntityCatalog(entities)), nil
}
