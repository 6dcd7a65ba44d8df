// Package cmd implements the CLI application to run the disclosure pipeline.
package cmd

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/AndreFelix74/divulga-rentab"
	"github.com/AndreFelix74/divulga-rentab/maestro"
	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"github.com/google/uuid"
)

// Commands lists the subcommands for the main package to register.
var Commands = []subcommands.Command{
	&aggregateCmd{},
	&entitiesCmd{},
	&reconcileCmd{},
	&topicCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", "rdc.yaml", "Path to the configuration file")

// Output file names, fixed by the downstream consumers of a run.
const (
	aggregatedFile    = "divulga_rentab_agregados.csv"
	entitiesFile      = "divulga_rentab_entidades.csv"
	discrepanciesFile = "divulga_rentab_divergencias.csv"
	summaryFile       = "summary.md"
)

// inputs is everything a run reads before computing anything.
type inputs struct {
	files     []string
	movements []rentab.MovementRecord
	plans     map[string]rentab.AuxPlanInfo
	warnings  []rentab.Warning
}

// loadInputs reads the movement extracts and the plan register named by the
// configuration.
func loadInputs(cfg Config) (in inputs, err error) {
	in.files, err = rentab.FindMovementFiles(cfg.MovementsPath)
	if err != nil {
		return in, err
	}
	if len(in.files) == 0 {
		return in, fmt.Errorf("no movement files under %q", cfg.MovementsPath)
	}

	in.movements, in.warnings, err = rentab.LoadMovements(cfg.MovementsPath)
	if err != nil {
		return in, err
	}

	f, err := os.Open(cfg.AuxPath)
	if err != nil {
		return in, fmt.Errorf("cannot open plan register: %w", err)
	}
	defer f.Close()
	in.plans, err = rentab.DecodeAuxPlans(f)
	if err != nil {
		return in, fmt.Errorf("cannot read plan register %q: %w", cfg.AuxPath, err)
	}
	return in, nil
}

// newRunDir creates a fresh output folder for this run, so that successive
// runs never overwrite each other.
func newRunDir(cfg Config) (runID, dir string, err error) {
	runID = uuid.NewString()
	dir = filepath.Join(cfg.OutputPath, runID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", "", fmt.Errorf("cannot create run folder %q: %w", dir, err)
	}
	return runID, dir, nil
}

// writeFile creates name inside the run folder and fills it with encode.
func writeFile(dir, name string, encode func(io.Writer) error) error {
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return err
	}
	if err := encode(f); err != nil {
		f.Close()
		return fmt.Errorf("cannot write %s: %w", name, err)
	}
	return f.Close()
}

// maestroClient builds the Maestro client from the configuration and the
// environment. API_BASE, when set, overrides the configured base URL.
func maestroClient(cfg Config) (*maestro.Client, error) {
	base := os.Getenv("API_BASE")
	if base == "" {
		base = cfg.APIBase
	}
	if base == "" {
		return nil, fmt.Errorf("api_base is not configured and API_BASE is not set")
	}
	creds, err := maestro.CredentialsFromEnv()
	if err != nil {
		return nil, err
	}
	return maestro.NewClient(base, maestro.NewTokenSource(creds)), nil
}

// logWarnings reports data-quality warnings without failing the run.
func logWarnings(warnings []rentab.Warning) {
	for _, w := range warnings {
		log.Println("warning:", w)
	}
}

// printMarkdown renders a markdown document for the terminal. When rendering
// fails (no TTY, unknown terminal) the raw markdown is still readable.
func printMarkdown(doc string) {
	out, err := glamour.Render(doc, "auto")
	if err != nil {
		fmt.Print(doc)
		return
	}
	fmt.Print(out)
}
