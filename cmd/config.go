package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/AndreFelix74/divulga-rentab"
	"gopkg.in/yaml.v3"
)

// Config holds the run parameters read from the YAML configuration file.
type Config struct {
	// MovementsPath is the folder scanned for raw movement extracts.
	MovementsPath string `yaml:"movements_path"`
	// AuxPath is the plan register file (dCadPlanoSAC).
	AuxPath string `yaml:"aux_path"`
	// OutputPath is the folder receiving one subfolder per run.
	OutputPath string `yaml:"output_path"`
	// Tolerance is the relative difference accepted before a comparison is a
	// mismatch.
	Tolerance float64 `yaml:"tolerance"`
	// ConsolidatedName labels the consolidated rows.
	ConsolidatedName string `yaml:"consolidated_name"`
	// APIBase is the root URL of the Maestro API.
	APIBase string `yaml:"api_base"`
}

// DefaultConfig returns the configuration used when no file overrides it.
func DefaultConfig() Config {
	return Config{
		MovementsPath:    ".",
		AuxPath:          "dCadPlanoSAC.csv",
		OutputPath:       "output",
		Tolerance:        1e-4,
		ConsolidatedName: rentab.DefaultConsolidatedName,
	}
}

// LoadConfig reads the configuration file at path over the defaults. A
// missing file is not an error, the defaults apply.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	content, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Printf("warning, configuration file %q not found, using defaults", path)
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(content, &cfg); err != nil {
		return cfg, fmt.Errorf("cannot parse configuration %q: %w", path, err)
	}

	if cfg.Tolerance < 0 {
		return cfg, fmt.Errorf("invalid tolerance %v: must not be negative", cfg.Tolerance)
	}
	if cfg.ConsolidatedName == "" {
		return cfg, errors.New("consolidated_name must not be empty")
	}
	return cfg, nil
}
