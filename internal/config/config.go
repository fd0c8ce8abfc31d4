// Package config loads and validates the classfdr run configuration.
// A configuration is built once, before any estimator runs: built-in
// defaults, overlaid with an optional YAML file, overlaid with CLI
// flags. The result is treated as immutable.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

var ErrClassConflict = errors.New(
	"config: peptide_classes and peptide_groups cannot be combined")

// Config holds all recognized options of one filtering run.
type Config struct {
	GlobalFDRCutoff  float64 `yaml:"global_fdr_cutoff"`
	ClassFDRCutoff   float64 `yaml:"class_fdr_cutoff"`
	DecoyPrefix      string  `yaml:"decoy_prefix"`
	MinPeptideLength int     `yaml:"min_peptide_length"`

	// PeptideClasses is a flat comma separated list, each entry its own
	// class. PeptideGroups is a grouped spec like
	// "{non_canonical:[altorf,pseudo,ncRNA];mutations:[COSMIC,cbiomut]}".
	// Supplying both is a configuration error.
	PeptideClasses string `yaml:"peptide_classes"`
	PeptideGroups  string `yaml:"peptide_groups"`

	DisableClassFDR         bool `yaml:"disable_class_fdr"`
	DisableBayesianClassFDR bool `yaml:"disable_bayesian_class_fdr"`

	// FileType selects the input/output format, "idxml" or "triqler".
	FileType string `yaml:"file_type"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		GlobalFDRCutoff: 0.01,
		ClassFDRCutoff:  0.01,
		DecoyPrefix:     "decoy",
		FileType:        "idxml",
	}
}

// Load reads a YAML configuration file on top of the defaults.
// Options absent from the file keep their default value.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports configuration errors. It must pass before any
// estimator runs.
func (c Config) Validate() error {
	if c.PeptideClasses != "" && c.PeptideGroups != "" {
		return ErrClassConflict
	}
	if c.GlobalFDRCutoff < 0 {
		return fmt.Errorf("config: global_fdr_cutoff must not be negative")
	}
	if c.ClassFDRCutoff < 0 {
		return fmt.Errorf("config: class_fdr_cutoff must not be negative")
	}
	switch c.FileType {
	case "idxml", "triqler":
	default:
		return fmt.Errorf("config: unknown file_type %q", c.FileType)
	}
	return nil
}
