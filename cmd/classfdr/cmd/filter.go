package cmd

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/proteopipe/classfdr/internal/config"
	"github.com/proteopipe/classfdr/internal/fdr"
	"github.com/proteopipe/classfdr/internal/idxml"
	"github.com/proteopipe/classfdr/internal/triqler"
)

var (
	// Flags for the filter command
	configFile       string
	inputFile        string
	outputFile       string
	fileFormat       string
	minPeptideLength int
	globalFDRCutoff  float64
	classFDRCutoff   float64
	decoyPrefix      string
	peptideClasses   string
	peptideGroups    string
	disableClassFDR  bool
	disableBayes     bool
)

var filterCmd = &cobra.Command{
	Use:   "filter",
	Short: "Filter PSMs by global and peptide class FDR",
	Long: `Filter a PSM file using two FDR threshold types: a global FDR,
and optionally a peptide class FDR (direct or Bayesian-corrected).

Examples:
  # Global FDR only
  classfdr filter --in run.idXML --out run-filtered.idXML --disable-class-fdr

  # Bayesian class FDR with grouped classes
  classfdr filter --in run.idXML --out run-filtered.idXML \
    --peptide-groups "{non_canonical:[altorf,pseudo,ncRNA];mutations:[COSMIC,cbiomut]}"

  # Tab-delimited input with flat classes
  classfdr filter --in psms.tsv --out psms-filtered.tsv --format triqler \
    --peptide-classes "altorf,pseudo,ncRNA"`,
	RunE: runFilter,
}

func init() {
	filterCmd.Flags().StringVarP(&configFile, "config", "c", "", "YAML configuration file")
	filterCmd.Flags().StringVarP(&inputFile, "in", "i", "", "Input PSM file (required)")
	filterCmd.Flags().StringVarP(&outputFile, "out", "o", "", "Output file for the filtered PSMs (required)")
	filterCmd.Flags().StringVar(&fileFormat, "format", "", "Input format: idxml or triqler (auto-detect if not specified)")
	filterCmd.Flags().IntVar(&minPeptideLength, "min-peptide-length", 0, "Minimum peptide length (0 = no limit)")
	filterCmd.Flags().Float64Var(&globalFDRCutoff, "global-fdr-cutoff", 0.01, "Global PSM FDR cutoff")
	filterCmd.Flags().Float64Var(&classFDRCutoff, "class-fdr-cutoff", 0.01, "Peptide class FDR cutoff")
	filterCmd.Flags().StringVar(&decoyPrefix, "decoy-prefix", "", "Token marking decoy accessions")
	filterCmd.Flags().StringVar(&peptideClasses, "peptide-classes", "", "Flat peptide class list, e.g. \"altorf,pseudo,ncRNA\"")
	filterCmd.Flags().StringVar(&peptideGroups, "peptide-groups", "", "Grouped peptide class spec, e.g. \"{non_canonical:[altorf,pseudo];mutations:[COSMIC]}\"")
	filterCmd.Flags().BoolVar(&disableClassFDR, "disable-class-fdr", false, "Only compute the global FDR")
	filterCmd.Flags().BoolVar(&disableBayes, "disable-bayesian-class-fdr", false, "Use the direct class FDR instead of the Bayesian method")

	filterCmd.MarkFlagRequired("in")
	filterCmd.MarkFlagRequired("out")
}

// buildConfig merges defaults, the optional YAML file and any flags the
// user set, in that order.
func buildConfig(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Default()
	if configFile != "" {
		var err error
		cfg, err = config.Load(configFile)
		if err != nil {
			return cfg, err
		}
	}
	flags := cmd.Flags()
	if flags.Changed("min-peptide-length") {
		cfg.MinPeptideLength = minPeptideLength
	}
	if flags.Changed("global-fdr-cutoff") {
		cfg.GlobalFDRCutoff = globalFDRCutoff
	}
	if flags.Changed("class-fdr-cutoff") {
		cfg.ClassFDRCutoff = classFDRCutoff
	}
	if flags.Changed("decoy-prefix") {
		cfg.DecoyPrefix = decoyPrefix
	}
	if flags.Changed("peptide-classes") {
		cfg.PeptideClasses = peptideClasses
	}
	if flags.Changed("peptide-groups") {
		cfg.PeptideGroups = peptideGroups
	}
	if flags.Changed("disable-class-fdr") {
		cfg.DisableClassFDR = disableClassFDR
	}
	if flags.Changed("disable-bayesian-class-fdr") {
		cfg.DisableBayesianClassFDR = disableBayes
	}
	if flags.Changed("format") {
		cfg.FileType = strings.ToLower(fileFormat)
	} else if !flags.Changed("config") || cfg.FileType == "" {
		cfg.FileType = detectFormat(inputFile, cfg.FileType)
	}
	return cfg, cfg.Validate()
}

// detectFormat guesses the file format from the input extension.
func detectFormat(path, fallback string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".idxml":
		return "idxml"
	case ".tsv", ".txt", ".triqler":
		return "triqler"
	}
	return fallback
}

func runFilter(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	classes, err := cfg.Classes()
	if err != nil {
		return err
	}

	opts := fdr.Options{
		GlobalCutoff:    cfg.GlobalFDRCutoff,
		ClassCutoff:     cfg.ClassFDRCutoff,
		DecoyPrefix:     cfg.DecoyPrefix,
		Classes:         classes,
		DisableClassFDR: cfg.DisableClassFDR,
		DisableBayes:    cfg.DisableBayesianClassFDR,
	}

	in, err := os.Open(inputFile)
	if err != nil {
		return err
	}
	defer in.Close()

	switch cfg.FileType {
	case "idxml":
		return filterIdXML(in, opts, cfg)
	case "triqler":
		return filterTriqler(in, opts, cfg)
	}
	return fmt.Errorf("unknown input format %q", cfg.FileType)
}

func filterIdXML(in *os.File, opts fdr.Options, cfg config.Config) error {
	doc, err := idxml.Read(in)
	if err != nil {
		return fmt.Errorf("reading %s: %w", inputFile, err)
	}
	psms, err := doc.PSMs(cfg.DecoyPrefix, cfg.MinPeptideLength)
	if err != nil {
		return fmt.Errorf("reading %s: %w", inputFile, err)
	}
	log.Printf("Number of PSMs in %s: %d", inputFile, len(psms))

	res, err := fdr.Filter(psms, opts)
	if err != nil {
		return err
	}
	logStages(res)

	doc.Apply(res.PSMs)
	out, err := os.Create(outputFile)
	if err != nil {
		return err
	}
	defer out.Close()
	return doc.Write(out)
}

func filterTriqler(in *os.File, opts fdr.Options, cfg config.Config) error {
	psms, err := triqler.Read(in, cfg.DecoyPrefix, cfg.MinPeptideLength)
	if err != nil {
		return fmt.Errorf("reading %s: %w", inputFile, err)
	}
	log.Printf("Number of PSMs in %s: %d", inputFile, len(psms))

	res, err := fdr.Filter(psms, opts)
	if err != nil {
		return err
	}
	logStages(res)

	out, err := os.Create(outputFile)
	if err != nil {
		return err
	}
	defer out.Close()
	return triqler.Write(out, res.PSMs)
}

func logStages(res *fdr.Result) {
	for _, s := range res.Stages[1:] {
		log.Printf("Number of PSMs after %s filtering (%s mode): %d",
			s.Stage, res.Mode, s.PSMs)
	}
}
