// Package cmd provides the CLI command implementations
package cmd

import (
	"log"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "classfdr",
	Short: "classfdr - peptide class FDR filtering for proteomics search results",
	Long: `classfdr filters peptide-spectrum matches (PSMs) by estimating
false discovery rate thresholds. In addition to the usual global FDR it
can apply an independent FDR per peptide class (novel ORFs, pseudogenes,
ncRNA, mutation-derived peptides, ...), optionally stabilized with a
Bayesian regression correction for classes with few decoys.

Peptide classes can be given in two forms. A flat list:
  "altorf,pseudo,ncRNA,COSMIC,cbiomut,var_mut,var_rs"
where every entry is its own class, or grouped:
  "{non_canonical:[altorf,pseudo,ncRNA];mutations:[COSMIC,cbiomut]}"
where a class aggregates several peptide sources. The two forms cannot
be combined.`,
	Version: "1.0.0",
}

func Execute() error {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(filterCmd)
}
