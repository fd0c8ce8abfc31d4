// Package fdr estimates false discovery rates for peptide-spectrum
// matches using target/decoy counting. In addition to the global
// q-value it can compute class-specific q-values for configurable
// peptide classes (novel ORFs, pseudogenes, mutation-derived peptides,
// ...), either directly per class or smoothed with a regression-based
// Bayesian correction for classes with few decoys.
package fdr

// MetaValue is an engine specific key/value pair attached to a PSM.
// The estimators never interpret these, they are carried through
// unchanged for write-back.
type MetaValue struct {
	Name  string
	Type  string
	Value string
}

// PSM is a single peptide-spectrum match.
// FDR, QValue and ClassQValue are computed by the estimators, in that
// order; all other fields are set by the loader and not changed.
type PSM struct {
	// ID is the stable key of the PSM: run identifier, spectrum
	// reference and rank within the spectrum.
	ID string

	Run       string
	Condition string
	SpecRef   string
	Rank      int

	Charge    int
	Sequence  string
	MZ        float64
	RT        float64
	Intensity string

	// Score is the raw search engine score. Its ordering direction is
	// given by HigherIsBetter, which must be the same for all PSMs in
	// one estimation run.
	Score          float64
	HigherIsBetter bool

	// IsTarget is false iff any accession contains the decoy prefix.
	IsTarget   bool
	Accessions []string

	Meta []MetaValue

	FDR         float64
	QValue      float64
	ClassQValue float64
}

// Class is one peptide class: any PSM with an accession containing one
// of the tokens belongs to the class. A flat class configuration yields
// one single-token class per entry, a grouped configuration yields one
// class per named group.
type Class struct {
	Name   string
	Tokens []string
}
