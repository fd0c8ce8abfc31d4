package fdr

import (
	"errors"
	"math"
	"sort"
)

var ErrMixedOrientation = errors.New("fdr: PSM set mixes score orientations")

// sortByConfidence orders psms in place, best confidence first,
// according to the score orientation shared by the whole set.
// Returns ErrMixedOrientation if the orientation is not uniform.
func sortByConfidence(psms []*PSM) error {
	if len(psms) == 0 {
		return nil
	}
	higherIsBetter := psms[0].HigherIsBetter
	for _, p := range psms {
		if p.HigherIsBetter != higherIsBetter {
			return ErrMixedOrientation
		}
	}
	sort.SliceStable(psms, func(i, j int) bool {
		if higherIsBetter {
			return psms[i].Score > psms[j].Score
		}
		return psms[i].Score < psms[j].Score
	})
	return nil
}

// rankFDRs computes the target/decoy FDR at each rank of a
// confidence-ordered PSM sequence, and the corresponding q-values.
// With i the 1-indexed rank and T(i) the cumulative number of targets,
// FDR(i) = i/T(i) - 1. The q-value at rank i is the minimum FDR at
// rank i or any worse rank, so q-values never decrease as rank worsens.
func rankFDRs(ranked []*PSM) (fdrs, qvals []float64) {
	fdrs = make([]float64, len(ranked))
	qvals = make([]float64, len(ranked))
	targets := 0
	for i, p := range ranked {
		if p.IsTarget {
			targets++
		}
		// targets == 0 yields +Inf, which the suffix minimum handles
		fdrs[i] = float64(i+1)/float64(targets) - 1
	}
	minFDR := math.Inf(1)
	for i := len(ranked) - 1; i >= 0; i-- {
		if fdrs[i] < minFDR {
			minFDR = fdrs[i]
		}
		qvals[i] = minFDR
	}
	return fdrs, qvals
}

// ComputeGlobalFDR fills in the FDR and QValue fields of all PSMs.
// The order of psms after return is unspecified (callers re-sort as
// needed).
func ComputeGlobalFDR(psms []*PSM) error {
	if err := sortByConfidence(psms); err != nil {
		return err
	}
	fdrs, qvals := rankFDRs(psms)
	for i, p := range psms {
		p.FDR = fdrs[i]
		p.QValue = qvals[i]
	}
	return nil
}
