package fdr

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// UnachievableFDR is stored as ClassQValue when the Bayesian correction
// cannot be computed for a PSM (no targets seen yet in its class). It
// excludes the PSM from any finite threshold without failing the run.
const UnachievableFDR = 10000

// countSnapshot holds the running target/decoy counts at one rank.
type countSnapshot struct {
	globalTargets int
	globalDecoys  int
	classTargets  int
	classDecoys   int
}

// classModel is a first degree least-squares fit of the observed decoy
// fraction of a class against the transformed score.
type classModel struct {
	alpha, beta float64
}

func (m classModel) gamma(x float64) float64 {
	return m.alpha + m.beta*x
}

// ComputeBayesClassFDR fills in the ClassQValue field of all PSMs with
// a model-corrected class FDR estimate. Classes with few decoys give
// noisy direct estimates; this estimator fits the observed decoy
// fraction of each class against x = -log10(score) and uses the fitted
// line plus target-count ratios to rescale the global decoy/target
// ratio at each rank. Scores are treated as probability-like values in
// (0,1]; anything else violates the input contract.
//
// Observations are recorded per PSM, so distinct decoys with an
// identical transformed score all contribute to the fit.
//
// PSMs matching no class with a fitted model keep their global q-value
// as ClassQValue. ComputeGlobalFDR must have run first.
func ComputeBayesClassFDR(psms []*PSM, classes []Class, decoyPrefix string) error {
	if err := sortByConfidence(psms); err != nil {
		return err
	}

	xs := make([]float64, len(psms))
	obsX := make([][]float64, len(classes))
	obsY := make([][]float64, len(classes))
	snaps := make([][]countSnapshot, len(classes))
	for c := range classes {
		snaps[c] = make([]countSnapshot, len(psms))
	}

	// First pass, rank order: collect running counts and, for every
	// decoy in a class, the observation point (x, classDecoys/globalDecoys).
	globalTargets, globalDecoys := 0, 0
	classTargets := make([]int, len(classes))
	classDecoys := make([]int, len(classes))
	for i, p := range psms {
		x := -math.Log10(p.Score)
		xs[i] = x
		if IsDecoy(p.Accessions, decoyPrefix) {
			globalDecoys++
			for c, class := range classes {
				if class.Matches(p) {
					classDecoys[c]++
					obsX[c] = append(obsX[c], x)
					obsY[c] = append(obsY[c], float64(classDecoys[c])/float64(globalDecoys))
				}
			}
		} else {
			globalTargets++
			for c, class := range classes {
				if class.Matches(p) {
					classTargets[c]++
				}
			}
		}
		for c := range classes {
			snaps[c][i] = countSnapshot{
				globalTargets: globalTargets,
				globalDecoys:  globalDecoys,
				classTargets:  classTargets[c],
				classDecoys:   classDecoys[c],
			}
		}
		debugLogRank(i, len(psms), p, x, globalTargets, globalDecoys)
	}

	// Fit one line per class that has observations. Classes without
	// decoy observations get no model; their members fall back to the
	// global q-value below.
	models := make([]*classModel, len(classes))
	for c, class := range classes {
		if len(obsX[c]) == 0 {
			continue
		}
		var m classModel
		if len(obsX[c]) == 1 {
			// A single observation cannot constrain a slope
			m = classModel{alpha: obsY[c][0]}
		} else {
			m.alpha, m.beta = stat.LinearRegression(obsX[c], obsY[c], nil, false)
		}
		models[c] = &m
		debugLogFit(class.Name, len(obsX[c]), m.alpha, m.beta)
	}

	// Second pass, same order: rescale the global decoy/target ratio at
	// each rank by the fitted decoy fraction and the target-count ratio.
	for i, p := range psms {
		canonical := true
		for c, class := range classes {
			if models[c] == nil || !class.Matches(p) {
				continue
			}
			canonical = false
			s := snaps[c][i]
			if s.globalTargets == 0 || s.classTargets == 0 {
				p.ClassQValue = UnachievableFDR
				continue
			}
			localFDR := float64(s.globalDecoys) / float64(s.globalTargets)
			p.ClassQValue = localFDR * models[c].gamma(xs[i]) *
				(float64(s.globalTargets) / float64(s.classTargets))
		}
		if canonical {
			p.ClassQValue = p.QValue
		}
	}
	return nil
}
