package fdr

// ComputeClassFDR fills in the ClassQValue field of all PSMs.
// For each class, the subset of matching PSMs is ranked on its own and
// the same cumulative-count/suffix-minimum computation as the global
// estimator is applied to the subset alone. PSMs matching no class keep
// their global q-value as ClassQValue. Classes are processed in slice
// order; for a PSM in overlapping classes the last class wins, so
// callers needing determinism must order classes deterministically.
// ComputeGlobalFDR must have run first.
func ComputeClassFDR(psms []*PSM, classes []Class) error {
	for _, p := range psms {
		p.ClassQValue = p.QValue
	}
	for _, class := range classes {
		subset := make([]*PSM, 0, len(psms))
		for _, p := range psms {
			if class.Matches(p) {
				subset = append(subset, p)
			}
		}
		if len(subset) == 0 {
			continue
		}
		if err := sortByConfidence(subset); err != nil {
			return err
		}
		_, qvals := rankFDRs(subset)
		for i, p := range subset {
			p.ClassQValue = qvals[i]
		}
	}
	return nil
}
