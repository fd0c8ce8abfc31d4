package fdr

// Mode selects which estimator combination the pipeline applies.
type Mode int

const (
	// ModeGlobal filters on the global q-value only.
	ModeGlobal Mode = iota
	// ModeClass additionally filters on the per-class q-value.
	ModeClass
	// ModeBayesian additionally filters on the Bayesian-corrected
	// per-class q-value.
	ModeBayesian
)

func (m Mode) String() string {
	switch m {
	case ModeGlobal:
		return "global"
	case ModeClass:
		return "class"
	case ModeBayesian:
		return "bayesian-class"
	}
	return "unknown"
}

// Options are the immutable inputs of one pipeline invocation.
type Options struct {
	GlobalCutoff float64
	ClassCutoff  float64
	DecoyPrefix  string
	Classes      []Class

	// DisableClassFDR restricts filtering to the global q-value.
	// DisableBayes selects the direct class estimator instead of the
	// Bayesian one.
	DisableClassFDR bool
	DisableBayes    bool
}

// Mode returns the estimator combination the options select.
// Without any configured class the class estimators have nothing to
// compute, so the pipeline degrades to global-only.
func (o Options) Mode() Mode {
	if o.DisableClassFDR || len(o.Classes) == 0 {
		return ModeGlobal
	}
	if o.DisableBayes {
		return ModeClass
	}
	return ModeBayesian
}

// StageCount records the number of PSMs surviving one pipeline stage.
type StageCount struct {
	Stage string
	PSMs  int
}

// Result is the outcome of one pipeline run: the retained PSMs with
// FDR, QValue and ClassQValue filled in, plus per-stage counts.
type Result struct {
	PSMs   []*PSM
	Mode   Mode
	Stages []StageCount
}

func (r *Result) record(stage string, n int) {
	r.Stages = append(r.Stages, StageCount{Stage: stage, PSMs: n})
}

// keepIf filters psms in place, retaining the PSMs for which pred is
// true and preserving their order.
func keepIf(psms []*PSM, pred func(*PSM) bool) []*PSM {
	k := 0
	for _, p := range psms {
		if pred(p) {
			psms[k] = p
			k++
		}
	}
	return psms[:k]
}

// Filter runs the estimator combination selected by opts and applies
// the configured cutoffs. The global estimator always runs. Identical
// input and options yield identical output; dropped PSMs are not
// mutated further.
func Filter(psms []*PSM, opts Options) (*Result, error) {
	res := &Result{Mode: opts.Mode()}
	res.record("input", len(psms))

	if err := ComputeGlobalFDR(psms); err != nil {
		return nil, err
	}

	switch res.Mode {
	case ModeGlobal:
		psms = keepIf(psms, func(p *PSM) bool {
			return p.QValue < opts.GlobalCutoff
		})
		res.record("global-fdr", len(psms))
	case ModeClass:
		if err := ComputeClassFDR(psms, opts.Classes); err != nil {
			return nil, err
		}
		psms = keepIf(psms, func(p *PSM) bool {
			return p.QValue < opts.GlobalCutoff && p.ClassQValue < opts.ClassCutoff
		})
		res.record("class-fdr", len(psms))
	case ModeBayesian:
		if err := ComputeBayesClassFDR(psms, opts.Classes, opts.DecoyPrefix); err != nil {
			return nil, err
		}
		psms = keepIf(psms, func(p *PSM) bool {
			return p.QValue < opts.GlobalCutoff && p.ClassQValue < opts.ClassCutoff
		})
		res.record("bayesian-class-fdr", len(psms))
	}

	res.PSMs = psms
	return res, nil
}
