package fdr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// bayesPSMs is the worked example used by the Bayesian estimator tests.
// Lower score is better; class "novel" matches token "ALT".
//
// Rank order with running counts (gT/gD global, cT/cD class):
//
//	1  0.001  T  sp|P1          gT=1 gD=0            canonical
//	2  0.01   T  ALT_1          gT=2 gD=0  cT=1 cD=0
//	3  0.02   D  decoy_ALT_2    gT=2 gD=1  cT=1 cD=1  obs (1.69897, 1)
//	4  0.05   T  ALT_3          gT=3 gD=1  cT=2 cD=1
//	5  0.1    D  decoy_sp|P2    gT=3 gD=2            canonical
//	6  0.5    D  decoy_ALT_4    gT=3 gD=3  cT=2 cD=2  obs (0.30103, 2/3)
func bayesPSMs() []*PSM {
	return []*PSM{
		testPSM("p1", 0.001, true, false, "sp|P1"),
		testPSM("p2", 0.01, true, false, "ALT_1"),
		testPSM("p3", 0.02, false, false, "decoy_ALT_2"),
		testPSM("p4", 0.05, true, false, "ALT_3"),
		testPSM("p5", 0.1, false, false, "decoy_sp|P2"),
		testPSM("p6", 0.5, false, false, "decoy_ALT_4"),
	}
}

func TestComputeBayesClassFDR(t *testing.T) {
	psms := bayesPSMs()
	require.NoError(t, ComputeGlobalFDR(psms))
	classes := []Class{{Name: "novel", Tokens: []string{"ALT"}}}
	require.NoError(t, ComputeBayesClassFDR(psms, classes, "decoy"))

	byID := make(map[string]*PSM)
	for _, p := range psms {
		byID[p.ID] = p
	}

	// Canonical PSMs keep the global q-value exactly
	assert.Equal(t, byID["p1"].QValue, byID["p1"].ClassQValue)
	assert.Equal(t, byID["p5"].QValue, byID["p5"].ClassQValue)

	// The fitted line passes through both observation points, so
	// gamma(x3) = 1 and gamma(x6) = 2/3 exactly.
	// p2: localFDR = 0/2 = 0
	assert.Equal(t, 0.0, byID["p2"].ClassQValue)
	// p3: (1/2) * 1 * (2/1) = 1
	assert.InDelta(t, 1.0, byID["p3"].ClassQValue, 1e-9)
	// p6: (3/3) * (2/3) * (3/2) = 1
	assert.InDelta(t, 1.0, byID["p6"].ClassQValue, 1e-9)
	// p4: localFDR = 1/3, target ratio 3/2, gamma(-log10(0.05))
	// with alpha = 0.594887, beta = 0.238446 gives 0.905113, so
	// the corrected estimate is 0.905113/2
	assert.InDelta(t, 0.452556, byID["p4"].ClassQValue, 1e-4)
}

func TestComputeBayesClassFDREmptyClass(t *testing.T) {
	// A class matching none of the PSMs must not fail, and every PSM
	// keeps its global q-value as ClassQValue
	psms := bayesPSMs()
	require.NoError(t, ComputeGlobalFDR(psms))
	classes := []Class{{Name: "mutations", Tokens: []string{"COSMIC"}}}
	require.NoError(t, ComputeBayesClassFDR(psms, classes, "decoy"))
	for _, p := range psms {
		assert.Equal(t, p.QValue, p.ClassQValue, "PSM %s", p.ID)
	}
}

func TestComputeBayesClassFDRNoClassTargets(t *testing.T) {
	// The only class member seen before the first snapshot is a decoy:
	// the correction cannot divide by the class target count and must
	// store the unachievable sentinel instead of failing
	psms := []*PSM{
		testPSM("p1", 0.001, false, false, "decoy_X_1"),
		testPSM("p2", 0.01, true, false, "sp|P1"),
	}
	require.NoError(t, ComputeGlobalFDR(psms))
	classes := []Class{{Name: "x", Tokens: []string{"X"}}}
	require.NoError(t, ComputeBayesClassFDR(psms, classes, "decoy"))

	assert.Equal(t, float64(UnachievableFDR), psms[0].ClassQValue)
	assert.Equal(t, psms[1].QValue, psms[1].ClassQValue)
}

func TestComputeBayesClassFDRNoDecoyObservations(t *testing.T) {
	// A class with members but no decoys is skipped by the fit; its
	// members fall back to the global q-value
	psms := []*PSM{
		testPSM("p1", 0.001, true, false, "ALT_1"),
		testPSM("p2", 0.01, true, false, "ALT_2"),
		testPSM("p3", 0.02, false, false, "decoy_sp|P1"),
	}
	require.NoError(t, ComputeGlobalFDR(psms))
	classes := []Class{{Name: "novel", Tokens: []string{"ALT"}}}
	require.NoError(t, ComputeBayesClassFDR(psms, classes, "decoy"))
	for _, p := range psms {
		assert.Equal(t, p.QValue, p.ClassQValue, "PSM %s", p.ID)
	}
}

func TestComputeBayesClassFDRMixedOrientation(t *testing.T) {
	psms := []*PSM{
		testPSM("p1", 0.9, true, true, "sp|P1"),
		testPSM("p2", 0.01, true, false, "sp|P2"),
	}
	err := ComputeBayesClassFDR(psms, nil, "decoy")
	assert.ErrorIs(t, err, ErrMixedOrientation)
}
