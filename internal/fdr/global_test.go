package fdr

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// testPSM builds a minimal PSM for estimator tests
func testPSM(id string, score float64, target bool, higherIsBetter bool, accessions ...string) *PSM {
	return &PSM{
		ID:             id,
		Score:          score,
		IsTarget:       target,
		HigherIsBetter: higherIsBetter,
		Accessions:     accessions,
	}
}

func TestComputeGlobalFDR(t *testing.T) {
	// Four targets followed by one decoy, best confidence first.
	// Cumulative target counts at ranks 1-5 are [1,2,3,4,4], so the
	// FDR at rank 5 is 5/4-1 = 0.25 and zero before that.
	psms := []*PSM{
		testPSM("p1", 0.9, true, true, "sp|P1"),
		testPSM("p2", 0.8, true, true, "sp|P2"),
		testPSM("p3", 0.7, true, true, "sp|P3"),
		testPSM("p4", 0.6, true, true, "sp|P4"),
		testPSM("p5", 0.5, false, true, "decoy_sp|P5"),
	}
	if err := ComputeGlobalFDR(psms); err != nil {
		t.Fatalf("ComputeGlobalFDR: error return %v", err)
	}

	gotFDR := make([]float64, len(psms))
	gotQ := make([]float64, len(psms))
	for i, p := range psms {
		gotFDR[i] = p.FDR
		gotQ[i] = p.QValue
	}
	wantFDR := []float64{0, 0, 0, 0, 0.25}
	wantQ := []float64{0, 0, 0, 0, 0.25}
	if diff := cmp.Diff(wantFDR, gotFDR); diff != "" {
		t.Errorf("FDR mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(wantQ, gotQ); diff != "" {
		t.Errorf("q-value mismatch (-want +got):\n%s", diff)
	}
}

func TestComputeGlobalFDRAllTargets(t *testing.T) {
	psms := []*PSM{
		testPSM("p1", 0.001, true, false, "sp|P1"),
		testPSM("p2", 0.01, true, false, "sp|P2"),
		testPSM("p3", 0.2, true, false, "sp|P3"),
	}
	if err := ComputeGlobalFDR(psms); err != nil {
		t.Fatalf("ComputeGlobalFDR: error return %v", err)
	}
	for _, p := range psms {
		if p.FDR != 0 || p.QValue != 0 {
			t.Errorf("PSM %s: FDR=%g q=%g, want both 0", p.ID, p.FDR, p.QValue)
		}
	}
}

func TestComputeGlobalFDRMonotonic(t *testing.T) {
	// Interleaved targets and decoys, lower score is better
	psms := []*PSM{
		testPSM("p1", 0.001, true, false, "sp|P1"),
		testPSM("p2", 0.002, false, false, "decoy_1"),
		testPSM("p3", 0.003, true, false, "sp|P2"),
		testPSM("p4", 0.004, true, false, "sp|P3"),
		testPSM("p5", 0.005, false, false, "decoy_2"),
		testPSM("p6", 0.006, true, false, "sp|P4"),
		testPSM("p7", 0.007, false, false, "decoy_3"),
	}
	if err := ComputeGlobalFDR(psms); err != nil {
		t.Fatalf("ComputeGlobalFDR: error return %v", err)
	}
	// ComputeGlobalFDR leaves the slice confidence-ordered
	for i := 1; i < len(psms); i++ {
		if psms[i].QValue < psms[i-1].QValue {
			t.Errorf("q-value decreases from rank %d (%g) to rank %d (%g)",
				i, psms[i-1].QValue, i+1, psms[i].QValue)
		}
	}
}

func TestComputeGlobalFDRMixedOrientation(t *testing.T) {
	psms := []*PSM{
		testPSM("p1", 0.9, true, true, "sp|P1"),
		testPSM("p2", 0.01, true, false, "sp|P2"),
	}
	err := ComputeGlobalFDR(psms)
	if !errors.Is(err, ErrMixedOrientation) {
		t.Errorf("expected ErrMixedOrientation, got %v", err)
	}
}
