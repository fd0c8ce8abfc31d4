package fdr

import "testing"

func TestIsDecoy(t *testing.T) {
	tests := []struct {
		name       string
		accessions []string
		prefix     string
		want       bool
	}{
		{"prefix match", []string{"decoy_sp|P1"}, "decoy", true},
		{"substring anywhere", []string{"sp|P1_decoy"}, "decoy", true},
		{"no match", []string{"sp|P1", "altorf_1"}, "decoy", false},
		{"case sensitive", []string{"DECOY_sp|P1"}, "decoy", false},
		{"any accession", []string{"sp|P1", "decoy_sp|P2"}, "decoy", true},
		{"empty accessions", nil, "decoy", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsDecoy(tt.accessions, tt.prefix); got != tt.want {
				t.Errorf("IsDecoy(%v, %q) = %t, want %t",
					tt.accessions, tt.prefix, got, tt.want)
			}
		})
	}
}

func TestMatchesClass(t *testing.T) {
	tests := []struct {
		name       string
		accessions []string
		tokens     []string
		want       bool
	}{
		{"single token", []string{"altorf_00123"}, []string{"altorf"}, true},
		{"any token", []string{"COSMIC_55"}, []string{"altorf", "COSMIC"}, true},
		{"no token", []string{"sp|P1"}, []string{"altorf", "COSMIC"}, false},
		{"case sensitive", []string{"AltORF_1"}, []string{"altorf"}, false},
		{"no tokens", []string{"sp|P1"}, nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MatchesClass(tt.accessions, tt.tokens); got != tt.want {
				t.Errorf("MatchesClass(%v, %v) = %t, want %t",
					tt.accessions, tt.tokens, got, tt.want)
			}
		})
	}
}
