package fdr

import "strings"

// IsDecoy reports whether any accession contains decoyPrefix as a
// substring. Matching is exact and case sensitive; callers must
// pre-normalize tokens if needed.
func IsDecoy(accessions []string, decoyPrefix string) bool {
	for _, acc := range accessions {
		if strings.Contains(acc, decoyPrefix) {
			return true
		}
	}
	return false
}

// MatchesClass reports whether any accession contains any of the given
// tokens as a substring. Same matching rules as IsDecoy.
func MatchesClass(accessions []string, tokens []string) bool {
	for _, acc := range accessions {
		for _, tok := range tokens {
			if strings.Contains(acc, tok) {
				return true
			}
		}
	}
	return false
}

// Matches reports whether the PSM belongs to the class.
func (c Class) Matches(p *PSM) bool {
	return MatchesClass(p.Accessions, c.Tokens)
}
