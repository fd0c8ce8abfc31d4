package config

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/proteopipe/classfdr/internal/fdr"
)

// Matches one "name:[token,token,...]" entry of a grouped class spec
var groupRE = regexp.MustCompile(`([^:;{}\[\]]+):\[([^\]]*)\]`)

// ParseClassList parses a flat class spec like
// "altorf,pseudo,ncRNA,COSMIC" into one single-token class per entry.
func ParseClassList(spec string) ([]fdr.Class, error) {
	var classes []fdr.Class
	for _, tok := range strings.Split(spec, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		classes = append(classes, fdr.Class{Name: tok, Tokens: []string{tok}})
	}
	if len(classes) == 0 {
		return nil, fmt.Errorf("config: no peptide classes in %q", spec)
	}
	return classes, nil
}

// ParseClassGroups parses a grouped class spec like
// "{non_canonical:[altorf,pseudo,ncRNA];mutations:[COSMIC,cbiomut]}"
// into one multi-token class per group. Group order in the input is
// preserved, which makes overlapping-class resolution deterministic.
func ParseClassGroups(spec string) ([]fdr.Class, error) {
	matches := groupRE.FindAllStringSubmatch(spec, -1)
	if len(matches) == 0 {
		return nil, fmt.Errorf("config: invalid peptide group spec %q", spec)
	}
	classes := make([]fdr.Class, 0, len(matches))
	for _, m := range matches {
		name := strings.TrimSpace(m[1])
		var tokens []string
		for _, tok := range strings.Split(m[2], ",") {
			tok = strings.TrimSpace(tok)
			if tok != "" {
				tokens = append(tokens, tok)
			}
		}
		if name == "" || len(tokens) == 0 {
			return nil, fmt.Errorf("config: invalid peptide group %q", m[0])
		}
		classes = append(classes, fdr.Class{Name: name, Tokens: tokens})
	}
	return classes, nil
}

// Classes returns the peptide classes the configuration defines, in a
// deterministic order. An empty result means no class FDR is computed.
func (c Config) Classes() ([]fdr.Class, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	switch {
	case c.PeptideGroups != "":
		return ParseClassGroups(c.PeptideGroups)
	case c.PeptideClasses != "":
		return ParseClassList(c.PeptideClasses)
	}
	return nil, nil
}
