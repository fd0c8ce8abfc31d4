package idxml

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html/charset"

	"github.com/proteopipe/classfdr/internal/fdr"
)

// Engine specific UserParams that are never passed through to the PSM
// metadata: either we compute them ourselves, or they duplicate fields
// of the typed PSM record. Checked once at load time.
var excludedParams = map[string]bool{
	"target_decoy":           true,
	"spectrum_reference":     true,
	"rank":                   true,
	"FDR":                    true,
	"q-value":                true,
	"class-specific-q-value": true,
	"protein_references":     true,
}

// Read reads idXML content from an io.Reader.
func Read(reader io.Reader) (IdXML, error) {
	var f IdXML
	d := xml.NewDecoder(reader)
	d.CharsetReader = charset.NewReaderLabel
	if err := d.Decode(&f.content); err != nil {
		return f, err
	}
	err := f.resolveRuns()
	return f, err
}

// resolveRuns determines the MS run name of every identification run
// from the spectra_data user param of its protein section. A run with
// peptide identifications but no resolvable name has no stable PSM
// keys, which is fatal.
func (f *IdXML) resolveRuns() error {
	f.msRun = make([]string, len(f.content.IdentificationRun))
	for i, run := range f.content.IdentificationRun {
		name := ""
		for _, prot := range run.ProteinIdent {
			for _, up := range prot.UserParam {
				if up.Name == "spectra_data" {
					name = msRunName(up.Value)
				}
			}
		}
		if name == "" {
			if len(run.PeptideIdent) > 0 {
				return fmt.Errorf("%w: run %d (%s) has no spectra_data",
					ErrUnresolvedRun, i, run.SearchEngine)
			}
			continue
		}
		f.msRun[i] = name
	}
	return nil
}

// msRunName converts a spectra_data value like "[file1.mzML, file2.mzML]"
// into a single run name
func msRunName(value string) string {
	value = strings.TrimPrefix(value, "[")
	value = strings.TrimSuffix(value, "]")
	parts := strings.Split(value, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return strings.Join(parts, "_")
}

// psmID builds the stable PSM key from the run name, the spectrum
// reference and the 1-based rank of the hit within the spectrum.
func psmID(msRun, specRef string, rank int) string {
	return msRun + "_" + specRef + "_" + strconv.Itoa(rank)
}

// NumPeptideIDs returns the total number of peptide identifications
// (spectra with at least one hit) in the file.
func (f *IdXML) NumPeptideIDs() int {
	n := 0
	for _, run := range f.content.IdentificationRun {
		n += len(run.PeptideIdent)
	}
	return n
}

// PSMs converts all peptide hits into PSM records. Target/decoy status
// is derived from decoyPrefix substring matching on the accessions.
// Peptides shorter than minPepLen are dropped (an advisory filter
// applied upstream of the FDR estimation; 0 disables it). Engine
// specific UserParams outside the exclusion set are carried along
// unchanged.
func (f *IdXML) PSMs(decoyPrefix string, minPepLen int) ([]*fdr.PSM, error) {
	var psms []*fdr.PSM
	for ri, run := range f.content.IdentificationRun {
		msRun := f.msRun[ri]
		accByID := make(map[string]string, len(run.ProteinIdent))
		for _, prot := range run.ProteinIdent {
			for _, hit := range prot.ProteinHit {
				accByID[hit.ID] = hit.Accession
			}
		}
		for _, pepID := range run.PeptideIdent {
			for hi, hit := range pepID.PeptideHit {
				if minPepLen > 0 && len(unmodifiedSequence(hit.Sequence)) < minPepLen {
					continue
				}
				accessions, err := hitAccessions(hit, accByID)
				if err != nil {
					return nil, fmt.Errorf("%w (spectrum %s)",
						err, pepID.SpectrumReference)
				}
				rank := hi + 1
				psm := &fdr.PSM{
					ID:             psmID(msRun, pepID.SpectrumReference, rank),
					Run:            msRun,
					SpecRef:        pepID.SpectrumReference,
					Rank:           rank,
					Charge:         hit.Charge,
					Sequence:       hit.Sequence,
					MZ:             pepID.MZ,
					RT:             pepID.RT,
					Score:          hit.Score,
					HigherIsBetter: pepID.HigherScoreBetter,
					IsTarget:       !fdr.IsDecoy(accessions, decoyPrefix),
					Accessions:     accessions,
				}
				for _, up := range hit.UserParam {
					if !excludedParams[up.Name] {
						psm.Meta = append(psm.Meta, fdr.MetaValue{
							Name: up.Name, Type: up.Type, Value: up.Value,
						})
					}
				}
				psms = append(psms, psm)
			}
		}
	}
	return psms, nil
}

// hitAccessions resolves the protein references of a hit to accessions.
// References that don't resolve are kept verbatim rather than dropped,
// so decoy/class matching still sees them.
func hitAccessions(hit peptideHit, accByID map[string]string) ([]string, error) {
	refs := strings.Fields(hit.ProteinRefs)
	if len(refs) == 0 {
		return nil, ErrNoAccessions
	}
	accessions := make([]string, 0, len(refs))
	for _, ref := range refs {
		if acc, ok := accByID[ref]; ok {
			accessions = append(accessions, acc)
		} else {
			accessions = append(accessions, ref)
		}
	}
	return accessions, nil
}

// unmodifiedSequence strips bracketed modification annotations, e.g.
// "PEPM(Oxidation)TIDE" -> "PEPMTIDE", ".(Acetyl)PEPT" -> ".PEPT"
func unmodifiedSequence(seq string) string {
	var b strings.Builder
	depth := 0
	for _, r := range seq {
		switch {
		case r == '(' || r == '[':
			depth++
		case r == ')' || r == ']':
			if depth > 0 {
				depth--
			}
		case depth == 0 && r != '.':
			b.WriteRune(r)
		}
	}
	return b.String()
}
