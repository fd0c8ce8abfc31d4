package idxml

import (
	"encoding/xml"
	"io"
	"strconv"
	"strings"

	"github.com/proteopipe/classfdr/internal/fdr"
)

// Apply filters the document down to the given PSM set and attaches the
// computed FDR values of each kept PSM as UserParams on its hit.
// Peptide identifications left without hits are removed, and protein
// hits that are no longer referenced by any kept hit are pruned.
func (f *IdXML) Apply(psms []*fdr.PSM) {
	keep := make(map[string]*fdr.PSM, len(psms))
	for _, p := range psms {
		keep[p.ID] = p
	}

	for ri := range f.content.IdentificationRun {
		run := &f.content.IdentificationRun[ri]
		msRun := f.msRun[ri]
		refUsed := make(map[string]bool)

		newPepIDs := run.PeptideIdent[:0]
		for _, pepID := range run.PeptideIdent {
			newHits := pepID.PeptideHit[:0]
			for hi, hit := range pepID.PeptideHit {
				p, ok := keep[psmID(msRun, pepID.SpectrumReference, hi+1)]
				if !ok {
					continue
				}
				hit.UserParam = append(hit.UserParam,
					floatParam("FDR", p.FDR),
					floatParam("q-value", p.QValue),
					floatParam("class-specific-q-value", p.ClassQValue),
				)
				for _, ref := range strings.Fields(hit.ProteinRefs) {
					refUsed[ref] = true
				}
				newHits = append(newHits, hit)
			}
			if len(newHits) > 0 {
				pepID.PeptideHit = newHits
				newPepIDs = append(newPepIDs, pepID)
			}
		}
		run.PeptideIdent = newPepIDs

		// Prune protein hits no kept peptide hit refers to
		for pi := range run.ProteinIdent {
			prot := &run.ProteinIdent[pi]
			newProtHits := prot.ProteinHit[:0]
			for _, ph := range prot.ProteinHit {
				if refUsed[ph.ID] {
					newProtHits = append(newProtHits, ph)
				}
			}
			prot.ProteinHit = newProtHits
		}
	}
}

// Write serializes the (possibly filtered) document.
func (f *IdXML) Write(writer io.Writer) error {
	if _, err := writer.Write([]byte(xml.Header)); err != nil {
		return err
	}
	enc := xml.NewEncoder(writer)
	enc.Indent(``, `  `)
	if err := enc.Encode(&f.content); err != nil {
		return err
	}
	_, err := writer.Write([]byte("\n"))
	return err
}

func floatParam(name string, value float64) userParam {
	return userParam{
		Type:  "float",
		Name:  name,
		Value: strconv.FormatFloat(value, 'g', -1, 64),
	}
}
