package idxml

import (
	"encoding/xml"
	"errors"
)

// Types for parsing idXML identification files

// IdXML holds the parts of an idXML file in which we are interested,
// plus enough of the rest to write the file back after filtering.
type IdXML struct {
	content idXMLContent
	// msRun caches the resolved spectra file name per identification run
	msRun []string
}

type idXMLContent struct {
	XMLName           xml.Name            `xml:"IdXML"`
	Version           string              `xml:"version,attr,omitempty"`
	SearchParameters  []searchParameters  `xml:"SearchParameters"`
	IdentificationRun []identificationRun `xml:"IdentificationRun"`
}

type searchParameters struct {
	ID                     string `xml:"id,attr"`
	DB                     string `xml:"db,attr,omitempty"`
	DBVersion              string `xml:"db_version,attr,omitempty"`
	Taxonomy               string `xml:"taxonomy,attr,omitempty"`
	MassType               string `xml:"mass_type,attr,omitempty"`
	Charges                string `xml:"charges,attr,omitempty"`
	Enzyme                 string `xml:"enzyme,attr,omitempty"`
	MissedCleavages        string `xml:"missed_cleavages,attr,omitempty"`
	PrecursorPeakTolerance string `xml:"precursor_peak_tolerance,attr,omitempty"`
	PeakMassTolerance      string `xml:"peak_mass_tolerance,attr,omitempty"`
	UserParam              []userParam
}

type identificationRun struct {
	Date                string                  `xml:"date,attr,omitempty"`
	SearchEngine        string                  `xml:"search_engine,attr,omitempty"`
	SearchEngineVersion string                  `xml:"search_engine_version,attr,omitempty"`
	SearchParametersRef string                  `xml:"search_parameters_ref,attr,omitempty"`
	ProteinIdent        []proteinIdentification `xml:"ProteinIdentification"`
	PeptideIdent        []peptideIdentification `xml:"PeptideIdentification"`
}

type proteinIdentification struct {
	ScoreType             string       `xml:"score_type,attr,omitempty"`
	HigherScoreBetter     bool         `xml:"higher_score_better,attr"`
	SignificanceThreshold string       `xml:"significance_threshold,attr,omitempty"`
	ProteinHit            []proteinHit `xml:"ProteinHit"`
	UserParam             []userParam
}

type proteinHit struct {
	ID        string  `xml:"id,attr"`
	Accession string  `xml:"accession,attr"`
	Score     float64 `xml:"score,attr"`
	Sequence  string  `xml:"sequence,attr"`
	UserParam []userParam
}

type peptideIdentification struct {
	ScoreType             string       `xml:"score_type,attr,omitempty"`
	HigherScoreBetter     bool         `xml:"higher_score_better,attr"`
	SignificanceThreshold string       `xml:"significance_threshold,attr,omitempty"`
	MZ                    float64      `xml:"MZ,attr,omitempty"`
	RT                    float64      `xml:"RT,attr,omitempty"`
	SpectrumReference     string       `xml:"spectrum_reference,attr,omitempty"`
	PeptideHit            []peptideHit `xml:"PeptideHit"`
}

type peptideHit struct {
	Score       float64 `xml:"score,attr"`
	Sequence    string  `xml:"sequence,attr"`
	Charge      int     `xml:"charge,attr,omitempty"`
	AABefore    string  `xml:"aa_before,attr,omitempty"`
	AAAfter     string  `xml:"aa_after,attr,omitempty"`
	ProteinRefs string  `xml:"protein_refs,attr,omitempty"`
	UserParam   []userParam
}

type userParam struct {
	XMLName xml.Name `xml:"UserParam"`
	Type    string   `xml:"type,attr"`
	Name    string   `xml:"name,attr"`
	Value   string   `xml:"value,attr"`
}

var (
	ErrUnresolvedRun = errors.New("idxml: peptide identification cannot be resolved against a run")
	ErrNoAccessions  = errors.New("idxml: peptide hit without protein accessions")
)
