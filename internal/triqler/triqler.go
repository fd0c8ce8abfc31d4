// Package triqler reads and writes tab-delimited PSM tables with the
// columns run, condition, charge, searchScore, intensity, peptide and
// one or more trailing protein columns.
package triqler

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/proteopipe/classfdr/internal/fdr"
)

// The first six columns; everything after the peptide column is a
// protein accession.
const numFixedColumns = 6

var header = []string{
	"run", "condition", "charge", "searchScore", "intensity", "peptide", "proteins",
}

// Read parses a tab-delimited PSM file. The first line is the header
// and is skipped. Target/decoy status is derived purely from
// decoy-prefix matching on the accession columns, and the score
// orientation is fixed to higher-is-better. Peptides shorter than
// minPepLen (0 disables) are dropped.
func Read(reader io.Reader, decoyPrefix string, minPepLen int) ([]*fdr.PSM, error) {
	var psms []*fdr.PSM
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if lineNum == 1 || line == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) <= numFixedColumns {
			return nil, fmt.Errorf("triqler: line %d: expected at least %d columns, got %d",
				lineNum, numFixedColumns+1, len(fields))
		}
		charge, err := strconv.Atoi(fields[2])
		if err != nil {
			return nil, fmt.Errorf("triqler: line %d: invalid charge %q: %w",
				lineNum, fields[2], err)
		}
		score, err := strconv.ParseFloat(fields[3], 64)
		if err != nil {
			return nil, fmt.Errorf("triqler: line %d: invalid score %q: %w",
				lineNum, fields[3], err)
		}
		peptide := fields[5]
		if minPepLen > 0 && len(peptide) < minPepLen {
			continue
		}
		accessions := fields[numFixedColumns:]
		psms = append(psms, &fdr.PSM{
			ID:             strings.Join(fields, "_"),
			Run:            fields[0],
			Condition:      fields[1],
			Charge:         charge,
			Score:          score,
			Intensity:      fields[4],
			Sequence:       peptide,
			HigherIsBetter: true,
			IsTarget:       !fdr.IsDecoy(accessions, decoyPrefix),
			Accessions:     accessions,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("triqler: %w", err)
	}
	return psms, nil
}

// Write serializes the filtered PSM set with the output column
// projection run, condition, charge, searchScore, intensity, peptide,
// proteins. Multiple accessions occupy additional trailing columns.
func Write(writer io.Writer, psms []*fdr.PSM) error {
	w := bufio.NewWriter(writer)
	if _, err := w.WriteString(strings.Join(header, "\t") + "\n"); err != nil {
		return err
	}
	for _, p := range psms {
		fields := []string{
			p.Run,
			p.Condition,
			strconv.Itoa(p.Charge),
			strconv.FormatFloat(p.Score, 'g', -1, 64),
			p.Intensity,
			p.Sequence,
		}
		fields = append(fields, p.Accessions...)
		if _, err := w.WriteString(strings.Join(fields, "\t") + "\n"); err != nil {
			return err
		}
	}
	return w.Flush()
}
