package view

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/kamusis/tagsheet/internal/record"
	"github.com/kamusis/tagsheet/internal/tags"
)

const (
	exportPrefix = "transactions_"
	exportSuffix = "_export.csv"
)

// Export is the CSV-ready subset of records carrying one tag.
type Export struct {
	Tag      string
	FileName string
	Columns  []string
	Rows     [][]string
}

// BuildExport selects the records carrying tag, in the order given, and
// renders every header column except the identity field. Amount cells become
// two-decimal strings when numeric.
func BuildExport(records []record.Record, headers []string, amountColumn string, reg *tags.Registry, tag string) (*Export, error) {
	if tag == "" {
		return nil, tags.ErrNoTagSelected
	}
	if len(records) == 0 {
		return nil, ErrNoData
	}

	cols := make([]string, 0, len(headers))
	for _, h := range headers {
		if h != record.IdentityColumn {
			cols = append(cols, h)
		}
	}

	exp := &Export{Tag: tag, FileName: ExportFileName(tag), Columns: cols}
	for _, r := range records {
		if !reg.HasTag(r.Index, tag) {
			continue
		}
		row := make([]string, len(cols))
		for i, c := range cols {
			v, ok := r.Get(c)
			if !ok {
				continue
			}
			if record.SameColumn(c, amountColumn) {
				v = record.FormatAmount(v)
			}
			row[i] = v
		}
		exp.Rows = append(exp.Rows, row)
	}
	if len(exp.Rows) == 0 {
		return nil, fmt.Errorf("%w %q", ErrNoMatchingRows, tag)
	}
	return exp, nil
}

// ExportFileName derives the download name for tag: lower-cased, every
// character outside [a-z0-9] replaced by '_'.
//
//	"Business"     → "transactions_business_export.csv"
//	"Q1 Travel/EU" → "transactions_q1_travel_eu_export.csv"
func ExportFileName(tag string) string {
	safe := strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			return r
		}
		return '_'
	}, strings.ToLower(tag))
	return exportPrefix + safe + exportSuffix
}

// WriteCSV writes the export as RFC 4180 CSV with a header row.
func (e *Export) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	cw.UseCRLF = true
	if err := cw.Write(e.Columns); err != nil {
		return err
	}
	if err := cw.WriteAll(e.Rows); err != nil {
		return err
	}
	return cw.Error()
}

// Bytes returns the CSV encoding of the export.
func (e *Export) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := e.WriteCSV(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
