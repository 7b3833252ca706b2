package decode

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// decodeXLSX reads the first worksheet. The first non-blank row is the header
// row; cell values are the formatted text excelize renders. Blank rows and
// empty cells are skipped.
func (d *Decoder) decodeXLSX(path string, data []byte) (*Batch, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	defer f.Close()

	b := &Batch{Path: path}
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook has no worksheets", ErrDecode)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: sheet %q: %w", ErrDecode, sheets[0], err)
	}

	start := 0
	for start < len(rows) && blank(rows[start]) {
		start++
	}
	if start == len(rows) {
		return b, nil
	}

	width := 0
	for _, row := range rows[start:] {
		width = max(width, len(row))
	}
	header := make([]string, width)
	copy(header, rows[start])
	b.Headers = uniqueHeaders(header)

	for _, row := range rows[start+1:] {
		if blank(row) {
			continue
		}
		rec := make(map[string]string, len(row))
		for i, v := range row {
			if v != "" {
				rec[b.Headers[i]] = v
			}
		}
		b.Records = append(b.Records, rec)
	}
	return b, nil
}

func blank(row []string) bool {
	for _, v := range row {
		if v != "" {
			return false
		}
	}
	return true
}
