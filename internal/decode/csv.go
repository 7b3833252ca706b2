package decode

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// decodeCSV reads data in header mode. Blank lines are skipped. A row that
// fails to parse (stray or unterminated quotes) is logged, reported as a
// warning and dropped; the rows around it are kept.
func (d *Decoder) decodeCSV(path string, data []byte) (*Batch, error) {
	// A BOM selects UTF-8 or UTF-16 and is dropped; otherwise input is UTF-8.
	src := transform.NewReader(bytes.NewReader(data), unicode.BOMOverride(unicode.UTF8.NewDecoder()))
	r := csv.NewReader(src)
	r.FieldsPerRecord = -1

	b := &Batch{Path: path}
	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return b, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	b.Headers = uniqueHeaders(header)

	var short, long int
	for {
		fields, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		var pe *csv.ParseError
		if errors.As(err, &pe) {
			d.log.Warn("csv parse error",
				zap.String("file", path),
				zap.Int("line", pe.StartLine),
				zap.Error(pe.Err))
			b.Warnings = append(b.Warnings, fmt.Sprintf("line %d skipped: %v", pe.StartLine, pe.Err))
			continue
		}
		if err != nil {
			d.log.Warn("csv read failed", zap.String("file", path), zap.Error(err))
			b.Warnings = append(b.Warnings, fmt.Sprintf("read error, remaining rows skipped: %v", err))
			break
		}

		switch {
		case len(fields) < len(b.Headers):
			short++
		case len(fields) > len(b.Headers):
			long++
			fields = fields[:len(b.Headers)]
		}
		rec := make(map[string]string, len(fields))
		for i, v := range fields {
			rec[b.Headers[i]] = v
		}
		b.Records = append(b.Records, rec)
	}

	if short > 0 {
		d.log.Warn("csv rows with too few fields", zap.String("file", path), zap.Int("rows", short))
		b.Warnings = append(b.Warnings, fmt.Sprintf("%d row(s) had fewer fields than the header", short))
	}
	if long > 0 {
		d.log.Warn("csv rows with too many fields", zap.String("file", path), zap.Int("rows", long))
		b.Warnings = append(b.Warnings, fmt.Sprintf("%d row(s) had extra fields; extras dropped", long))
	}
	return b, nil
}
