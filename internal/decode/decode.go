// Package decode turns user-supplied CSV and XLSX files into header lists and
// records keyed by column name.
package decode

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// Batch is the decoded content of one file.
type Batch struct {
	Path     string
	Headers  []string
	Records  []map[string]string
	Warnings []string // non-fatal problems; the rows above are still valid
}

// Decoder decodes files. It holds no per-file state and is safe for
// concurrent use.
type Decoder struct {
	log *zap.Logger
}

// New returns a Decoder that logs parse problems to log (nil disables logging).
func New(log *zap.Logger) *Decoder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Decoder{log: log}
}

// Supported reports whether path has an extension the decoder understands.
func Supported(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".xlsx":
		return true
	}
	return false
}

// Decode reads and decodes one file, choosing the format by extension.
func (d *Decoder) Decode(ctx context.Context, path string) (*Batch, error) {
	if !Supported(path) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFileType, filepath.Base(path))
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFileRead, err)
	}

	var b *Batch
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		b, err = d.decodeCSV(path, data)
	case ".xlsx":
		b, err = d.decodeXLSX(path, data)
	}
	if err != nil {
		return nil, err
	}
	d.log.Debug("decoded file",
		zap.String("file", path),
		zap.Int("headers", len(b.Headers)),
		zap.Int("records", len(b.Records)),
		zap.Int("warnings", len(b.Warnings)))
	return b, nil
}

// uniqueHeaders names blank headers "__EMPTY", "__EMPTY_1", … and suffixes
// repeated names with "_1", "_2", … so every column has a distinct key.
func uniqueHeaders(raw []string) []string {
	out := make([]string, len(raw))
	taken := make(map[string]bool, len(raw))
	for i, h := range raw {
		if h == "" {
			h = "__EMPTY"
		}
		name := h
		for n := 1; taken[name]; n++ {
			name = h + "_" + strconv.Itoa(n)
		}
		taken[name] = true
		out[i] = name
	}
	return out
}
