package view

import (
	"github.com/kamusis/tagsheet/internal/record"
	"github.com/kamusis/tagsheet/internal/tags"
)

// Row is one display-ready table row.
type Row struct {
	Index int      // record identity
	Cells []string // one per header, in header order
	Tags  []string // assigned tags
}

// Project builds display rows for records in the given order. The amount
// column shows two decimals when numeric; missing cells are empty.
func Project(records []record.Record, headers []string, amountColumn string, reg *tags.Registry) []Row {
	out := make([]Row, 0, len(records))
	for _, r := range records {
		row := Row{Index: r.Index, Cells: make([]string, len(headers))}
		for i, h := range headers {
			row.Cells[i] = cell(r, h, amountColumn)
		}
		if reg != nil {
			row.Tags = reg.TagsFor(r.Index)
		}
		out = append(out, row)
	}
	return out
}

func cell(r record.Record, column, amountColumn string) string {
	v, ok := r.Get(column)
	if !ok {
		return ""
	}
	if amountColumn != "" && record.SameColumn(column, amountColumn) && v != "" {
		return record.FormatAmount(v)
	}
	return v
}
