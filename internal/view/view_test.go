package view_test

import (
	"testing"

	"github.com/kamusis/tagsheet/internal/record"
)

// load imports rows into a fresh store and returns its records.
func load(t *testing.T, headers []string, rows ...[]string) []record.Record {
	t.Helper()
	s := record.NewStore("Amount")
	var batch []map[string]string
	for _, r := range rows {
		if len(r) != len(headers) {
			t.Fatalf("row %v does not match headers %v", r, headers)
		}
		m := make(map[string]string, len(r))
		for i, h := range headers {
			m[h] = r[i]
		}
		batch = append(batch, m)
	}
	s.ImportBatch(batch, headers)
	return s.Records()
}

func indices(recs []record.Record) []int {
	out := make([]int, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.Index)
	}
	return out
}
