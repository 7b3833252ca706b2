// Package view derives what the user sees from the record set: the sorted
// table projection, keyword filtering, and the per-tag CSV export.
package view

import (
	"math"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/kamusis/tagsheet/internal/record"
)

// Direction is the sort direction.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

func (d Direction) String() string {
	if d == Descending {
		return "desc"
	}
	return "asc"
}

// SortState is the active sort column and direction. The zero value means
// unsorted (import order).
type SortState struct {
	Column    string
	Direction Direction
}

// Active reports whether a sort column is set.
func (s SortState) Active() bool { return s.Column != "" }

// Toggle applies a click on column. Clicking the active column flips the
// direction; clicking another data column makes it active and ascending.
// A column outside headers leaves the state as is and reports false.
func (s SortState) Toggle(headers []string, column string) (SortState, bool) {
	name, ok := resolveColumn(headers, column)
	if !ok {
		return s, false
	}
	if s.Column == name {
		if s.Direction == Ascending {
			s.Direction = Descending
		} else {
			s.Direction = Ascending
		}
		return s, true
	}
	return SortState{Column: name}, true
}

// resolveColumn maps a user-supplied column name to the header's spelling.
func resolveColumn(headers []string, column string) (string, bool) {
	for _, h := range headers {
		if h == column {
			return h, true
		}
	}
	for _, h := range headers {
		if record.SameColumn(h, column) {
			return h, true
		}
	}
	return "", false
}

// Sorted returns a sorted copy of records. The amount column compares
// numerically with unparsable or missing values as negative infinity; every
// other column compares as lower-cased strings with missing values empty.
func Sorted(records []record.Record, st SortState, amountColumn string) []record.Record {
	out := append([]record.Record(nil), records...)
	if !st.Active() {
		return out
	}

	ks := keyedSlice{recs: out, desc: st.Direction == Descending}
	if record.SameColumn(st.Column, amountColumn) {
		keys := make([]float64, len(out))
		for i, r := range out {
			keys[i] = numericKey(r, st.Column)
		}
		ks.cmp = func(i, j int) int { return compareFloat(keys[i], keys[j]) }
		ks.swap = func(i, j int) { keys[i], keys[j] = keys[j], keys[i] }
	} else {
		lower := cases.Lower(language.Und)
		keys := make([]string, len(out))
		for i, r := range out {
			v, _ := r.Get(st.Column)
			keys[i] = lower.String(v)
		}
		ks.cmp = func(i, j int) int { return strings.Compare(keys[i], keys[j]) }
		ks.swap = func(i, j int) { keys[i], keys[j] = keys[j], keys[i] }
	}
	sort.Stable(ks)
	return out
}

// keyedSlice keeps precomputed sort keys aligned with the records they
// belong to while sort.Stable swaps elements.
type keyedSlice struct {
	recs []record.Record
	cmp  func(i, j int) int
	swap func(i, j int)
	desc bool
}

func (k keyedSlice) Len() int { return len(k.recs) }

func (k keyedSlice) Less(i, j int) bool {
	c := k.cmp(i, j)
	if k.desc {
		c = -c
	}
	return c < 0
}

func (k keyedSlice) Swap(i, j int) {
	k.recs[i], k.recs[j] = k.recs[j], k.recs[i]
	k.swap(i, j)
}

func numericKey(r record.Record, column string) float64 {
	v, ok := r.Get(column)
	if !ok {
		return math.Inf(-1)
	}
	f, ok := record.ParseLeadingFloat(v)
	if !ok || math.IsNaN(f) {
		return math.Inf(-1)
	}
	return f
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
