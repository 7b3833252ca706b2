// Package record holds the session's imported rows. Each row keeps the raw
// column values of its source file plus an immutable index that is its only
// stable identity.
package record

import (
	"sort"

	"golang.org/x/text/cases"
)

// IdentityColumn is the reserved name of the identity field. A source column
// with this exact name is never exported.
const IdentityColumn = "_originalIndex"

// Record is one imported row.
type Record struct {
	Index   int               // session-unique, assigned once at import
	Columns []string          // column names in source order
	Fields  map[string]string // raw values keyed by source column name
}

// Get returns the value for column, matching the name case-insensitively.
// An exact match wins over a folded one.
func (r Record) Get(column string) (string, bool) {
	if v, ok := r.Fields[column]; ok {
		return v, true
	}
	if key, ok := r.key(column); ok {
		return r.Fields[key], true
	}
	return "", false
}

// key resolves column to the stored field name.
func (r Record) key(column string) (string, bool) {
	if _, ok := r.Fields[column]; ok {
		return column, true
	}
	want := Fold(column)
	for _, c := range r.Columns {
		if _, ok := r.Fields[c]; ok && Fold(c) == want {
			return c, true
		}
	}
	// Fields outside Columns are unusual; scan them in a stable order.
	keys := make([]string, 0, len(r.Fields))
	for k := range r.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if Fold(k) == want {
			return k, true
		}
	}
	return "", false
}

// Fold returns the case-folded form of s used for column matching.
func Fold(s string) string {
	return cases.Fold().String(s)
}

// SameColumn reports whether a and b name the same column.
func SameColumn(a, b string) bool {
	return Fold(a) == Fold(b)
}

// SameHeaders reports whether two header lists are equal ignoring case.
func SameHeaders(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !SameColumn(a[i], b[i]) {
			return false
		}
	}
	return true
}
