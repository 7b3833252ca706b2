// Package tags keeps the universe of tag names and which tags are assigned to
// which record.
package tags

import (
	"fmt"
	"slices"
	"sort"
	"strings"
)

// DefaultBuiltins are the tags every registry starts with unless configured
// otherwise.
var DefaultBuiltins = []string{"Business", "Personal", "Important"}

// Registry holds tag names in creation order and per-record assignments keyed
// by record identity. Names are compared case-sensitively.
type Registry struct {
	names    []string
	builtin  map[string]bool
	assigned map[int][]string
}

// NewRegistry returns a registry seeded with builtins. Blank and repeated
// builtins are skipped.
func NewRegistry(builtins []string) *Registry {
	r := &Registry{
		builtin:  make(map[string]bool),
		assigned: make(map[int][]string),
	}
	for _, b := range builtins {
		b = strings.TrimSpace(b)
		if b == "" || r.Has(b) {
			continue
		}
		r.names = append(r.names, b)
		r.builtin[b] = true
	}
	return r
}

// Tags returns the tag universe in creation order.
func (r *Registry) Tags() []string {
	return slices.Clone(r.names)
}

// Has reports whether name is a known tag.
func (r *Registry) Has(name string) bool {
	return slices.Contains(r.names, name)
}

// IsBuiltin reports whether name was one of the registry's seed tags.
func (r *Registry) IsBuiltin(name string) bool {
	return r.builtin[name]
}

// AddTag appends a new tag to the universe and returns the trimmed name.
func (r *Registry) AddTag(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrEmptyTag
	}
	if r.Has(name) {
		return "", fmt.Errorf("%w: %q", ErrDuplicateTag, name)
	}
	r.names = append(r.names, name)
	return name, nil
}

// Assign adds tag to the record. Assigning a tag the record already carries is
// a no-op; the return value reports whether anything changed.
func (r *Registry) Assign(recordID int, tag string) (bool, error) {
	if err := r.check(tag); err != nil {
		return false, err
	}
	return r.assign(recordID, tag), nil
}

func (r *Registry) assign(recordID int, tag string) bool {
	cur := r.assigned[recordID]
	if slices.Contains(cur, tag) {
		return false
	}
	r.assigned[recordID] = append(cur, tag)
	return true
}

// Unassign removes tag from the record. Removing a tag that is not assigned is
// a no-op; the return value reports whether anything changed. The record keeps
// an empty set once its last tag is removed.
func (r *Registry) Unassign(recordID int, tag string) bool {
	cur, ok := r.assigned[recordID]
	if !ok {
		return false
	}
	i := slices.Index(cur, tag)
	if i < 0 {
		return false
	}
	r.assigned[recordID] = slices.Delete(slices.Clone(cur), i, i+1)
	return true
}

// TagsFor returns the tags assigned to the record in assignment order, or an
// empty slice.
func (r *Registry) TagsFor(recordID int) []string {
	return append([]string{}, r.assigned[recordID]...)
}

// HasTag reports whether the record carries tag.
func (r *Registry) HasTag(recordID int, tag string) bool {
	return slices.Contains(r.assigned[recordID], tag)
}

// BulkAssign assigns tag to every listed record. It validates before touching
// any assignment, so a failure leaves the registry unchanged. It returns the
// number of records that gained the tag.
func (r *Registry) BulkAssign(recordIDs []int, tag string) (int, error) {
	if tag == "" {
		return 0, ErrNoTagSelected
	}
	if len(recordIDs) == 0 {
		return 0, ErrNoRowsSelected
	}
	if err := r.check(tag); err != nil {
		return 0, err
	}
	changed := 0
	for _, id := range recordIDs {
		if r.assign(id, tag) {
			changed++
		}
	}
	return changed, nil
}

// Tagged returns the identities of records carrying tag, ascending.
func (r *Registry) Tagged(tag string) []int {
	var ids []int
	for id, ts := range r.assigned {
		if slices.Contains(ts, tag) {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)
	return ids
}

func (r *Registry) check(tag string) error {
	if tag == "" {
		return ErrNoTagSelected
	}
	if !r.Has(tag) {
		return fmt.Errorf("%w: %q", ErrUnknownTag, tag)
	}
	return nil
}
