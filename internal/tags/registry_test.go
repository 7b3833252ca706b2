package tags_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/kamusis/tagsheet/internal/tags"
)

func TestAddTag(t *testing.T) {
	r := tags.NewRegistry(tags.DefaultBuiltins)

	if _, err := r.AddTag("Personal"); !errors.Is(err, tags.ErrDuplicateTag) {
		t.Errorf("AddTag(Personal): want ErrDuplicateTag, got %v", err)
	}
	if _, err := r.AddTag("  "); !errors.Is(err, tags.ErrEmptyTag) {
		t.Errorf("AddTag(blank): want ErrEmptyTag, got %v", err)
	}
	if _, err := r.AddTag(" Personal "); !errors.Is(err, tags.ErrDuplicateTag) {
		t.Errorf("AddTag trims before the duplicate check, got %v", err)
	}

	name, err := r.AddTag("Travel")
	if err != nil || name != "Travel" {
		t.Fatalf("AddTag(Travel) = %q, %v", name, err)
	}
	want := []string{"Business", "Personal", "Important", "Travel"}
	if diff := cmp.Diff(want, r.Tags()); diff != "" {
		t.Fatalf("tags (-want +got):\n%s", diff)
	}
	if !r.IsBuiltin("Business") || r.IsBuiltin("Travel") {
		t.Error("builtin flags wrong")
	}

	// Case-sensitive uniqueness.
	if _, err := r.AddTag("travel"); err != nil {
		t.Errorf("AddTag(travel) should succeed, got %v", err)
	}
}

func TestAssignIsIdempotent(t *testing.T) {
	r := tags.NewRegistry(tags.DefaultBuiltins)

	if changed, err := r.Assign(3, "Business"); err != nil || !changed {
		t.Fatalf("first Assign = %v, %v", changed, err)
	}
	if changed, err := r.Assign(3, "Business"); err != nil || changed {
		t.Fatalf("second Assign = %v, %v", changed, err)
	}
	if diff := cmp.Diff([]string{"Business"}, r.TagsFor(3)); diff != "" {
		t.Fatalf("TagsFor (-want +got):\n%s", diff)
	}

	if _, err := r.Assign(3, "Nope"); !errors.Is(err, tags.ErrUnknownTag) {
		t.Errorf("Assign unknown tag: want ErrUnknownTag, got %v", err)
	}
}

func TestUnassign(t *testing.T) {
	r := tags.NewRegistry(tags.DefaultBuiltins)

	if r.Unassign(1, "Personal") {
		t.Error("removing a never-assigned tag must be a no-op")
	}
	_, _ = r.Assign(1, "Personal")
	_, _ = r.Assign(1, "Important")
	if !r.Unassign(1, "Personal") {
		t.Fatal("Unassign should report a change")
	}
	if diff := cmp.Diff([]string{"Important"}, r.TagsFor(1)); diff != "" {
		t.Fatalf("TagsFor (-want +got):\n%s", diff)
	}
	r.Unassign(1, "Important")
	if got := r.TagsFor(1); got == nil || len(got) != 0 {
		t.Fatalf("want empty non-nil set, got %#v", got)
	}
	if got := r.TagsFor(99); got == nil || len(got) != 0 {
		t.Fatalf("untouched record: want empty set, got %#v", got)
	}
}

func TestBulkAssign(t *testing.T) {
	r := tags.NewRegistry(tags.DefaultBuiltins)

	if _, err := r.BulkAssign([]int{1}, ""); !errors.Is(err, tags.ErrNoTagSelected) {
		t.Errorf("empty tag: want ErrNoTagSelected, got %v", err)
	}
	if _, err := r.BulkAssign(nil, "Business"); !errors.Is(err, tags.ErrNoRowsSelected) {
		t.Errorf("no rows: want ErrNoRowsSelected, got %v", err)
	}
	if _, err := r.BulkAssign([]int{1, 2}, "Ghost"); !errors.Is(err, tags.ErrUnknownTag) {
		t.Errorf("unknown tag: want ErrUnknownTag, got %v", err)
	}
	if len(r.Tagged("Ghost")) != 0 {
		t.Error("failed bulk assign must not mutate")
	}

	_, _ = r.Assign(2, "Business")
	n, err := r.BulkAssign([]int{1, 2, 5}, "Business")
	if err != nil {
		t.Fatalf("BulkAssign: %v", err)
	}
	if n != 2 {
		t.Errorf("want 2 newly tagged, got %d", n)
	}
	if diff := cmp.Diff([]int{1, 2, 5}, r.Tagged("Business")); diff != "" {
		t.Errorf("Tagged (-want +got):\n%s", diff)
	}
}
