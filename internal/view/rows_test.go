package view_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/kamusis/tagsheet/internal/tags"
	"github.com/kamusis/tagsheet/internal/view"
)

func TestProjectAndFind(t *testing.T) {
	reg := tags.NewRegistry(tags.DefaultBuiltins)
	recs := load(t, headers,
		[]string{"2024-01-01", "Coffee Shop", "4.5"},
		[]string{"2024-01-02", "Airline", "310"},
		[]string{"2024-01-03", "Coffee beans", "pending"},
	)
	_, _ = reg.Assign(1, "Business")

	rows := view.Project(recs, headers, "Amount", reg)
	want := []view.Row{
		{Index: 0, Cells: []string{"2024-01-01", "Coffee Shop", "4.50"}, Tags: []string{}},
		{Index: 1, Cells: []string{"2024-01-02", "Airline", "310.00"}, Tags: []string{"Business"}},
		{Index: 2, Cells: []string{"2024-01-03", "Coffee beans", "pending"}, Tags: []string{}},
	}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Fatalf("Project (-want +got):\n%s", diff)
	}

	got := view.Find(rows, "coffee SHOP")
	if len(got) != 1 || got[0].Index != 0 {
		t.Errorf("Find(coffee SHOP) = %+v", got)
	}
	if got := view.Find(rows, "business"); len(got) != 1 || got[0].Index != 1 {
		t.Errorf("Find must match tags, got %+v", got)
	}
	if got := view.Find(rows, "  "); len(got) != 3 {
		t.Errorf("blank query keeps all rows, got %d", len(got))
	}
}
