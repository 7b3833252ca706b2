package render

import (
	"strings"
	"testing"

	"github.com/kamusis/tagsheet/internal/tags"
	"github.com/kamusis/tagsheet/internal/view"
)

func TestSortLabel(t *testing.T) {
	asc := view.SortState{Column: "Amount"}
	desc := view.SortState{Column: "Amount", Direction: view.Descending}

	if got := SortLabel("Amount", asc); got != "Amount ▲" {
		t.Errorf("asc: %q", got)
	}
	if got := SortLabel("Amount", desc); got != "Amount ▼" {
		t.Errorf("desc: %q", got)
	}
	if got := SortLabel("Date", asc); got != "Date" {
		t.Errorf("inactive column: %q", got)
	}
}

func TestTable(t *testing.T) {
	rows := []view.Row{
		{Index: 0, Cells: []string{"2024-01-01", "12.00"}, Tags: []string{"Business", "Travel"}},
		{Index: 7, Cells: []string{"2024-01-02", "3.50"}, Tags: []string{}},
	}
	out := Table(rows, TableOptions{
		Headers:  []string{"Date", "Amount"},
		Sort:     view.SortState{Column: "Amount", Direction: view.Descending},
		Selected: func(i int) bool { return i == 7 },
	})

	for _, want := range []string{"Date", "Amount ▼", "Tags", "Business, Travel", "[x]", "[ ]", "3.50"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "2024-01-01") > strings.Index(out, "2024-01-02") {
		t.Errorf("rows rendered out of order:\n%s", out)
	}
}

func TestTable_NoHeaders(t *testing.T) {
	if out := Table(nil, TableOptions{}); !strings.Contains(out, "No data loaded") {
		t.Errorf("unexpected: %q", out)
	}
}

func TestTagList(t *testing.T) {
	reg := tags.NewRegistry(tags.DefaultBuiltins)
	if _, err := reg.AddTag("Travel"); err != nil {
		t.Fatal(err)
	}
	out := TagList(reg)
	for _, want := range []string{"Business", "Personal", "Important", "Travel*"} {
		if !strings.Contains(out, want) {
			t.Errorf("tag list missing %q: %s", want, out)
		}
	}
	if strings.Contains(out, "Business*") {
		t.Errorf("built-in marked as custom: %s", out)
	}
}
