// Package render draws the session's table and tag list for the terminal.
package render

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/kamusis/tagsheet/internal/tags"
	"github.com/kamusis/tagsheet/internal/view"
)

var (
	borderStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("63"))
	headerStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	builtinStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	customStyle  = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("205"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// TableOptions carries the view state the table needs besides its rows.
type TableOptions struct {
	Headers  []string
	Sort     view.SortState
	Selected func(index int) bool // nil means nothing is selected
}

// Table renders rows with a selection column, the record id, one column per
// header (the active sort column marked ▲ or ▼) and a trailing Tags column.
func Table(rows []view.Row, opts TableOptions) string {
	if len(opts.Headers) == 0 {
		return mutedStyle.Render("No data loaded. Use 'import <file>' to add CSV or XLSX files.")
	}

	head := make([]string, 0, len(opts.Headers)+3)
	head = append(head, "", "#")
	for _, h := range opts.Headers {
		head = append(head, SortLabel(h, opts.Sort))
	}
	head = append(head, "Tags")

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers(head...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	for _, r := range rows {
		line := make([]string, 0, len(head))
		line = append(line, checkbox(opts.Selected != nil && opts.Selected(r.Index)), strconv.Itoa(r.Index))
		line = append(line, r.Cells...)
		line = append(line, strings.Join(r.Tags, ", "))
		t.Row(line...)
	}
	return t.String()
}

// SortLabel returns the header text for column, with the direction arrow when
// it is the active sort column.
func SortLabel(column string, st view.SortState) string {
	if !st.Active() || st.Column != column {
		return column
	}
	if st.Direction == view.Descending {
		return column + " ▼"
	}
	return column + " ▲"
}

func checkbox(on bool) string {
	if on {
		return "[x]"
	}
	return "[ ]"
}

// TagList renders the tag universe; custom tags are styled apart from the
// built-in ones.
func TagList(reg *tags.Registry) string {
	var b strings.Builder
	b.WriteString("Available Tags:")
	for _, name := range reg.Tags() {
		b.WriteString(" ")
		if reg.IsBuiltin(name) {
			b.WriteString(builtinStyle.Render(name))
		} else {
			b.WriteString(customStyle.Render(name + "*"))
		}
	}
	return b.String()
}
