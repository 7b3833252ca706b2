package view

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Find keeps the rows whose cells or tags contain every query token,
// ignoring case. An empty query keeps every row.
func Find(rows []Row, query string) []Row {
	lower := cases.Lower(language.Und)
	tokens := tokenize(lower.String(query))
	if len(tokens) == 0 {
		return rows
	}

	var out []Row
	for _, r := range rows {
		blob := lower.String(strings.Join(r.Cells, "\n") + "\n" + strings.Join(r.Tags, "\n"))
		ok := true
		for _, tok := range tokens {
			if !strings.Contains(blob, tok) {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, r)
		}
	}
	return out
}

func tokenize(q string) []string {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil
	}
	return strings.Fields(q)
}
