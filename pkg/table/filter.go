package table

import "strings"

// Filter returns the rows whose text contains term, case-insensitively.
// An empty term keeps every row.
func Filter(rows []Row, term string) []Row {
	term = strings.ToLower(term)
	if term == "" {
		return rows
	}

	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		if strings.Contains(strings.ToLower(r.Text()), term) {
			out = append(out, r)
		}
	}
	return out
}
