package table

import (
	"fmt"
	"strings"
)

// Row is one body row of a table.
type Row struct {
	ID    string
	Cells []string
}

// Cell returns the trimmed text of column col, falling back to the first
// cell when col is out of range.
func (r Row) Cell(col int) string {
	switch {
	case col >= 0 && col < len(r.Cells):
		return strings.TrimSpace(r.Cells[col])
	case len(r.Cells) > 0:
		return strings.TrimSpace(r.Cells[0])
	default:
		return ""
	}
}

// Text returns the whole row as searchable text.
func (r Row) Text() string {
	return strings.Join(r.Cells, " ")
}

// Column describes a header cell.
type Column struct {
	Label    string
	Sortable bool
}

// Table is a sortable, filterable data table.
type Table struct {
	ID      string
	Columns []Column
	Rows    []Row
}

// Stats renders the visible/total counter, e.g. "3 von 10 Einträgen".
func Stats(visible, total int) string {
	return fmt.Sprintf("%d von %d Einträgen", visible, total)
}
