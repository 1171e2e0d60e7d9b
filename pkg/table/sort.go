package table

import (
	"math"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Direction is a sort order.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Class returns the header indicator class for the direction.
func (d Direction) Class() string {
	return "sort-" + string(d)
}

// Sort orders rows in place by column col. Two cells that both parse as
// numbers compare numerically; anything else compares with German
// collation. The sort is stable.
func Sort(rows []Row, col int, dir Direction) {
	c := collate.New(language.German)

	slices.SortStableFunc(rows, func(a, b Row) int {
		res := compare(c, a.Cell(col), b.Cell(col))
		if dir == Desc {
			return -res
		}
		return res
	})
}

func compare(c *collate.Collator, a, b string) int {
	x, aok := number(a)
	y, bok := number(b)
	if aok && bok {
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		default:
			return 0
		}
	}
	return c.CompareString(a, b)
}

// number parses plain numbers and German notation such as "1.234,50 €".
func number(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f, !math.IsNaN(f)
	}
	t := strings.TrimSpace(strings.TrimRight(s, " \u00a0€%"))
	if !strings.Contains(t, ",") {
		return 0, false
	}
	t = strings.Replace(strings.ReplaceAll(t, ".", ""), ",", ".", 1)
	f, err := strconv.ParseFloat(t, 64)
	if err != nil || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

// SortState tracks the active sort column of a table.
type SortState struct {
	Column int
	Dir    Direction // empty when unsorted
}

// Click returns the state after clicking header col: the column sorts
// ascending unless it is already ascending, in which case it flips to
// descending. Other columns lose their indicator.
func (s SortState) Click(col int) SortState {
	if s.Dir == Asc && s.Column == col {
		return SortState{Column: col, Dir: Desc}
	}
	return SortState{Column: col, Dir: Asc}
}

// Class returns the indicator class of header col.
func (s SortState) Class(col int) string {
	if s.Dir == "" || s.Column != col {
		return ""
	}
	return s.Dir.Class()
}
