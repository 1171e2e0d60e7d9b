package table_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/borrmann/bautagebuch/pkg/table"
)

func rows(vals ...string) []table.Row {
	out := make([]table.Row, len(vals))
	for i, v := range vals {
		out[i] = table.Row{ID: v, Cells: []string{v}}
	}
	return out
}

func ids(rs []table.Row) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.ID
	}
	return out
}

func TestSort(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   []string
		dir  table.Direction
		want []string
	}{
		{"numeric not lexical", []string{"10", "9", "100", "2.5"}, table.Asc, []string{"2.5", "9", "10", "100"}},
		{"numeric desc", []string{"10", "9", "100"}, table.Desc, []string{"100", "10", "9"}},
		{"german currency", []string{"112,50 €", "1.200,00 €", "1,85 €"}, table.Asc, []string{"1,85 €", "112,50 €", "1.200,00 €"}},
		{"german collation", []string{"Zement", "Öl", "Ader", "Oberfläche"}, table.Asc, []string{"Ader", "Oberfläche", "Öl", "Zement"}},
		{"case insensitive primary", []string{"beton", "Asphalt", "Ziegel"}, table.Asc, []string{"Asphalt", "beton", "Ziegel"}},
		{"text desc", []string{"a", "c", "b"}, table.Desc, []string{"c", "b", "a"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rs := rows(tt.in...)
			table.Sort(rs, 0, tt.dir)
			assert.Equal(t, tt.want, ids(rs))
		})
	}
}

func TestSort_ColumnFallbackAndStability(t *testing.T) {
	t.Parallel()

	rs := []table.Row{
		{ID: "a", Cells: []string{"x", " 2 "}},
		{ID: "b", Cells: []string{"y", "1"}},
		{ID: "c", Cells: []string{"z", "2"}},
	}
	table.Sort(rs, 1, table.Asc)
	assert.Equal(t, []string{"b", "a", "c"}, ids(rs))

	table.Sort(rs, 7, table.Desc)
	assert.Equal(t, []string{"c", "b", "a"}, ids(rs))
	assert.Equal(t, "", table.Row{}.Cell(0))
}

func TestSortState(t *testing.T) {
	t.Parallel()

	var s table.SortState
	assert.Equal(t, "", s.Class(0))

	s = s.Click(2)
	assert.Equal(t, table.SortState{Column: 2, Dir: table.Asc}, s)
	assert.Equal(t, "sort-asc", s.Class(2))
	assert.Equal(t, "", s.Class(1))

	s = s.Click(2)
	assert.Equal(t, "sort-desc", s.Class(2))

	s = s.Click(2)
	assert.Equal(t, table.Asc, s.Dir)

	s = s.Click(2).Click(0)
	assert.Equal(t, table.SortState{Column: 0, Dir: table.Asc}, s)
}

func TestFilter(t *testing.T) {
	t.Parallel()

	rs := []table.Row{
		{ID: "1", Cells: []string{"12.03.2024", "Berlin", "Beton"}},
		{ID: "2", Cells: []string{"13.03.2024", "Potsdam", "Stahl"}},
		{ID: "3", Cells: []string{"14.03.2024", "Bernau", "Beton"}},
	}

	assert.Equal(t, []string{"1", "3"}, ids(table.Filter(rs, "BETON")))
	assert.Equal(t, []string{"2"}, ids(table.Filter(rs, "pots")))
	assert.Len(t, table.Filter(rs, ""), 3)
	assert.Empty(t, table.Filter(rs, "holz"))
	assert.Equal(t, "2 von 3 Einträgen", table.Stats(len(table.Filter(rs, "beton")), len(rs)))
}
