package table

import (
	"errors"
	"fmt"
)

// ErrEmptyTable is returned when the input holds no rows at all.
var ErrEmptyTable = errors.New("empty table")

// Table is a delimited text table held in memory. Every row has
// len(Columns) fields.
type Table struct {
	Columns   []string
	HasHeader bool
	// Delimiter is the field separator the table was parsed with; 0 for
	// sources that have no delimiter (xlsx).
	Delimiter rune
	Rows      [][]string
}

// Width returns the number of columns.
func (t *Table) Width() int { return len(t.Columns) }

// Len returns the number of data rows (the header row excluded).
func (t *Table) Len() int { return len(t.Rows) }

// Column returns a copy of the cells of column idx, top to bottom.
func (t *Table) Column(idx int) ([]string, error) {
	if idx < 0 || idx >= len(t.Columns) {
		return nil, fmt.Errorf("column index %d outside table of width %d", idx, len(t.Columns))
	}
	out := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		out[i] = row[idx]
	}
	return out, nil
}

// SyntheticNames returns col_0 ... col_{n-1}.
func SyntheticNames(n int) []string {
	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf("col_%d", i)
	}
	return names
}
