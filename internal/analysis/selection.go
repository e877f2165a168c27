package analysis

import (
	"github.com/KaramelBytes/chasta-cli/internal/table"
)

// ResolvedColumn is a selected column with its cells.
type ResolvedColumn struct {
	Name   string
	Index  int
	Type   ColumnType
	Values []string
}

// Selection is the ordered set of columns one analysis works on.
type Selection struct {
	Columns     []ResolvedColumn
	Profile     TypeProfile
	NumericOnly bool
}

// Names returns the selected column names in selection order.
func (s *Selection) Names() []string {
	names := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		names[i] = c.Name
	}
	return names
}

// Select resolves specs against t and classifies the resulting columns.
func Select(t *table.Table, specs []ColumnSpec, numericOnly bool) (*Selection, error) {
	if len(specs) == 0 {
		return nil, ErrEmptySelection
	}
	sel := &Selection{Columns: make([]ResolvedColumn, 0, len(specs)), NumericOnly: numericOnly}
	for _, spec := range specs {
		col, err := resolve(t, spec, numericOnly)
		if err != nil {
			return nil, err
		}
		sel.Columns = append(sel.Columns, col)
	}
	sel.Profile = Classify(sel.Columns)
	return sel, nil
}

func resolve(t *table.Table, spec ColumnSpec, numericOnly bool) (ResolvedColumn, error) {
	idx, err := resolveIndex(spec, t.Columns)
	if err != nil {
		return ResolvedColumn{}, err
	}
	values, err := t.Column(idx)
	if err != nil {
		return ResolvedColumn{}, err
	}
	return ResolvedColumn{
		Name:   t.Columns[idx],
		Index:  idx,
		Type:   ClassifyColumn(values, numericOnly),
		Values: values,
	}, nil
}
