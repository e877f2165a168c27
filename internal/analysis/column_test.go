package analysis

import (
	"errors"
	"math"
	"testing"

	"github.com/KaramelBytes/chasta-cli/internal/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveColumn(t *testing.T) {
	digitNames := []string{"col_0", "col_1"}
	name, err := ResolveColumn("0", digitNames)
	require.NoError(t, err)
	assert.Equal(t, "col_0", name, "using column number")

	_, err = ResolveColumn("2", digitNames)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "The specified column number can't be > 1")
	assert.Contains(t, err.Error(), "2")
	var oor *OutOfRangeError
	require.True(t, errors.As(err, &oor))
	assert.Equal(t, 1, oor.Max)

	name, err = ResolveColumn("single_digit", []string{"single_digit", "double_digit", "double"})
	require.NoError(t, err)
	assert.Equal(t, "single_digit", name, "using column name")

	_, err = ResolveColumn("bad_name", []string{"a", "b"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "The specified column name:bad_name is not in: a, b")
	assert.ErrorIs(t, err, ErrUnknownColumn)
	assert.ErrorIs(t, err, ErrInvalidColumn)
}

func TestParseColumnSpec(t *testing.T) {
	assert.Equal(t, ColumnSpec{IsIndex: true, Index: 12, Name: "12"}, ParseColumnSpec("12"))
	for _, tok := range []string{"-1", " 2", "2 ", "1.0", "", "x1"} {
		spec := ParseColumnSpec(tok)
		assert.False(t, spec.IsIndex, "token %q", tok)
		assert.Equal(t, tok, spec.Name)
	}
	huge := ParseColumnSpec("99999999999999999999999")
	assert.True(t, huge.IsIndex)
	_, err := resolveIndex(huge, []string{"a"})
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestParseColumnList(t *testing.T) {
	specs, err := ParseColumnList("1,b,1")
	require.NoError(t, err)
	require.Len(t, specs, 3)
	assert.True(t, specs[0].IsIndex)
	assert.Equal(t, "b", specs[1].Name)
	assert.Equal(t, specs[0], specs[2])

	_, err = ParseColumnList("")
	assert.ErrorIs(t, err, ErrEmptySelection)
}

func TestSelect_KeepsOrderAndDuplicates(t *testing.T) {
	tbl := &table.Table{
		Columns: []string{"a", "b"},
		Rows:    [][]string{{"1", "x"}, {"2", "y"}},
	}
	specs, err := ParseColumnList("b,0,b")
	require.NoError(t, err)
	sel, err := Select(tbl, specs, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a", "b"}, sel.Names())
	assert.Equal(t, Mixed, sel.Profile)
	assert.Equal(t, []string{"1", "2"}, sel.Columns[1].Values)

	_, err = Select(tbl, nil, false)
	assert.ErrorIs(t, err, ErrEmptySelection)
}

func TestClassify(t *testing.T) {
	assert.Equal(t, Numeric, ClassifyColumn([]string{"1", " 2.5", "-3e2", "", "NA"}, false))
	assert.Equal(t, Numeric, ClassifyColumn([]string{"", "NaN"}, false), "all missing")
	assert.Equal(t, Categorical, ClassifyColumn([]string{"1", "two"}, false))
	assert.Equal(t, Categorical, ClassifyColumn([]string{"0x10"}, false), "hex is text")
	assert.Equal(t, Numeric, ClassifyColumn([]string{"1", "two"}, true))

	num := ResolvedColumn{Type: Numeric}
	cat := ResolvedColumn{Type: Categorical}
	assert.Equal(t, AllNumeric, Classify([]ResolvedColumn{num, num}))
	assert.Equal(t, AllCategorical, Classify([]ResolvedColumn{cat}))
	assert.Equal(t, Mixed, Classify([]ResolvedColumn{cat, num}))
}

func TestParseNumber_AgreesWithHeaderRule(t *testing.T) {
	for _, tok := range []string{"1", "-2.5", ".5", "1.", "+3e2", "1e400", " 7 ", "inf", "Infinity", "-Inf", "0x10", "1_000", "e5", ""} {
		_, ok := ParseNumber(tok)
		assert.Equal(t, table.IsNumber(tok), ok, "token %q", tok)
	}
	v, ok := ParseNumber("1e400")
	require.True(t, ok)
	assert.True(t, math.IsInf(v, 1))
	assert.Equal(t, Categorical, ClassifyColumn([]string{"1", "inf"}, false))
}

func TestCountInstances(t *testing.T) {
	sel := &Selection{Columns: []ResolvedColumn{
		{Name: "n", Type: Numeric, Values: []string{"1", "2", "1.0", "2", "3", "", "1"}},
		{Name: "c", Type: Categorical, Values: []string{"x", "y", "x", "y", "z", "x", "x"}},
	}}
	counts, err := CountInstances(sel)
	require.NoError(t, err)
	assert.Equal(t, []InstanceCount{
		{Values: []string{"1", "x"}, Count: 3},
		{Values: []string{"2", "y"}, Count: 2},
		{Values: []string{"3", "z"}, Count: 1},
	}, counts.Entries)

	_, err = CountInstances(&Selection{})
	assert.ErrorIs(t, err, ErrEmptySelection)
}

func TestCountInstances_TiesKeepFirstSeenOrder(t *testing.T) {
	sel := &Selection{Columns: []ResolvedColumn{
		{Name: "c", Type: Categorical, Values: []string{"b", "a", "c", "a", "c", "b"}},
	}}
	counts, err := CountInstances(sel)
	require.NoError(t, err)
	got := make([]string, len(counts.Entries))
	for i, e := range counts.Entries {
		got[i] = e.Values[0]
	}
	assert.Equal(t, []string{"b", "a", "c"}, got)
}

func TestDescribe_Percentiles(t *testing.T) {
	values := []string{"0", "10", "20", "30", "40", "50", "60", "70", "80", "90", "100"}
	sel := &Selection{Columns: []ResolvedColumn{{Name: "v", Type: Numeric, Values: values}}}
	st := Describe(sel)
	want := map[string]float64{
		"25%": 25, "50%": 50, "75%": 75, "90%": 90, "95%": 95, "99%": 99, "99.9%": 99.9,
		"median": 50, "min": 0, "max": 100,
	}
	for name, v := range want {
		cell, ok := st.Lookup(name, 0)
		require.True(t, ok, name)
		assert.InDelta(t, v, cell.Num, 1e-9, name)
	}
}

func TestDescribe_SingleValueHasNoStd(t *testing.T) {
	sel := &Selection{Columns: []ResolvedColumn{{Name: "v", Type: Numeric, Values: []string{"4"}}}}
	st := Describe(sel)
	_, ok := st.Lookup("std", 0)
	assert.False(t, ok)
	mean, ok := st.Lookup("mean", 0)
	require.True(t, ok)
	assert.Equal(t, 4.0, mean.Num)
}

func TestFormatCell(t *testing.T) {
	assert.Equal(t, "", FormatCell(StatMean, Cell{}, 2))
	assert.Equal(t, "3", FormatCell(StatCount, num(3), 2))
	assert.Equal(t, "paris", FormatCell(StatTop, text("paris"), 2))
	assert.Equal(t, "-0.90", FormatCell(StatMean, num(-0.9), 2))
}
