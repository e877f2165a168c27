package analysis

import (
	"math"
	"strconv"
	"strings"
)

// ColumnSpec selects a column either by zero-based index or by name.
type ColumnSpec struct {
	IsIndex bool
	Index   int
	Name    string
}

// ParseColumnSpec classifies a user token. Only unsigned decimal digits
// form an index; "-1" or " 2" are looked up as names.
func ParseColumnSpec(token string) ColumnSpec {
	if !isDigits(token) {
		return ColumnSpec{Name: token}
	}
	n, err := strconv.ParseUint(token, 10, 0)
	if err != nil || n > math.MaxInt {
		// too large for any table
		return ColumnSpec{IsIndex: true, Index: math.MaxInt, Name: token}
	}
	return ColumnSpec{IsIndex: true, Index: int(n), Name: token}
}

// ParseColumnList splits a comma separated column list, keeping order and
// duplicates.
func ParseColumnList(list string) ([]ColumnSpec, error) {
	if list == "" {
		return nil, ErrEmptySelection
	}
	tokens := strings.Split(list, ",")
	specs := make([]ColumnSpec, len(tokens))
	for i, tok := range tokens {
		specs[i] = ParseColumnSpec(tok)
	}
	return specs, nil
}

// ResolveColumn maps a token to a column name of names.
func ResolveColumn(token string, names []string) (string, error) {
	idx, err := resolveIndex(ParseColumnSpec(token), names)
	if err != nil {
		return "", err
	}
	return names[idx], nil
}

// resolveIndex returns the position of the column spec refers to. Names
// resolve to their first occurrence.
func resolveIndex(spec ColumnSpec, names []string) (int, error) {
	if spec.IsIndex {
		if spec.Index >= len(names) {
			return 0, &OutOfRangeError{Token: spec.Name, Max: len(names) - 1}
		}
		return spec.Index, nil
	}
	for i, n := range names {
		if n == spec.Name {
			return i, nil
		}
	}
	return 0, &UnknownColumnError{Token: spec.Name, Names: names}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
