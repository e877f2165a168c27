package analysis

import (
	"errors"
	"strconv"
	"strings"

	"github.com/KaramelBytes/chasta-cli/internal/table"
)

// ColumnType is the inferred type of a column.
type ColumnType int

const (
	Numeric ColumnType = iota
	Categorical
)

func (t ColumnType) String() string {
	if t == Numeric {
		return "numeric"
	}
	return "categorical"
}

// TypeProfile summarizes the column types of a selection.
type TypeProfile int

const (
	AllNumeric TypeProfile = iota
	AllCategorical
	Mixed
)

func (p TypeProfile) String() string {
	switch p {
	case AllNumeric:
		return "all-numeric"
	case AllCategorical:
		return "all-categorical"
	default:
		return "mixed"
	}
}

var missingMarkers = map[string]struct{}{
	"": {}, "NA": {}, "N/A": {}, "NaN": {}, "nan": {}, "-NaN": {}, "-nan": {},
	"null": {}, "NULL": {}, "None": {}, "#N/A": {}, "<NA>": {},
}

// IsMissing reports whether a cell holds no value.
func IsMissing(cell string) bool {
	_, ok := missingMarkers[strings.TrimSpace(cell)]
	return ok
}

// ParseNumber parses a cell as a float. It accepts exactly the forms the
// header detector counts as numbers: hex, underscores and inf/nan spellings
// are rejected, and values beyond float64 range parse as ±Inf.
func ParseNumber(cell string) (float64, bool) {
	if !table.IsNumber(cell) {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	return f, true
}

// ClassifyColumn returns Numeric when every non-missing cell parses as a
// number. With numericOnly, unparsable cells count as missing and the
// column is always Numeric.
func ClassifyColumn(values []string, numericOnly bool) ColumnType {
	if numericOnly {
		return Numeric
	}
	for _, v := range values {
		if IsMissing(v) {
			continue
		}
		if _, ok := ParseNumber(v); !ok {
			return Categorical
		}
	}
	return Numeric
}

// Classify computes the profile of a set of columns. An empty set is
// AllNumeric.
func Classify(cols []ResolvedColumn) TypeProfile {
	var numeric, categorical bool
	for _, c := range cols {
		if c.Type == Numeric {
			numeric = true
		} else {
			categorical = true
		}
	}
	switch {
	case numeric && categorical:
		return Mixed
	case categorical:
		return AllCategorical
	default:
		return AllNumeric
	}
}
