package table

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
)

var numberPattern = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

// IsNumber reports whether s is a plain signed integer or decimal number.
func IsNumber(s string) bool {
	return numberPattern.MatchString(strings.TrimSpace(s))
}

// IsRowAllNumeric reports whether every field of row is a number.
func IsRowAllNumeric(row []string) bool {
	for _, f := range row {
		if !IsNumber(f) {
			return false
		}
	}
	return true
}

// IsRowAHeader reports whether row looks like a row of labels, that is at
// least one field is not a number.
func IsRowAHeader(row []string) bool {
	return !IsRowAllNumeric(row)
}

// DetermineColumns reads at most two rows from r and derives the column
// names. Row 1 is taken as a header only when it has a non-numeric field
// and row 2 is entirely numeric; otherwise names are col_0..col_{n-1}.
func DetermineColumns(r io.Reader, delim rune) ([]string, bool, error) {
	cr := newReader(r, delim)
	cr.FieldsPerRecord = -1
	first, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, false, ErrEmptyTable
	}
	if err != nil {
		return nil, false, fmt.Errorf("read first row: %w", err)
	}
	second, err := cr.Read()
	if errors.Is(err, io.EOF) {
		names, hasHeader := deriveColumns(first, nil)
		return names, hasHeader, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read second row: %w", err)
	}
	names, hasHeader := deriveColumns(first, second)
	return names, hasHeader, nil
}

// deriveColumns applies the two-row header rule. A nil second row means the
// table has a single row, which never confirms a header.
func deriveColumns(first, second []string) ([]string, bool) {
	if second != nil && IsRowAHeader(first) && IsRowAllNumeric(second) {
		names := make([]string, len(first))
		copy(names, first)
		return names, true
	}
	return SyntheticNames(len(first)), false
}
