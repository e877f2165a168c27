package analysis

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidColumn is the parent of every column resolution failure.
	ErrInvalidColumn = errors.New("invalid column")
	// ErrOutOfRange matches an index token past the last column.
	ErrOutOfRange = fmt.Errorf("%w: index out of range", ErrInvalidColumn)
	// ErrUnknownColumn matches a name token absent from the table.
	ErrUnknownColumn = fmt.Errorf("%w: unknown name", ErrInvalidColumn)
	// ErrEmptySelection is returned when no column was requested.
	ErrEmptySelection = errors.New("no columns selected")
)

// OutOfRangeError reports a column index beyond the table width.
type OutOfRangeError struct {
	Token string
	Max   int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("column %s: The specified column number can't be > %d", e.Token, e.Max)
}

func (e *OutOfRangeError) Unwrap() error { return ErrOutOfRange }

// UnknownColumnError reports a column name that is not in the table.
type UnknownColumnError struct {
	Token string
	Names []string
}

func (e *UnknownColumnError) Error() string {
	return fmt.Sprintf("The specified column name:%s is not in: %s", e.Token, strings.Join(e.Names, ", "))
}

func (e *UnknownColumnError) Unwrap() error { return ErrUnknownColumn }
