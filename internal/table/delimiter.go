package table

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"strings"
)

// SampleSize is the default prefix length inspected when guessing a delimiter.
const SampleSize = 1024

// DefaultDelimiter is used when nothing better can be guessed.
const DefaultDelimiter = ','

// CommonDelimiters lists the guessable delimiters in priority order.
var CommonDelimiters = []rune{',', '|', ' ', '\t'}

// GuessDelimiter picks the first candidate from CommonDelimiters that splits
// every non-empty line of sample into the same number of fields, at least
// two. It falls back to def when no candidate qualifies. sample should end
// on a line boundary, as returned by Sample.
func GuessDelimiter(sample []byte, def rune) rune {
	text := string(sample)
	for _, d := range CommonDelimiters {
		if consistentFields(text, d) {
			return d
		}
	}
	return def
}

// Sample returns the prefix of data used for delimiter guessing: at most
// size bytes (SampleSize when size <= 0). When data is cut, the partial
// last line is dropped unless it is the only line.
func Sample(data []byte, size int) []byte {
	if size <= 0 {
		size = SampleSize
	}
	if len(data) <= size {
		return data
	}
	cut := data[:size]
	if i := bytes.LastIndexByte(cut, '\n'); i >= 0 {
		return cut[:i+1]
	}
	return cut
}

func consistentFields(text string, delim rune) bool {
	r := newReader(strings.NewReader(text), delim)
	r.FieldsPerRecord = -1
	width, rows := 0, 0
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return false
		}
		if rows == 0 {
			width = len(rec)
		} else if len(rec) != width {
			return false
		}
		rows++
	}
	return rows > 0 && width >= 2
}

func newReader(r io.Reader, delim rune) *csv.Reader {
	cr := csv.NewReader(r)
	cr.Comma = delim
	// leading blanks are fields of their own for whitespace delimiters
	cr.TrimLeadingSpace = delim != ' ' && delim != '\t'
	return cr
}
