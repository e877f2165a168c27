package table

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
)

// ReadOptions controls how delimited text is turned into a Table.
type ReadOptions struct {
	// Delimiter forces the field separator. If 0, it is guessed from the
	// first SampleBytes of input with DefaultDelimiter as the fallback.
	Delimiter        rune
	DefaultDelimiter rune
	SampleBytes      int
	Logger           *slog.Logger
}

// Read loads all of r into memory and parses it as a delimited table.
func Read(r io.Reader, opt ReadOptions) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return Parse(data, opt)
}

// Parse parses data as a delimited table: delimiter guess, header
// detection, then a full read where every row must match the width of the
// first one.
func Parse(data []byte, opt ReadOptions) (*Table, error) {
	log := opt.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	delim := opt.Delimiter
	if delim == 0 {
		def := opt.DefaultDelimiter
		if def == 0 {
			def = DefaultDelimiter
		}
		delim = GuessDelimiter(Sample(data, opt.SampleBytes), def)
		log.Debug("guessed delimiter", slog.String("delimiter", string(delim)))
	}

	names, hasHeader, err := DetermineColumns(bytes.NewReader(data), delim)
	if err != nil {
		return nil, err
	}
	log.Debug("determined columns", slog.Bool("has_header", hasHeader), slog.Any("columns", names))

	cr := newReader(bytes.NewReader(data), delim)
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read table: %w", err)
	}
	if hasHeader {
		records = records[1:]
	}
	return &Table{Columns: names, HasHeader: hasHeader, Delimiter: delim, Rows: records}, nil
}
