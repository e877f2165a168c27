package analysis

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/KaramelBytes/chasta-cli/internal/table"
	"github.com/spf13/afero"
)

// DefaultColumns selects the first column.
const DefaultColumns = "0"

// Request describes one analysis call.
type Request struct {
	// Path of the input table. Empty or "-" reads Input instead.
	Path  string
	Input io.Reader
	// Sheet selects the worksheet of an .xlsx input.
	Sheet string

	// Delimiter forces the field separator; 0 guesses it and falls back to
	// DefaultDelimiter.
	Delimiter        rune
	DefaultDelimiter rune
	SampleBytes      int

	// Columns is a comma separated list of indices or names.
	Columns       string
	InstanceCount bool
	NumericOnly   bool

	// Chart asks for a chart projection; ChartX optionally names its x axis.
	Chart  bool
	ChartX string

	Precision int

	// Diagnostics receives user-facing messages such as a missing input.
	Diagnostics io.Writer
	Logger      *slog.Logger
}

// Projection is the sub-table a chart is drawn from.
type Projection struct {
	Series []ResolvedColumn
	// X is the x axis column; nil plots against the row number.
	X *ResolvedColumn
}

// Result bundles the report with the optional chart projection.
type Result struct {
	Report *Report
	Table  *table.Table
	Chart  *Projection
}

// Analyze runs the full pipeline for req. A missing input file is not an
// error: a diagnostic naming the path is written and (nil, nil) returned.
func Analyze(fsys afero.Fs, req Request) (*Result, error) {
	log := req.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	specs, err := ParseColumnList(req.Columns)
	if err != nil {
		return nil, err
	}

	t, err := load(fsys, req, log)
	if errors.Is(err, fs.ErrNotExist) {
		diag := req.Diagnostics
		if diag == nil {
			diag = io.Discard
		}
		fmt.Fprintf(diag, "%s No such file. Aborting.\n", req.Path)
		log.Warn("input not found", slog.String("path", req.Path))
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	sel, err := Select(t, specs, req.NumericOnly)
	if err != nil {
		return nil, err
	}
	log.Debug("resolved selection",
		slog.Any("columns", sel.Names()),
		slog.String("profile", sel.Profile.String()))

	rep := &Report{Columns: sel.Names(), Profile: sel.Profile, Precision: req.Precision}
	if req.InstanceCount {
		counts, err := CountInstances(sel)
		if err != nil {
			return nil, err
		}
		rep.Counts = counts
	} else {
		rep.Stats = Describe(sel)
	}

	res := &Result{Report: rep, Table: t}
	if req.Chart {
		proj, err := project(t, sel, req.ChartX, req.NumericOnly)
		if err != nil {
			return nil, fmt.Errorf("chart x axis: %w", err)
		}
		res.Chart = proj
	}
	return res, nil
}

func project(t *table.Table, sel *Selection, x string, numericOnly bool) (*Projection, error) {
	p := &Projection{Series: sel.Columns}
	if x == "" {
		return p, nil
	}
	col, err := resolve(t, ParseColumnSpec(x), numericOnly)
	if err != nil {
		return nil, err
	}
	p.X = &col
	return p, nil
}

func load(fsys afero.Fs, req Request, log *slog.Logger) (*table.Table, error) {
	opt := table.ReadOptions{
		Delimiter:        req.Delimiter,
		DefaultDelimiter: req.DefaultDelimiter,
		SampleBytes:      req.SampleBytes,
		Logger:           log,
	}
	if req.Path == "" || req.Path == "-" {
		if req.Input == nil {
			return nil, errors.New("no input: path is empty and no stream given")
		}
		return table.Read(req.Input, opt)
	}

	f, err := fsys.Open(req.Path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()
	if strings.EqualFold(filepath.Ext(req.Path), ".xlsx") {
		return table.ReadXLSX(f, req.Sheet)
	}
	return table.Read(f, opt)
}
