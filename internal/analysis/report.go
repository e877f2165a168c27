package analysis

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
)

// DefaultPrecision is the number of decimals used for float statistics.
const DefaultPrecision = 6

// Report is the outcome of one analysis: exactly one of Stats and Counts
// is set.
type Report struct {
	Columns   []string
	Profile   TypeProfile
	Stats     *StatsTable
	Counts    *InstanceCounts
	Precision int
}

// InstanceMode reports whether r is a frequency table.
func (r *Report) InstanceMode() bool { return r.Counts != nil }

// Text renders the report as an aligned plain-text table.
func (r *Report) Text() string {
	var b bytes.Buffer
	_, _ = r.WriteTo(&b)
	return b.String()
}

// WriteTo renders the report to w.
func (r *Report) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	tw := tabwriter.NewWriter(cw, 0, 8, 2, ' ', 0)
	if r.Counts != nil {
		writeCounts(tw, r.Counts)
	} else if r.Stats != nil {
		fmt.Fprintf(cw, "Stats for column(s):%s:\n", strings.Join(r.Columns, ", "))
		writeStats(tw, r.Stats, r.precision())
	}
	err := tw.Flush()
	return cw.n, err
}

func (r *Report) precision() int {
	if r.Precision <= 0 {
		return DefaultPrecision
	}
	return r.Precision
}

func writeStats(w io.Writer, s *StatsTable, precision int) {
	fmt.Fprintf(w, "\t%s\n", strings.Join(s.Columns, "\t"))
	for _, row := range s.Rows {
		cells := make([]string, len(row.Cells))
		for i, c := range row.Cells {
			cells[i] = FormatCell(row.Kind, c, precision)
		}
		fmt.Fprintf(w, "%s\t%s\n", row.Name(), strings.Join(cells, "\t"))
	}
}

func writeCounts(w io.Writer, c *InstanceCounts) {
	fmt.Fprintf(w, "%s\tcount\n", strings.Join(c.Columns, "\t"))
	for _, e := range c.Entries {
		fmt.Fprintf(w, "%s\t%d\n", strings.Join(e.Values, "\t"), e.Count)
	}
}

// FormatCell renders one statistic value. Absent cells are blank.
func FormatCell(k StatKind, c Cell, precision int) string {
	switch {
	case !c.Present:
		return ""
	case k == StatTop:
		return c.Text
	case k.Integral():
		return strconv.FormatInt(int64(c.Num), 10)
	default:
		return strconv.FormatFloat(c.Num, 'f', precision, 64)
	}
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
