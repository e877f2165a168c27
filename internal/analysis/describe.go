package analysis

import (
	"math"
	"sort"

	"github.com/montanaflynn/stats"
)

// StatKind enumerates the statistics of a descriptive report, in report
// order.
type StatKind int

const (
	StatCount StatKind = iota
	StatUnique
	StatTop
	StatFreq
	StatMean
	StatStd
	StatMin
	StatP25
	StatP50
	StatP75
	StatP90
	StatP95
	StatP99
	StatP999
	StatMax
	StatMedian
	numStatKinds
)

var statNames = [numStatKinds]string{
	"count", "unique", "top", "freq", "mean", "std", "min",
	"25%", "50%", "75%", "90%", "95%", "99%", "99.9%",
	"max", "median",
}

var statPercentiles = map[StatKind]float64{
	StatP25: 25, StatP50: 50, StatP75: 75, StatP90: 90,
	StatP95: 95, StatP99: 99, StatP999: 99.9,
	StatMedian: 50,
}

func (k StatKind) String() string {
	if k < 0 || k >= numStatKinds {
		return "unknown"
	}
	return statNames[k]
}

// AppliesTo reports whether the statistic is defined for columns of type t.
func (k StatKind) AppliesTo(t ColumnType) bool {
	switch k {
	case StatCount:
		return true
	case StatUnique, StatTop, StatFreq:
		return t == Categorical
	default:
		return t == Numeric
	}
}

// Integral reports whether values of k are counts.
func (k StatKind) Integral() bool {
	return k == StatCount || k == StatUnique || k == StatFreq
}

// Cell is one statistic of one column. The zero Cell is absent.
type Cell struct {
	Present bool
	Num     float64
	// Text holds the value of text statistics (top).
	Text string
}

func num(v float64) Cell { return Cell{Present: true, Num: v} }
func text(s string) Cell { return Cell{Present: true, Text: s} }

// StatRow is one named statistic with a cell per selected column.
type StatRow struct {
	Kind  StatKind
	Cells []Cell
}

// Name returns the display name of the row.
func (r StatRow) Name() string { return r.Kind.String() }

// StatsTable is the descriptive form of a report.
type StatsTable struct {
	Columns []string
	Rows    []StatRow
}

// Row looks up a statistic by kind.
func (s *StatsTable) Row(k StatKind) (StatRow, bool) {
	for _, r := range s.Rows {
		if r.Kind == k {
			return r, true
		}
	}
	return StatRow{}, false
}

// Lookup returns the cell of statistic name for the col-th selected column.
func (s *StatsTable) Lookup(name string, col int) (Cell, bool) {
	for _, r := range s.Rows {
		if r.Name() == name {
			if col < 0 || col >= len(r.Cells) {
				return Cell{}, false
			}
			return r.Cells[col], r.Cells[col].Present
		}
	}
	return Cell{}, false
}

// Describe computes descriptive statistics for every column of sel. A row
// appears when its statistic applies to at least one selected column;
// cells of columns it does not apply to are absent. median never appears
// for an all-categorical selection since it applies to numeric columns only.
func Describe(sel *Selection) *StatsTable {
	summaries := make([][numStatKinds]Cell, len(sel.Columns))
	for i, c := range sel.Columns {
		if c.Type == Numeric {
			summaries[i] = describeNumeric(c.Values)
		} else {
			summaries[i] = describeCategorical(c.Values)
		}
	}

	out := &StatsTable{Columns: sel.Names()}
	for k := StatKind(0); k < numStatKinds; k++ {
		if !appliesToAny(k, sel.Columns) {
			continue
		}
		row := StatRow{Kind: k, Cells: make([]Cell, len(sel.Columns))}
		for i, c := range sel.Columns {
			if k.AppliesTo(c.Type) {
				row.Cells[i] = summaries[i][k]
			}
		}
		out.Rows = append(out.Rows, row)
	}
	return out
}

func appliesToAny(k StatKind, cols []ResolvedColumn) bool {
	for _, c := range cols {
		if k.AppliesTo(c.Type) {
			return true
		}
	}
	return false
}

// numericValues parses the non-missing cells; unparsable cells are skipped.
func numericValues(values []string) []float64 {
	nums := make([]float64, 0, len(values))
	for _, v := range values {
		if IsMissing(v) {
			continue
		}
		if x, ok := ParseNumber(v); ok {
			nums = append(nums, x)
		}
	}
	return nums
}

func describeNumeric(values []string) [numStatKinds]Cell {
	var out [numStatKinds]Cell
	nums := numericValues(values)
	out[StatCount] = num(float64(len(nums)))
	if len(nums) == 0 {
		return out
	}
	if mean, err := stats.Mean(nums); err == nil {
		out[StatMean] = num(mean)
	}
	if len(nums) > 1 {
		if sd, err := stats.StandardDeviationSample(nums); err == nil {
			out[StatStd] = num(sd)
		}
	}
	if lo, err := stats.Min(nums); err == nil {
		out[StatMin] = num(lo)
	}
	if hi, err := stats.Max(nums); err == nil {
		out[StatMax] = num(hi)
	}
	sorted := make([]float64, len(nums))
	copy(sorted, nums)
	sort.Float64s(sorted)
	for k, p := range statPercentiles {
		out[k] = num(quantile(sorted, p/100))
	}
	return out
}

func describeCategorical(values []string) [numStatKinds]Cell {
	var out [numStatKinds]Cell
	counts := map[string]int{}
	var order []string
	n := 0
	for _, v := range values {
		if IsMissing(v) {
			continue
		}
		n++
		if counts[v] == 0 {
			order = append(order, v)
		}
		counts[v]++
	}
	out[StatCount] = num(float64(n))
	out[StatUnique] = num(float64(len(order)))
	if n == 0 {
		return out
	}
	// first seen wins among equal counts
	top, freq := "", 0
	for _, v := range order {
		if counts[v] > freq {
			top, freq = v, counts[v]
		}
	}
	out[StatTop] = text(top)
	out[StatFreq] = num(float64(freq))
	return out
}

// quantile interpolates linearly between the closest ranks of sorted.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return math.NaN()
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	w := pos - float64(lo)
	return sorted[lo]*(1-w) + sorted[hi]*w
}
