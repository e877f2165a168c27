package analysis

import (
	"sort"
	"strconv"
	"strings"
)

// InstanceCount is one distinct tuple of selected values and how often it
// occurs.
type InstanceCount struct {
	Values []string
	Count  int
}

// InstanceCounts is the frequency-table form of a report, sorted by count
// descending with first-seen order among equal counts.
type InstanceCounts struct {
	Columns []string
	Entries []InstanceCount
}

// Count returns the number of occurrences of the given tuple.
func (c *InstanceCounts) Count(values ...string) int {
	want := strings.Join(values, keySep)
	for _, e := range c.Entries {
		if strings.Join(e.Values, keySep) == want {
			return e.Count
		}
	}
	return 0
}

// Total returns the number of rows counted.
func (c *InstanceCounts) Total() int {
	n := 0
	for _, e := range c.Entries {
		n += e.Count
	}
	return n
}

const keySep = "\x1f"

// CountInstances groups the rows of sel by their selected values. Rows with
// a missing selected value are not counted. Numeric columns are keyed by
// value, so "1" and "1.0" are the same instance.
func CountInstances(sel *Selection) (*InstanceCounts, error) {
	if sel == nil || len(sel.Columns) == 0 {
		return nil, ErrEmptySelection
	}
	rows := len(sel.Columns[0].Values)
	index := map[string]int{}
	out := &InstanceCounts{Columns: sel.Names()}

rowLoop:
	for r := 0; r < rows; r++ {
		tuple := make([]string, len(sel.Columns))
		for i, c := range sel.Columns {
			v := c.Values[r]
			if IsMissing(v) {
				continue rowLoop
			}
			if c.Type == Numeric {
				x, ok := ParseNumber(v)
				if !ok {
					// numeric-only selection
					continue rowLoop
				}
				v = strconv.FormatFloat(x, 'f', -1, 64)
			}
			tuple[i] = v
		}
		key := strings.Join(tuple, keySep)
		if pos, ok := index[key]; ok {
			out.Entries[pos].Count++
			continue
		}
		index[key] = len(out.Entries)
		out.Entries = append(out.Entries, InstanceCount{Values: tuple, Count: 1})
	}

	sort.SliceStable(out.Entries, func(i, j int) bool {
		return out.Entries[i].Count > out.Entries[j].Count
	})
	return out, nil
}
