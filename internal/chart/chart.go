// Package chart renders an analysis projection as an area chart inside an
// xlsx workbook.
package chart

import (
	"errors"
	"fmt"
	"strings"

	"github.com/KaramelBytes/chasta-cli/internal/analysis"
	"github.com/KaramelBytes/chasta-cli/internal/utils"
	"github.com/xuri/excelize/v2"
)

// SheetName holds the plotted data.
const SheetName = "Data"

// ErrNothingToPlot is returned when no selected column is numeric.
var ErrNothingToPlot = errors.New("no numeric column to plot")

// Build lays out p on the data sheet (x axis in column A, one selected
// column per following column) and anchors an area chart beside it. Only
// numeric columns are plotted.
func Build(p *analysis.Projection) (*excelize.File, error) {
	if p == nil || !hasNumeric(p.Series) {
		return nil, ErrNothingToPlot
	}

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		_ = f.Close()
		return nil, err
	}

	xName := "row"
	if p.X != nil {
		xName = p.X.Name
	}
	header := []interface{}{xName}
	for _, s := range p.Series {
		header = append(header, s.Name)
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		_ = f.Close()
		return nil, err
	}

	n := rows(p)
	for i := 0; i < n; i++ {
		row := []interface{}{cellValue(p.X, i)}
		for j := range p.Series {
			row = append(row, cellValue(&p.Series[j], i))
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			_ = f.Close()
			return nil, err
		}
	}

	c := &excelize.Chart{
		Type:   excelize.Area,
		Legend: excelize.ChartLegend{Position: "bottom"},
	}
	var plotted []string
	for i, s := range p.Series {
		if s.Type != analysis.Numeric {
			continue
		}
		col, _ := excelize.ColumnNumberToName(i + 2)
		c.Series = append(c.Series, excelize.ChartSeries{
			Name:       fmt.Sprintf("%s!$%s$1", SheetName, col),
			Categories: fmt.Sprintf("%s!$A$2:$A$%d", SheetName, n+1),
			Values:     fmt.Sprintf("%s!$%s$2:$%s$%d", SheetName, col, col, n+1),
		})
		plotted = append(plotted, s.Name)
	}
	c.Title = []excelize.RichTextRun{{Text: strings.Join(plotted, ", ")}}
	anchor, _ := excelize.ColumnNumberToName(len(p.Series) + 3)
	if err := f.AddChart(SheetName, anchor+"2", c); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("add chart: %w", err)
	}
	return f, nil
}

// Write builds the chart for p and saves the workbook at path.
func Write(path string, p *analysis.Projection) error {
	f, err := Build(p)
	if err != nil {
		return err
	}
	defer f.Close()
	buf, err := f.WriteToBuffer()
	if err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return utils.SafeWriteFile(path, buf.Bytes())
}

func hasNumeric(cols []analysis.ResolvedColumn) bool {
	for _, c := range cols {
		if c.Type == analysis.Numeric {
			return true
		}
	}
	return false
}

func rows(p *analysis.Projection) int {
	n := 0
	for _, c := range p.Series {
		if len(c.Values) > n {
			n = len(c.Values)
		}
	}
	if p.X != nil && len(p.X.Values) < n {
		n = len(p.X.Values)
	}
	return n
}

// cellValue renders row i of col; a nil col yields the 1-based row number.
func cellValue(col *analysis.ResolvedColumn, i int) interface{} {
	if col == nil {
		return i + 1
	}
	if i >= len(col.Values) || analysis.IsMissing(col.Values[i]) {
		return nil
	}
	if col.Type == analysis.Numeric {
		if v, ok := analysis.ParseNumber(col.Values[i]); ok {
			return v
		}
		return nil
	}
	return col.Values[i]
}
