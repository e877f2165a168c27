package table

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ReadXLSX loads one worksheet of an xlsx workbook as a Table. An empty
// sheet name selects the first sheet. Short rows are padded with empty
// cells to the widest row, and the header rule is the same as for
// delimited text.
func ReadXLSX(r io.Reader, sheet string) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyTable
	}
	if sheet == "" {
		sheet = sheets[0]
	} else if idx, _ := f.GetSheetIndex(sheet); idx < 0 {
		return nil, fmt.Errorf("sheet '%s' not found.\nAvailable sheets: %s", sheet, strings.Join(sheets, ", "))
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
	}
	// excelize drops trailing blank rows but not leading ones
	for len(rows) > 0 && len(rows[0]) == 0 {
		rows = rows[1:]
	}
	if len(rows) == 0 {
		return nil, ErrEmptyTable
	}
	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}
	for i, row := range rows {
		if len(row) < width {
			padded := make([]string, width)
			copy(padded, row)
			rows[i] = padded
		}
	}

	var second []string
	if len(rows) > 1 {
		second = rows[1]
	}
	names, hasHeader := deriveColumns(rows[0], second)
	if hasHeader {
		rows = rows[1:]
	}
	return &Table{Columns: names, HasHeader: hasHeader, Rows: rows}, nil
}
