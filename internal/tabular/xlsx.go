package tabular

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ReadXLSX reads the first sheet of an Excel workbook. The first row is the
// header; cell values arrive as formatted strings and go through the same
// type inference as CSV.
func ReadXLSX(path string) (*Frame, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook %s has no sheets", path)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return NewFrame()
	}

	header := rows[0]
	body := rows[1:]
	for i, row := range body {
		if len(row) > len(header) {
			return nil, fmt.Errorf("sheet %q row %d has %d cells, header has %d", sheets[0], i+2, len(row), len(header))
		}
	}
	return frameFromCells(header, body)
}
