package tabular

import (
	"strconv"
	"strings"

	"github.com/apache/arrow-go/v18/arrow/array"
)

// missingTokens are the cell spellings treated as null, matching what the
// usual CSV writers emit for missing values.
var missingTokens = map[string]struct{}{
	"":     {},
	"NA":   {},
	"N/A":  {},
	"NULL": {},
	"null": {},
	"NaN":  {},
	"nan":  {},
	"None": {},
}

func isMissing(cell string) bool {
	_, ok := missingTokens[cell]
	return ok
}

func parseBoolToken(cell string) (bool, bool) {
	switch cell {
	case "true", "True", "TRUE":
		return true, true
	case "false", "False", "FALSE":
		return false, true
	}
	return false, false
}

// inferColumn builds a typed column from raw string cells. Types are tried
// narrowest first (int64, float64, bool) and a column that fits none of
// them stays string. Missing tokens become nulls; a column of nothing but
// missing tokens comes out float64, the way pandas types an all-NaN column.
func inferColumn(name string, cells []string) Column {
	allInt, allFloat, allBool := true, true, true
	hasValue := false
	for i, cell := range cells {
		cell = strings.TrimSpace(cell)
		cells[i] = cell
		if isMissing(cell) {
			continue
		}
		hasValue = true
		if allInt {
			if _, err := strconv.ParseInt(cell, 10, 64); err != nil {
				allInt = false
			}
		}
		if allFloat {
			if _, err := strconv.ParseFloat(cell, 64); err != nil {
				allFloat = false
			}
		}
		if allBool {
			if _, ok := parseBoolToken(cell); !ok {
				allBool = false
			}
		}
	}

	switch {
	case !hasValue:
		b := array.NewFloat64Builder(alloc)
		defer b.Release()
		for range cells {
			b.AppendNull()
		}
		return NewColumn(name, b.NewArray())
	case allInt:
		b := array.NewInt64Builder(alloc)
		defer b.Release()
		for _, cell := range cells {
			if isMissing(cell) {
				b.AppendNull()
				continue
			}
			v, _ := strconv.ParseInt(cell, 10, 64)
			b.Append(v)
		}
		return NewColumn(name, b.NewArray())
	case allFloat:
		b := array.NewFloat64Builder(alloc)
		defer b.Release()
		for _, cell := range cells {
			if isMissing(cell) {
				b.AppendNull()
				continue
			}
			v, _ := strconv.ParseFloat(cell, 64)
			b.Append(v)
		}
		return NewColumn(name, b.NewArray())
	case allBool:
		b := array.NewBooleanBuilder(alloc)
		defer b.Release()
		for _, cell := range cells {
			if isMissing(cell) {
				b.AppendNull()
				continue
			}
			v, _ := parseBoolToken(cell)
			b.Append(v)
		}
		return NewColumn(name, b.NewArray())
	default:
		b := array.NewStringBuilder(alloc)
		defer b.Release()
		for _, cell := range cells {
			if isMissing(cell) {
				b.AppendNull()
				continue
			}
			b.Append(cell)
		}
		return NewColumn(name, b.NewArray())
	}
}

// frameFromCells assembles a frame from a header row and body rows of raw
// string cells. Short rows are padded with missing cells; long rows are an
// error in the callers, which validate shape first.
func frameFromCells(header []string, body [][]string) (*Frame, error) {
	cols := make([]Column, len(header))
	for j, name := range header {
		cells := make([]string, len(body))
		for i, row := range body {
			if j < len(row) {
				cells[i] = row[j]
			}
		}
		cols[j] = inferColumn(name, cells)
	}
	return NewFrame(cols...)
}
