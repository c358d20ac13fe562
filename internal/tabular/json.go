package tabular

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/apache/arrow-go/v18/arrow/array"
)

// jsonCell is one decoded scalar: nil, json.Number, string, or bool.
type jsonCell any

// ReadJSON parses a JSON document into a frame. Two layouts are accepted,
// matching the orients the host's exporters produce:
//
//   - records: a top-level array of flat objects; columns appear in the
//     order the first record introduces them, and keys absent from a
//     record become nulls
//   - columns: a top-level object mapping column names to equal-length
//     arrays of scalars
//
// Nested objects and arrays inside cells are rejected.
func ReadJSON(r io.Reader) (*Frame, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	tok, err := dec.Token()
	if err == io.EOF {
		return nil, fmt.Errorf("empty json document")
	}
	if err != nil {
		return nil, fmt.Errorf("reading json: %w", err)
	}

	delim, ok := tok.(json.Delim)
	if !ok {
		return nil, fmt.Errorf("json document must be an array or object, got %v", tok)
	}
	switch delim {
	case '[':
		return readJSONRecords(dec)
	case '{':
		return readJSONColumns(dec)
	default:
		return nil, fmt.Errorf("json document must be an array or object")
	}
}

// ReadJSONFile reads a JSON file from disk.
func ReadJSONFile(path string) (*Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadJSON(f)
}

// scalarToken consumes one scalar value from the decoder.
func scalarToken(dec *json.Decoder, where string) (jsonCell, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("reading json %s: %w", where, err)
	}
	switch v := tok.(type) {
	case nil, json.Number, string, bool:
		return v, nil
	default:
		return nil, fmt.Errorf("json %s holds a nested value; only scalars are supported", where)
	}
}

func readJSONRecords(dec *json.Decoder) (*Frame, error) {
	var names []string
	index := make(map[string]int)
	var cells [][]jsonCell
	nrows := 0

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("reading json record: %w", err)
		}
		if d, ok := tok.(json.Delim); !ok || d != '{' {
			return nil, fmt.Errorf("json record %d is not an object", nrows+1)
		}
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return nil, fmt.Errorf("reading json record %d: %w", nrows+1, err)
			}
			key := keyTok.(string)
			val, err := scalarToken(dec, fmt.Sprintf("field %q", key))
			if err != nil {
				return nil, err
			}
			j, seen := index[key]
			if !seen {
				j = len(names)
				index[key] = j
				names = append(names, key)
				// backfill rows that predate this column
				cells = append(cells, make([]jsonCell, nrows))
			}
			cells[j] = append(cells[j], val)
		}
		if _, err := dec.Token(); err != nil { // closing brace
			return nil, fmt.Errorf("reading json record %d: %w", nrows+1, err)
		}
		nrows++
		for j := range cells {
			if len(cells[j]) < nrows {
				cells[j] = append(cells[j], nil)
			}
		}
	}
	if _, err := dec.Token(); err != nil { // closing bracket
		return nil, fmt.Errorf("reading json: %w", err)
	}

	cols := make([]Column, len(names))
	for j, name := range names {
		cols[j] = buildJSONColumn(name, cells[j])
	}
	return NewFrame(cols...)
}

func readJSONColumns(dec *json.Decoder) (*Frame, error) {
	var cols []Column
	length := -1
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("reading json: %w", err)
		}
		name := keyTok.(string)

		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("reading json column %q: %w", name, err)
		}
		if d, ok := tok.(json.Delim); !ok || d != '[' {
			return nil, fmt.Errorf("json column %q is not an array", name)
		}
		var vals []jsonCell
		for dec.More() {
			v, err := scalarToken(dec, fmt.Sprintf("column %q", name))
			if err != nil {
				return nil, err
			}
			vals = append(vals, v)
		}
		if _, err := dec.Token(); err != nil { // closing bracket
			return nil, fmt.Errorf("reading json column %q: %w", name, err)
		}
		if length >= 0 && len(vals) != length {
			return nil, fmt.Errorf("json column %q has %d values, want %d", name, len(vals), length)
		}
		length = len(vals)
		cols = append(cols, buildJSONColumn(name, vals))
	}
	if _, err := dec.Token(); err != nil { // closing brace
		return nil, fmt.Errorf("reading json: %w", err)
	}
	return NewFrame(cols...)
}

// buildJSONColumn picks a column type from decoded scalars: all-bool stays
// bool, all-number becomes int64 when every value is integral and float64
// otherwise, and any mix falls back to string.
func buildJSONColumn(name string, vals []jsonCell) Column {
	allBool, allNumber, allInt := true, true, true
	hasValue := false
	for _, v := range vals {
		switch v := v.(type) {
		case nil:
			continue
		case bool:
			allNumber, allInt = false, false
		case json.Number:
			allBool = false
			if _, err := strconv.ParseInt(v.String(), 10, 64); err != nil {
				allInt = false
			}
		default:
			allBool, allNumber, allInt = false, false, false
		}
		hasValue = true
	}

	switch {
	case !hasValue:
		b := array.NewFloat64Builder(alloc)
		defer b.Release()
		for range vals {
			b.AppendNull()
		}
		return NewColumn(name, b.NewArray())
	case allBool:
		b := array.NewBooleanBuilder(alloc)
		defer b.Release()
		for _, v := range vals {
			if v == nil {
				b.AppendNull()
				continue
			}
			b.Append(v.(bool))
		}
		return NewColumn(name, b.NewArray())
	case allNumber && allInt:
		b := array.NewInt64Builder(alloc)
		defer b.Release()
		for _, v := range vals {
			if v == nil {
				b.AppendNull()
				continue
			}
			n, _ := strconv.ParseInt(v.(json.Number).String(), 10, 64)
			b.Append(n)
		}
		return NewColumn(name, b.NewArray())
	case allNumber:
		b := array.NewFloat64Builder(alloc)
		defer b.Release()
		for _, v := range vals {
			if v == nil {
				b.AppendNull()
				continue
			}
			f, _ := v.(json.Number).Float64()
			b.Append(f)
		}
		return NewColumn(name, b.NewArray())
	default:
		b := array.NewStringBuilder(alloc)
		defer b.Release()
		for _, v := range vals {
			switch v := v.(type) {
			case nil:
				b.AppendNull()
			case string:
				b.Append(v)
			case json.Number:
				b.Append(v.String())
			case bool:
				b.Append(strconv.FormatBool(v))
			}
		}
		return NewColumn(name, b.NewArray())
	}
}
