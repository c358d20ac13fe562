package tabular

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// ReadCSV parses comma-separated data with a header record into a frame.
// Column types are inferred per column; records shorter than the header are
// padded with nulls.
func ReadCSV(r io.Reader) (*Frame, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = false

	header, err := cr.Read()
	if err == io.EOF {
		return NewFrame()
	}
	if err != nil {
		return nil, fmt.Errorf("reading csv header: %w", err)
	}

	var body [][]string
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading csv record %d: %w", len(body)+2, err)
		}
		if len(rec) > len(header) {
			return nil, fmt.Errorf("csv record %d has %d fields, header has %d", len(body)+2, len(rec), len(header))
		}
		body = append(body, rec)
	}
	return frameFromCells(header, body)
}

// ReadCSVFile reads a CSV file from disk.
func ReadCSVFile(path string) (*Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadCSV(f)
}
