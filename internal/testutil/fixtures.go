package testutil

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// Row is the canonical sample record the fixture writers render.
type Row struct {
	Name   string  `json:"name" parquet:"name"`
	Age    int64   `json:"age" parquet:"age"`
	Score  float64 `json:"score" parquet:"score"`
	Active bool    `json:"active" parquet:"active"`
}

// SampleRows returns the canned sample table: 4 rows, 4 columns, mixed
// types. Returns a new slice each time to prevent test interference.
func SampleRows() []Row {
	return []Row{
		{Name: "ada", Age: 36, Score: 1.5, Active: true},
		{Name: "eva", Age: 31, Score: 2.25, Active: false},
		{Name: "kim", Age: 48, Score: 0.75, Active: true},
		{Name: "lou", Age: 27, Score: 3.0, Active: false},
	}
}

// SampleColumnNames returns the sample table's column names in order.
func SampleColumnNames() []string {
	return []string{"name", "age", "score", "active"}
}

// WriteFile writes content to name under the test's temp directory and
// returns the full path.
func WriteFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// WriteCSV renders the sample table as a CSV file.
func WriteCSV(t *testing.T) string {
	t.Helper()
	var b strings.Builder
	b.WriteString("name,age,score,active\n")
	for _, r := range SampleRows() {
		fmt.Fprintf(&b, "%s,%d,%g,%t\n", r.Name, r.Age, r.Score, r.Active)
	}
	return WriteFile(t, "sample.csv", b.String())
}

// WriteJSON renders the sample table as a JSON array of records.
func WriteJSON(t *testing.T) string {
	t.Helper()
	data, err := json.Marshal(SampleRows())
	require.NoError(t, err)
	return WriteFile(t, "sample.json", string(data))
}

// WriteXLSX renders the sample table as a single-sheet workbook.
func WriteXLSX(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sample.xlsx")

	f := excelize.NewFile()
	defer f.Close()

	header := make([]any, 0, 4)
	for _, name := range SampleColumnNames() {
		header = append(header, name)
	}
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &header))
	for i, r := range SampleRows() {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		require.NoError(t, err)
		row := []any{r.Name, r.Age, r.Score, r.Active}
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	require.NoError(t, f.SaveAs(path))
	return path
}

// WriteParquet renders the sample table as a Parquet file.
func WriteParquet(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sample.parquet")

	f, err := os.Create(path)
	require.NoError(t, err)
	w := parquet.NewGenericWriter[Row](f)
	_, err = w.Write(SampleRows())
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, f.Close())
	return path
}
