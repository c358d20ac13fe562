package tabular

import (
	"fmt"
	"sort"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
)

// alloc is the allocator behind every column built by this package.
var alloc memory.Allocator = memory.NewGoAllocator()

// DType identifies the logical type of a column.
type DType string

// The four column types the kernel supports.
const (
	Int64   DType = "int64"
	Float64 DType = "float64"
	String  DType = "string"
	Bool    DType = "bool"
)

// Numeric reports whether the type participates in numeric statistics.
func (d DType) Numeric() bool {
	return d == Int64 || d == Float64
}

// Column is a named Arrow array. The zero value is not usable; columns are
// created by the readers or by NewColumn.
type Column struct {
	name string
	arr  arrow.Array
}

// NewColumn wraps an Arrow array as a named column, taking over the
// caller's reference.
func NewColumn(name string, arr arrow.Array) Column {
	return Column{name: name, arr: arr}
}

// Name returns the column name.
func (c Column) Name() string { return c.name }

// Len returns the number of rows, nulls included.
func (c Column) Len() int { return c.arr.Len() }

// NullCount returns the number of null entries.
func (c Column) NullCount() int { return c.arr.NullN() }

// IsNull reports whether row i is null.
func (c Column) IsNull(i int) bool { return c.arr.IsNull(i) }

// DType returns the column's logical type.
func (c Column) DType() DType {
	switch c.arr.(type) {
	case *array.Int64:
		return Int64
	case *array.Float64:
		return Float64
	case *array.Boolean:
		return Bool
	default:
		return String
	}
}

// Value returns the value at row i as a Go value (int64, float64, string,
// or bool), or nil when the entry is null.
func (c Column) Value(i int) any {
	if c.arr.IsNull(i) {
		return nil
	}
	switch a := c.arr.(type) {
	case *array.Int64:
		return a.Value(i)
	case *array.Float64:
		return a.Value(i)
	case *array.Boolean:
		return a.Value(i)
	case *array.String:
		return a.Value(i)
	default:
		return nil
	}
}

// Float returns the value at row i widened to float64. The second result
// is false when the entry is null or the column is not numeric.
func (c Column) Float(i int) (float64, bool) {
	if c.arr.IsNull(i) {
		return 0, false
	}
	switch a := c.arr.(type) {
	case *array.Int64:
		return float64(a.Value(i)), true
	case *array.Float64:
		return a.Value(i), true
	default:
		return 0, false
	}
}

// MemoryBytes returns the bytes held by the column's Arrow buffers.
func (c Column) MemoryBytes() int64 {
	var n int64
	for _, buf := range c.arr.Data().Buffers() {
		if buf != nil {
			n += int64(buf.Len())
		}
	}
	return n
}

// Retain increments the underlying array's reference count.
func (c Column) Retain() { c.arr.Retain() }

// Release decrements the underlying array's reference count.
func (c Column) Release() { c.arr.Release() }

// slice returns a zero-copy view of rows [i, j).
func (c Column) slice(i, j int) Column {
	return Column{name: c.name, arr: array.NewSlice(c.arr, int64(i), int64(j))}
}

// Frame is an ordered collection of equal-length named columns. Frames are
// immutable once constructed.
type Frame struct {
	cols   []Column
	byName map[string]int
	nrows  int
}

// NewFrame builds a frame from columns, taking over the caller's
// references. All columns must have the same length and distinct names.
func NewFrame(cols ...Column) (*Frame, error) {
	f := &Frame{cols: cols, byName: make(map[string]int, len(cols))}
	for i, c := range cols {
		if _, dup := f.byName[c.name]; dup {
			return nil, fmt.Errorf("duplicate column name %q", c.name)
		}
		f.byName[c.name] = i
		if i == 0 {
			f.nrows = c.Len()
		} else if c.Len() != f.nrows {
			return nil, fmt.Errorf("column %q has %d rows, want %d", c.name, c.Len(), f.nrows)
		}
	}
	return f, nil
}

// NumRows returns the number of rows.
func (f *Frame) NumRows() int { return f.nrows }

// NumCols returns the number of columns.
func (f *Frame) NumCols() int { return len(f.cols) }

// Names returns the column names in frame order.
func (f *Frame) Names() []string {
	names := make([]string, len(f.cols))
	for i, c := range f.cols {
		names[i] = c.name
	}
	return names
}

// Columns returns the columns in frame order. The slice is shared; callers
// must not modify it.
func (f *Frame) Columns() []Column { return f.cols }

// Column returns the named column.
func (f *Frame) Column(name string) (Column, bool) {
	i, ok := f.byName[name]
	if !ok {
		return Column{}, false
	}
	return f.cols[i], true
}

// ColumnAt returns the column at position i.
func (f *Frame) ColumnAt(i int) Column { return f.cols[i] }

// Head returns a zero-copy frame holding the first n rows (fewer when the
// frame is shorter).
func (f *Frame) Head(n int) *Frame {
	if n > f.nrows {
		n = f.nrows
	}
	if n < 0 {
		n = 0
	}
	cols := make([]Column, len(f.cols))
	for i, c := range f.cols {
		cols[i] = c.slice(0, n)
	}
	out, _ := NewFrame(cols...)
	return out
}

// MemoryBytes returns the bytes held across every column's buffers.
func (f *Frame) MemoryBytes() int64 {
	var n int64
	for _, c := range f.cols {
		n += c.MemoryBytes()
	}
	return n
}

// Row returns the values of row i keyed by column name. Nulls come back as
// nil entries.
func (f *Frame) Row(i int) map[string]any {
	row := make(map[string]any, len(f.cols))
	for _, c := range f.cols {
		row[c.name] = c.Value(i)
	}
	return row
}

// Records materializes the frame as one map per row, in row order. Used by
// engines that evaluate over plain Go values.
func (f *Frame) Records() []map[string]any {
	recs := make([]map[string]any, f.nrows)
	for i := range recs {
		recs[i] = f.Row(i)
	}
	return recs
}

// Retain increments every column's reference count.
func (f *Frame) Retain() {
	for _, c := range f.cols {
		c.Retain()
	}
}

// Release decrements every column's reference count.
func (f *Frame) Release() {
	for _, c := range f.cols {
		c.Release()
	}
}

// DTypeCounts returns a "dtype(count)" tally sorted by type name, the shape
// used in the structural summary.
func (f *Frame) DTypeCounts() []string {
	counts := make(map[DType]int)
	for _, c := range f.cols {
		counts[c.DType()]++
	}
	out := make([]string, 0, len(counts))
	for d, n := range counts {
		out = append(out, fmt.Sprintf("%s(%d)", d, n))
	}
	sort.Strings(out)
	return out
}

// String returns a short shape description, not the frame contents.
func (f *Frame) String() string {
	return fmt.Sprintf("[%d rows x %d columns]", f.nrows, len(f.cols))
}
