package tabular

import (
	"fmt"
	"io"
	"os"

	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/parquet-go/parquet-go"
)

// parquetColumn accumulates one leaf column's values.
type parquetColumn struct {
	name   string
	kind   parquet.Kind
	ints   *array.Int64Builder
	floats *array.Float64Builder
	bools  *array.BooleanBuilder
	strs   *array.StringBuilder
}

func newParquetColumn(name string, kind parquet.Kind) (*parquetColumn, error) {
	c := &parquetColumn{name: name, kind: kind}
	switch kind {
	case parquet.Boolean:
		c.bools = array.NewBooleanBuilder(alloc)
	case parquet.Int32, parquet.Int64:
		c.ints = array.NewInt64Builder(alloc)
	case parquet.Float, parquet.Double:
		c.floats = array.NewFloat64Builder(alloc)
	case parquet.ByteArray, parquet.FixedLenByteArray:
		c.strs = array.NewStringBuilder(alloc)
	default:
		return nil, fmt.Errorf("parquet column %q has unsupported physical type %s", name, kind)
	}
	return c, nil
}

func (c *parquetColumn) append(v parquet.Value) {
	if v.IsNull() {
		switch {
		case c.bools != nil:
			c.bools.AppendNull()
		case c.ints != nil:
			c.ints.AppendNull()
		case c.floats != nil:
			c.floats.AppendNull()
		default:
			c.strs.AppendNull()
		}
		return
	}
	switch c.kind {
	case parquet.Boolean:
		c.bools.Append(v.Boolean())
	case parquet.Int32:
		c.ints.Append(int64(v.Int32()))
	case parquet.Int64:
		c.ints.Append(v.Int64())
	case parquet.Float:
		c.floats.Append(float64(v.Float()))
	case parquet.Double:
		c.floats.Append(v.Double())
	default:
		c.strs.Append(string(v.ByteArray()))
	}
}

func (c *parquetColumn) finish() Column {
	switch {
	case c.bools != nil:
		defer c.bools.Release()
		return NewColumn(c.name, c.bools.NewArray())
	case c.ints != nil:
		defer c.ints.Release()
		return NewColumn(c.name, c.ints.NewArray())
	case c.floats != nil:
		defer c.floats.Release()
		return NewColumn(c.name, c.floats.NewArray())
	default:
		defer c.strs.Release()
		return NewColumn(c.name, c.strs.NewArray())
	}
}

// ReadParquet reads a Parquet file with a flat schema. BOOLEAN, INT32,
// INT64, FLOAT, DOUBLE, and byte-array physical types map onto the frame
// types; nested and INT96 columns are rejected.
func ReadParquet(path string) (*Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	st, err := f.Stat()
	if err != nil {
		return nil, err
	}

	pf, err := parquet.OpenFile(f, st.Size())
	if err != nil {
		return nil, fmt.Errorf("opening parquet file: %w", err)
	}

	fields := pf.Schema().Fields()
	builders := make([]*parquetColumn, len(fields))
	for i, field := range fields {
		if !field.Leaf() {
			return nil, fmt.Errorf("parquet column %q is nested; only flat schemas are supported", field.Name())
		}
		builders[i], err = newParquetColumn(field.Name(), field.Type().Kind())
		if err != nil {
			return nil, err
		}
	}

	buf := make([]parquet.Row, 64)
	for _, rg := range pf.RowGroups() {
		rows := rg.Rows()
		for {
			n, err := rows.ReadRows(buf)
			for _, row := range buf[:n] {
				for _, v := range row {
					j := v.Column()
					if j < 0 || j >= len(builders) {
						rows.Close()
						return nil, fmt.Errorf("parquet value for unknown column index %d", j)
					}
					builders[j].append(v)
				}
			}
			if err == io.EOF {
				break
			}
			if err != nil {
				rows.Close()
				return nil, fmt.Errorf("reading parquet rows: %w", err)
			}
		}
		if err := rows.Close(); err != nil {
			return nil, fmt.Errorf("closing parquet row reader: %w", err)
		}
	}

	cols := make([]Column, len(builders))
	for i, b := range builders {
		cols[i] = b.finish()
	}
	return NewFrame(cols...)
}
