package tabular

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// frameFromCSVString builds a frame from inline CSV, releasing it with the
// test.
func frameFromCSVString(t *testing.T, data string) *Frame {
	t.Helper()
	f, err := ReadCSV(strings.NewReader(data))
	require.NoError(t, err)
	t.Cleanup(f.Release)
	return f
}

func TestNewFrame_DuplicateName(t *testing.T) {
	t.Parallel()

	a := inferColumn("x", []string{"1"})
	b := inferColumn("x", []string{"2"})
	_, err := NewFrame(a, b)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `duplicate column name "x"`)
}

func TestNewFrame_LengthMismatch(t *testing.T) {
	t.Parallel()

	a := inferColumn("a", []string{"1", "2"})
	b := inferColumn("b", []string{"1"})
	_, err := NewFrame(a, b)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `column "b" has 1 rows, want 2`)
}

func TestFrame_ColumnAccess(t *testing.T) {
	t.Parallel()

	f := frameFromCSVString(t, "a,b,c\n1,x,true\n2,y,false\n")
	assert.Equal(t, 2, f.NumRows())
	assert.Equal(t, 3, f.NumCols())
	assert.Equal(t, []string{"a", "b", "c"}, f.Names())

	col, ok := f.Column("b")
	require.True(t, ok)
	assert.Equal(t, "b", col.Name())
	assert.Equal(t, String, col.DType())

	_, ok = f.Column("missing")
	assert.False(t, ok)

	assert.Equal(t, "a", f.ColumnAt(0).Name())
	assert.Equal(t, Int64, f.ColumnAt(0).DType())
	assert.Equal(t, Bool, f.ColumnAt(2).DType())
}

func TestFrame_Head(t *testing.T) {
	t.Parallel()

	f := frameFromCSVString(t, "n\n1\n2\n3\n4\n5\n6\n7\n")

	h := f.Head(5)
	defer h.Release()
	assert.Equal(t, 5, h.NumRows())
	assert.Equal(t, int64(1), h.ColumnAt(0).Value(0))
	assert.Equal(t, int64(5), h.ColumnAt(0).Value(4))

	// Head beyond the frame length returns the whole frame.
	all := f.Head(100)
	defer all.Release()
	assert.Equal(t, 7, all.NumRows())

	none := f.Head(0)
	defer none.Release()
	assert.Equal(t, 0, none.NumRows())
	assert.Equal(t, 1, none.NumCols())
}

func TestFrame_RowAndRecords(t *testing.T) {
	t.Parallel()

	f := frameFromCSVString(t, "a,b\n1,x\n2,\n")

	row := f.Row(0)
	assert.Equal(t, int64(1), row["a"])
	assert.Equal(t, "x", row["b"])

	recs := f.Records()
	require.Len(t, recs, 2)
	assert.Equal(t, int64(2), recs[1]["a"])
	assert.Nil(t, recs[1]["b"])
}

func TestColumn_Float(t *testing.T) {
	t.Parallel()

	f := frameFromCSVString(t, "i,f,s\n3,1.5,x\n,,y\n")

	v, ok := f.ColumnAt(0).Float(0)
	require.True(t, ok)
	assert.Equal(t, 3.0, v)

	v, ok = f.ColumnAt(1).Float(0)
	require.True(t, ok)
	assert.Equal(t, 1.5, v)

	// Nulls and non-numeric columns report not-ok.
	_, ok = f.ColumnAt(0).Float(1)
	assert.False(t, ok)
	_, ok = f.ColumnAt(2).Float(0)
	assert.False(t, ok)
}

func TestFrame_MemoryBytes(t *testing.T) {
	t.Parallel()

	f := frameFromCSVString(t, "a,b\n1,hello\n2,world\n")
	assert.Greater(t, f.MemoryBytes(), int64(0))
	assert.Greater(t, f.ColumnAt(1).MemoryBytes(), int64(0))
}

func TestFrame_DTypeCounts(t *testing.T) {
	t.Parallel()

	f := frameFromCSVString(t, "a,b,c,d\n1,2.5,x,true\n")
	assert.Equal(t, []string{"bool(1)", "float64(1)", "int64(1)", "string(1)"}, f.DTypeCounts())
}

func TestFrame_String(t *testing.T) {
	t.Parallel()

	f := frameFromCSVString(t, "a\n1\n2\n")
	assert.Equal(t, "[2 rows x 1 columns]", f.String())
}
