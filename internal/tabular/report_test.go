package tabular

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarizeNumeric(t *testing.T) {
	t.Parallel()

	c := inferColumn("x", []string{"1", "2", "3", "4"})
	defer c.Release()
	s := summarizeNumeric(c)

	assert.Equal(t, 4, s.count)
	assert.InDelta(t, 2.5, s.mean, 1e-9)
	assert.InDelta(t, 1.2909944, s.std, 1e-6)
	assert.Equal(t, 1.0, s.min)
	assert.InDelta(t, 1.75, s.q25, 1e-9)
	assert.InDelta(t, 2.5, s.q50, 1e-9)
	assert.InDelta(t, 3.25, s.q75, 1e-9)
	assert.Equal(t, 4.0, s.max)
}

func TestSummarizeNumeric_SkipsNulls(t *testing.T) {
	t.Parallel()

	c := inferColumn("x", []string{"10", "NA", "20"})
	defer c.Release()
	s := summarizeNumeric(c)

	assert.Equal(t, 2, s.count)
	assert.InDelta(t, 15.0, s.mean, 1e-9)
}

func TestSummarizeNumeric_Empty(t *testing.T) {
	t.Parallel()

	c := inferColumn("x", []string{"NA", "NA"})
	defer c.Release()
	s := summarizeNumeric(c)

	assert.Equal(t, 0, s.count)
	assert.True(t, math.IsNaN(s.mean))
	assert.True(t, math.IsNaN(s.min))
}

func TestSummarizeNumeric_SingleValueHasNaNStd(t *testing.T) {
	t.Parallel()

	c := inferColumn("x", []string{"7"})
	defer c.Release()
	s := summarizeNumeric(c)

	assert.Equal(t, 1, s.count)
	assert.InDelta(t, 7.0, s.mean, 1e-9)
	assert.True(t, math.IsNaN(s.std))
	assert.Equal(t, 7.0, s.q50)
}

func TestSummarizeCategorical(t *testing.T) {
	t.Parallel()

	c := inferColumn("x", []string{"b", "a", "b", "a", "c", "NA"})
	defer c.Release()
	s := summarizeCategorical(c)

	assert.Equal(t, 5, s.count)
	assert.Equal(t, 3, s.unique)
	// b and a tie at two; the first seen wins.
	assert.Equal(t, "b", s.top)
	assert.Equal(t, 2, s.freq)
}

func TestInfo(t *testing.T) {
	t.Parallel()

	f := frameFromCSVString(t, "name,age\nada,36\neva,NA\n")
	got := Info(f)

	assert.Contains(t, got, "2 rows, 2 columns")
	assert.Contains(t, got, "name")
	assert.Contains(t, got, "string")
	assert.Contains(t, got, "int64")
	assert.Contains(t, got, "dtypes: int64(1), string(1)")
	assert.Contains(t, got, "memory: ")

	// The age column has one null, so one non-null entry.
	lines := strings.Split(got, "\n")
	var ageLine string
	for _, l := range lines {
		if strings.Contains(l, "age") {
			ageLine = l
		}
	}
	assert.Regexp(t, `age\s+1\s+int64`, ageLine)
}

func TestDescribe_NumericOnly(t *testing.T) {
	t.Parallel()

	f := frameFromCSVString(t, "x\n1\n2\n3\n4\n")
	got := Describe(f)

	assert.Contains(t, got, "count")
	assert.Contains(t, got, "mean")
	assert.Contains(t, got, "2.5")
	assert.NotContains(t, got, "unique")
	assert.NotContains(t, got, "top")
}

func TestDescribe_CategoricalOnly(t *testing.T) {
	t.Parallel()

	f := frameFromCSVString(t, "s\na\na\nb\n")
	got := Describe(f)

	assert.Contains(t, got, "unique")
	assert.Contains(t, got, "freq")
	assert.NotContains(t, got, "mean")
	assert.NotContains(t, got, "25%")
}

func TestDescribe_MixedHasNaNFills(t *testing.T) {
	t.Parallel()

	f := frameFromCSVString(t, "n,s\n1,a\n2,b\n")
	got := Describe(f)

	for _, stat := range []string{"count", "unique", "top", "freq", "mean", "std", "min", "25%", "50%", "75%", "max"} {
		assert.Contains(t, got, stat)
	}
	assert.Contains(t, got, "NaN")
}

func TestHeadString(t *testing.T) {
	t.Parallel()

	f := frameFromCSVString(t, "a,b\n1,x\n2,\n3,z\n4,w\n5,v\n6,u\n")
	got := HeadString(f, 5)

	lines := strings.Split(got, "\n")
	require.Len(t, lines, 6) // header plus five rows
	assert.Contains(t, lines[0], "a")
	assert.Contains(t, lines[0], "b")
	assert.True(t, strings.HasPrefix(lines[1], "0"))
	assert.Contains(t, lines[2], "NaN")
	assert.NotContains(t, got, "6") // sixth row cut off
}

func TestHeadString_Empty(t *testing.T) {
	t.Parallel()

	f := frameFromCSVString(t, "a\n")
	got := HeadString(f, 5)
	assert.Contains(t, got, "(no rows)")
}

func TestMetadataReport_SectionOrder(t *testing.T) {
	t.Parallel()

	f := frameFromCSVString(t, "a\n1\n2\n")
	got := MetadataReport("mydata", f)

	banner := strings.Index(got, "--- METADATA FOR mydata ---")
	info := strings.Index(got, "**Info:**")
	stats := strings.Index(got, "**Descriptive Statistics:**")
	head := strings.Index(got, "**First 5 Rows:**")

	require.NotEqual(t, -1, banner)
	require.NotEqual(t, -1, info)
	require.NotEqual(t, -1, stats)
	require.NotEqual(t, -1, head)
	assert.Less(t, banner, info)
	assert.Less(t, info, stats)
	assert.Less(t, stats, head)
}

func TestHumanBytes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		n    int64
		want string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1024, "1.0 KB"},
		{1536, "1.5 KB"},
		{2 * 1024 * 1024, "2.0 MB"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, humanBytes(tt.n))
	}
}
