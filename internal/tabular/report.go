package tabular

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"
)

// Info renders the structural summary: shape, per-column non-null counts
// and dtypes, the dtype tally, and the frame's memory footprint.
func Info(f *Frame) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d rows, %d columns\n", f.NumRows(), f.NumCols())

	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, " #\tcolumn\tnon-null\tdtype")
	for i, c := range f.Columns() {
		fmt.Fprintf(w, " %d\t%s\t%d\t%s\n", i, c.Name(), c.Len()-c.NullCount(), c.DType())
	}
	w.Flush()

	fmt.Fprintf(&b, "dtypes: %s\n", strings.Join(f.DTypeCounts(), ", "))
	fmt.Fprintf(&b, "memory: %s", humanBytes(f.MemoryBytes()))
	return b.String()
}

// Describe renders include-all descriptive statistics as a stat-by-column
// table. Count appears for every column; unique/top/freq apply to string
// and bool columns, mean through max to numeric ones, and inapplicable
// cells render NaN. Statistic groups that apply to no column are dropped.
func Describe(f *Frame) string {
	if f.NumCols() == 0 {
		return "(no columns)"
	}

	hasNumeric, hasCategorical := false, false
	for _, c := range f.Columns() {
		if c.DType().Numeric() {
			hasNumeric = true
		} else {
			hasCategorical = true
		}
	}

	stats := []string{"count"}
	if hasCategorical {
		stats = append(stats, "unique", "top", "freq")
	}
	if hasNumeric {
		stats = append(stats, "mean", "std", "min", "25%", "50%", "75%", "max")
	}

	cells := make(map[string][]string, len(stats))
	for _, s := range stats {
		cells[s] = make([]string, f.NumCols())
	}
	for j, c := range f.Columns() {
		fill := func(stat, v string) {
			if _, ok := cells[stat]; ok {
				cells[stat][j] = v
			}
		}
		for _, s := range stats {
			cells[s][j] = "NaN"
		}
		if c.DType().Numeric() {
			n := summarizeNumeric(c)
			fill("count", strconv.Itoa(n.count))
			fill("mean", formatFloat(n.mean))
			fill("std", formatFloat(n.std))
			fill("min", formatFloat(n.min))
			fill("25%", formatFloat(n.q25))
			fill("50%", formatFloat(n.q50))
			fill("75%", formatFloat(n.q75))
			fill("max", formatFloat(n.max))
		} else {
			s := summarizeCategorical(c)
			fill("count", strconv.Itoa(s.count))
			fill("unique", strconv.Itoa(s.unique))
			if s.count > 0 {
				fill("top", s.top)
				fill("freq", strconv.Itoa(s.freq))
			}
		}
	}

	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "\t"+strings.Join(f.Names(), "\t"))
	for _, s := range stats {
		fmt.Fprintf(w, "%s\t%s\n", s, strings.Join(cells[s], "\t"))
	}
	w.Flush()
	return strings.TrimRight(b.String(), "\n")
}

// HeadString renders the first n rows as an indexed table. Nulls render
// NaN.
func HeadString(f *Frame, n int) string {
	if f.NumCols() == 0 {
		return "(no columns)"
	}
	h := f.Head(n)
	defer h.Release()

	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "\t"+strings.Join(h.Names(), "\t"))
	for i := 0; i < h.NumRows(); i++ {
		row := make([]string, h.NumCols())
		for j := 0; j < h.NumCols(); j++ {
			row[j] = formatCell(h.ColumnAt(j).Value(i))
		}
		fmt.Fprintf(w, "%d\t%s\n", i, strings.Join(row, "\t"))
	}
	w.Flush()
	out := strings.TrimRight(b.String(), "\n")
	if h.NumRows() == 0 {
		out += "\n(no rows)"
	}
	return out
}

// MetadataReport renders the composite report the kernel returns for a
// dataset: structural summary, descriptive statistics, and the first five
// rows, under a banner naming the dataset.
func MetadataReport(name string, f *Frame) string {
	sections := []string{
		fmt.Sprintf("--- METADATA FOR %s ---", name),
		"",
		"**Info:**",
		Info(f),
		"",
		"**Descriptive Statistics:**",
		Describe(f),
		"",
		"**First 5 Rows:**",
		HeadString(f, 5),
	}
	return strings.Join(sections, "\n")
}

// humanBytes formats a byte count in binary units with one decimal.
func humanBytes(n int64) string {
	f := float64(n)
	units := []string{"B", "KB", "MB", "GB", "TB"}
	i := 0
	for f >= 1024 && i < len(units)-1 {
		f /= 1024
		i++
	}
	if i == 0 {
		return fmt.Sprintf("%.0f B", f)
	}
	return fmt.Sprintf("%.1f %s", f, units[i])
}
