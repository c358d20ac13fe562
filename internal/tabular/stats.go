package tabular

import (
	"math"
	"sort"
	"strconv"
)

// numericSummary holds the describe statistics for one numeric column.
// Fields other than count are NaN when they cannot be computed.
type numericSummary struct {
	count                   int
	mean, std               float64
	min, q25, q50, q75, max float64
}

func summarizeNumeric(c Column) numericSummary {
	vals := make([]float64, 0, c.Len())
	for i := 0; i < c.Len(); i++ {
		if v, ok := c.Float(i); ok {
			vals = append(vals, v)
		}
	}
	nan := math.NaN()
	s := numericSummary{count: len(vals), mean: nan, std: nan, min: nan, q25: nan, q50: nan, q75: nan, max: nan}
	if len(vals) == 0 {
		return s
	}
	sort.Float64s(vals)

	var sum float64
	for _, v := range vals {
		sum += v
	}
	n := float64(len(vals))
	s.mean = sum / n
	if len(vals) >= 2 {
		var ss float64
		for _, v := range vals {
			d := v - s.mean
			ss += d * d
		}
		s.std = math.Sqrt(ss / (n - 1))
	}
	s.min = vals[0]
	s.max = vals[len(vals)-1]
	s.q25 = quantile(vals, 0.25)
	s.q50 = quantile(vals, 0.50)
	s.q75 = quantile(vals, 0.75)
	return s
}

// quantile interpolates linearly between the two closest ranks, the same
// scheme the usual describe implementations use. vals must be sorted and
// non-empty.
func quantile(vals []float64, q float64) float64 {
	pos := q * float64(len(vals)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return vals[lo]
	}
	frac := pos - float64(lo)
	return vals[lo] + (vals[hi]-vals[lo])*frac
}

// categoricalSummary holds the describe statistics for a string or bool
// column: distinct count plus the modal value and its frequency.
type categoricalSummary struct {
	count, unique int
	top           string
	freq          int
}

func summarizeCategorical(c Column) categoricalSummary {
	var s categoricalSummary
	counts := make(map[string]int)
	var order []string
	for i := 0; i < c.Len(); i++ {
		v := c.Value(i)
		if v == nil {
			continue
		}
		s.count++
		key := formatCell(v)
		if counts[key] == 0 {
			order = append(order, key)
		}
		counts[key]++
	}
	s.unique = len(counts)
	for _, key := range order { // first-seen order breaks frequency ties
		if counts[key] > s.freq {
			s.top = key
			s.freq = counts[key]
		}
	}
	return s
}

// formatCell renders a single value the way the report tables print it.
// Nulls render as NaN.
func formatCell(v any) string {
	switch v := v.(type) {
	case nil:
		return "NaN"
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return formatFloat(v)
	case bool:
		return strconv.FormatBool(v)
	case string:
		return v
	default:
		return "NaN"
	}
}

// formatFloat prints with up to six significant digits, which keeps the
// describe table readable without hiding magnitude.
func formatFloat(f float64) string {
	if math.IsNaN(f) {
		return "NaN"
	}
	return strconv.FormatFloat(f, 'g', 6, 64)
}
