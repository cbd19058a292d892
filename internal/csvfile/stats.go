package csvfile

import (
	"math"
	"sort"
	"strconv"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ColumnStats summarizes the numeric cells of one column.
type ColumnStats struct {
	Name   string  `json:"name"`
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Median float64 `json:"median"`
}

// Describe computes statistics for every column holding at least one finite
// number. Non-numeric and non-finite cells are skipped.
func (f *File) Describe() []ColumnStats {
	return Describe(f.header, f.rows)
}

// Describe computes column statistics for rows, naming columns from header
// or by index.
func Describe(header []string, rows []Row) []ColumnStats {
	width := len(header)
	for _, r := range rows {
		width = max(width, len(r))
	}

	var out []ColumnStats
	for col := 0; col < width; col++ {
		values := numericColumn(rows, col)
		if len(values) == 0 {
			continue
		}

		name := strconv.Itoa(col)
		if col < len(header) && header[col] != "" {
			name = header[col]
		}
		out = append(out, summarize(name, values))
	}
	return out
}

func numericColumn(rows []Row, col int) []float64 {
	var values []float64
	for _, r := range rows {
		if col >= len(r) {
			continue
		}
		if v, ok := r[col].AsNumber(); ok && !math.IsNaN(v) && !math.IsInf(v, 0) {
			values = append(values, v)
		}
	}
	return values
}

func summarize(name string, values []float64) ColumnStats {
	s := ColumnStats{
		Name:  name,
		Count: len(values),
		Min:   floats.Min(values),
		Max:   floats.Max(values),
	}

	if len(values) > 1 {
		s.Mean, s.StdDev = stat.MeanStdDev(values, nil)
	} else {
		s.Mean = values[0]
	}

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	s.Median = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	return s
}
