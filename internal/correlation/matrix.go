package correlation

import (
	"math"

	"stock-sentiment-analyzer/internal/frame"
	"stock-sentiment-analyzer/internal/types"
)

// Matrix computes pairwise-complete Pearson coefficients between columns of f. With no
// columns given, every column except the raw OHLCV ones is used.
func Matrix(f *frame.Frame, columns []string) (types.CorrelationMatrix, error) {
	if f == nil {
		return types.CorrelationMatrix{}, frame.Invalid("correlation matrix: nil frame")
	}
	if len(columns) == 0 {
		columns = NonPriceColumns(f)
	}
	if len(columns) == 0 {
		return types.CorrelationMatrix{}, frame.Invalid("correlation matrix: no indicator columns")
	}
	if err := f.Require(columns...); err != nil {
		return types.CorrelationMatrix{}, err
	}

	values := make([][]float64, len(columns))
	for i := range values {
		values[i] = make([]float64, len(columns))
	}
	for i, a := range columns {
		for j := i; j < len(columns); j++ {
			r := pearson(f.Column(a), f.Column(columns[j]))
			values[i][j], values[j][i] = r, r
		}
	}
	cols := make([]string, len(columns))
	copy(cols, columns)
	return types.CorrelationMatrix{Columns: cols, Values: values}, nil
}

// NonPriceColumns lists the columns of f other than Open/High/Low/Close/Volume.
func NonPriceColumns(f *frame.Frame) []string {
	price := map[string]bool{}
	for _, c := range frame.OHLCVColumns {
		price[c] = true
	}
	var out []string
	for _, c := range f.Columns() {
		if !price[c] {
			out = append(out, c)
		}
	}
	return out
}

// Strongest returns up to n off-diagonal pairs ordered by |r| descending.
func Strongest(m types.CorrelationMatrix, n int) []types.CorrelationRow {
	var rows []types.CorrelationRow
	for i := range m.Columns {
		for j := i + 1; j < len(m.Columns); j++ {
			r := m.Values[i][j]
			if math.IsNaN(r) {
				continue
			}
			abs := math.Abs(r)
			rows = append(rows, types.CorrelationRow{
				Metric:   m.Columns[i] + "/" + m.Columns[j],
				Pearson:  r,
				Absolute: abs,
				Strength: types.StrengthOf(abs),
			})
		}
	}
	sortRows(rows)
	if n >= 0 && len(rows) > n {
		rows = rows[:n]
	}
	return rows
}
