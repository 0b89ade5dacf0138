package correlation

import (
	"math"

	"github.com/montanaflynn/stats"
)

// pearson drops rows where either side is NaN and correlates the rest. An empty
// remainder or a constant side yields NaN.
func pearson(x, y []float64) float64 {
	xs := make([]float64, 0, len(x))
	ys := make([]float64, 0, len(y))
	for i := range x {
		if math.IsNaN(x[i]) || math.IsNaN(y[i]) {
			continue
		}
		xs = append(xs, x[i])
		ys = append(ys, y[i])
	}
	return pearsonComplete(xs, ys)
}

func pearsonComplete(xs, ys []float64) float64 {
	if len(xs) == 0 || constant(xs) || constant(ys) {
		return math.NaN()
	}
	r, err := stats.Pearson(xs, ys)
	if err != nil || math.IsNaN(r) {
		return math.NaN()
	}
	return math.Max(-1, math.Min(1, r))
}

// constant also covers a single value, whose deviation is undefined.
func constant(x []float64) bool {
	for _, v := range x[1:] {
		if v != x[0] {
			return false
		}
	}
	return true
}
