package ta

import "math"

// Every function in this package returns a series as long as its input. Rows before
// the indicator's lookback are NaN. Leading NaNs in an input series are skipped, so
// indicators can be chained (EMA of an EMA, SMA of a MACD line).

func nans(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}

func firstValid(x []float64) int {
	for i, v := range x {
		if !math.IsNaN(v) {
			return i
		}
	}
	return len(x)
}

func SMA(x []float64, n int) []float64 {
	out := nans(len(x))
	s := firstValid(x)
	if n <= 0 || len(x)-s < n {
		return out
	}
	sum := 0.0
	for i := s; i < s+n; i++ {
		sum += x[i]
	}
	out[s+n-1] = sum / float64(n)
	for i := s + n; i < len(x); i++ {
		sum += x[i] - x[i-n]
		out[i] = sum / float64(n)
	}
	return out
}

// EMA seeds with the simple average of the first n values, then applies k = 2/(n+1).
func EMA(x []float64, n int) []float64 {
	return emaK(x, n, 2.0/float64(n+1))
}

func emaK(x []float64, n int, k float64) []float64 {
	out := nans(len(x))
	s := firstValid(x)
	if n <= 0 || len(x)-s < n {
		return out
	}
	sum := 0.0
	for i := s; i < s+n; i++ {
		sum += x[i]
	}
	prev := sum / float64(n)
	out[s+n-1] = prev
	for i := s + n; i < len(x); i++ {
		prev = (x[i]-prev)*k + prev
		out[i] = prev
	}
	return out
}

// StdDev is the rolling population standard deviation.
func StdDev(x []float64, n int) []float64 {
	out := nans(len(x))
	s := firstValid(x)
	if n <= 0 || len(x)-s < n {
		return out
	}
	for i := s + n - 1; i < len(x); i++ {
		m := 0.0
		for j := i - n + 1; j <= i; j++ {
			m += x[j]
		}
		m /= float64(n)
		v := 0.0
		for j := i - n + 1; j <= i; j++ {
			d := x[j] - m
			v += d * d
		}
		out[i] = math.Sqrt(v / float64(n))
	}
	return out
}

// maxIndex returns the position of the highest value in x[from:to+1]; ties go to the latest.
func maxIndex(x []float64, from, to int) int {
	best := from
	for j := from + 1; j <= to; j++ {
		if x[j] >= x[best] {
			best = j
		}
	}
	return best
}

func minIndex(x []float64, from, to int) int {
	best := from
	for j := from + 1; j <= to; j++ {
		if x[j] <= x[best] {
			best = j
		}
	}
	return best
}

// alignTo masks a with NaN wherever ref is NaN.
func alignTo(a, ref []float64) []float64 {
	out := make([]float64, len(a))
	for i := range a {
		if math.IsNaN(ref[i]) {
			out[i] = math.NaN()
		} else {
			out[i] = a[i]
		}
	}
	return out
}

func ratio(num, den, fallback float64) float64 {
	if den == 0 {
		return fallback
	}
	return num / den
}
