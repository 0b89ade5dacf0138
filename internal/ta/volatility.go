package ta

import "math"

// TrueRange has a lookback of one bar.
func TrueRange(high, low, close []float64) []float64 {
	out := nans(len(close))
	for i := 1; i < len(close); i++ {
		out[i] = math.Max(high[i]-low[i], math.Max(math.Abs(high[i]-close[i-1]), math.Abs(low[i]-close[i-1])))
	}
	return out
}

// ATR seeds with the mean true range of the first n bars, then smooths with Wilder's method.
func ATR(high, low, close []float64, n int) []float64 {
	out := nans(len(close))
	if n <= 0 || len(close) < n+1 {
		return out
	}
	tr := TrueRange(high, low, close)
	sum := 0.0
	for i := 1; i <= n; i++ {
		sum += tr[i]
	}
	p := float64(n)
	atr := sum / p
	out[n] = atr
	for i := n + 1; i < len(close); i++ {
		atr = (atr*(p-1) + tr[i]) / p
		out[i] = atr
	}
	return out
}

// NATR is ATR as a percent of the close.
func NATR(high, low, close []float64, n int) []float64 {
	atr := ATR(high, low, close, n)
	out := nans(len(close))
	for i := range atr {
		if !math.IsNaN(atr[i]) {
			out[i] = 100 * ratio(atr[i], close[i], 0)
		}
	}
	return out
}

// Bollinger returns upper, middle and lower bands k population deviations around the SMA.
func Bollinger(close []float64, n int, k float64) (upper, middle, lower []float64) {
	middle = SMA(close, n)
	sd := StdDev(close, n)
	upper, lower = nans(len(close)), nans(len(close))
	for i := range close {
		if math.IsNaN(middle[i]) {
			continue
		}
		upper[i] = middle[i] + k*sd[i]
		lower[i] = middle[i] - k*sd[i]
	}
	return upper, middle, lower
}
