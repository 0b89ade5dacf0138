package ta

// OBV accumulates volume signed by the direction of the close.
func OBV(close, volume []float64) []float64 {
	out := make([]float64, len(close))
	if len(close) == 0 {
		return out
	}
	out[0] = volume[0]
	for i := 1; i < len(close); i++ {
		switch {
		case close[i] > close[i-1]:
			out[i] = out[i-1] + volume[i]
		case close[i] < close[i-1]:
			out[i] = out[i-1] - volume[i]
		default:
			out[i] = out[i-1]
		}
	}
	return out
}

// MFI is the money flow index. A window without any flow reads 50.
func MFI(high, low, close, volume []float64, n int) []float64 {
	out := nans(len(close))
	if n <= 0 || len(close) < n+1 {
		return out
	}
	tp := typicalPrice(high, low, close)
	for i := n; i < len(close); i++ {
		var pos, neg float64
		for j := i - n + 1; j <= i; j++ {
			flow := tp[j] * volume[j]
			switch {
			case tp[j] > tp[j-1]:
				pos += flow
			case tp[j] < tp[j-1]:
				neg += flow
			}
		}
		out[i] = 100 * ratio(pos, pos+neg, 0.5)
	}
	return out
}

// BOP is the balance of power of each bar.
func BOP(open, high, low, close []float64) []float64 {
	out := make([]float64, len(close))
	for i := range close {
		out[i] = ratio(close[i]-open[i], high[i]-low[i], 0)
	}
	return out
}
