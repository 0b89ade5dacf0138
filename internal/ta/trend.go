package ta

import "math"

// Directional holds the directional-movement family for one period.
type Directional struct {
	PlusDM  []float64
	MinusDM []float64
	PlusDI  []float64
	MinusDI []float64
	DX      []float64
	ADX     []float64
	ADXR    []float64
}

// DirectionalMovement computes +DM/-DM, +DI/-DI, DX, ADX and ADXR with Wilder smoothing.
// Lookbacks: DM n-1, DI and DX n, ADX 2n-1, ADXR 3n-2.
func DirectionalMovement(high, low, close []float64, n int) Directional {
	size := len(close)
	d := Directional{
		PlusDM: nans(size), MinusDM: nans(size),
		PlusDI: nans(size), MinusDI: nans(size),
		DX: nans(size), ADX: nans(size), ADXR: nans(size),
	}
	if n < 2 || size < n+1 {
		return d
	}
	tr := TrueRange(high, low, close)
	plus := make([]float64, size)
	minus := make([]float64, size)
	for i := 1; i < size; i++ {
		up := high[i] - high[i-1]
		down := low[i-1] - low[i]
		if up > down && up > 0 {
			plus[i] = up
		}
		if down > up && down > 0 {
			minus[i] = down
		}
	}

	p := float64(n)
	var sPlus, sMinus, sTR float64
	for i := 1; i < n; i++ {
		sPlus += plus[i]
		sMinus += minus[i]
		sTR += tr[i]
	}
	d.PlusDM[n-1] = sPlus
	d.MinusDM[n-1] = sMinus
	for i := n; i < size; i++ {
		sPlus = sPlus - sPlus/p + plus[i]
		sMinus = sMinus - sMinus/p + minus[i]
		sTR = sTR - sTR/p + tr[i]
		d.PlusDM[i] = sPlus
		d.MinusDM[i] = sMinus
		pdi := 100 * ratio(sPlus, sTR, 0)
		mdi := 100 * ratio(sMinus, sTR, 0)
		d.PlusDI[i] = pdi
		d.MinusDI[i] = mdi
		d.DX[i] = 100 * ratio(math.Abs(pdi-mdi), pdi+mdi, 0)
	}

	first := 2*n - 1
	if size <= first {
		return d
	}
	sum := 0.0
	for i := n; i <= first; i++ {
		sum += d.DX[i]
	}
	adx := sum / p
	d.ADX[first] = adx
	for i := first + 1; i < size; i++ {
		adx = (adx*(p-1) + d.DX[i]) / p
		d.ADX[i] = adx
	}
	for i := first + n - 1; i < size; i++ {
		d.ADXR[i] = (d.ADX[i] + d.ADX[i-(n-1)]) / 2
	}
	return d
}

// Aroon returns the down line, up line and oscillator over a window of n+1 bars.
func Aroon(high, low []float64, n int) (down, up, osc []float64) {
	size := len(high)
	down, up, osc = nans(size), nans(size), nans(size)
	if n <= 0 || size < n+1 {
		return
	}
	p := float64(n)
	for i := n; i < size; i++ {
		hi := maxIndex(high, i-n, i)
		lo := minIndex(low, i-n, i)
		up[i] = 100 * (p - float64(i-hi)) / p
		down[i] = 100 * (p - float64(i-lo)) / p
		osc[i] = up[i] - down[i]
	}
	return
}

// TRIX is the one-bar percent rate of change of a triple-smoothed EMA.
func TRIX(close []float64, n int) []float64 {
	e3 := EMA(EMA(EMA(close, n), n), n)
	out := nans(len(close))
	for i := 1; i < len(close); i++ {
		if math.IsNaN(e3[i]) || math.IsNaN(e3[i-1]) {
			continue
		}
		out[i] = 100 * ratio(e3[i]-e3[i-1], e3[i-1], 0)
	}
	return out
}
