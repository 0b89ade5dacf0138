package ta

import "math"

// MACD returns the macd line, signal line and histogram. All three share the signal's
// lookback.
func MACD(close []float64, fast, slow, signal int) (macd, sig, hist []float64) {
	return macdFrom(EMA(close, fast), EMA(close, slow), signal, EMA)
}

// MACDExt is MACD built on simple moving averages.
func MACDExt(close []float64, fast, slow, signal int) (macd, sig, hist []float64) {
	return macdFrom(SMA(close, fast), SMA(close, slow), signal, SMA)
}

// MACDFix uses the fixed 0.15 / 0.075 smoothing constants of the 12/26 MACD.
func MACDFix(close []float64, signal int) (macd, sig, hist []float64) {
	return macdFrom(emaK(close, 12, 0.15), emaK(close, 26, 0.075), signal, EMA)
}

func macdFrom(fast, slow []float64, signal int, smooth func([]float64, int) []float64) (macd, sig, hist []float64) {
	line := nans(len(fast))
	for i := range fast {
		if !math.IsNaN(fast[i]) && !math.IsNaN(slow[i]) {
			line[i] = fast[i] - slow[i]
		}
	}
	sig = smooth(line, signal)
	macd = alignTo(line, sig)
	hist = nans(len(fast))
	for i := range hist {
		if !math.IsNaN(sig[i]) {
			hist[i] = macd[i] - sig[i]
		}
	}
	return macd, sig, hist
}

// APO is the absolute price oscillator over simple averages.
func APO(close []float64, fast, slow int) []float64 {
	f, s := SMA(close, fast), SMA(close, slow)
	out := nans(len(close))
	for i := range out {
		if !math.IsNaN(s[i]) {
			out[i] = f[i] - s[i]
		}
	}
	return out
}

// PPO is APO expressed as a percent of the slow average.
func PPO(close []float64, fast, slow int) []float64 {
	f, s := SMA(close, fast), SMA(close, slow)
	out := nans(len(close))
	for i := range out {
		if !math.IsNaN(s[i]) {
			out[i] = 100 * ratio(f[i]-s[i], s[i], 0)
		}
	}
	return out
}

// RSI uses Wilder smoothing. A window with no movement at all reads 50.
func RSI(close []float64, n int) []float64 {
	return wilderOscillator(close, n, func(g, l float64) float64 {
		return 100 * ratio(g, g+l, 0.5)
	})
}

// CMO is the Chande momentum oscillator, smoothed like RSI.
func CMO(close []float64, n int) []float64 {
	return wilderOscillator(close, n, func(g, l float64) float64 {
		return 100 * ratio(g-l, g+l, 0)
	})
}

func wilderOscillator(x []float64, n int, value func(gain, loss float64) float64) []float64 {
	out := nans(len(x))
	s := firstValid(x)
	if n <= 0 || len(x)-s < n+1 {
		return out
	}
	p := float64(n)
	var gain, loss float64
	for i := s + 1; i <= s+n; i++ {
		d := x[i] - x[i-1]
		if d > 0 {
			gain += d
		} else {
			loss -= d
		}
	}
	gain /= p
	loss /= p
	out[s+n] = value(gain, loss)
	for i := s + n + 1; i < len(x); i++ {
		d := x[i] - x[i-1]
		var g, l float64
		if d > 0 {
			g = d
		} else {
			l = -d
		}
		gain = (gain*(p-1) + g) / p
		loss = (loss*(p-1) + l) / p
		out[i] = value(gain, loss)
	}
	return out
}

// CCI is the commodity channel index over the typical price.
func CCI(high, low, close []float64, n int) []float64 {
	out := nans(len(close))
	if n <= 0 || len(close) < n {
		return out
	}
	tp := typicalPrice(high, low, close)
	for i := n - 1; i < len(close); i++ {
		m := 0.0
		for j := i - n + 1; j <= i; j++ {
			m += tp[j]
		}
		m /= float64(n)
		md := 0.0
		for j := i - n + 1; j <= i; j++ {
			md += math.Abs(tp[j] - m)
		}
		md /= float64(n)
		out[i] = ratio(tp[i]-m, 0.015*md, 0)
	}
	return out
}

// UltimateOscillator weights buying pressure over three windows 4:2:1.
func UltimateOscillator(high, low, close []float64, n1, n2, n3 int) []float64 {
	size := len(close)
	out := nans(size)
	longest := max(n1, n2, n3)
	if min(n1, n2, n3) <= 0 || size < longest+1 {
		return out
	}
	bp := make([]float64, size)
	tr := make([]float64, size)
	for i := 1; i < size; i++ {
		trueLow := math.Min(low[i], close[i-1])
		bp[i] = close[i] - trueLow
		tr[i] = math.Max(high[i], close[i-1]) - trueLow
	}
	avg := func(i, n int) float64 {
		var b, t float64
		for j := i - n + 1; j <= i; j++ {
			b += bp[j]
			t += tr[j]
		}
		return ratio(b, t, 0)
	}
	for i := longest; i < size; i++ {
		out[i] = 100 * (4*avg(i, n1) + 2*avg(i, n2) + avg(i, n3)) / 7
	}
	return out
}

// WilliamsR reads -100 at the window low and 0 at the high.
func WilliamsR(high, low, close []float64, n int) []float64 {
	out := nans(len(close))
	if n <= 0 || len(close) < n {
		return out
	}
	for i := n - 1; i < len(close); i++ {
		hh := high[maxIndex(high, i-n+1, i)]
		ll := low[minIndex(low, i-n+1, i)]
		out[i] = -100 * ratio(hh-close[i], hh-ll, 0)
	}
	return out
}

// RateOfChange holds the four rate-of-change variants.
type RateOfChange struct {
	ROC     []float64 // (price/prev - 1) * 100
	ROCP    []float64 // (price - prev) / prev
	ROCR    []float64 // price / prev
	ROCR100 []float64 // price / prev * 100
}

func ROC(close []float64, n int) RateOfChange {
	size := len(close)
	r := RateOfChange{ROC: nans(size), ROCP: nans(size), ROCR: nans(size), ROCR100: nans(size)}
	if n <= 0 {
		return r
	}
	for i := n; i < size; i++ {
		prev := close[i-n]
		r.ROCP[i] = ratio(close[i]-prev, prev, 0)
		r.ROC[i] = 100 * r.ROCP[i]
		r.ROCR[i] = ratio(close[i], prev, 0)
		r.ROCR100[i] = 100 * r.ROCR[i]
	}
	return r
}

func Momentum(close []float64, n int) []float64 {
	out := nans(len(close))
	if n <= 0 {
		return out
	}
	for i := n; i < len(close); i++ {
		out[i] = close[i] - close[i-n]
	}
	return out
}

func stochFastK(high, low, close []float64, n int) []float64 {
	out := nans(len(close))
	s := firstValid(close)
	if n <= 0 || len(close)-s < n {
		return out
	}
	for i := s + n - 1; i < len(close); i++ {
		hh := high[maxIndex(high, i-n+1, i)]
		ll := low[minIndex(low, i-n+1, i)]
		out[i] = 100 * ratio(close[i]-ll, hh-ll, 0)
	}
	return out
}

// Stoch is the slow stochastic: fast %K smoothed into slow %K, then %D.
func Stoch(high, low, close []float64, fastK, slowK, slowD int) (k, d []float64) {
	sk := SMA(stochFastK(high, low, close, fastK), slowK)
	d = SMA(sk, slowD)
	return alignTo(sk, d), d
}

// StochF is the fast stochastic.
func StochF(high, low, close []float64, fastK, fastD int) (k, d []float64) {
	fk := stochFastK(high, low, close, fastK)
	d = SMA(fk, fastD)
	return alignTo(fk, d), d
}

// StochRSI applies the fast stochastic to an RSI series.
func StochRSI(close []float64, n, fastK, fastD int) (k, d []float64) {
	rsi := RSI(close, n)
	return StochF(rsi, rsi, rsi, fastK, fastD)
}

func typicalPrice(high, low, close []float64) []float64 {
	tp := make([]float64, len(close))
	for i := range close {
		tp[i] = (high[i] + low[i] + close[i]) / 3
	}
	return tp
}
