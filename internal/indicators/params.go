package indicators

import "fmt"

// Params holds every lookback used by the engine.
type Params struct {
	Directional int
	Aroon       int
	TRIX        int

	MACDFast   int
	MACDSlow   int
	MACDSignal int
	RSI        int
	CCI        int
	CMO        int
	WillR      int
	UltShort   int
	UltMid     int
	UltLong    int
	ROC        int
	Momentum   int
	StochFastK int
	StochSlowK int
	StochSlowD int

	MFI int

	ATR      int
	BBPeriod int
	BBDev    float64

	// Baseline periods for the SMA_n / EMA_n columns appended by All.
	Baseline []int
}

func DefaultParams() Params {
	return Params{
		Directional: 14,
		Aroon:       14,
		TRIX:        30,
		MACDFast:    12,
		MACDSlow:    26,
		MACDSignal:  9,
		RSI:         14,
		CCI:         14,
		CMO:         14,
		WillR:       14,
		UltShort:    7,
		UltMid:      14,
		UltLong:     28,
		ROC:         10,
		Momentum:    10,
		StochFastK:  5,
		StochSlowK:  3,
		StochSlowD:  3,
		MFI:         14,
		ATR:         14,
		BBPeriod:    20,
		BBDev:       2,
		Baseline:    []int{5, 10, 20, 50, 100, 200},
	}
}

func (p Params) Validate() error {
	periods := map[string]int{
		"directional": p.Directional, "aroon": p.Aroon, "trix": p.TRIX,
		"macd_fast": p.MACDFast, "macd_slow": p.MACDSlow, "macd_signal": p.MACDSignal,
		"rsi": p.RSI, "cci": p.CCI, "cmo": p.CMO, "willr": p.WillR,
		"ult_short": p.UltShort, "ult_mid": p.UltMid, "ult_long": p.UltLong,
		"roc": p.ROC, "momentum": p.Momentum,
		"stoch_fastk": p.StochFastK, "stoch_slowk": p.StochSlowK, "stoch_slowd": p.StochSlowD,
		"mfi": p.MFI, "atr": p.ATR, "bb_period": p.BBPeriod,
	}
	for name, v := range periods {
		if v <= 0 {
			return fmt.Errorf("indicator period %s must be positive, got %d", name, v)
		}
	}
	if p.Directional < 2 {
		return fmt.Errorf("indicator period directional must be at least 2, got %d", p.Directional)
	}
	if p.MACDFast >= p.MACDSlow {
		return fmt.Errorf("macd_fast (%d) must be shorter than macd_slow (%d)", p.MACDFast, p.MACDSlow)
	}
	for _, n := range p.Baseline {
		if n <= 0 {
			return fmt.Errorf("baseline period must be positive, got %d", n)
		}
	}
	return nil
}
