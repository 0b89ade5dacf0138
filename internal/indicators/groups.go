package indicators

import (
	"stock-sentiment-analyzer/internal/frame"
	"stock-sentiment-analyzer/internal/ta"
)

// Group names as accepted by renderers and the CLI.
const (
	GroupTrend      = "trend"
	GroupMomentum   = "momentum"
	GroupVolume     = "volume"
	GroupVolatility = "volatility"
)

// GroupNames lists the groups in computation order.
var GroupNames = []string{GroupTrend, GroupMomentum, GroupVolume, GroupVolatility}

type group struct {
	name string
	// members are the indicator names that trigger the group in Selected.
	members  []string
	requires []string
	columns  []string
	compute  func(p Params, f *frame.Frame, b *frame.Builder)
}

var groups = []group{
	{
		name: GroupTrend,
		members: []string{
			"ADX", "ADXR", "AROON", "AROONOSC", "DX",
			"MINUS_DI", "MINUS_DM", "PLUS_DI", "PLUS_DM", "TRIX",
		},
		requires: []string{frame.High, frame.Low, frame.Close},
		columns: []string{
			"ADX", "ADXR", "DX", "MINUS_DI", "PLUS_DI", "MINUS_DM", "PLUS_DM",
			"AROON_DOWN", "AROON_UP", "AROONOSC", "TRIX",
		},
		compute: computeTrend,
	},
	{
		name: GroupMomentum,
		members: []string{
			"APO", "CCI", "CMO", "MACD", "MACDEXT", "MACDFIX",
			"MOM", "PPO", "ROC", "ROCP", "ROCR", "ROCR100",
			"RSI", "STOCH", "STOCHF", "STOCHRSI", "ULTOSC", "WILLR",
		},
		requires: []string{frame.High, frame.Low, frame.Close},
		columns: []string{
			"MACD", "MACD_Signal", "MACD_Hist", "MACDEXT", "MACDFIX",
			"APO", "PPO", "RSI", "CCI", "CMO", "ULTOSC", "WILLR",
			"ROC", "ROCP", "ROCR", "ROCR100", "MOM",
			"STOCH_K", "STOCH_D", "STOCHF_K", "STOCHF_D", "STOCHRSI_K", "STOCHRSI_D",
		},
		compute: computeMomentum,
	},
	{
		name:     GroupVolume,
		members:  []string{"MFI", "OBV", "BOP"},
		requires: []string{frame.Open, frame.High, frame.Low, frame.Close, frame.Volume},
		columns:  []string{"OBV", "MFI", "BOP"},
		compute:  computeVolume,
	},
	{
		name:     GroupVolatility,
		members:  []string{"ATR", "NATR", "TRANGE", "BBANDS"},
		requires: []string{frame.High, frame.Low, frame.Close},
		columns:  []string{"ATR", "NATR", "TRANGE", "BB_UPPER", "BB_MIDDLE", "BB_LOWER"},
		compute:  computeVolatility,
	},
}

func lookupGroup(name string) (group, bool) {
	for _, g := range groups {
		if g.name == name {
			return g, true
		}
	}
	return group{}, false
}

// Columns returns the output columns of a group, or nil for an unknown group.
func Columns(groupName string) []string {
	g, ok := lookupGroup(groupName)
	if !ok {
		return nil
	}
	out := make([]string, len(g.columns))
	copy(out, g.columns)
	return out
}

// Members returns the indicator names that trigger a group.
func Members(groupName string) []string {
	g, ok := lookupGroup(groupName)
	if !ok {
		return nil
	}
	out := make([]string, len(g.members))
	copy(out, g.members)
	return out
}

func computeTrend(p Params, f *frame.Frame, b *frame.Builder) {
	h, l, c := f.Column(frame.High), f.Column(frame.Low), f.Column(frame.Close)

	dm := ta.DirectionalMovement(h, l, c, p.Directional)
	b.Set("ADX", dm.ADX)
	b.Set("ADXR", dm.ADXR)
	b.Set("DX", dm.DX)
	b.Set("MINUS_DI", dm.MinusDI)
	b.Set("PLUS_DI", dm.PlusDI)
	b.Set("MINUS_DM", dm.MinusDM)
	b.Set("PLUS_DM", dm.PlusDM)

	down, up, osc := ta.Aroon(h, l, p.Aroon)
	b.Set("AROON_DOWN", down)
	b.Set("AROON_UP", up)
	b.Set("AROONOSC", osc)

	b.Set("TRIX", ta.TRIX(c, p.TRIX))
}

func computeMomentum(p Params, f *frame.Frame, b *frame.Builder) {
	h, l, c := f.Column(frame.High), f.Column(frame.Low), f.Column(frame.Close)

	macd, sig, hist := ta.MACD(c, p.MACDFast, p.MACDSlow, p.MACDSignal)
	b.Set("MACD", macd)
	b.Set("MACD_Signal", sig)
	b.Set("MACD_Hist", hist)
	ext, _, _ := ta.MACDExt(c, p.MACDFast, p.MACDSlow, p.MACDSignal)
	b.Set("MACDEXT", ext)
	fix, _, _ := ta.MACDFix(c, p.MACDSignal)
	b.Set("MACDFIX", fix)

	b.Set("APO", ta.APO(c, p.MACDFast, p.MACDSlow))
	b.Set("PPO", ta.PPO(c, p.MACDFast, p.MACDSlow))
	b.Set("RSI", ta.RSI(c, p.RSI))
	b.Set("CCI", ta.CCI(h, l, c, p.CCI))
	b.Set("CMO", ta.CMO(c, p.CMO))
	b.Set("ULTOSC", ta.UltimateOscillator(h, l, c, p.UltShort, p.UltMid, p.UltLong))
	b.Set("WILLR", ta.WilliamsR(h, l, c, p.WillR))

	roc := ta.ROC(c, p.ROC)
	b.Set("ROC", roc.ROC)
	b.Set("ROCP", roc.ROCP)
	b.Set("ROCR", roc.ROCR)
	b.Set("ROCR100", roc.ROCR100)
	b.Set("MOM", ta.Momentum(c, p.Momentum))

	k, d := ta.Stoch(h, l, c, p.StochFastK, p.StochSlowK, p.StochSlowD)
	b.Set("STOCH_K", k)
	b.Set("STOCH_D", d)
	fk, fd := ta.StochF(h, l, c, p.StochFastK, p.StochSlowD)
	b.Set("STOCHF_K", fk)
	b.Set("STOCHF_D", fd)
	rk, rd := ta.StochRSI(c, p.RSI, p.StochFastK, p.StochSlowD)
	b.Set("STOCHRSI_K", rk)
	b.Set("STOCHRSI_D", rd)
}

func computeVolume(p Params, f *frame.Frame, b *frame.Builder) {
	o, h, l, c, v := f.Column(frame.Open), f.Column(frame.High), f.Column(frame.Low), f.Column(frame.Close), f.Column(frame.Volume)
	b.Set("OBV", ta.OBV(c, v))
	b.Set("MFI", ta.MFI(h, l, c, v, p.MFI))
	b.Set("BOP", ta.BOP(o, h, l, c))
}

func computeVolatility(p Params, f *frame.Frame, b *frame.Builder) {
	h, l, c := f.Column(frame.High), f.Column(frame.Low), f.Column(frame.Close)
	b.Set("ATR", ta.ATR(h, l, c, p.ATR))
	b.Set("NATR", ta.NATR(h, l, c, p.ATR))
	b.Set("TRANGE", ta.TrueRange(h, l, c))
	upper, middle, lower := ta.Bollinger(c, p.BBPeriod, p.BBDev)
	b.Set("BB_UPPER", upper)
	b.Set("BB_MIDDLE", middle)
	b.Set("BB_LOWER", lower)
}
