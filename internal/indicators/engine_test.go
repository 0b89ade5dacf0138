package indicators

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stock-sentiment-analyzer/internal/frame"
)

func syntheticBars(n int) []frame.Bar {
	start := time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)
	bars := make([]frame.Bar, n)
	price := 100.0
	for i := range bars {
		price += 2 * math.Sin(float64(i)/5)
		bars[i] = frame.Bar{
			Date:   start.AddDate(0, 0, i),
			Open:   price - 0.5,
			High:   price + 1.5,
			Low:    price - 1.5,
			Close:  price,
			Volume: 1000 + float64(i%7)*100,
		}
	}
	return bars
}

func withoutColumn(f *frame.Frame, drop string) *frame.Frame {
	out := frame.New(f.Index())
	b := out.Extend()
	for _, c := range f.Columns() {
		if c != drop {
			b.Set(c, f.Column(c))
		}
	}
	return b.Frame()
}

func TestAllAppendsEveryGroupAndBaseline(t *testing.T) {
	in := frame.FromBars(syntheticBars(260))
	out, err := Default().All(in)
	require.NoError(t, err)

	for _, g := range GroupNames {
		for _, col := range Columns(g) {
			assert.Truef(t, out.Has(col), "missing %s", col)
		}
	}
	for _, col := range BaselineColumns(DefaultParams().Baseline) {
		assert.Truef(t, out.Has(col), "missing %s", col)
	}
	assert.Equal(t, in.Len(), out.Len())
	assert.Equal(t, frame.OHLCVColumns, out.Columns()[:5])
	assert.Equal(t, in.Column(frame.Close), out.Column(frame.Close))
	assert.Len(t, in.Columns(), 5, "input frame must be left untouched")

	rsi := out.Column("RSI")
	assert.True(t, math.IsNaN(rsi[13]))
	assert.False(t, math.IsNaN(rsi[14]))
	assert.False(t, math.IsNaN(out.Column("SMA_200")[259]))
}

func TestAllKeepsExistingColumns(t *testing.T) {
	base := frame.FromBars(syntheticBars(60))
	given := make([]float64, base.Len())
	for i := range given {
		given[i] = 42
	}
	b := base.Extend()
	b.Set("RSI", given)
	in := b.Frame()

	out, err := Default().All(in)
	require.NoError(t, err)
	assert.Equal(t, given, out.Column("RSI"))
	assert.Equal(t, "RSI", out.Columns()[5])
	assert.True(t, out.Has("MACD"))
}

func TestSelectedComputesWholeGroup(t *testing.T) {
	in := frame.FromBars(syntheticBars(80))
	out, err := Default().Selected(in, []string{"RSI"})
	require.NoError(t, err)

	for _, col := range Columns(GroupMomentum) {
		assert.Truef(t, out.Has(col), "sibling %s should be computed alongside RSI", col)
	}
	for _, g := range []string{GroupTrend, GroupVolume, GroupVolatility} {
		for _, col := range Columns(g) {
			assert.Falsef(t, out.Has(col), "%s belongs to an untriggered group", col)
		}
	}
	assert.False(t, out.Has("SMA_5"))
}

func TestSelectedMultipleGroups(t *testing.T) {
	in := frame.FromBars(syntheticBars(80))
	out, err := Default().Selected(in, []string{"bbands", "OBV", "NOT_AN_INDICATOR"})
	require.NoError(t, err)
	assert.True(t, out.Has("BB_UPPER"))
	assert.True(t, out.Has("ATR"))
	assert.True(t, out.Has("MFI"))
	assert.False(t, out.Has("ADX"))
}

func TestSelectedUnknownNamesReturnsInput(t *testing.T) {
	in := frame.FromBars(syntheticBars(10))
	out, err := Default().Selected(in, []string{"FOO"})
	require.NoError(t, err)
	assert.Equal(t, in.Columns(), out.Columns())
}

func TestMissingColumnFailsBeforeComputation(t *testing.T) {
	in := withoutColumn(frame.FromBars(syntheticBars(30)), frame.Volume)

	_, err := Default().All(in)
	require.Error(t, err)
	assert.True(t, errors.Is(err, frame.ErrValidation))
	var missing *frame.MissingColumnsError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, []string{frame.Volume}, missing.Columns)

	_, err = Default().Volume(in)
	assert.ErrorIs(t, err, frame.ErrValidation)

	_, err = Default().Selected(in, []string{"RSI", "MFI"})
	assert.ErrorIs(t, err, frame.ErrValidation)

	// momentum does not read Volume
	out, err := Default().Selected(in, []string{"RSI"})
	require.NoError(t, err)
	assert.True(t, out.Has("RSI"))
}

func TestShortFrameYieldsNaN(t *testing.T) {
	out, err := Default().All(frame.FromBars(syntheticBars(5)))
	require.NoError(t, err)
	for _, col := range []string{"ADX", "RSI", "ATR", "BB_UPPER", "SMA_20", "TRIX"} {
		for i, v := range out.Column(col) {
			assert.Truef(t, math.IsNaN(v), "%s[%d] = %v", col, i, v)
		}
	}
}

func TestConstantPricesRSIFifty(t *testing.T) {
	bars := syntheticBars(60)
	for i := range bars {
		bars[i].Open, bars[i].High, bars[i].Low, bars[i].Close = 10, 10, 10, 10
	}
	out, err := Default().All(frame.FromBars(bars))
	require.NoError(t, err)
	assert.Equal(t, 50.0, out.Column("RSI")[59])
	assert.Equal(t, 50.0, out.Column("MFI")[59])
	assert.Equal(t, 0.0, out.Column("ATR")[59])
}

func TestNewRejectsBadParams(t *testing.T) {
	p := DefaultParams()
	p.RSI = 0
	_, err := New(p)
	assert.Error(t, err)

	p = DefaultParams()
	p.MACDFast = 30
	_, err = New(p)
	assert.Error(t, err)
}
