package metrics

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stock-sentiment-analyzer/internal/frame"
)

func priceFrame(closes ...float64) *frame.Frame {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]frame.Bar, len(closes))
	for i, c := range closes {
		bars[i] = frame.Bar{Date: start.AddDate(0, 0, i), Open: c, High: c, Low: c, Close: c, Volume: 100}
	}
	return frame.FromBars(bars)
}

func returnsFrame(returns ...float64) *frame.Frame {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	idx := make([]time.Time, len(returns))
	for i := range idx {
		idx[i] = start.AddDate(0, 0, i)
	}
	b := frame.New(idx).Extend()
	b.Set(DailyReturn, returns)
	return b.Frame()
}

func TestReturnsKeepsExistingColumn(t *testing.T) {
	b := priceFrame(100, 102, 101).Extend()
	b.Set(DailyReturn, []float64{0.5, 0.5, 0.5})
	f, err := New().Returns(b.Frame(), frame.Close)
	require.NoError(t, err)

	assert.Equal(t, []float64{0.5, 0.5, 0.5}, f.Column(DailyReturn))
	assert.InDelta(t, math.Log(1.02), f.Column(LogReturn)[1], 1e-12)
}

func TestReturns(t *testing.T) {
	f, err := New().Returns(priceFrame(100, 102, 101, 105, 110), frame.Close)
	require.NoError(t, err)

	daily := f.Column(DailyReturn)
	assert.True(t, math.IsNaN(daily[0]))
	assert.InDelta(t, 0.02, daily[1], 1e-12)
	assert.InDelta(t, -0.0098, daily[2], 1e-4)
	assert.InDelta(t, 0.0396, daily[3], 1e-4)
	assert.InDelta(t, 0.0476, daily[4], 1e-4)

	assert.True(t, math.IsNaN(f.Column(LogReturn)[0]))
	assert.InDelta(t, math.Log(1.02), f.Column(LogReturn)[1], 1e-12)

	cum := f.Column(CumulativeReturn)
	assert.True(t, math.IsNaN(cum[0]))
	product := 1.0
	for i := 1; i < len(daily); i++ {
		product *= 1 + daily[i]
		assert.Equal(t, product-1, cum[i])
	}
	assert.InDelta(t, 0.10, cum[4], 1e-9)
}

func TestReturnsMissingPriceColumn(t *testing.T) {
	_, err := New().Returns(returnsFrame(0.1, 0.2), frame.Close)
	assert.ErrorIs(t, err, frame.ErrValidation)
}

func TestSharpeZeroWhenMeanExcessIsZero(t *testing.T) {
	e := New(WithRiskFreeRate(0))
	m, err := e.RiskMetrics(context.Background(), returnsFrame(math.NaN(), 0.01, -0.01, 0.02, -0.02), DailyReturn)
	require.NoError(t, err)
	assert.Equal(t, 0.0, m.SharpeRatio)
	assert.Equal(t, 0.0, m.SortinoRatio)
	assert.Greater(t, m.AnnualizedVolatility, 0.0)
}

func TestRiskMetricsIsolatesFailures(t *testing.T) {
	// no Close column: drawdown fails, the rest still compute
	m, err := New().RiskMetrics(context.Background(), returnsFrame(math.NaN(), 0.01, -0.02, 0.03), DailyReturn)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(m.MaxDrawdown))
	assert.False(t, math.IsNaN(m.SharpeRatio))
	assert.False(t, math.IsNaN(m.AnnualizedVolatility))
	require.Len(t, m.Warnings, 1)
	assert.Contains(t, m.Warnings[0], "Max_Drawdown")
}

func TestRiskMetricsZeroVolatility(t *testing.T) {
	m, err := New().RiskMetrics(context.Background(), returnsFrame(0.25, 0.25, 0.25), DailyReturn)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(m.SharpeRatio))
	assert.True(t, math.IsNaN(m.SortinoRatio))
	assert.Equal(t, 0.0, m.AnnualizedVolatility)
}

func TestRiskMetricsEmptyReturns(t *testing.T) {
	m, err := New().RiskMetrics(context.Background(), returnsFrame(math.NaN()), DailyReturn)
	require.NoError(t, err)
	for name, v := range m.Map() {
		assert.Truef(t, math.IsNaN(v), "%s = %v", name, v)
	}
	assert.Len(t, m.Warnings, 4)
}

func TestRiskMetricsMissingReturnsColumn(t *testing.T) {
	_, err := New().RiskMetrics(context.Background(), priceFrame(1, 2, 3), DailyReturn)
	require.Error(t, err)
	var missing *frame.MissingColumnsError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, []string{DailyReturn}, missing.Columns)
}

func TestMaxDrawdown(t *testing.T) {
	f, m, err := New().AllMetrics(context.Background(), priceFrame(100, 120, 90, 130, 104), frame.Close, DailyReturn)
	require.NoError(t, err)
	assert.True(t, f.Has(DailyReturn))
	assert.InDelta(t, -0.25, m.MaxDrawdown, 1e-12)
}

func TestAllMetricsKeepsExistingReturns(t *testing.T) {
	in, err := New().Returns(priceFrame(10, 11, 12, 11), frame.Close)
	require.NoError(t, err)
	out, _, err := New().AllMetrics(context.Background(), in, frame.Close, DailyReturn)
	require.NoError(t, err)
	assert.Equal(t, in.Columns(), out.Columns())
}

func TestBackendsAgree(t *testing.T) {
	closes := []float64{100}
	for i := 1; i < 300; i++ {
		closes = append(closes, closes[i-1]*(1+0.015*math.Sin(float64(i)*0.7)+0.001))
	}
	ctx := context.Background()
	f, manual, err := New(WithBackend(manualBackend{})).AllMetrics(ctx, priceFrame(closes...), frame.Close, DailyReturn)
	require.NoError(t, err)
	_, accelerated, err := New(WithBackend(statsBackend{})).AllMetrics(ctx, f, frame.Close, DailyReturn)
	require.NoError(t, err)

	mm, am := manual.Map(), accelerated.Map()
	for name := range mm {
		assert.InDeltaf(t, mm[name], am[name], 1e-12, "%s differs between backends", name)
	}
	assert.Empty(t, manual.Warnings)
	assert.Empty(t, accelerated.Warnings)
}

func TestBackendSelection(t *testing.T) {
	assert.Equal(t, BackendAccelerated, BackendOf(New()))
	assert.Equal(t, BackendManual, BackendOf(New(WithBackend(manualBackend{}))))

	b, err := BackendByName("manual")
	require.NoError(t, err)
	assert.Equal(t, BackendManual, b.Name())

	b, err = BackendByName("")
	require.NoError(t, err)
	assert.Equal(t, BackendAccelerated, b.Name())

	_, err = BackendByName("gpu")
	assert.Error(t, err)
}

type failingBackend struct{ manualBackend }

func (failingBackend) MaxDrawdown([]float64) (float64, error) { panic("boom") }

func TestPanickingMetricDegrades(t *testing.T) {
	_, m, err := New(WithBackend(failingBackend{})).AllMetrics(context.Background(), priceFrame(1, 2, 3, 2), frame.Close, DailyReturn)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(m.MaxDrawdown))
	assert.False(t, math.IsNaN(m.AnnualizedVolatility))
	require.Len(t, m.Warnings, 1)
	assert.Contains(t, m.Warnings[0], "panic")
}
