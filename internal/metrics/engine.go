package metrics

import (
	"context"
	"errors"
	"fmt"
	"math"

	"stock-sentiment-analyzer/internal/frame"
	"stock-sentiment-analyzer/internal/interfaces"
	"stock-sentiment-analyzer/internal/logger"
	"stock-sentiment-analyzer/internal/types"
)

// Return columns appended by Returns.
const (
	DailyReturn      = "Daily_Return"
	LogReturn        = "Log_Return"
	CumulativeReturn = "Cumulative_Return"
)

// TradingDays annualises daily figures.
const TradingDays = 252

type engine struct {
	// backend is chosen once in New and never changes.
	backend     Backend
	riskFree    float64
	priceColumn string
}

var _ interfaces.RiskEngine = (*engine)(nil)

// Returns appends daily, log and cumulative returns computed from priceColumn.
// Row 0 of every return column is NaN.
func (e *engine) Returns(f *frame.Frame, priceColumn string) (*frame.Frame, error) {
	if f == nil {
		return nil, frame.Invalid("metrics: nil frame")
	}
	if err := f.Require(priceColumn); err != nil {
		return nil, fmt.Errorf("metrics: price column: %w", err)
	}
	p := f.Column(priceColumn)
	n := len(p)
	daily, logr, cum := frame.NaNs(n), frame.NaNs(n), frame.NaNs(n)

	growth := 1.0
	for i := 1; i < n; i++ {
		daily[i] = p[i]/p[i-1] - 1
		logr[i] = math.Log(p[i] / p[i-1])
		// NaN rows keep their place but do not reset the product.
		if math.IsNaN(daily[i]) {
			continue
		}
		growth *= 1 + daily[i]
		cum[i] = growth - 1
	}

	b := f.Extend()
	b.Set(DailyReturn, daily)
	b.Set(LogReturn, logr)
	b.Set(CumulativeReturn, cum)
	return b.Frame(), nil
}

// RiskMetrics computes every metric independently. A metric that cannot be computed is
// NaN with a warning; only a missing returns column is an error.
func (e *engine) RiskMetrics(ctx context.Context, f *frame.Frame, returnsColumn string) (types.RiskMetrics, error) {
	return e.riskMetrics(ctx, f, returnsColumn, e.priceColumn)
}

// AllMetrics derives returns from priceColumn only when returnsColumn is absent.
func (e *engine) AllMetrics(ctx context.Context, f *frame.Frame, priceColumn, returnsColumn string) (*frame.Frame, types.RiskMetrics, error) {
	if f == nil {
		return nil, types.NaNRiskMetrics(), frame.Invalid("metrics: nil frame")
	}
	if !f.Has(returnsColumn) {
		if returnsColumn != DailyReturn {
			return nil, types.NaNRiskMetrics(), fmt.Errorf("metrics: returns column %q cannot be derived: %w",
				returnsColumn, &frame.MissingColumnsError{Columns: []string{returnsColumn}})
		}
		var err error
		if f, err = e.Returns(f, priceColumn); err != nil {
			return nil, types.NaNRiskMetrics(), err
		}
	}
	m, err := e.riskMetrics(ctx, f, returnsColumn, priceColumn)
	if err != nil {
		return nil, m, err
	}
	return f, m, nil
}

func (e *engine) riskMetrics(ctx context.Context, f *frame.Frame, returnsColumn, priceColumn string) (types.RiskMetrics, error) {
	out := types.NaNRiskMetrics()
	if f == nil {
		return out, frame.Invalid("metrics: nil frame")
	}
	if err := f.Require(returnsColumn); err != nil {
		return out, fmt.Errorf("metrics: returns column: %w", err)
	}
	r := dropNaN(f.Column(returnsColumn))
	rf := e.riskFree / TradingDays

	warn := func(metric string, err error) {
		msg := fmt.Sprintf("%s: %v", metric, err)
		out.Warnings = append(out.Warnings, msg)
		logger.Warn(ctx, "Risk metric could not be computed",
			"metric", metric,
			"backend", e.backend.Name(),
			"reason", err.Error(),
		)
	}

	out.SharpeRatio = isolate(types.MetricSharpe, warn, func() (float64, error) {
		excess, err := e.backend.Mean(shift(r, -rf))
		if err != nil {
			return 0, err
		}
		sd, err := e.backend.StdDev(r)
		if err != nil {
			return 0, err
		}
		return annualisedRatio(excess, sd)
	})

	out.SortinoRatio = isolate(types.MetricSortino, warn, func() (float64, error) {
		excess, err := e.backend.Mean(shift(r, -rf))
		if err != nil {
			return 0, err
		}
		sd, err := e.backend.StdDev(downside(r))
		if err != nil {
			return 0, err
		}
		return annualisedRatio(excess, sd)
	})

	out.MaxDrawdown = isolate(types.MetricDrawdown, warn, func() (float64, error) {
		if err := f.Require(priceColumn); err != nil {
			return 0, err
		}
		return e.backend.MaxDrawdown(dropNaN(f.Column(priceColumn)))
	})

	out.AnnualizedVolatility = isolate(types.MetricVolatility, warn, func() (float64, error) {
		sd, err := e.backend.StdDev(r)
		if err != nil {
			return 0, err
		}
		return sd * math.Sqrt(TradingDays), nil
	})

	return out, nil
}

var errZeroDeviation = errors.New("zero deviation")

func annualisedRatio(excess, sd float64) (float64, error) {
	if sd == 0 || math.IsNaN(sd) {
		return 0, errZeroDeviation
	}
	return math.Sqrt(TradingDays) * excess / sd, nil
}

// isolate runs one metric. Errors, panics and non-finite results all degrade to NaN.
func isolate(metric string, warn func(string, error), compute func() (float64, error)) (v float64) {
	defer func() {
		if r := recover(); r != nil {
			warn(metric, fmt.Errorf("panic: %v", r))
			v = math.NaN()
		}
	}()
	v, err := compute()
	if err == nil && (math.IsNaN(v) || math.IsInf(v, 0)) {
		err = fmt.Errorf("non-finite result %v", v)
	}
	if err != nil {
		warn(metric, err)
		return math.NaN()
	}
	return v
}

func dropNaN(x []float64) []float64 {
	out := make([]float64, 0, len(x))
	for _, v := range x {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}

func shift(x []float64, by float64) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = v + by
	}
	return out
}

// downside keeps negative returns and zeroes the rest.
func downside(x []float64) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = math.Min(v, 0)
	}
	return out
}
