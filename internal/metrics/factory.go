package metrics

import (
	"stock-sentiment-analyzer/internal/frame"
	"stock-sentiment-analyzer/internal/interfaces"
)

// DefaultRiskFreeRate is the annual rate used when none is configured.
const DefaultRiskFreeRate = 0.02

type Option func(*engine)

// WithBackend bypasses the probe.
func WithBackend(b Backend) Option {
	return func(e *engine) { e.backend = b }
}

// WithRiskFreeRate sets the annual risk-free rate.
func WithRiskFreeRate(rate float64) Option {
	return func(e *engine) { e.riskFree = rate }
}

// WithPriceColumn sets the column Max_Drawdown reads.
func WithPriceColumn(name string) Option {
	return func(e *engine) { e.priceColumn = name }
}

// New returns a risk engine. Unless a backend is injected, the accelerated backend is
// probed once here and the result is fixed for the engine's lifetime.
func New(opts ...Option) interfaces.RiskEngine {
	e := &engine{riskFree: DefaultRiskFreeRate, priceColumn: frame.Close}
	for _, opt := range opts {
		opt(e)
	}
	if e.backend == nil {
		e.backend = probe()
	}
	return e
}

// BackendOf reports which backend an engine built by New is using.
func BackendOf(re interfaces.RiskEngine) string {
	if e, ok := re.(*engine); ok {
		return e.backend.Name()
	}
	return ""
}
