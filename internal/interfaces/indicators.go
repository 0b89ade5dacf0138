package interfaces

import "stock-sentiment-analyzer/internal/frame"

// IndicatorEngine appends technical indicator columns to an OHLCV frame. Every method
// returns a new frame; the input is never modified.
type IndicatorEngine interface {
	Trend(f *frame.Frame) (*frame.Frame, error)
	Momentum(f *frame.Frame) (*frame.Frame, error)
	Volume(f *frame.Frame) (*frame.Frame, error)
	Volatility(f *frame.Frame) (*frame.Frame, error)

	// All computes every group plus the baseline moving averages.
	All(f *frame.Frame) (*frame.Frame, error)

	// Selected computes every group that contains at least one of the requested names.
	Selected(f *frame.Frame, names []string) (*frame.Frame, error)
}
