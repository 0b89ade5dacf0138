package interfaces

import (
	"stock-sentiment-analyzer/internal/frame"
	"stock-sentiment-analyzer/internal/types"
)

type CorrelationAnalyzer interface {
	Correlate(merged *frame.Frame) ([]types.CorrelationRow, error)
	LaggedCorrelate(merged *frame.Frame, maxLag int) ([]types.LagCorrelationRow, error)

	// LaggedCorrelateGroups shifts returns within each frame separately and pools the
	// pairs, so a lag never pairs one ticker's sentiment with another ticker's return.
	LaggedCorrelateGroups(parts []*frame.Frame, maxLag int) ([]types.LagCorrelationRow, error)
}
