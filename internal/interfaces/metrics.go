package interfaces

import (
	"context"

	"stock-sentiment-analyzer/internal/frame"
	"stock-sentiment-analyzer/internal/types"
)

type RiskEngine interface {
	Returns(f *frame.Frame, priceColumn string) (*frame.Frame, error)
	RiskMetrics(ctx context.Context, f *frame.Frame, returnsColumn string) (types.RiskMetrics, error)
	AllMetrics(ctx context.Context, f *frame.Frame, priceColumn, returnsColumn string) (*frame.Frame, types.RiskMetrics, error)
}
