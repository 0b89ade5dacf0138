package interfaces

import (
	"context"

	"stock-sentiment-analyzer/internal/frame"
	"stock-sentiment-analyzer/internal/types"
)

// Renderer turns computed frames into figures. Callers never inspect the returned handle.
type Renderer interface {
	RenderIndicators(ctx context.Context, f *frame.Frame, ticker string, groups []string) (types.Figure, error)
	RenderCorrelation(ctx context.Context, m types.CorrelationMatrix) (types.Figure, error)
}
