package render

import (
	"context"

	"stock-sentiment-analyzer/internal/frame"
	"stock-sentiment-analyzer/internal/interfaces"
	"stock-sentiment-analyzer/internal/types"
)

// Noop renders nothing. It is the default when no output is requested.
type Noop struct{}

var _ interfaces.Renderer = Noop{}

func (Noop) RenderIndicators(context.Context, *frame.Frame, string, []string) (types.Figure, error) {
	return nil, nil
}

func (Noop) RenderCorrelation(context.Context, types.CorrelationMatrix) (types.Figure, error) {
	return nil, nil
}
