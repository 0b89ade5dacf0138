package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"stock-sentiment-analyzer/internal/correlation"
	"stock-sentiment-analyzer/internal/frame"
	"stock-sentiment-analyzer/internal/indicators"
	"stock-sentiment-analyzer/internal/interfaces"
	"stock-sentiment-analyzer/internal/logger"
	"stock-sentiment-analyzer/internal/metrics"
	"stock-sentiment-analyzer/internal/types"
)

// Stages reported when a ticker fails.
const (
	StageIndicators = "indicators"
	StageMetrics    = "metrics"
	StageRender     = "render"
)

// DefaultBatchGroups are rendered by AnalyzeMany when the caller names none.
var DefaultBatchGroups = []string{indicators.GroupTrend, indicators.GroupMomentum}

// ErrNoOverlap is returned by AnalyzeSentiment when no ticker has both news and prices
// on a common date.
var ErrNoOverlap = errors.New("pipeline: no ticker has sentiment and returns on a common date")

type orchestrator struct {
	indicators interfaces.IndicatorEngine
	risk       interfaces.RiskEngine
	renderer   interfaces.Renderer
	scorer     interfaces.SentimentScorer
	aggregator interfaces.SentimentAggregator
	analyzer   interfaces.CorrelationAnalyzer

	priceColumn string
	textField   string
}

var _ interfaces.Orchestrator = (*orchestrator)(nil)

// AnalyzeOne runs every indicator, the returns and risk metrics, then the renderer.
// Nil groups render all four indicator groups.
func (o *orchestrator) AnalyzeOne(ctx context.Context, f *frame.Frame, ticker string, groups []string) types.AnalysisResult {
	if groups == nil {
		groups = indicators.GroupNames
	}
	return o.isolate(ctx, ticker, func(stage *string) (types.AnalysisResult, error) {
		*stage = StageIndicators
		data, err := o.indicators.All(f)
		if err != nil {
			return types.AnalysisResult{}, err
		}

		*stage = StageMetrics
		data, m, err := o.risk.AllMetrics(ctx, data, o.priceColumn, metrics.DailyReturn)
		if err != nil {
			return types.AnalysisResult{}, err
		}

		*stage = StageRender
		fig, err := o.renderer.RenderIndicators(ctx, data, ticker, groups)
		if err != nil {
			return types.AnalysisResult{}, err
		}
		return types.AnalysisResult{Data: data, Metrics: &m, Figure: fig}, nil
	})
}

// AnalyzeMany analyzes tickers in sorted order. A failed ticker never stops the batch.
// With more than one success the concatenated frames feed a correlation heatmap; a
// heatmap failure is logged and leaves Correlation nil.
func (o *orchestrator) AnalyzeMany(ctx context.Context, frames map[string]*frame.Frame, groups []string) types.BatchResult {
	if groups == nil {
		groups = DefaultBatchGroups
	}
	out := types.BatchResult{
		Results:  map[string]types.AnalysisResult{},
		Failures: map[string]error{},
	}

	tickers := make([]string, 0, len(frames))
	for t := range frames {
		tickers = append(tickers, t)
	}
	sort.Strings(tickers)

	for _, t := range tickers {
		logger.Info(ctx, "Analyzing ticker", "ticker", t)
		res := o.AnalyzeOne(ctx, frames[t], t, groups)
		if res.Failed() {
			out.Failures[t] = res.Err
			continue
		}
		out.Results[t] = res
	}

	if len(out.Results) > 1 {
		fig, err := o.crossTicker(ctx, out)
		if err != nil {
			logger.ErrorWithErr(ctx, "Correlation heatmap failed", err, "tickers", len(out.Results))
		} else {
			out.Correlation = fig
		}
	}
	return out
}

func (o *orchestrator) crossTicker(ctx context.Context, batch types.BatchResult) (fig types.Figure, err error) {
	op := logger.StartOperation(ctx, "pipeline.crossTicker", "tickers", len(batch.Results))
	defer func() {
		if r := recover(); r != nil {
			fig, err = nil, fmt.Errorf("correlation heatmap: panic: %v", r)
		}
		if err != nil {
			op.EndWithError(err)
			return
		}
		op.End()
	}()
	ctx = op.GetContext()

	var parts []*frame.Frame
	for _, t := range batch.Tickers() {
		parts = append(parts, batch.Results[t].Data)
	}
	m, err := correlation.Matrix(frame.Concat(parts...), nil)
	if err != nil {
		return nil, err
	}
	return o.renderer.RenderCorrelation(ctx, m)
}

// AnalyzeCustom computes only the groups containing the named indicators and renders
// the price panel alone. No risk metrics are computed.
func (o *orchestrator) AnalyzeCustom(ctx context.Context, f *frame.Frame, ticker string, names []string) types.AnalysisResult {
	return o.isolate(ctx, ticker, func(stage *string) (types.AnalysisResult, error) {
		*stage = StageIndicators
		data, err := o.indicators.Selected(f, names)
		if err != nil {
			return types.AnalysisResult{}, err
		}

		*stage = StageRender
		fig, err := o.renderer.RenderIndicators(ctx, data, ticker, []string{})
		if err != nil {
			return types.AnalysisResult{}, err
		}
		return types.AnalysisResult{Data: data, Figure: fig}, nil
	})
}

// isolate is the per-ticker failure boundary: errors and panics become a failed result.
func (o *orchestrator) isolate(ctx context.Context, ticker string, fn func(stage *string) (types.AnalysisResult, error)) (res types.AnalysisResult) {
	stage := "start"
	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("%s %s: panic: %v", ticker, stage, r)
			logger.TickerFailed(ctx, ticker, stage, err)
			res = types.AnalysisResult{Ticker: ticker, Err: err}
		}
	}()

	res, err := fn(&stage)
	if err != nil {
		err = fmt.Errorf("%s %s: %w", ticker, stage, err)
		logger.TickerFailed(ctx, ticker, stage, err)
		return types.AnalysisResult{Ticker: ticker, Err: err}
	}
	res.Ticker = ticker
	return res
}
