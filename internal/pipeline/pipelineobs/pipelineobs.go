package pipelineobs

import (
	"context"
	"sort"

	"stock-sentiment-analyzer/internal/frame"
	"stock-sentiment-analyzer/internal/interfaces"
	"stock-sentiment-analyzer/internal/logger"
	"stock-sentiment-analyzer/internal/trace"
	"stock-sentiment-analyzer/internal/types"
)

type observableOrchestrator struct {
	orchestrator interfaces.Orchestrator
}

var _ interfaces.Orchestrator = (*observableOrchestrator)(nil)

func Wrap(orchestrator interfaces.Orchestrator) interfaces.Orchestrator {
	return &observableOrchestrator{
		orchestrator: orchestrator,
	}
}

func rows(f *frame.Frame) int {
	if f == nil {
		return 0
	}
	return f.Len()
}

func (oo *observableOrchestrator) AnalyzeOne(ctx context.Context, f *frame.Frame, ticker string, groups []string) types.AnalysisResult {
	ctx, span := trace.StartSpan(ctx, "pipeline.AnalyzeOne")
	defer span.End()

	logger.InfoSkip(ctx, 1, "Starting ticker analysis",
		"ticker", ticker,
		"rows", rows(f),
		"groups", groups,
	)

	res := oo.orchestrator.AnalyzeOne(ctx, f, ticker, groups)
	if res.Failed() {
		logger.ErrorWithErrSkip(ctx, 1, "Ticker analysis failed", res.Err,
			"ticker", ticker,
		)
		return res
	}

	logger.InfoSkip(ctx, 1, "Ticker analysis completed",
		"ticker", ticker,
		"columns", len(res.Data.Columns()),
		"sharpe", res.Metrics.SharpeRatio,
		"max_drawdown", res.Metrics.MaxDrawdown,
		"warnings", len(res.Metrics.Warnings),
	)
	return res
}

func (oo *observableOrchestrator) AnalyzeMany(ctx context.Context, frames map[string]*frame.Frame, groups []string) types.BatchResult {
	ctx, span := trace.StartSpan(ctx, "pipeline.AnalyzeMany")
	defer span.End()

	logger.InfoSkip(ctx, 1, "Starting batch analysis",
		"tickers", len(frames),
		"groups", groups,
	)

	batch := oo.orchestrator.AnalyzeMany(ctx, frames, groups)

	failed := make([]string, 0, len(batch.Failures))
	for t := range batch.Failures {
		failed = append(failed, t)
	}
	sort.Strings(failed)
	logger.InfoSkip(ctx, 1, "Batch analysis completed",
		"succeeded", batch.Tickers(),
		"failed", failed,
		"heatmap", batch.Correlation != nil,
	)
	return batch
}

func (oo *observableOrchestrator) AnalyzeCustom(ctx context.Context, f *frame.Frame, ticker string, names []string) types.AnalysisResult {
	ctx, span := trace.StartSpan(ctx, "pipeline.AnalyzeCustom")
	defer span.End()

	logger.InfoSkip(ctx, 1, "Starting custom indicator analysis",
		"ticker", ticker,
		"indicators", names,
	)

	res := oo.orchestrator.AnalyzeCustom(ctx, f, ticker, names)
	if res.Failed() {
		logger.ErrorWithErrSkip(ctx, 1, "Custom indicator analysis failed", res.Err,
			"ticker", ticker,
		)
		return res
	}

	logger.InfoSkip(ctx, 1, "Custom indicator analysis completed",
		"ticker", ticker,
		"columns", len(res.Data.Columns()),
	)
	return res
}

func (oo *observableOrchestrator) AnalyzeSentiment(ctx context.Context, docs []types.NewsDocument, prices map[string]*frame.Frame, maxLag int) (types.SentimentStudy, error) {
	ctx, span := trace.StartSpan(ctx, "pipeline.AnalyzeSentiment")
	defer span.End()

	logger.InfoSkip(ctx, 1, "Starting sentiment study",
		"documents", len(docs),
		"tickers", len(prices),
		"max_lag", maxLag,
	)

	study, err := oo.orchestrator.AnalyzeSentiment(ctx, docs, prices, maxLag)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Sentiment study failed", err,
			"documents", len(docs),
		)
		return study, err
	}

	logger.InfoSkip(ctx, 1, "Sentiment study completed",
		"records", len(study.Records),
		"days", len(study.Daily),
		"merged_rows", rows(study.Merged),
		"skipped", len(study.Skipped),
	)
	return study, nil
}
