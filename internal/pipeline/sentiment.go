package pipeline

import (
	"context"
	"fmt"
	"sort"

	"stock-sentiment-analyzer/internal/correlation"
	"stock-sentiment-analyzer/internal/frame"
	"stock-sentiment-analyzer/internal/logger"
	"stock-sentiment-analyzer/internal/metrics"
	"stock-sentiment-analyzer/internal/types"
)

// AnalyzeSentiment scores and aggregates the news, joins each ticker's daily sentiment
// with its returns and correlates the pooled result. Tickers that cannot be joined are
// listed in Skipped; lags are shifted within each ticker.
func (o *orchestrator) AnalyzeSentiment(ctx context.Context, docs []types.NewsDocument, prices map[string]*frame.Frame, maxLag int) (types.SentimentStudy, error) {
	var study types.SentimentStudy

	study.Records = o.scorer.Score(docs, o.textField)
	daily, err := o.aggregator.Aggregate(study.Records, "", "")
	if err != nil {
		return study, fmt.Errorf("pipeline: aggregate: %w", err)
	}
	study.Daily = daily

	returns := make(map[string]*frame.Frame, len(prices))
	failed := map[string]error{}
	tickers := make([]string, 0, len(prices))
	for t := range prices {
		tickers = append(tickers, t)
	}
	sort.Strings(tickers)
	for _, t := range tickers {
		f := prices[t]
		if f != nil && f.Has(metrics.DailyReturn) {
			returns[t] = f
			continue
		}
		r, err := o.risk.Returns(f, o.priceColumn)
		if err != nil {
			failed[t] = err
			logger.TickerFailed(ctx, t, StageMetrics, err)
			continue
		}
		returns[t] = r
	}

	merged, skipped := correlation.MergeAll(daily, returns)
	for t, err := range failed {
		if _, ok := skipped[t]; ok {
			skipped[t] = err
		}
	}
	study.Skipped = skipped
	for t, err := range skipped {
		logger.Warn(ctx, "Ticker left out of sentiment study", "ticker", t, "reason", err.Error())
	}
	if len(merged) == 0 {
		return study, ErrNoOverlap
	}

	parts := correlation.Frames(merged)
	study.Merged = frame.Concat(parts...)
	if study.Correlations, err = o.analyzer.Correlate(study.Merged); err != nil {
		return study, fmt.Errorf("pipeline: correlate: %w", err)
	}
	if study.Lagged, err = o.analyzer.LaggedCorrelateGroups(parts, maxLag); err != nil {
		return study, fmt.Errorf("pipeline: lagged correlate: %w", err)
	}
	return study, nil
}
