package interfaces

import (
	"context"

	"stock-sentiment-analyzer/internal/frame"
	"stock-sentiment-analyzer/internal/types"
)

// Orchestrator runs whole analyses. AnalyzeOne, AnalyzeMany and AnalyzeCustom never
// return an error: a failed ticker is reported through the result. AnalyzeSentiment
// reports skipped tickers in the study and errors only when nothing can be correlated.
type Orchestrator interface {
	AnalyzeOne(ctx context.Context, f *frame.Frame, ticker string, groups []string) types.AnalysisResult
	AnalyzeMany(ctx context.Context, frames map[string]*frame.Frame, groups []string) types.BatchResult
	AnalyzeCustom(ctx context.Context, f *frame.Frame, ticker string, names []string) types.AnalysisResult
	AnalyzeSentiment(ctx context.Context, docs []types.NewsDocument, prices map[string]*frame.Frame, maxLag int) (types.SentimentStudy, error)
}
