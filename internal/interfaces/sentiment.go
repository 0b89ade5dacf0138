package interfaces

import "stock-sentiment-analyzer/internal/types"

type SentimentScorer interface {
	Score(docs []types.NewsDocument, textField string) []types.SentimentRecord
}

type SentimentAggregator interface {
	Aggregate(records []types.SentimentRecord, dateField, tickerField string) ([]types.DailySentiment, error)
}
