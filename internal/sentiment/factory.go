package sentiment

import "stock-sentiment-analyzer/internal/interfaces"

func NewScorer() interfaces.SentimentScorer {
	return &scorer{
		valence: newValenceScorer(),
		pattern: newPatternScorer(),
	}
}

func NewAggregator() interfaces.SentimentAggregator {
	return aggregator{}
}
