package correlation

import "stock-sentiment-analyzer/internal/interfaces"

// New returns an analyzer over the standard metrics, lagging compound_mean.
func New() interfaces.CorrelationAnalyzer {
	return &analyzer{metrics: Metrics, lagMetric: CompoundMean, returns: ReturnsColumn}
}
