package correlation

import (
	"fmt"
	"math"
	"sort"

	"stock-sentiment-analyzer/internal/frame"
	"stock-sentiment-analyzer/internal/interfaces"
	"stock-sentiment-analyzer/internal/types"
)

// Sentiment metric columns of a merged frame.
const (
	CompoundMean   = "compound_mean"
	CompoundMedian = "compound_median"
	PolarityMean   = "polarity_mean"
	PositivePct    = "positive_pct"
	NegativePct    = "negative_pct"
)

// ReturnsColumn is the return series sentiment is correlated against.
const ReturnsColumn = "Daily_Return"

// Metrics lists the columns Correlate considers, in report order.
var Metrics = []string{CompoundMean, CompoundMedian, PolarityMean, PositivePct, NegativePct}

type analyzer struct {
	metrics   []string
	lagMetric string
	returns   string
}

var _ interfaces.CorrelationAnalyzer = (*analyzer)(nil)

// Correlate returns one row per sentiment metric present in merged, ordered by |r|
// descending with undefined coefficients last.
func (a *analyzer) Correlate(merged *frame.Frame) ([]types.CorrelationRow, error) {
	if merged == nil {
		return nil, frame.Invalid("correlation: nil frame")
	}
	if err := merged.Require(a.returns); err != nil {
		return nil, fmt.Errorf("correlation: %w", err)
	}
	returns := merged.Column(a.returns)

	rows := make([]types.CorrelationRow, 0, len(a.metrics))
	for _, m := range a.metrics {
		if !merged.Has(m) {
			continue
		}
		r := pearson(merged.Column(m), returns)
		abs := math.Abs(r)
		rows = append(rows, types.CorrelationRow{
			Metric:   m,
			Pearson:  r,
			Absolute: abs,
			Strength: types.StrengthOf(abs),
		})
	}
	sortRows(rows)
	return rows, nil
}

// LaggedCorrelate pairs sentiment on row t with the return on row t+lag for every lag
// in [0, maxLag]. Rows are ordered by |r|, not by lag.
func (a *analyzer) LaggedCorrelate(merged *frame.Frame, maxLag int) ([]types.LagCorrelationRow, error) {
	return a.LaggedCorrelateGroups([]*frame.Frame{merged}, maxLag)
}

func (a *analyzer) LaggedCorrelateGroups(parts []*frame.Frame, maxLag int) ([]types.LagCorrelationRow, error) {
	if maxLag < 0 {
		return nil, frame.Invalid("correlation: max lag must be non-negative, got %d", maxLag)
	}
	if len(parts) == 0 {
		return nil, frame.Invalid("correlation: no frames to correlate")
	}
	for _, p := range parts {
		if p == nil {
			return nil, frame.Invalid("correlation: nil frame")
		}
		if err := p.Require(a.lagMetric, a.returns); err != nil {
			return nil, fmt.Errorf("correlation: %w", err)
		}
	}

	rows := make([]types.LagCorrelationRow, 0, maxLag+1)
	for lag := 0; lag <= maxLag; lag++ {
		var sentiment, returns []float64
		for _, p := range parts {
			sentiment = append(sentiment, p.Column(a.lagMetric)...)
			returns = append(returns, frame.ShiftBackward(p.Column(a.returns), lag)...)
		}
		r := pearson(sentiment, returns)
		rows = append(rows, types.LagCorrelationRow{
			Lag:       lag,
			Pearson:   r,
			Absolute:  math.Abs(r),
			Direction: types.DirectionOf(r),
			Undefined: math.IsNaN(r),
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return byMagnitude(rows[i].Absolute, rows[j].Absolute)
	})
	return rows, nil
}

func sortRows(rows []types.CorrelationRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		return byMagnitude(rows[i].Absolute, rows[j].Absolute)
	})
}

// byMagnitude orders descending with NaN last.
func byMagnitude(a, b float64) bool {
	if math.IsNaN(a) {
		return false
	}
	if math.IsNaN(b) {
		return true
	}
	return a > b
}
