package types

import (
	"math"
	"sort"

	"stock-sentiment-analyzer/internal/frame"
)

type Strength string

const (
	StrengthStrong   Strength = "Strong"
	StrengthModerate Strength = "Moderate"
	StrengthWeak     Strength = "Weak"
)

// StrengthOf labels |r|. NaN compares false against both thresholds and reads Weak.
func StrengthOf(abs float64) Strength {
	switch {
	case abs > 0.5:
		return StrengthStrong
	case abs > 0.3:
		return StrengthModerate
	default:
		return StrengthWeak
	}
}

type Direction string

const (
	DirectionPositive Direction = "Positive"
	DirectionNegative Direction = "Negative"
)

// DirectionOf reads Positive only for r > 0. NaN falls through to Negative.
func DirectionOf(r float64) Direction {
	if r > 0 {
		return DirectionPositive
	}
	return DirectionNegative
}

type CorrelationRow struct {
	Metric   string
	Pearson  float64
	Absolute float64
	Strength Strength
}

type LagCorrelationRow struct {
	Lag       int
	Pearson   float64
	Absolute  float64
	Direction Direction
	// Undefined is set when the coefficient is NaN; Direction then reads Negative.
	Undefined bool
}

// CorrelationMatrix is a square Pearson matrix over Columns. Values[i][j] is NaN when
// the pair has fewer than two complete rows or either side is constant.
type CorrelationMatrix struct {
	Columns []string
	Values  [][]float64
}

// RiskMetrics holds the scalar risk measures. A metric that could not be computed is NaN
// and has a matching entry in Warnings.
type RiskMetrics struct {
	SharpeRatio          float64
	SortinoRatio         float64
	MaxDrawdown          float64
	AnnualizedVolatility float64
	Warnings             []string
}

const (
	MetricSharpe     = "Sharpe_Ratio"
	MetricSortino    = "Sortino_Ratio"
	MetricDrawdown   = "Max_Drawdown"
	MetricVolatility = "Annualized_Volatility"
)

func (m RiskMetrics) Map() map[string]float64 {
	return map[string]float64{
		MetricSharpe:     m.SharpeRatio,
		MetricSortino:    m.SortinoRatio,
		MetricDrawdown:   m.MaxDrawdown,
		MetricVolatility: m.AnnualizedVolatility,
	}
}

func NaNRiskMetrics() RiskMetrics {
	nan := math.NaN()
	return RiskMetrics{SharpeRatio: nan, SortinoRatio: nan, MaxDrawdown: nan, AnnualizedVolatility: nan}
}

// Figure is the opaque handle returned by a renderer.
type Figure any

// AnalysisResult is the outcome of one ticker's run. Err is non-nil for a failed run,
// in which case Data and Figure are nil.
type AnalysisResult struct {
	Ticker  string
	Data    *frame.Frame
	Metrics *RiskMetrics
	Figure  Figure
	Err     error
}

func (r AnalysisResult) Failed() bool { return r.Err != nil }

// BatchResult separates successful tickers from failed ones.
type BatchResult struct {
	Results     map[string]AnalysisResult
	Failures    map[string]error
	Correlation Figure
}

// Tickers returns the successful tickers in sorted order.
func (b BatchResult) Tickers() []string {
	out := make([]string, 0, len(b.Results))
	for t := range b.Results {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// SentimentStudy is the output of the sentiment-versus-returns flow.
type SentimentStudy struct {
	Records      []SentimentRecord
	Daily        []DailySentiment
	Merged       *frame.Frame
	Correlations []CorrelationRow
	Lagged       []LagCorrelationRow
	Skipped      map[string]error
}
