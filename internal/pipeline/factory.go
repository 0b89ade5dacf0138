package pipeline

import (
	"stock-sentiment-analyzer/internal/correlation"
	"stock-sentiment-analyzer/internal/frame"
	"stock-sentiment-analyzer/internal/indicators"
	"stock-sentiment-analyzer/internal/interfaces"
	"stock-sentiment-analyzer/internal/metrics"
	"stock-sentiment-analyzer/internal/render"
	"stock-sentiment-analyzer/internal/sentiment"
)

type Option func(*orchestrator)

func WithIndicators(e interfaces.IndicatorEngine) Option {
	return func(o *orchestrator) { o.indicators = e }
}

func WithRiskEngine(e interfaces.RiskEngine) Option {
	return func(o *orchestrator) { o.risk = e }
}

func WithRenderer(r interfaces.Renderer) Option {
	return func(o *orchestrator) { o.renderer = r }
}

func WithScorer(s interfaces.SentimentScorer) Option {
	return func(o *orchestrator) { o.scorer = s }
}

func WithAggregator(a interfaces.SentimentAggregator) Option {
	return func(o *orchestrator) { o.aggregator = a }
}

func WithAnalyzer(a interfaces.CorrelationAnalyzer) Option {
	return func(o *orchestrator) { o.analyzer = a }
}

// WithPriceColumn sets the column returns are derived from.
func WithPriceColumn(name string) Option {
	return func(o *orchestrator) { o.priceColumn = name }
}

// WithTextField sets the document field the scorer reads.
func WithTextField(name string) Option {
	return func(o *orchestrator) { o.textField = name }
}

// New wires an orchestrator. Any collaborator not supplied gets its default
// implementation; the default renderer produces no figures.
func New(opts ...Option) interfaces.Orchestrator {
	o := &orchestrator{
		priceColumn: frame.Close,
		textField:   sentiment.DefaultTextField,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.indicators == nil {
		o.indicators = indicators.Default()
	}
	if o.risk == nil {
		o.risk = metrics.New(metrics.WithPriceColumn(o.priceColumn))
	}
	if o.renderer == nil {
		o.renderer = render.Noop{}
	}
	if o.scorer == nil {
		o.scorer = sentiment.NewScorer()
	}
	if o.aggregator == nil {
		o.aggregator = sentiment.NewAggregator()
	}
	if o.analyzer == nil {
		o.analyzer = correlation.New()
	}
	return o
}
