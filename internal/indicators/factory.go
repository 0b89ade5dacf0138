package indicators

import "stock-sentiment-analyzer/internal/interfaces"

// New returns an engine with the given lookbacks.
func New(p Params) (interfaces.IndicatorEngine, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	baseline := make([]int, len(p.Baseline))
	copy(baseline, p.Baseline)
	p.Baseline = baseline
	return &engine{params: p}, nil
}

// Default returns an engine with the standard lookbacks.
func Default() interfaces.IndicatorEngine {
	return &engine{params: DefaultParams()}
}
