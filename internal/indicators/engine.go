package indicators

import (
	"fmt"
	"strings"

	"stock-sentiment-analyzer/internal/frame"
	"stock-sentiment-analyzer/internal/interfaces"
	"stock-sentiment-analyzer/internal/ta"
)

type engine struct {
	params Params
}

var _ interfaces.IndicatorEngine = (*engine)(nil)

func (e *engine) Trend(f *frame.Frame) (*frame.Frame, error) {
	return e.run(f, false, groups[0])
}

func (e *engine) Momentum(f *frame.Frame) (*frame.Frame, error) {
	return e.run(f, false, groups[1])
}

func (e *engine) Volume(f *frame.Frame) (*frame.Frame, error) {
	return e.run(f, false, groups[2])
}

func (e *engine) Volatility(f *frame.Frame) (*frame.Frame, error) {
	return e.run(f, false, groups[3])
}

func (e *engine) All(f *frame.Frame) (*frame.Frame, error) {
	return e.run(f, true, groups...)
}

// Selected triggers whole groups: asking for RSI alone yields every momentum column.
// Unknown names are ignored; when nothing matches the input frame is returned as is.
func (e *engine) Selected(f *frame.Frame, names []string) (*frame.Frame, error) {
	requested := make(map[string]bool, len(names))
	for _, n := range names {
		requested[strings.ToUpper(strings.TrimSpace(n))] = true
	}

	var triggered []group
	for _, g := range groups {
		for _, m := range g.members {
			if requested[m] {
				triggered = append(triggered, g)
				break
			}
		}
	}
	if len(triggered) == 0 {
		if f == nil {
			return nil, frame.Invalid("indicators: nil frame")
		}
		return f, nil
	}
	return e.run(f, false, triggered...)
}

// run validates the source columns of every group before computing any of them.
func (e *engine) run(f *frame.Frame, baseline bool, gs ...group) (*frame.Frame, error) {
	if f == nil {
		return nil, frame.Invalid("indicators: nil frame")
	}
	var required []string
	seen := map[string]bool{}
	for _, g := range gs {
		for _, col := range g.requires {
			if !seen[col] {
				seen[col] = true
				required = append(required, col)
			}
		}
	}
	if baseline && !seen[frame.Close] {
		required = append(required, frame.Close)
	}
	if err := f.Require(required...); err != nil {
		return nil, fmt.Errorf("indicators: %w", err)
	}

	b := f.Extend()
	for _, g := range gs {
		g.compute(e.params, f, b)
	}
	if baseline {
		c := f.Column(frame.Close)
		for _, n := range e.params.Baseline {
			b.Set(fmt.Sprintf("SMA_%d", n), ta.SMA(c, n))
			b.Set(fmt.Sprintf("EMA_%d", n), ta.EMA(c, n))
		}
	}
	return b.Frame(), nil
}

// BaselineColumns returns the moving-average columns All appends for the given periods.
func BaselineColumns(periods []int) []string {
	out := make([]string, 0, 2*len(periods))
	for _, n := range periods {
		out = append(out, fmt.Sprintf("SMA_%d", n), fmt.Sprintf("EMA_%d", n))
	}
	return out
}
