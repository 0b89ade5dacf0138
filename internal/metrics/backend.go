package metrics

import (
	"errors"
	"fmt"
	"math"

	"github.com/montanaflynn/stats"
)

// Backend computes the summary statistics the risk metrics are built from. Both
// implementations must agree numerically; the engine never knows which one it holds.
type Backend interface {
	Name() string
	Mean(x []float64) (float64, error)
	// StdDev is the sample standard deviation (n-1 denominator).
	StdDev(x []float64) (float64, error)
	// MaxDrawdown is the most negative (p - runningMax) / runningMax over the series.
	MaxDrawdown(prices []float64) (float64, error)
}

const (
	BackendAuto        = "auto"
	BackendManual      = "manual"
	BackendAccelerated = "accelerated"
)

var errEmpty = errors.New("empty input")

// BackendByName resolves a configured backend. "auto" probes the accelerated backend
// and falls back to the closed-form one.
func BackendByName(name string) (Backend, error) {
	switch name {
	case "", BackendAuto:
		return probe(), nil
	case BackendManual:
		return manualBackend{}, nil
	case BackendAccelerated:
		if !statsAvailable() {
			return nil, fmt.Errorf("metrics backend %q is not available", name)
		}
		return statsBackend{}, nil
	default:
		return nil, fmt.Errorf("unknown metrics backend %q", name)
	}
}

func probe() Backend {
	if statsAvailable() {
		return statsBackend{}
	}
	return manualBackend{}
}

// statsAvailable runs the accelerated backend on a known input once.
func statsAvailable() (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	m, err := stats.Mean(stats.Float64Data{1, 2, 3})
	if err != nil || m != 2 {
		return false
	}
	sd, err := stats.StandardDeviationSample(stats.Float64Data{1, 2, 3})
	return err == nil && sd == 1
}

type manualBackend struct{}

func (manualBackend) Name() string { return BackendManual }

func (manualBackend) Mean(x []float64) (float64, error) {
	if len(x) == 0 {
		return math.NaN(), errEmpty
	}
	sum := 0.0
	for _, v := range x {
		sum += v
	}
	return sum / float64(len(x)), nil
}

func (b manualBackend) StdDev(x []float64) (float64, error) {
	if len(x) < 2 {
		return math.NaN(), fmt.Errorf("sample deviation needs at least two values, got %d", len(x))
	}
	m, _ := b.Mean(x)
	ss := 0.0
	for _, v := range x {
		d := v - m
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(x)-1)), nil
}

func (manualBackend) MaxDrawdown(prices []float64) (float64, error) {
	return maxDrawdown(prices, func(dd []float64) (float64, error) {
		worst := dd[0]
		for _, v := range dd[1:] {
			if v < worst {
				worst = v
			}
		}
		return worst, nil
	})
}

type statsBackend struct{}

func (statsBackend) Name() string { return BackendAccelerated }

func (statsBackend) Mean(x []float64) (float64, error) {
	return stats.Mean(x)
}

func (statsBackend) StdDev(x []float64) (float64, error) {
	if len(x) < 2 {
		return math.NaN(), fmt.Errorf("sample deviation needs at least two values, got %d", len(x))
	}
	return stats.StandardDeviationSample(x)
}

func (statsBackend) MaxDrawdown(prices []float64) (float64, error) {
	return maxDrawdown(prices, func(dd []float64) (float64, error) {
		return stats.Min(dd)
	})
}

func maxDrawdown(prices []float64, minimum func([]float64) (float64, error)) (float64, error) {
	if len(prices) == 0 {
		return math.NaN(), errEmpty
	}
	dd := make([]float64, len(prices))
	peak := prices[0]
	for i, p := range prices {
		if p > peak {
			peak = p
		}
		if peak <= 0 {
			return math.NaN(), fmt.Errorf("non-positive running maximum %v at row %d", peak, i)
		}
		dd[i] = (p - peak) / peak
	}
	return minimum(dd)
}
