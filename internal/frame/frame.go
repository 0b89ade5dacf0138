package frame

import (
	"fmt"
	"math"
	"time"
)

// OHLCV column names.
const (
	Open   = "Open"
	High   = "High"
	Low    = "Low"
	Close  = "Close"
	Volume = "Volume"
)

// OHLCVColumns lists the source columns in display order.
var OHLCVColumns = []string{Open, High, Low, Close, Volume}

// Bar is a single OHLCV observation.
type Bar struct {
	Date   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// Frame is a date-indexed table of float columns. A Frame is never mutated after it is
// built; operations that add columns return a new Frame sharing the untouched columns.
type Frame struct {
	index   []time.Time
	names   []string
	columns map[string][]float64
}

// New creates an empty frame over the given index.
func New(index []time.Time) *Frame {
	idx := make([]time.Time, len(index))
	copy(idx, index)
	return &Frame{index: idx, columns: map[string][]float64{}}
}

// FromBars builds an OHLCV frame. Row order is preserved as given.
func FromBars(bars []Bar) *Frame {
	idx := make([]time.Time, len(bars))
	o := make([]float64, len(bars))
	h := make([]float64, len(bars))
	l := make([]float64, len(bars))
	c := make([]float64, len(bars))
	v := make([]float64, len(bars))
	for i, b := range bars {
		idx[i] = b.Date
		o[i], h[i], l[i], c[i], v[i] = b.Open, b.High, b.Low, b.Close, b.Volume
	}
	f := &Frame{index: idx, columns: map[string][]float64{}}
	b := f.Extend()
	b.Set(Open, o)
	b.Set(High, h)
	b.Set(Low, l)
	b.Set(Close, c)
	b.Set(Volume, v)
	return b.Frame()
}

func (f *Frame) Len() int { return len(f.index) }

// Index returns a copy of the date index.
func (f *Frame) Index() []time.Time {
	out := make([]time.Time, len(f.index))
	copy(out, f.index)
	return out
}

// Date returns the index value at row i.
func (f *Frame) Date(i int) time.Time { return f.index[i] }

// Columns returns column names in insertion order.
func (f *Frame) Columns() []string {
	out := make([]string, len(f.names))
	copy(out, f.names)
	return out
}

func (f *Frame) Has(name string) bool {
	_, ok := f.columns[name]
	return ok
}

// Column returns the values of a column, or nil if absent. Callers must not modify it.
func (f *Frame) Column(name string) []float64 {
	return f.columns[name]
}

// Require checks that every named column exists.
func (f *Frame) Require(names ...string) error {
	var missing []string
	for _, n := range names {
		if !f.Has(n) {
			missing = append(missing, n)
		}
	}
	if len(missing) > 0 {
		return &MissingColumnsError{Columns: missing}
	}
	return nil
}

// Extend starts a builder that appends columns to a copy of f.
func (f *Frame) Extend() *Builder {
	cols := make(map[string][]float64, len(f.columns))
	for k, v := range f.columns {
		cols[k] = v
	}
	names := make([]string, len(f.names))
	copy(names, f.names)
	source := make(map[string]bool, len(f.names))
	for _, n := range f.names {
		source[n] = true
	}
	return &Builder{f: &Frame{index: f.index, names: names, columns: cols}, source: source}
}

// Builder accumulates new columns. It is not safe for concurrent use.
type Builder struct {
	f      *Frame
	source map[string]bool
}

// Set appends a column. Columns of the source frame are never rewritten: setting one
// of their names is a no-op. Setting a column added by this builder again replaces it.
// A length mismatch is a programming error and panics.
func (b *Builder) Set(name string, values []float64) {
	if len(values) != len(b.f.index) {
		panic(fmt.Sprintf("frame: column %q has %d rows, index has %d", name, len(values), len(b.f.index)))
	}
	if b.source[name] {
		return
	}
	if _, exists := b.f.columns[name]; !exists {
		b.f.names = append(b.f.names, name)
	}
	b.f.columns[name] = values
}

// Frame returns the built frame. The builder must not be used afterwards.
func (b *Builder) Frame() *Frame {
	out := b.f
	b.f = nil
	return out
}

// Concat stacks frames vertically. Only columns present in every frame are kept,
// in the order of the first frame. Row order follows argument order.
func Concat(frames ...*Frame) *Frame {
	if len(frames) == 0 {
		return New(nil)
	}
	var idx []time.Time
	for _, f := range frames {
		idx = append(idx, f.index...)
	}
	out := &Frame{index: idx, columns: map[string][]float64{}}
	b := out.Extend()
	for _, name := range frames[0].names {
		shared := true
		for _, f := range frames[1:] {
			if !f.Has(name) {
				shared = false
				break
			}
		}
		if !shared {
			continue
		}
		vals := make([]float64, 0, len(idx))
		for _, f := range frames {
			vals = append(vals, f.columns[name]...)
		}
		b.Set(name, vals)
	}
	return b.Frame()
}

// IsSortedUnique reports whether the index is strictly ascending.
func (f *Frame) IsSortedUnique() bool {
	for i := 1; i < len(f.index); i++ {
		if !f.index[i-1].Before(f.index[i]) {
			return false
		}
	}
	return true
}

// NaNs returns a slice of n NaN values.
func NaNs(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}

// ShiftBackward returns values moved k rows earlier: out[i] = values[i+k].
// The trailing k rows become NaN.
func ShiftBackward(values []float64, k int) []float64 {
	out := NaNs(len(values))
	for i := 0; i+k < len(values); i++ {
		out[i] = values[i+k]
	}
	return out
}
