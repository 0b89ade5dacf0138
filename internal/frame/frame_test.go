package frame

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func days(n int) []time.Time {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	out := make([]time.Time, n)
	for i := range out {
		out[i] = start.AddDate(0, 0, i)
	}
	return out
}

func TestExtendLeavesSourceUntouched(t *testing.T) {
	b := New(days(3)).Extend()
	b.Set(Close, []float64{1, 2, 3})
	src := b.Frame()

	ext := src.Extend()
	ext.Set("X", []float64{4, 5, 6})
	ext.Set("X", []float64{6, 5, 4})
	out := ext.Frame()

	assert.Equal(t, []string{Close}, src.Columns())
	assert.Equal(t, []float64{1, 2, 3}, src.Column(Close))
	assert.Equal(t, []string{Close, "X"}, out.Columns())
	assert.Equal(t, []float64{6, 5, 4}, out.Column("X"))
}

func TestSetKeepsSourceColumns(t *testing.T) {
	b := New(days(3)).Extend()
	b.Set(Close, []float64{1, 2, 3})
	src := b.Frame()

	ext := src.Extend()
	ext.Set(Close, []float64{7, 8, 9})
	ext.Set("X", []float64{4, 5, 6})
	out := ext.Frame()

	assert.Equal(t, []string{Close, "X"}, out.Columns())
	assert.Equal(t, []float64{1, 2, 3}, out.Column(Close))
}

func TestSetLengthMismatchPanics(t *testing.T) {
	b := New(days(2)).Extend()
	assert.Panics(t, func() { b.Set("X", []float64{1}) })
}

func TestRequire(t *testing.T) {
	f := FromBars([]Bar{{Date: days(1)[0], Close: 1}})
	assert.NoError(t, f.Require(OHLCVColumns...))

	err := New(days(1)).Require(High, Low)
	var missing *MissingColumnsError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, []string{High, Low}, missing.Columns)
	assert.ErrorIs(t, err, ErrValidation)
	assert.EqualError(t, err, "missing required columns: [High, Low]")
}

func TestConcatKeepsSharedColumns(t *testing.T) {
	a := New(days(2)).Extend()
	a.Set("A", []float64{1, 2})
	a.Set("B", []float64{3, 4})
	b := New(days(1)).Extend()
	b.Set("B", []float64{5})
	b.Set("C", []float64{6})

	out := Concat(a.Frame(), b.Frame())
	assert.Equal(t, 3, out.Len())
	assert.Equal(t, []string{"B"}, out.Columns())
	assert.Equal(t, []float64{3, 4, 5}, out.Column("B"))
	assert.False(t, out.IsSortedUnique())
	assert.Equal(t, 0, Concat().Len())
}

func TestShiftBackward(t *testing.T) {
	got := ShiftBackward([]float64{1, 2, 3, 4}, 2)
	assert.Equal(t, []float64{3, 4}, got[:2])
	assert.True(t, math.IsNaN(got[2]))
	assert.True(t, math.IsNaN(got[3]))
	assert.Equal(t, []float64{1, 2}, ShiftBackward([]float64{1, 2}, 0))
	assert.True(t, math.IsNaN(ShiftBackward([]float64{1}, 5)[0]))
}

func TestInvalid(t *testing.T) {
	err := Invalid("bad %s", "input")
	assert.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "bad input")
}
