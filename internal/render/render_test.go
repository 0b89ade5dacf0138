package render

import (
	"context"
	"math"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"stock-sentiment-analyzer/internal/frame"
	"stock-sentiment-analyzer/internal/indicators"
	"stock-sentiment-analyzer/internal/types"
)

func indicatorFrame() *frame.Frame {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	idx := []time.Time{start, start.AddDate(0, 0, 1), start.AddDate(0, 0, 2)}
	nan := math.NaN()
	b := frame.New(idx).Extend()
	b.Set(frame.Open, []float64{9, 10, 11})
	b.Set(frame.Close, []float64{10, 11, 12})
	b.Set("SMA_5", []float64{nan, nan, 11})
	b.Set("RSI", []float64{nan, 60, 70})
	b.Set("ATR", []float64{nan, 1, 1})
	return b.Frame()
}

func TestNoopReturnsNoFigure(t *testing.T) {
	fig, err := Noop{}.RenderIndicators(context.Background(), indicatorFrame(), "AAPL", indicators.GroupNames)
	assert.NoError(t, err)
	assert.Nil(t, fig)
	fig, err = Noop{}.RenderCorrelation(context.Background(), types.CorrelationMatrix{})
	assert.NoError(t, err)
	assert.Nil(t, fig)
}

func TestWorkbookWritesSheets(t *testing.T) {
	ctx := context.Background()
	w := NewWorkbook()
	defer w.Close()

	fig, err := w.RenderIndicators(ctx, indicatorFrame(), "AAPL", []string{indicators.GroupMomentum})
	require.NoError(t, err)
	sheet := fig.(*Sheet)
	assert.Equal(t, "AAPL", sheet.Name)
	assert.Equal(t, []string{frame.Close, "SMA_5", "RSI"}, sheet.Columns)
	assert.Equal(t, 3, sheet.Rows)

	fig, err = w.RenderIndicators(ctx, indicatorFrame(), "AAPL", nil)
	require.NoError(t, err)
	assert.Equal(t, "AAPL (2)", fig.(*Sheet).Name)
	assert.Equal(t, []string{frame.Close, "SMA_5"}, fig.(*Sheet).Columns)

	_, err = w.RenderCorrelation(ctx, types.CorrelationMatrix{
		Columns: []string{"RSI", "ATR"},
		Values:  [][]float64{{1, -0.5}, {-0.5, 1}},
	})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "analysis.xlsx")
	require.NoError(t, w.Save(path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"AAPL", "AAPL (2)", CorrelationSheet}, f.GetSheetList())

	rows, err := f.GetRows("AAPL")
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"Date", "Close", "SMA_5", "RSI"}, rows[0])

	v, err := f.GetCellValue("AAPL", "A2")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01", v)
	v, err = f.GetCellValue("AAPL", "B4")
	require.NoError(t, err)
	assert.Equal(t, "12", v)
	v, err = f.GetCellValue("AAPL", "C2")
	require.NoError(t, err)
	assert.Empty(t, v, "NaN is left blank")

	v, err = f.GetCellValue(CorrelationSheet, "C2")
	require.NoError(t, err)
	assert.Equal(t, "-0.5", v)
	v, err = f.GetCellValue(CorrelationSheet, "A3")
	require.NoError(t, err)
	assert.Equal(t, "ATR", v)
}

func TestWorkbookValidation(t *testing.T) {
	ctx := context.Background()
	w := NewWorkbook()
	defer w.Close()

	assert.ErrorIs(t, w.Save(filepath.Join(t.TempDir(), "empty.xlsx")), frame.ErrValidation)

	noClose := frame.New([]time.Time{time.Now()})
	_, err := w.RenderIndicators(ctx, noClose, "X", nil)
	assert.ErrorIs(t, err, frame.ErrValidation)

	_, err = w.RenderCorrelation(ctx, types.CorrelationMatrix{})
	assert.ErrorIs(t, err, frame.ErrValidation)
}

func TestSheetName(t *testing.T) {
	assert.Equal(t, "BRK_B", sheetName("BRK/B"))
	assert.Equal(t, "Sheet", sheetName("  "))
	assert.Len(t, sheetName("ABCDEFGHIJKLMNOPQRSTUVWXYZABCDEFGHIJ"), maxSheetName)
}
