package loader

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gocarina/gocsv"

	"stock-sentiment-analyzer/internal/frame"
	"stock-sentiment-analyzer/internal/logger"
	"stock-sentiment-analyzer/internal/sentiment"
)

// FileSuffix completes a ticker into its price file name.
const FileSuffix = "_historical_data.csv"

// Date is the index column of a price file.
const Date = "Date"

// missingTokens are read as absent values.
var missingTokens = map[string]bool{"": true, "NA": true, "N/A": true, "NaN": true, "nan": true, "null": true}

type priceRow struct {
	Date   string `csv:"Date"`
	Open   string `csv:"Open"`
	High   string `csv:"High"`
	Low    string `csv:"Low"`
	Close  string `csv:"Close"`
	Volume string `csv:"Volume"`
}

// PricePath returns the file LoadTicker reads for ticker.
func PricePath(dir, ticker string) string {
	return filepath.Join(dir, ticker+FileSuffix)
}

// LoadTicker loads <dir>/<TICKER>_historical_data.csv.
func LoadTicker(ctx context.Context, dir, ticker string) (*frame.Frame, error) {
	path := PricePath(dir, ticker)
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", ticker, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("load %s: %s is a directory", ticker, path)
	}
	f, err := LoadPrices(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", ticker, err)
	}
	logger.Info(ctx, "Loaded price history", "ticker", ticker, "rows", f.Len())
	return f, nil
}

// LoadMany loads every ticker it can. Failures are returned per ticker.
func LoadMany(ctx context.Context, dir string, tickers []string) (map[string]*frame.Frame, map[string]error) {
	loaded := make(map[string]*frame.Frame, len(tickers))
	failed := map[string]error{}
	for _, t := range tickers {
		f, err := LoadTicker(ctx, dir, t)
		if err != nil {
			logger.TickerFailed(ctx, t, "load", err)
			failed[t] = err
			continue
		}
		loaded[t] = f
	}
	if len(failed) > 0 {
		logger.Warn(ctx, "Some tickers could not be loaded",
			"failed", len(failed),
			"requested", len(tickers),
		)
	}
	return loaded, failed
}

// LoadPrices reads an OHLCV CSV into a frame sorted by date.
//
// Rows with unparseable or future dates are dropped, as are repeated dates (the first
// row wins). Missing prices are carried forward from the previous row and missing
// volume reads 0. A negative volume fails the load.
func LoadPrices(ctx context.Context, path string) (*frame.Frame, error) {
	data, err := readCSV(path)
	if err != nil {
		return nil, err
	}
	if err := requireHeader(data, append([]string{Date}, frame.OHLCVColumns...)); err != nil {
		return nil, err
	}

	var rows []*priceRow
	if err := gocsv.UnmarshalBytes(data, &rows); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	today := sentiment.CalendarDay(time.Now())
	var bars []frame.Bar
	var invalid, future int
	for i, r := range rows {
		day, err := sentiment.ParseDate(strings.TrimSpace(r.Date))
		if err != nil {
			invalid++
			continue
		}
		if sentiment.CalendarDay(day).After(today) {
			future++
			continue
		}
		b := frame.Bar{Date: naive(day)}
		fields := []struct {
			name string
			raw  string
			dst  *float64
		}{
			{frame.Open, r.Open, &b.Open},
			{frame.High, r.High, &b.High},
			{frame.Low, r.Low, &b.Low},
			{frame.Close, r.Close, &b.Close},
			{frame.Volume, r.Volume, &b.Volume},
		}
		for _, fld := range fields {
			v, err := number(fld.raw)
			if err != nil {
				return nil, fmt.Errorf("row %d: convert %s: %w", i+2, fld.name, err)
			}
			*fld.dst = v
		}
		if b.Volume < 0 {
			return nil, frame.Invalid("row %d: negative volume %v", i+2, b.Volume)
		}
		bars = append(bars, b)
	}
	if invalid > 0 {
		logger.Warn(ctx, "Removed rows with invalid dates", "path", path, "rows", invalid)
	}
	if future > 0 {
		logger.Warn(ctx, "Removed rows with future dates", "path", path, "rows", future)
	}

	sort.SliceStable(bars, func(i, j int) bool { return bars[i].Date.Before(bars[j].Date) })
	bars = dedupe(ctx, path, bars)
	if len(bars) == 0 {
		return nil, frame.Invalid("%s: no usable rows", path)
	}
	fillMissing(ctx, path, bars)
	checkBars(ctx, path, bars)
	return frame.FromBars(bars), nil
}

// readCSV reads a file and drops a leading byte order mark.
func readCSV(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return bytes.TrimPrefix(data, []byte("\ufeff")), nil
}

// requireHeader checks the first record of a CSV for the named columns.
func requireHeader(data []byte, required []string) error {
	header, err := csv.NewReader(bytes.NewReader(data)).Read()
	if errors.Is(err, io.EOF) {
		return frame.Invalid("empty file")
	}
	if err != nil {
		return fmt.Errorf("read header: %w", err)
	}
	present := make(map[string]bool, len(header))
	for _, h := range header {
		present[strings.TrimSpace(h)] = true
	}
	var missing []string
	for _, c := range required {
		if !present[c] {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return &frame.MissingColumnsError{Columns: missing}
	}
	return nil
}

func number(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	if missingTokens[s] {
		return math.NaN(), nil
	}
	return strconv.ParseFloat(s, 64)
}

// naive keeps the wall-clock time and drops the zone.
func naive(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

func dedupe(ctx context.Context, path string, bars []frame.Bar) []frame.Bar {
	out := bars[:0]
	dropped := 0
	for i, b := range bars {
		if i > 0 && b.Date.Equal(out[len(out)-1].Date) {
			dropped++
			continue
		}
		out = append(out, b)
	}
	if dropped > 0 {
		logger.Warn(ctx, "Removed duplicate dates", "path", path, "rows", dropped)
	}
	return out
}

func fillMissing(ctx context.Context, path string, bars []frame.Bar) {
	filled := 0
	carry := func(dst *float64, prev float64) {
		if math.IsNaN(*dst) && !math.IsNaN(prev) {
			*dst = prev
			filled++
		}
	}
	for i := range bars {
		b := &bars[i]
		if i > 0 {
			prev := bars[i-1]
			carry(&b.Open, prev.Open)
			carry(&b.High, prev.High)
			carry(&b.Low, prev.Low)
			carry(&b.Close, prev.Close)
		}
		if math.IsNaN(b.Volume) {
			b.Volume = 0
			filled++
		}
	}
	if filled > 0 {
		logger.Info(ctx, "Filled missing values", "path", path, "values", filled)
	}
}

func checkBars(ctx context.Context, path string, bars []frame.Bar) {
	var zeroVolume, inconsistent int
	for _, b := range bars {
		if b.Volume == 0 {
			zeroVolume++
		}
		if b.High < b.Low || b.High < b.Open || b.High < b.Close || b.Low > b.Open || b.Low > b.Close {
			inconsistent++
		}
	}
	if zeroVolume > 0 {
		logger.Warn(ctx, "Zero volume entries found", "path", path, "rows", zeroVolume)
	}
	if inconsistent > 0 {
		logger.Warn(ctx, "Inconsistent price bars found", "path", path, "rows", inconsistent)
	}
}
