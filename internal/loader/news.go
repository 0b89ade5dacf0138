package loader

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gocarina/gocsv"

	"stock-sentiment-analyzer/internal/logger"
	"stock-sentiment-analyzer/internal/sentiment"
	"stock-sentiment-analyzer/internal/types"
)

// Extra fields kept on every news document.
const (
	FieldURL       = "url"
	FieldPublisher = "publisher"
)

type newsRow struct {
	Headline  string `csv:"headline"`
	URL       string `csv:"url"`
	Publisher string `csv:"publisher"`
	Date      string `csv:"date"`
	Stock     string `csv:"stock"`
}

// LoadNews reads a news CSV with headline, date and stock columns. Tickers are
// upper-cased; dates keep their wall-clock time without a zone. Rows with unparseable
// or future dates are dropped.
func LoadNews(ctx context.Context, path string) ([]types.NewsDocument, error) {
	data, err := readCSV(path)
	if err != nil {
		return nil, err
	}
	if err := requireHeader(data, []string{"headline", "date"}); err != nil {
		return nil, fmt.Errorf("news %s: %w", path, err)
	}
	if requireHeader(data, []string{"stock"}) != nil {
		logger.Warn(ctx, "Column 'stock' not found; documents carry no ticker", "path", path)
	}

	var rows []*newsRow
	if err := gocsv.UnmarshalBytes(data, &rows); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	today := sentiment.CalendarDay(time.Now())
	docs := make([]types.NewsDocument, 0, len(rows))
	var invalid, future int
	for _, r := range rows {
		t, err := sentiment.ParseDate(strings.TrimSpace(r.Date))
		if err != nil {
			invalid++
			continue
		}
		if sentiment.CalendarDay(t).After(today) {
			future++
			continue
		}
		docs = append(docs, types.NewsDocument{
			Ticker:   strings.ToUpper(strings.TrimSpace(r.Stock)),
			Date:     naive(t),
			Headline: r.Headline,
			Fields: map[string]any{
				FieldURL:       r.URL,
				FieldPublisher: r.Publisher,
			},
		})
	}
	if invalid > 0 {
		logger.Warn(ctx, "Removed invalid dates", "path", path, "rows", invalid)
	}
	if future > 0 {
		logger.Warn(ctx, "Removed future dates", "path", path, "rows", future)
	}
	logger.Info(ctx, "Loaded news", "path", path, "documents", len(docs))
	return docs, nil
}

// FilterTickers keeps the documents whose ticker is in tickers.
func FilterTickers(docs []types.NewsDocument, tickers []string) []types.NewsDocument {
	keep := make(map[string]bool, len(tickers))
	for _, t := range tickers {
		keep[t] = true
	}
	var out []types.NewsDocument
	for _, d := range docs {
		if keep[d.Ticker] {
			out = append(out, d)
		}
	}
	return out
}
