package sentiment

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/montanaflynn/stats"

	"stock-sentiment-analyzer/internal/frame"
	"stock-sentiment-analyzer/internal/interfaces"
	"stock-sentiment-analyzer/internal/types"
)

// Default key fields for Aggregate.
const (
	DefaultDateField   = "date"
	DefaultTickerField = "ticker"
)

// classField names the classification in validation errors.
const classField = "sentiment_class"

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05-07:00",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

type aggregator struct{}

var _ interfaces.SentimentAggregator = (*aggregator)(nil)

type dayKey struct {
	ticker string
	day    time.Time
}

type dayBucket struct {
	compound []float64
	polarity []float64
	pos      int
	neg      int
	neu      int
}

// Aggregate groups records by (ticker, calendar day). Every record must carry both key
// fields and a classification; otherwise nothing is aggregated and the error names the
// missing fields.
func (aggregator) Aggregate(records []types.SentimentRecord, dateField, tickerField string) ([]types.DailySentiment, error) {
	if dateField == "" {
		dateField = DefaultDateField
	}
	if tickerField == "" {
		tickerField = DefaultTickerField
	}

	keys := make([]dayKey, len(records))
	missing := map[string]bool{}
	for i, r := range records {
		day, ok := resolveDate(r.Document, dateField)
		if !ok {
			missing[dateField] = true
		}
		ticker, ok := resolveTicker(r.Document, tickerField)
		if !ok {
			missing[tickerField] = true
		}
		if r.Class == "" {
			missing[classField] = true
		}
		keys[i] = dayKey{ticker: ticker, day: day}
	}
	if len(missing) > 0 {
		cols := make([]string, 0, len(missing))
		for _, c := range []string{dateField, tickerField, classField} {
			if missing[c] {
				cols = append(cols, c)
			}
		}
		return nil, fmt.Errorf("sentiment: aggregate: %w", &frame.MissingColumnsError{Columns: cols})
	}

	buckets := map[dayKey]*dayBucket{}
	for i, r := range records {
		b := buckets[keys[i]]
		if b == nil {
			b = &dayBucket{}
			buckets[keys[i]] = b
		}
		b.compound = append(b.compound, r.Compound)
		b.polarity = append(b.polarity, r.Polarity)
		switch r.Class {
		case types.ClassPositive:
			b.pos++
		case types.ClassNegative:
			b.neg++
		default:
			b.neu++
		}
	}

	out := make([]types.DailySentiment, 0, len(buckets))
	for k, b := range buckets {
		out = append(out, summarize(k, b))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Ticker != out[j].Ticker {
			return out[i].Ticker < out[j].Ticker
		}
		return out[i].Date.Before(out[j].Date)
	})
	return out, nil
}

func summarize(k dayKey, b *dayBucket) types.DailySentiment {
	// buckets are never empty, so the stats calls cannot fail
	mean, _ := stats.Mean(b.compound)
	median, _ := stats.Median(b.compound)
	polarity, _ := stats.Mean(b.polarity)

	total := len(b.compound)
	pct := func(n int) float64 { return float64(n) / float64(total) * 100 }
	_, week := k.day.ISOWeek()

	return types.DailySentiment{
		Ticker:         k.ticker,
		Date:           k.day,
		CompoundMean:   mean,
		CompoundMedian: median,
		PolarityMean:   polarity,
		Total:          total,
		PositiveCount:  b.pos,
		NegativeCount:  b.neg,
		NeutralCount:   b.neu,
		PositivePct:    pct(b.pos),
		NegativePct:    pct(b.neg),
		NeutralPct:     pct(b.neu),
		Weekday:        k.day.Weekday().String(),
		ISOWeek:        week,
		Month:          k.day.Month().String(),
	}
}

// resolveDate reads a date field and truncates it to the calendar day.
func resolveDate(d types.NewsDocument, field string) (time.Time, bool) {
	v, ok := d.Value(field)
	if !ok || v == nil {
		return time.Time{}, false
	}
	var t time.Time
	switch x := v.(type) {
	case time.Time:
		t = x
	case string:
		parsed, err := ParseDate(x)
		if err != nil {
			return time.Time{}, false
		}
		t = parsed
	default:
		return time.Time{}, false
	}
	if t.IsZero() {
		return time.Time{}, false
	}
	return CalendarDay(t), true
}

func resolveTicker(d types.NewsDocument, field string) (string, bool) {
	v, ok := d.Value(field)
	if !ok || v == nil {
		return "", false
	}
	s := strings.TrimSpace(fmt.Sprint(v))
	return s, s != ""
}

// CalendarDay drops the time of day and location, keeping the wall-clock date.
func CalendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate accepts the date layouts found in news feeds.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", s)
}
