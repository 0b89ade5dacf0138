package types

import (
	"fmt"
	"time"
)

type NewsDocument struct {
	Ticker   string
	Date     time.Time
	Headline string
	Fields   map[string]any
}

// Value resolves a field by name. "ticker", "date" and "headline" map to the document's
// own fields; any other name is looked up in Fields.
func (d NewsDocument) Value(field string) (any, bool) {
	switch field {
	case "ticker":
		return d.Ticker, d.Ticker != ""
	case "date":
		return d.Date, !d.Date.IsZero()
	case "headline":
		return d.Headline, true
	}
	v, ok := d.Fields[field]
	return v, ok
}

// Text returns a field coerced to its string form. Missing values read as "<nil>".
func (d NewsDocument) Text(field string) string {
	v, ok := d.Value(field)
	if !ok {
		return fmt.Sprint(nil)
	}
	if s, isString := v.(string); isString {
		return s
	}
	return fmt.Sprint(v)
}

type SentimentClass string

const (
	ClassPositive SentimentClass = "positive"
	ClassNegative SentimentClass = "negative"
	ClassNeutral  SentimentClass = "neutral"
)

// Classify applies the ±0.05 compound thresholds.
func Classify(compound float64) SentimentClass {
	switch {
	case compound > 0.05:
		return ClassPositive
	case compound < -0.05:
		return ClassNegative
	default:
		return ClassNeutral
	}
}

// SentimentRecord is a scored document. Exactly one of the Is* indicators is 1.
type SentimentRecord struct {
	Document NewsDocument

	Compound float64
	Negative float64
	Neutral  float64
	Positive float64

	Polarity     float64
	Subjectivity float64

	Class      SentimentClass
	IsPositive int
	IsNegative int
	IsNeutral  int
}

// DailySentiment aggregates the records of one ticker on one calendar day.
type DailySentiment struct {
	Ticker string
	Date   time.Time

	CompoundMean   float64
	CompoundMedian float64
	PolarityMean   float64

	Total         int
	PositiveCount int
	NegativeCount int
	NeutralCount  int

	PositivePct float64
	NegativePct float64
	NeutralPct  float64

	Weekday string
	ISOWeek int
	Month   string
}
