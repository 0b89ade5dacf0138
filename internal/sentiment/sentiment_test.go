package sentiment

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stock-sentiment-analyzer/internal/frame"
	"stock-sentiment-analyzer/internal/types"
)

func doc(ticker, date, headline string) types.NewsDocument {
	t, err := ParseDate(date)
	if err != nil {
		panic(err)
	}
	return types.NewsDocument{Ticker: ticker, Date: t, Headline: headline}
}

func TestValenceSingleWord(t *testing.T) {
	v := newValenceScorer().score("good")
	assert.InDelta(t, 0.4404, v.compound, 1e-4)
	assert.Equal(t, 1.0, v.positive)
	assert.Equal(t, 0.0, v.negative)
	assert.Equal(t, 0.0, v.neutral)
}

func TestValenceMatchesReferenceScores(t *testing.T) {
	cases := []struct {
		text                             string
		compound, negative, neutral, pos float64
	}{
		{"The book was good.", 0.4404, 0, 0.508, 0.492},
		{"VADER is not smart, handsome, nor funny.", -0.7424, 0.646, 0.354, 0},
		{"Not bad at all", 0.431, 0, 0.513, 0.487},
		{"Sentiment analysis has never been good.", -0.3412, 0.325, 0.675, 0},
	}
	s := newValenceScorer()
	for _, tc := range cases {
		v := s.score(tc.text)
		assert.InDeltaf(t, tc.compound, v.compound, 1e-3, tc.text)
		assert.InDeltaf(t, tc.negative, v.negative, 1e-3, tc.text)
		assert.InDeltaf(t, tc.neutral, v.neutral, 1e-3, tc.text)
		assert.InDeltaf(t, tc.pos, v.positive, 1e-3, tc.text)
	}
}

func TestValenceMarketHeadlines(t *testing.T) {
	s := newValenceScorer()
	assert.InDelta(t, 0.2960, s.score("Nvidia shares hit all-time high after blowout quarter").compound, 1e-4)
	assert.InDelta(t, 0.1779, s.score("Amazon layoffs hit thousands of workers").compound, 1e-4)
	assert.Equal(t, 0.0, s.score("Company beats estimates, raises guidance").compound)
	assert.Equal(t, 1.0, s.score("Company beats estimates, raises guidance").neutral)
}

func TestValenceModifiers(t *testing.T) {
	s := newValenceScorer()
	good := s.score("the outlook is good").compound
	assert.Greater(t, s.score("the outlook is very good").compound, good)
	assert.Greater(t, s.score("the outlook is good!").compound, good)
	assert.Greater(t, s.score("the outlook is GOOD").compound, good)
	assert.Less(t, s.score("the outlook is not good").compound, 0.0)
	assert.Less(t, s.score("the outlook isn't good").compound, 0.0)
	// the clause after "but" dominates
	assert.Less(t, s.score("revenue was good but margins were terrible").compound, 0.0)
}

func TestValenceProportionsSumToOne(t *testing.T) {
	for _, text := range []string{
		"Shares plunge after fraud probe widens",
		"Company posts record profit and strong growth!",
		"Board meets on Tuesday",
	} {
		v := newValenceScorer().score(text)
		assert.InDeltaf(t, 1.0, v.negative+v.neutral+v.positive, 0.002, text)
		assert.LessOrEqual(t, math.Abs(v.compound), 1.0)
	}
}

func TestValenceEmptyText(t *testing.T) {
	assert.Equal(t, valenceScores{}, newValenceScorer().score("   "))
}

func TestPatternScorer(t *testing.T) {
	p := newPatternScorer()
	pol, sub := p.score("good")
	assert.InDelta(t, 0.7, pol, 1e-12)
	assert.InDelta(t, 0.6, sub, 1e-12)

	pol, _ = p.score("not good")
	assert.InDelta(t, -0.35, pol, 1e-12)

	pol, sub = p.score("very good")
	assert.InDelta(t, 0.91, pol, 1e-12)
	assert.InDelta(t, 0.78, sub, 1e-12)

	pol, sub = p.score("quarterly filing released")
	assert.Equal(t, 0.0, pol)
	assert.Equal(t, 0.0, sub)
}

func TestScoreClassifiesAndFlags(t *testing.T) {
	docs := []types.NewsDocument{
		doc("AAPL", "2024-01-02", "Apple posts record profit and strong growth"),
		doc("AAPL", "2024-01-02", "Apple shares plunge after fraud probe"),
		doc("AAPL", "2024-01-03", "Apple schedules annual meeting"),
	}
	recs := NewScorer().Score(docs, "headline")
	require.Len(t, recs, 3)
	assert.Equal(t, types.ClassPositive, recs[0].Class)
	assert.Equal(t, types.ClassNegative, recs[1].Class)
	assert.Equal(t, types.ClassNeutral, recs[2].Class)
	for _, r := range recs {
		assert.Equal(t, 1, r.IsPositive+r.IsNegative+r.IsNeutral)
	}
	assert.Equal(t, docs[0], recs[0].Document)
}

func TestScoreMissingFieldIsNeutral(t *testing.T) {
	recs := NewScorer().Score([]types.NewsDocument{doc("MSFT", "2024-01-02", "x")}, "summary")
	require.Len(t, recs, 1)
	assert.Equal(t, types.ClassNeutral, recs[0].Class)
	assert.Equal(t, 0.0, recs[0].Compound)
}

func TestScoreNonTextField(t *testing.T) {
	d := doc("MSFT", "2024-01-02", "x")
	d.Fields = map[string]any{"views": 1200}
	recs := NewScorer().Score([]types.NewsDocument{d}, "views")
	assert.Equal(t, types.ClassNeutral, recs[0].Class)
}

func TestAggregate(t *testing.T) {
	docs := []types.NewsDocument{
		doc("MSFT", "2024-01-03 09:30:00", "Microsoft wins major contract"),
		doc("AAPL", "2024-01-02 16:00:00-04:00", "Apple posts record profit"),
		doc("AAPL", "2024-01-02 08:00:00", "Apple shares plunge after fraud probe"),
		doc("AAPL", "2024-01-02", "Apple schedules annual meeting"),
		doc("AAPL", "2024-01-05", "Apple upgraded by analysts"),
	}
	daily, err := NewAggregator().Aggregate(NewScorer().Score(docs, ""), "", "")
	require.NoError(t, err)
	require.Len(t, daily, 3)

	assert.Equal(t, "AAPL", daily[0].Ticker)
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), daily[0].Date)
	assert.Equal(t, "AAPL", daily[1].Ticker)
	assert.Equal(t, "MSFT", daily[2].Ticker)

	first := daily[0]
	assert.Equal(t, 3, first.Total)
	assert.Equal(t, 1, first.PositiveCount)
	assert.Equal(t, 1, first.NegativeCount)
	assert.Equal(t, 1, first.NeutralCount)
	assert.Equal(t, "Tuesday", first.Weekday)
	assert.Equal(t, 1, first.ISOWeek)
	assert.Equal(t, "January", first.Month)

	for _, d := range daily {
		assert.Equal(t, d.Total, d.PositiveCount+d.NegativeCount+d.NeutralCount)
		assert.InDelta(t, 100.0, d.PositivePct+d.NegativePct+d.NeutralPct, 1e-9)
	}
}

func TestAggregateMedian(t *testing.T) {
	recs := []types.SentimentRecord{
		{Document: doc("X", "2024-02-01", ""), Compound: 0.1, Class: types.ClassPositive},
		{Document: doc("X", "2024-02-01", ""), Compound: 0.5, Class: types.ClassPositive},
		{Document: doc("X", "2024-02-01", ""), Compound: -0.9, Class: types.ClassNegative},
	}
	daily, err := NewAggregator().Aggregate(recs, "date", "ticker")
	require.NoError(t, err)
	require.Len(t, daily, 1)
	assert.InDelta(t, 0.1, daily[0].CompoundMedian, 1e-12)
	assert.InDelta(t, -0.1, daily[0].CompoundMean, 1e-12)
}

func TestAggregateCustomKeyFields(t *testing.T) {
	d := types.NewsDocument{
		Headline: "ok",
		Fields:   map[string]any{"clean_date": "2024-03-04", "Ticker": "NVDA"},
	}
	daily, err := NewAggregator().Aggregate(NewScorer().Score([]types.NewsDocument{d}, ""), "clean_date", "Ticker")
	require.NoError(t, err)
	require.Len(t, daily, 1)
	assert.Equal(t, "NVDA", daily[0].Ticker)
	assert.Equal(t, "Monday", daily[0].Weekday)
}

func TestAggregateNamesMissingFields(t *testing.T) {
	recs := []types.SentimentRecord{
		{Document: types.NewsDocument{Headline: "no keys"}},
	}
	_, err := NewAggregator().Aggregate(recs, "date", "ticker")
	require.Error(t, err)
	assert.True(t, errors.Is(err, frame.ErrValidation))
	var missing *frame.MissingColumnsError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, []string{"date", "ticker", "sentiment_class"}, missing.Columns)
}

func TestAggregateEmpty(t *testing.T) {
	daily, err := NewAggregator().Aggregate(nil, "", "")
	require.NoError(t, err)
	assert.Empty(t, daily)
}
