package sentiment

import (
	"stock-sentiment-analyzer/internal/interfaces"
	"stock-sentiment-analyzer/internal/types"
)

// DefaultTextField is the document field scored when none is given.
const DefaultTextField = "headline"

type scorer struct {
	valence *valenceScorer
	pattern *patternScorer
}

var _ interfaces.SentimentScorer = (*scorer)(nil)

// Score rates every document with both scorers. Missing or non-text fields are scored
// through their string form, so they never fail.
func (s *scorer) Score(docs []types.NewsDocument, textField string) []types.SentimentRecord {
	if textField == "" {
		textField = DefaultTextField
	}
	out := make([]types.SentimentRecord, len(docs))
	for i, d := range docs {
		text := d.Text(textField)
		v := s.valence.score(text)
		polarity, subjectivity := s.pattern.score(text)

		rec := types.SentimentRecord{
			Document:     d,
			Compound:     v.compound,
			Negative:     v.negative,
			Neutral:      v.neutral,
			Positive:     v.positive,
			Polarity:     polarity,
			Subjectivity: subjectivity,
			Class:        types.Classify(v.compound),
		}
		switch rec.Class {
		case types.ClassPositive:
			rec.IsPositive = 1
		case types.ClassNegative:
			rec.IsNegative = 1
		default:
			rec.IsNeutral = 1
		}
		out[i] = rec
	}
	return out
}
