package sentiment

import (
	"math"
	"strings"

	"github.com/jonreiter/govader"
)

type valenceScores struct {
	compound float64
	negative float64
	neutral  float64
	positive float64
}

// valenceScorer rates text with the VADER lexicon and rules. Scores are rounded the
// way the reference VADER reports them: compound to four places, proportions to three.
type valenceScorer struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

func newValenceScorer() *valenceScorer {
	return &valenceScorer{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

func (v *valenceScorer) score(text string) valenceScores {
	if strings.TrimSpace(text) == "" {
		return valenceScores{}
	}
	s := v.analyzer.PolarityScores(text)
	return valenceScores{
		compound: round(s.Compound, 4),
		negative: round(s.Negative, 3),
		neutral:  round(s.Neutral, 3),
		positive: round(s.Positive, 3),
	}
}

func round(x float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(x*p) / p
}
