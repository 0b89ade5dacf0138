package sentiment

import "math"

const (
	negationFlip   = -0.5
	negationWindow = 3
)

// patternScorer averages the polarity and subjectivity of the assessed words in a text.
// Intensifiers scale the next assessed word; a negation within three words flips and
// halves its polarity.
type patternScorer struct {
	lexicon      map[string]patternEntry
	intensifiers map[string]float64
	negations    map[string]bool
}

func newPatternScorer() *patternScorer {
	return &patternScorer{
		lexicon:      loadPatternLexicon(),
		intensifiers: loadIntensifiers(),
		negations:    loadNegations(),
	}
}

func (p *patternScorer) score(text string) (polarity, subjectivity float64) {
	var pols, subs float64
	assessed := 0
	negated := 0
	mult := 1.0

	for _, w := range tokenize(text) {
		if p.negations[w.lower] {
			negated = negationWindow
			continue
		}
		if k, ok := p.intensifiers[w.lower]; ok {
			mult *= k
			continue
		}
		e, ok := p.lexicon[w.lower]
		if !ok {
			mult = 1
			if negated > 0 {
				negated--
			}
			continue
		}
		pol := e.polarity * mult
		if negated > 0 {
			pol *= negationFlip
		}
		pols += math.Max(-1, math.Min(1, pol))
		subs += math.Max(0, math.Min(1, e.subjectivity*mult))
		assessed++
		negated = 0
		mult = 1
	}

	if assessed == 0 {
		return 0, 0
	}
	return pols / float64(assessed), subs / float64(assessed)
}
