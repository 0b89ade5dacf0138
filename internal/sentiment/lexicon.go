package sentiment

// Word lists for the pattern scorer: polarity runs from -1 to +1 with subjectivity in
// [0, 1], leaning towards the vocabulary of market news.

func loadNegations() map[string]bool {
	words := []string{
		"not", "no", "never", "none", "nobody", "nothing", "neither", "nor", "nowhere",
		"cannot", "without", "isn't", "aren't", "wasn't", "weren't", "don't", "doesn't",
		"didn't", "won't", "wouldn't", "shouldn't", "couldn't", "can't", "hasn't",
		"haven't", "hadn't", "mustn't", "ain't", "rarely", "seldom", "despite",
	}
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}

type patternEntry struct {
	polarity     float64
	subjectivity float64
}

func loadPatternLexicon() map[string]patternEntry {
	return map[string]patternEntry{
		"good": {0.7, 0.6}, "great": {0.8, 0.75}, "excellent": {1.0, 1.0}, "best": {1.0, 0.3},
		"better": {0.5, 0.5}, "strong": {0.433, 0.733}, "stronger": {0.4, 0.7}, "positive": {0.227, 0.545},
		"profitable": {0.5, 0.5}, "successful": {0.75, 0.95}, "impressive": {1.0, 1.0}, "solid": {0.3, 0.4},
		"robust": {0.4, 0.5}, "optimistic": {0.6, 0.9}, "bullish": {0.5, 0.8}, "favorable": {0.6, 0.8},
		"upbeat": {0.5, 0.6}, "healthy": {0.5, 0.5}, "stable": {0.2, 0.4}, "record": {0.2, 0.3},
		"higher": {0.25, 0.5}, "high": {0.16, 0.54}, "new": {0.136, 0.454}, "top": {0.5, 0.5},
		"happy": {0.8, 1.0}, "nice": {0.6, 1.0}, "wonderful": {1.0, 1.0}, "amazing": {0.6, 0.9},
		"fantastic": {0.4, 0.9}, "exciting": {0.3, 0.8}, "remarkable": {0.75, 0.75}, "innovative": {0.5, 0.6},
		"superior": {0.7, 0.9}, "valuable": {0.6, 0.6}, "safe": {0.5, 0.5}, "secure": {0.4, 0.6},
		"bad": {-0.7, 0.667}, "worse": {-0.4, 0.6}, "worst": {-1.0, 1.0}, "poor": {-0.4, 0.6},
		"weak": {-0.375, 0.625}, "weaker": {-0.4, 0.6}, "negative": {-0.3, 0.4}, "pessimistic": {-0.5, 0.8},
		"bearish": {-0.5, 0.8}, "uncertain": {-0.2, 0.6}, "volatile": {-0.3, 0.6}, "risky": {-0.5, 0.7},
		"lower": {-0.1, 0.3}, "low": {-0.1, 0.3}, "disappointing": {-0.6, 0.7}, "terrible": {-1.0, 1.0},
		"awful": {-1.0, 1.0}, "horrible": {-1.0, 1.0}, "troubled": {-0.4, 0.6}, "adverse": {-0.5, 0.6},
		"unprofitable": {-0.5, 0.5}, "bankrupt": {-0.8, 0.7}, "slow": {-0.3, 0.4}, "sluggish": {-0.4, 0.6},
		"unfavorable": {-0.6, 0.8}, "wrong": {-0.5, 0.9}, "sad": {-0.5, 1.0}, "angry": {-0.5, 1.0},
		"hard": {-0.292, 0.542}, "difficult": {-0.5, 1.0}, "big": {0.0, 0.1}, "huge": {0.4, 0.9},
		"massive": {0.0, 1.0}, "important": {0.4, 1.0}, "possible": {0.0, 1.0}, "likely": {0.0, 1.0},
		"expected": {-0.1, 0.4}, "surprising": {0.1, 0.9}, "unexpected": {0.1, 1.0}, "serious": {-0.333, 0.667},
		"significant": {0.375, 0.875}, "major": {0.062, 0.5}, "sharp": {-0.125, 0.5}, "steep": {-0.2, 0.5},
	}
}

// intensifiers multiply the polarity and subjectivity of the next assessed word.
func loadIntensifiers() map[string]float64 {
	return map[string]float64{
		"very": 1.3, "extremely": 1.5, "really": 1.2, "highly": 1.3, "incredibly": 1.5,
		"most": 1.4, "more": 1.2, "so": 1.2, "too": 1.2, "quite": 1.1,
		"slightly": 0.5, "somewhat": 0.7, "fairly": 0.8, "rather": 0.9, "less": 0.7,
	}
}
