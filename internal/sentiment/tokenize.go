package sentiment

import (
	"strings"
	"unicode"
)

// token is one lower-cased word of the input.
type token struct {
	lower string
}

// tokenize splits text into words. Apostrophes and hyphens inside a word are kept so
// contractions such as "isn't" stay whole.
func tokenize(text string) []token {
	var words []token
	var current strings.Builder

	flush := func() {
		w := strings.Trim(current.String(), "'-")
		if w != "" {
			words = append(words, token{lower: strings.ToLower(w)})
		}
		current.Reset()
	}

	for _, r := range text {
		switch {
		case unicode.IsLetter(r) || unicode.IsNumber(r):
			current.WriteRune(r)
		case (r == '\'' || r == '’' || r == '-') && current.Len() > 0:
			if r == '’' {
				r = '\''
			}
			current.WriteRune(r)
		default:
			flush()
		}
	}
	flush()
	return words
}
