package lexical

import (
	"regexp"

	"github.com/james-bowman/nlp"
)

// tokeniser splits text into case-folded terms: maximal runs of letters,
// digits or underscores at least two runes long, minus English stop words.
var tokeniser = &nlp.RegExpTokeniser{
	RegExp:    regexp.MustCompile(`[\p{L}\p{Nd}_]{2,}`),
	StopWords: englishStopWords,
}

// Tokenize splits text into the terms the TF-IDF model indexes.
func Tokenize(text string) []string {
	return tokeniser.Tokenise(text)
}
