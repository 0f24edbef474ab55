// Package recommend builds a taste profile from starred items and uses it to
// score and flag stories in a feed.
package recommend

import "strings"

// minTokenLen is the shortest token kept by Tokenize.
const minTokenLen = 3

var stopwords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {}, "in": {}, "on": {}, "at": {}, "to": {}, "for": {},
	"of": {}, "with": {}, "by": {}, "from": {}, "as": {}, "is": {}, "was": {}, "are": {}, "be": {}, "been": {},
	"has": {}, "have": {}, "had": {}, "do": {}, "does": {}, "did": {}, "will": {}, "would": {}, "could": {},
	"should": {}, "may": {}, "might": {}, "can": {}, "your": {}, "my": {}, "we": {}, "you": {}, "i": {}, "it": {},
	"this": {}, "that": {}, "these": {}, "those": {}, "how": {}, "why": {}, "what": {}, "when": {}, "where": {},
}

// IsStopword reports whether word is excluded from keyword extraction.
func IsStopword(word string) bool {
	_, ok := stopwords[word]
	return ok
}

// Tokenize splits text into lower-case content words. Duplicates are kept
// in order of appearance.
func Tokenize(text string) []string {
	// Whitespace and punctuation both become separators.
	normalized := strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			return r
		}
		return ' '
	}, strings.ToLower(text))

	var tokens []string
	for _, word := range strings.Fields(normalized) {
		if len(word) < minTokenLen || IsStopword(word) {
			continue
		}
		tokens = append(tokens, word)
	}
	return tokens
}
