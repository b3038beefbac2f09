package model

import "strconv"

// MatchResult is the outcome of a dictionary lookup.
// When Found is false, Word is always empty.
type MatchResult struct {
	// Word is the word-list line that matched, verbatim.
	Word string `json:"word,omitempty"`

	// Found is true when a line matched the token.
	Found bool `json:"found"`
}

// NotFound is the result of a lookup that matched nothing.
var NotFound = MatchResult{}

// Found returns a result carrying the matched word.
func Found(word string) MatchResult {
	return MatchResult{Word: word, Found: true}
}

// String returns the word quoted, or "no match".
func (m MatchResult) String() string {
	if !m.Found {
		return "no match"
	}
	return strconv.Quote(m.Word)
}
