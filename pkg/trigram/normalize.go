package trigram

import (
	"strings"
)

// Clean lowercases text, collapses every run of whitespace into a single
// space and trims both ends. Clean(Clean(s)) == Clean(s).
func Clean(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(text)), " ")
}

// Tokenize splits cleaned text on whitespace into word tokens. Punctuation is
// not stripped, so "sat." and "sat" are different tokens. Empty or
// whitespace-only input yields an empty slice.
func Tokenize(cleaned string) []Token {
	fields := strings.Fields(cleaned)
	tokens := make([]Token, 0, len(fields))
	for _, f := range fields {
		tokens = append(tokens, Word(f))
	}
	return tokens
}
