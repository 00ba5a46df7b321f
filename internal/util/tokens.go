// ABOUTME: Word tokenization shared by the intent classifier and the local embedder
// ABOUTME: Splits lower-cased text on non-word runes, keeping inner apostrophes
package util

import (
	"strings"
	"unicode"
)

// Tokenize lower-cases s and splits it into whole words.
// Apostrophes inside words are kept so "don't" stays one token.
func Tokenize(s string) []string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\'' && r != '’'
	})

	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.ReplaceAll(f, "’", "'")
		f = strings.Trim(f, "'")
		if f != "" {
			tokens = append(tokens, f)
		}
	}
	return tokens
}
