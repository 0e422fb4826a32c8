// Package tokenize implements the Text & Token Pipeline from
// spec.md §4.3: lowercase, split into maximal runs of [a-z0-9]+,
// and drop stop-words and length-1 tokens.
package tokenize

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var tokenPattern = regexp.MustCompile(`[a-z0-9]+`)

// Tokens splits lowercased text into retained tokens, in order. The
// returned slice's length is the page's word count for longest-page
// tracking (spec.md §4.3).
func Tokens(text string) []string {
	lower := strings.ToLower(text)
	matches := tokenPattern.FindAllString(lower, -1)

	out := make([]string, 0, len(matches))
	for _, tok := range matches {
		if len(tok) <= 1 {
			continue
		}
		if stopWords[tok] {
			continue
		}
		out = append(out, tok)
	}
	return out
}

// DecodeUTF8 decodes b as UTF-8, replacing malformed byte sequences
// with the Unicode replacement character, per spec.md §4.3's
// "decode as UTF-8 with malformed bytes replaced."
func DecodeUTF8(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}

	var sb strings.Builder
	sb.Grow(len(b))
	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		sb.WriteRune(r)
		b = b[size:]
	}
	return sb.String()
}
