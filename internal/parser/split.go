package parser

import (
	"axiom/internal/token"
)

// Split cuts tokens at every top-level token accepted by isDelimiter.
// Brackets are single tokens, so delimiters nested inside them never split.
// The delimiters themselves are dropped; n delimiters yield n+1 parts.
func Split(tokens []token.Token, isDelimiter func(token.Token) bool) [][]token.Token {
	parts := make([][]token.Token, 0, 4)
	start := 0
	for i, t := range tokens {
		if isDelimiter(t) {
			parts = append(parts, tokens[start:i])
			start = i + 1
		}
	}
	return append(parts, tokens[start:])
}

// SplitList splits a comma separated list: every entry is trimmed and a
// trailing empty entry left by a trailing comma is dropped.
// An empty list yields no entries.
func SplitList(tokens []token.Token) [][]token.Token {
	parts := Split(tokens, func(t token.Token) bool { return token.IsSymbol(t, ",") })
	out := make([][]token.Token, 0, len(parts))
	for _, p := range parts {
		out = append(out, token.Trim(p))
	}
	if n := len(out); n > 0 && len(out[n-1]) == 0 {
		out = out[:n-1]
	}
	return out
}
