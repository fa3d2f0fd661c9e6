package token

import "axiom/internal/lang"

// Trim removes leading and trailing separators from tokens and, recursively,
// from the children of every bracket. Trim is idempotent and never returns nil.
func Trim(tokens []Token) []Token {
	start, end := 0, len(tokens)
	for start < end && IsSeparator(tokens[start], lang.AnySeparator) {
		start++
	}
	for end > start && IsSeparator(tokens[end-1], lang.AnySeparator) {
		end--
	}
	out := make([]Token, 0, end-start)
	for _, t := range tokens[start:end] {
		if b, ok := t.(Bracket); ok {
			b.Tokens = Trim(b.Tokens)
			t = b
		}
		out = append(out, t)
	}
	return out
}
