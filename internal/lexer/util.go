package lexer

import (
	"strings"
	"unicode"
)

// symbols are split into one-codepoint Symbol tokens.
const symbols = ";,.!?\"'\\=*+-/%$@:^|&<>()[]{}"

func isSymbol(r rune) bool {
	return r < 0x80 && strings.ContainsRune(symbols, r)
}

func isSpace(r rune) bool {
	return unicode.IsSpace(r)
}

func isWord(r rune) bool {
	return !isSpace(r) && !isSymbol(r)
}

// contentBounds returns the byte range of s without leading and trailing whitespace.
// ok is false for a blank string.
func contentBounds(s string) (start, end int, ok bool) {
	trimmed := strings.TrimLeftFunc(s, isSpace)
	if trimmed == "" {
		return 0, 0, false
	}
	start = len(s) - len(trimmed)
	end = len(strings.TrimRightFunc(s, isSpace))
	return start, end, true
}

// escapes maps the character after a backslash to its value.
var escapes = map[rune]rune{
	'0':  0,
	'n':  '\n',
	'r':  '\r',
	't':  '\t',
	'b':  '\b',
	'f':  '\f',
	'v':  '\v',
	'\'': '\'',
}

// stringEscapes extends escapes with the quote and backslash itself.
var stringEscapes = map[rune]rune{
	'"':  '"',
	'\\': '\\',
}

func lookupStringEscape(r rune) (rune, bool) {
	if v, ok := escapes[r]; ok {
		return v, true
	}
	v, ok := stringEscapes[r]
	return v, ok
}
