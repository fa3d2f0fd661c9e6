package lexer

import (
	"strings"
	"unicode/utf8"

	"axiom/internal/diag"
	"axiom/internal/lang"
	"axiom/internal/source"
	"axiom/internal/token"
)

// Tokenize splits the unit text into primitive tokens: separators, symbols and text runs.
//
// Text after '#' up to the end of the line is a comment. Blank lines produce no
// tokens; one Normal separator covers everything between the last character of
// a non-blank line and the first character of the next one.
func Tokenize(unit *source.Unit) ([]token.Token, error) {
	if err := checkUTF8(unit); err != nil {
		return nil, err
	}

	text := unit.Text
	tokens := make([]token.Token, 0, len(text)/3)
	prevEnd := -1 // конец последней непустой строки

	lineStart := 0
	for lineStart <= len(text) {
		lineEnd := len(text)
		if nl := strings.IndexByte(text[lineStart:], '\n'); nl >= 0 {
			lineEnd = lineStart + nl
		}

		line := text[lineStart:lineEnd]
		if hash := strings.IndexByte(line, '#'); hash >= 0 {
			line = line[:hash]
		}

		if start, end, ok := contentBounds(line); ok {
			start += lineStart
			end += lineStart
			if prevEnd >= 0 {
				tokens = append(tokens, token.Separator{
					Type: lang.Normal,
					Span: unit.Slice(prevEnd, start),
				})
			}
			tokens = scanLine(unit, start, end, tokens)
			prevEnd = end
		}

		lineStart = lineEnd + 1
	}
	return tokens, nil
}

// scanLine appends the tokens of Unit.Text[start:end]; the range has no
// leading or trailing whitespace.
func scanLine(unit *source.Unit, start, end int, out []token.Token) []token.Token {
	c := NewCursor(unit, start, end)
	for !c.EOF() {
		m := c.Mark()
		r, _ := c.Peek()
		switch {
		case isSpace(r):
			c.BumpWhile(isSpace)
			out = append(out, token.Separator{Type: lang.Weak, Span: c.SliceFrom(m)})
		case isSymbol(r):
			c.Bump()
			span := c.SliceFrom(m)
			out = append(out, token.Symbol{Value: span.Text(), Span: span})
		default:
			c.BumpWhile(isWord)
			span := c.SliceFrom(m)
			out = append(out, token.Text{Value: span.Text(), Span: span})
		}
	}
	return out
}

func checkUTF8(unit *source.Unit) error {
	text := unit.Text
	if utf8.ValidString(text) {
		return nil
	}
	for off := 0; off < len(text); {
		r, sz := utf8.DecodeRuneInString(text[off:])
		if r == utf8.RuneError && sz == 1 {
			return diag.Errorf(diag.LexInvalidUTF8, unit.Slice(off, off+1), "invalid UTF-8 byte 0x%02x", text[off])
		}
		off += sz
	}
	return nil
}
