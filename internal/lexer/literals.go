package lexer

import (
	"strings"
	"unicode/utf8"

	"axiom/internal/diag"
	"axiom/internal/lang"
	"axiom/internal/source"
	"axiom/internal/token"
)

// FoldCharacters folds `'x'` into an Integer holding the codepoint.
// Regions that belong to string literals are left for FoldStrings.
var FoldCharacters = Pass{Name: "fold-characters", Apply: foldCharacters}

// FoldStrings folds `"..."` into a StringLiteral.
var FoldStrings = Pass{Name: "fold-strings", Apply: foldStrings}

func foldCharacters(tokens []token.Token) ([]token.Token, error) {
	out := make([]token.Token, 0, len(tokens))
	for i := 0; i < len(tokens); i++ {
		t := tokens[i]
		switch {
		case token.IsSymbol(t, `"`):
			end, _ := quotedEnd(tokens, i, `"`)
			out = append(out, tokens[i:min(end+1, len(tokens))]...)
			i = end
		case token.IsSymbol(t, "'"):
			end, ok := quotedEnd(tokens, i, "'")
			if !ok {
				return nil, diag.Errorf(diag.LexCharUnterminated, t.Source(), "unterminated character literal")
			}
			lit, err := characterLiteral(tokens[i].Source(), tokens[end].Source())
			if err != nil {
				return nil, err
			}
			out = append(out, lit)
			i = end
		default:
			out = append(out, t)
		}
	}
	return out, nil
}

func foldStrings(tokens []token.Token) ([]token.Token, error) {
	out := make([]token.Token, 0, len(tokens))
	for i := 0; i < len(tokens); i++ {
		t := tokens[i]
		if !token.IsSymbol(t, `"`) {
			out = append(out, t)
			continue
		}
		end, ok := quotedEnd(tokens, i, `"`)
		if !ok {
			if end < len(tokens) {
				return nil, diag.Errorf(diag.LexStringNewline, tokens[end].Source(), "line break inside string literal").
					WithNote(t.Source(), "string starts here")
			}
			return nil, diag.Errorf(diag.LexStringUnterminated, t.Source(), "unterminated string literal")
		}
		open, closing := t.Source(), tokens[end].Source()
		out = append(out, token.StringLiteral{
			Value: unescapeString(between(open, closing)),
			Span:  source.Join(open, closing),
		})
		i = end
	}
	return out, nil
}

// quotedEnd finds the closing quote of the literal opened at tokens[open].
// A backslash symbol escapes the token after it. The search stops at a Normal
// separator; ok is false when no closing quote was found, and end is then the
// index of the stopping separator or len(tokens).
func quotedEnd(tokens []token.Token, open int, quote string) (end int, ok bool) {
	for i := open + 1; i < len(tokens); i++ {
		t := tokens[i]
		switch {
		case token.IsSymbol(t, `\`):
			i++
		case token.IsSymbol(t, quote):
			return i, true
		case token.IsSeparator(t, lang.Levels(lang.Normal)):
			return i, false
		}
	}
	return len(tokens), false
}

// between returns the unit text strictly between two slices.
func between(open, closing source.Slice) string {
	return open.Unit.Text[open.End():closing.Index]
}

func characterLiteral(open, closing source.Slice) (token.Token, error) {
	span := source.Join(open, closing)
	content := between(open, closing)

	switch n := utf8.RuneCountInString(content); {
	case n == 0:
		return nil, diag.Errorf(diag.LexCharEmpty, span, "empty character literal")
	case n == 1 && content != `\`:
		r, _ := utf8.DecodeRuneInString(content)
		return token.Integer{Value: int64(r), Span: span}, nil
	case n == 2 && content[0] == '\\':
		esc, _ := utf8.DecodeRuneInString(content[1:])
		v, ok := escapes[esc]
		if !ok {
			return nil, diag.Errorf(diag.LexUnknownEscape, span, "unknown escape sequence %q", content)
		}
		return token.Integer{Value: int64(v), Span: span}, nil
	case content[0] == '\\':
		return nil, diag.Errorf(diag.LexUnknownEscape, span, "unknown escape sequence %q", content)
	default:
		return nil, diag.Errorf(diag.LexCharTooLong, span, "character literal %q holds %d codepoints", content, n)
	}
}

// unescapeString applies string escapes. Unknown escapes are kept verbatim.
func unescapeString(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		r, sz := utf8.DecodeRuneInString(s[i:])
		i += sz
		if r != '\\' || i >= len(s) {
			b.WriteRune(r)
			continue
		}
		next, nsz := utf8.DecodeRuneInString(s[i:])
		if v, ok := lookupStringEscape(next); ok {
			b.WriteRune(v)
		} else {
			b.WriteRune('\\')
			b.WriteRune(next)
		}
		i += nsz
	}
	return b.String()
}
