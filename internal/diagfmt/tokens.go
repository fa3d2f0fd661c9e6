package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"axiom/internal/source"
	"axiom/internal/token"
)

// TokenOutput is the JSON shape of one lexical token.
type TokenOutput struct {
	Kind     string        `json:"kind"`
	Text     string        `json:"text"`
	Value    any           `json:"value,omitempty"`
	Location *LocationJSON `json:"location,omitempty"`
	Children []TokenOutput `json:"children,omitempty"`
}

func tokenValue(tok token.Token) any {
	switch t := tok.(type) {
	case token.Separator:
		return t.Type.String()
	case token.Symbol:
		return t.Value
	case token.Text:
		return t.Value
	case token.Integer:
		return t.Value
	case token.StringLiteral:
		return t.Value
	case token.Label:
		return t.ID.String()
	case token.Placeholder:
		return t.ID.String()
	case token.Directive:
		return t.Name
	case token.Bracket:
		return t.Type.String()
	}
	return nil
}

// BuildTokensOutput converts tokens, recursing into brackets.
func BuildTokensOutput(tokens []token.Token, set *source.UnitSet) []TokenOutput {
	out := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		s := tok.Source()
		o := TokenOutput{
			Kind:     tok.Kind().String(),
			Text:     s.Text(),
			Value:    tokenValue(tok),
			Location: makeLocation(s, set, PathModeRelative, true),
		}
		if b, ok := tok.(token.Bracket); ok {
			o.Text = ""
			o.Children = BuildTokensOutput(b.Tokens, set)
		}
		out = append(out, o)
	}
	return out
}

// FormatTokensPretty выводит токены в человекочитаемом формате,
// содержимое скобок печатается с отступом.
func FormatTokensPretty(w io.Writer, tokens []token.Token) error {
	n := 0
	return formatTokensPretty(w, tokens, 0, &n)
}

func formatTokensPretty(w io.Writer, tokens []token.Token, depth int, n *int) error {
	for _, tok := range tokens {
		*n++
		s := tok.Source()
		start := s.Position()
		end := start
		if s.Unit != nil {
			end = s.Unit.Position(s.End())
		}
		text := s.Text()
		if _, ok := tok.(token.Bracket); ok {
			text = ""
		}
		if _, err := fmt.Fprintf(w, "%4d: %s%-12s %-20s at %d:%d-%d:%d\n",
			*n, strings.Repeat("  ", depth), tok.Kind(), describeValue(tok, text),
			start.Line, start.Col, end.Line, end.Col); err != nil {
			return err
		}
		if b, ok := tok.(token.Bracket); ok {
			if err := formatTokensPretty(w, b.Tokens, depth+1, n); err != nil {
				return err
			}
		}
	}
	return nil
}

func describeValue(tok token.Token, text string) string {
	switch v := tokenValue(tok).(type) {
	case string:
		if text != "" && text != v {
			return fmt.Sprintf("%q (%s)", v, text)
		}
		return fmt.Sprintf("%q", v)
	case int64:
		return fmt.Sprintf("%d (%s)", v, text)
	default:
		return text
	}
}

// FormatTokensJSON выводит токены в JSON формате
func FormatTokensJSON(w io.Writer, tokens []token.Token, set *source.UnitSet) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildTokensOutput(tokens, set))
}
