package testkit

import (
	"context"
	"strings"
	"testing"

	"axiom/internal/compositor"
	"axiom/internal/lang"
	"axiom/internal/lexer"
	"axiom/internal/source"
	"axiom/internal/token"
)

func TestInvariantsHoldForLexerOutput(t *testing.T) {
	inputs := []string{
		"a # not code\n   b",
		"!insert (a, b = 2) -> { add a, b } (1, b : 3,)",
		"( mov r0, [r1] ; 'x' )\n\"s\"",
	}
	for _, input := range inputs {
		unit := source.NewUnit("test", input)
		tokens, err := lexer.Lex(context.Background(), unit)
		if err != nil {
			t.Fatalf("Lex(%q): %v", input, err)
		}
		if err := CheckTokenInvariants(tokens, unit); err != nil {
			t.Fatalf("%q: %v", input, err)
		}
		tree, err := compositor.Parse(tokens)
		if err != nil {
			t.Fatalf("Parse(%q): %v", input, err)
		}
		if err := CheckTreeInvariants(tree, unit); err != nil {
			t.Fatalf("%q tree: %v", input, err)
		}
	}
}

func TestInvariantViolations(t *testing.T) {
	unit := source.NewUnit("test", "abc def")
	other := source.NewUnit("other", "abc def")
	tests := []struct {
		name   string
		tokens []token.Token
		want   string
	}{
		{"empty", []token.Token{token.Text{Value: "", Span: unit.Slice(1, 1)}}, "empty span"},
		{"beyond", []token.Token{token.Text{Value: "x", Span: unit.Slice(5, 9)}}, "beyond unit"},
		{"foreign", []token.Token{token.Text{Value: "abc", Span: other.Slice(0, 3)}}, "another unit"},
		{"overlap", []token.Token{
			token.Text{Value: "abc", Span: unit.Slice(0, 3)},
			token.Text{Value: "c", Span: unit.Slice(2, 3)},
		}, "overlaps"},
		{"outside bracket", []token.Token{token.Bracket{
			Type:   lang.Round,
			Open:   unit.Slice(3, 4),
			Close:  unit.Slice(6, 7),
			Tokens: []token.Token{token.Text{Value: "abc", Span: unit.Slice(0, 3)}},
		}}, "outside bracket"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckTokenInvariants(tt.tokens, unit)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error = %v, want %q", err, tt.want)
			}
		})
	}
}
