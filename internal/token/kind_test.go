package token_test

import (
	"testing"

	"axiom/internal/lang"
	"axiom/internal/source"
	"axiom/internal/token"
)

func TestKinds(t *testing.T) {
	tests := []struct {
		tok  token.Token
		kind token.Kind
		name string
	}{
		{token.Separator{Type: lang.Weak}, token.KindSeparator, "Separator"},
		{token.Symbol{Value: "+"}, token.KindSymbol, "Symbol"},
		{token.Text{Value: "a"}, token.KindText, "Text"},
		{token.Integer{Value: 1}, token.KindInteger, "Integer"},
		{token.StringLiteral{Value: "s"}, token.KindString, "StringLiteral"},
		{token.Label{ID: lang.NamespacedId{"l"}}, token.KindLabel, "Label"},
		{token.Placeholder{ID: lang.NamespacedId{"p"}}, token.KindPlaceholder, "Placeholder"},
		{token.Directive{Name: "at"}, token.KindDirective, "Directive"},
		{token.Bracket{Type: lang.Round}, token.KindBracket, "Bracket"},
	}
	for _, tt := range tests {
		if got := tt.tok.Kind(); got != tt.kind {
			t.Fatalf("%v: Kind() = %v, want %v", tt.tok, got, tt.kind)
		}
		if tt.kind.String() != tt.name {
			t.Fatalf("%d: String() = %q, want %q", tt.kind, tt.kind.String(), tt.name)
		}
	}
	if got := token.Kind(200).String(); got != "Kind(200)" {
		t.Fatalf("unknown kind String() = %q", got)
	}
}

func TestBracketSourceIsDerived(t *testing.T) {
	unit := source.NewUnit("test", "(a b)")
	b := token.Bracket{
		Type:  lang.Round,
		Open:  unit.Slice(0, 1),
		Close: unit.Slice(4, 5),
		Tokens: []token.Token{
			token.Text{Value: "a", Span: unit.Slice(1, 2)},
			token.Separator{Type: lang.Weak, Span: unit.Slice(2, 3)},
			token.Text{Value: "b", Span: unit.Slice(3, 4)},
		},
	}
	if got := b.Source().Text(); got != "(a b)" {
		t.Fatalf("Source().Text() = %q", got)
	}
	if got := token.SourceOf(b.Tokens).Text(); got != "a b" {
		t.Fatalf("SourceOf(children) = %q", got)
	}
}

func TestPredicatesAndDepth(t *testing.T) {
	sep := token.Separator{Type: lang.Normal}
	if !token.IsSeparator(sep, lang.Statement) || token.IsSeparator(sep, lang.Levels(lang.Weak)) {
		t.Fatalf("IsSeparator level filtering is wrong")
	}
	if token.IsSeparator(token.Text{Value: ";"}, lang.AnySeparator) {
		t.Fatalf("text must not be a separator")
	}
	if !token.IsSymbol(token.Symbol{Value: ":"}, ":") || token.IsSymbol(token.Text{Value: ":"}, ":") {
		t.Fatalf("IsSymbol must match symbols only")
	}

	nested := []token.Token{
		token.Bracket{Tokens: []token.Token{
			token.Bracket{Tokens: []token.Token{token.Text{Value: "x"}}},
		}},
		token.Bracket{},
	}
	if got := token.Depth(nested); got != 2 {
		t.Fatalf("Depth() = %d, want 2", got)
	}
	if got := token.Depth([]token.Token{token.Text{}}); got != 0 {
		t.Fatalf("Depth(flat) = %d, want 0", got)
	}
}
