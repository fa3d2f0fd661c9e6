package lexer_test

import (
	"context"
	"strings"
	"testing"

	"axiom/internal/diag"
	"axiom/internal/lexer"
	"axiom/internal/source"
	"axiom/internal/token"
)

// describe renders tokens compactly; brackets are rendered with their children.
func describe(tokens []token.Token) []string {
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if b, ok := t.(token.Bracket); ok {
			out = append(out, b.Type.Open()+strings.Join(describe(b.Tokens), " ")+b.Type.Close())
			continue
		}
		out = append(out, t.String())
	}
	return out
}

func tokenize(t *testing.T, input string) []token.Token {
	t.Helper()
	tokens, err := lexer.Tokenize(source.NewUnit("test", input))
	if err != nil {
		t.Fatalf("Tokenize(%q): %v", input, err)
	}
	return tokens
}

func lex(t *testing.T, input string) []token.Token {
	t.Helper()
	tokens, err := lexer.Lex(context.Background(), source.NewUnit("test", input))
	if err != nil {
		t.Fatalf("Lex(%q): %v", input, err)
	}
	return tokens
}

// expectError checks the code and the byte offset the error points at.
func expectError(t *testing.T, err error, code diag.Code, offset int) *diag.Error {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s, got no error", code.ID())
	}
	d, ok := diag.As(err)
	if !ok {
		t.Fatalf("expected *diag.Error, got %T: %v", err, err)
	}
	if d.Code != code {
		t.Fatalf("expected %s, got %s: %v", code.ID(), d.Code.ID(), err)
	}
	s, ok := d.Slice()
	if !ok {
		t.Fatalf("error %v has no source slice", err)
	}
	if s.Index != offset {
		t.Fatalf("expected error at offset %d, got %d (%v)", offset, s.Index, err)
	}
	return d
}
