package compositor_test

import (
	"context"
	"strings"
	"testing"

	"axiom/internal/compositor"
	"axiom/internal/diag"
	"axiom/internal/lexer"
	"axiom/internal/source"
)

func describe(tokens []compositor.Token) []string {
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if b, ok := t.(compositor.Bracket); ok {
			out = append(out, b.Type.Open()+strings.Join(describe(b.Tokens), " ")+b.Type.Close())
			continue
		}
		out = append(out, t.String())
	}
	return out
}

func parseWith(input string, opts compositor.Options) ([]compositor.Token, error) {
	tokens, err := lexer.Lex(context.Background(), source.NewUnit("test", input))
	if err != nil {
		return nil, err
	}
	return compositor.ParseWith(context.Background(), tokens, opts)
}

func parse(t *testing.T, input string) []compositor.Token {
	t.Helper()
	out, err := parseWith(input, compositor.Options{})
	if err != nil {
		t.Fatalf("parse(%q): %v", input, err)
	}
	return out
}

// single parses input that must produce exactly one token of type T.
func single[T compositor.Token](t *testing.T, input string) T {
	t.Helper()
	out := parse(t, input)
	if len(out) != 1 {
		t.Fatalf("parse(%q) = %v, want one token", input, describe(out))
	}
	v, ok := out[0].(T)
	if !ok {
		t.Fatalf("parse(%q) = %T, want %T", input, out[0], v)
	}
	return v
}

func expectError(t *testing.T, err error, code diag.Code, offset int) {
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
}
