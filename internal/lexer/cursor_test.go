package lexer

import (
	"testing"

	"axiom/internal/source"
)

func TestCursorRunes(t *testing.T) {
	unit := source.NewUnit("test", "aé\U0001D11Eb")
	c := NewCursor(unit, 0, len(unit.Text))

	var got []rune
	for !c.EOF() {
		got = append(got, c.Bump())
	}
	want := []rune{'a', 'é', '\U0001D11E', 'b'}
	if len(got) != len(want) {
		t.Fatalf("read %d runes, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("rune %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestCursorMarkAndLimit(t *testing.T) {
	unit := source.NewUnit("test", "abc  def")
	c := NewCursor(unit, 0, 5)

	m := c.Mark()
	c.BumpWhile(isWord)
	if s := c.SliceFrom(m); s.Text() != "abc" {
		t.Fatalf("SliceFrom = %q", s.Text())
	}
	c.BumpWhile(isSpace)
	if !c.EOF() || c.Off != 5 {
		t.Fatalf("cursor must stop at the limit, Off=%d", c.Off)
	}
	if r, sz := c.Peek(); sz != 0 {
		t.Fatalf("Peek past limit = %q, %d", r, sz)
	}
	c.Reset(m)
	if c.Off != 0 {
		t.Fatalf("Reset did not rewind")
	}
}

func TestContentBounds(t *testing.T) {
	tests := []struct {
		in         string
		start, end int
		ok         bool
	}{
		{"  ab c \t", 2, 6, true},
		{"x", 0, 1, true},
		{" \t ", 0, 0, false},
		{"", 0, 0, false},
	}
	for _, tt := range tests {
		start, end, ok := contentBounds(tt.in)
		if start != tt.start || end != tt.end || ok != tt.ok {
			t.Fatalf("contentBounds(%q) = %d, %d, %v", tt.in, start, end, ok)
		}
	}
}
