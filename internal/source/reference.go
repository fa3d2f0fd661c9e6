package source

import (
	"fmt"
)

// Reference points at the source text that produced a language element.
// It is either a Slice of a unit or a Generated text.
type Reference interface {
	// Text returns the referenced source text.
	Text() string
	String() string
	isReference()
}

// Slice references Length bytes of Unit.Text starting at byte offset Index.
// Index and Length count bytes of the UTF-8 text, not codepoints; use
// Unit.Position for line and codepoint column.
type Slice struct {
	Unit   *Unit
	Index  int
	Length int
}

func (Slice) isReference() {}

// Text returns the referenced text, clamped to the unit.
func (s Slice) Text() string {
	if s.Unit == nil {
		return ""
	}
	start := min(s.Index, len(s.Unit.Text))
	end := min(s.Index+s.Length, len(s.Unit.Text))
	return s.Unit.Text[start:end]
}

// End returns the exclusive end offset.
func (s Slice) End() int {
	return s.Index + s.Length
}

// IsZero reports whether the slice references no unit.
func (s Slice) IsZero() bool {
	return s.Unit == nil
}

// Position returns the 1-based line and column of the first referenced character.
func (s Slice) Position() LineCol {
	if s.Unit == nil {
		return LineCol{}
	}
	return s.Unit.Position(s.Index)
}

// Line returns the 1-based line of the slice start.
func (s Slice) Line() int {
	return int(s.Position().Line)
}

// Column returns the 1-based codepoint column of the slice start.
func (s Slice) Column() int {
	return int(s.Position().Col)
}

// Cover returns the smallest slice containing both s and other.
// Slices of different units are not merged.
func (s Slice) Cover(other Slice) Slice {
	if s.Unit != other.Unit {
		return s
	}
	start := min(s.Index, other.Index)
	end := max(s.End(), other.End())
	return Slice{Unit: s.Unit, Index: start, Length: end - start}
}

func (s Slice) String() string {
	if s.Unit == nil {
		return "<no source>"
	}
	pos := s.Position()
	return fmt.Sprintf("%q at %d:%d in %s", s.Text(), pos.Line, pos.Col, s.Unit.ID)
}

// Generated references synthesised text that has no unit.
type Generated struct {
	Content   string
	Generator string
}

func (Generated) isReference() {}

// Text returns the generated content.
func (g Generated) Text() string {
	return g.Content
}

func (g Generated) String() string {
	return fmt.Sprintf("%q generated by %s", g.Content, g.Generator)
}

// Join returns the minimal slice spanning all given slices.
// All slices must belong to the same unit; an empty list is a contract violation.
func Join(slices ...Slice) Slice {
	if len(slices) == 0 {
		panic("source: unable to join empty slice list")
	}
	out := slices[0]
	for _, s := range slices[1:] {
		if s.Unit != out.Unit {
			panic(fmt.Errorf("source: unable to join slices of units %q and %q", unitID(out.Unit), unitID(s.Unit)))
		}
		out = out.Cover(s)
	}
	return out
}

func unitID(u *Unit) string {
	if u == nil {
		return "<nil>"
	}
	return u.ID
}
