package source

import (
	"fmt"
	"strings"

	"fortio.org/safecast"
	"github.com/cespare/xxhash/v2"
)

// Unit is a single compilation unit: an identifier and its raw text.
// A Unit is never mutated after construction; tokens and references
// hold pointers to it.
type Unit struct {
	ID    string
	Text  string
	Hash  uint64
	Flags UnitFlags

	lineIdx []int // byte offsets of every '\n' in Text
}

// NewUnit creates a unit with the given id and text.
func NewUnit(id, text string) *Unit {
	return newUnit(id, text, 0)
}

func newUnit(id, text string, flags UnitFlags) *Unit {
	return &Unit{
		ID:      id,
		Text:    text,
		Hash:    xxhash.Sum64String(text),
		Flags:   flags,
		lineIdx: buildLineIndex(text),
	}
}

// Position converts a byte offset into a 1-based line and codepoint column.
func (u *Unit) Position(off int) LineCol {
	if off < 0 {
		off = 0
	}
	if off > len(u.Text) {
		off = len(u.Text)
	}
	line, lineStart := toLine(u.lineIdx, off)
	col := utf8Count(u.Text[lineStart:off]) + 1

	uline, err := safecast.Conv[uint32](line)
	if err != nil {
		panic(fmt.Errorf("line overflow: %w", err))
	}
	ucol, err := safecast.Conv[uint32](col)
	if err != nil {
		panic(fmt.Errorf("column overflow: %w", err))
	}
	return LineCol{Line: uline, Col: ucol}
}

// Line returns the text of the given 1-based line without its terminator.
// Out of range lines yield "".
func (u *Unit) Line(lineNum int) string {
	if lineNum <= 0 || lineNum > len(u.lineIdx)+1 {
		return ""
	}
	start := 0
	if lineNum > 1 {
		start = u.lineIdx[lineNum-2] + 1
	}
	end := len(u.Text)
	if lineNum-1 < len(u.lineIdx) {
		end = u.lineIdx[lineNum-1]
	}
	if start >= end {
		return ""
	}
	return strings.TrimSuffix(u.Text[start:end], "\r")
}

// LineCount returns the number of lines in the unit.
func (u *Unit) LineCount() int {
	return len(u.lineIdx) + 1
}

// Slice returns a reference to Text[start:end].
func (u *Unit) Slice(start, end int) Slice {
	return Slice{Unit: u, Index: start, Length: end - start}
}

func (u *Unit) String() string {
	return u.ID
}
