package lang

import (
	"fmt"
	"strings"
)

// SeparatorType is the severity of a separator.
type SeparatorType uint8

const (
	// NoSeparator is the implicit level of a token that is not a separator.
	NoSeparator SeparatorType = iota
	// Weak is a whitespace run inside a line.
	Weak
	// Normal is a line break, including blank lines.
	Normal
	// Strong is an explicit statement terminator `;`.
	Strong
)

func (s SeparatorType) String() string {
	switch s {
	case NoSeparator:
		return "none"
	case Weak:
		return "weak"
	case Normal:
		return "normal"
	case Strong:
		return "strong"
	default:
		return fmt.Sprintf("SeparatorType(%d)", uint8(s))
	}
}

// LevelSet is a set of separator severities.
type LevelSet uint8

// Levels builds a set from the given severities.
func Levels(levels ...SeparatorType) LevelSet {
	var set LevelSet
	for _, l := range levels {
		set |= 1 << l
	}
	return set
}

// AtLeast returns the set of severities >= min, up to Strong.
func AtLeast(minLevel SeparatorType) LevelSet {
	var set LevelSet
	for l := minLevel; l <= Strong; l++ {
		set |= 1 << l
	}
	return set
}

var (
	// OptionalWeak accepts a weak separator or none at all.
	OptionalWeak = Levels(NoSeparator, Weak)
	// AnySeparator accepts every real separator.
	AnySeparator = Levels(Weak, Normal, Strong)
	// Statement accepts separators that end a statement.
	Statement = Levels(Normal, Strong)
)

// Has reports whether level belongs to the set.
func (set LevelSet) Has(level SeparatorType) bool {
	return set&(1<<level) != 0
}

func (set LevelSet) String() string {
	parts := make([]string, 0, 4)
	for l := NoSeparator; l <= Strong; l++ {
		if set.Has(l) {
			parts = append(parts, l.String())
		}
	}
	return "{" + strings.Join(parts, ",") + "}"
}
