package lang

import "fmt"

// BracketType is the kind of a bracket pair.
type BracketType uint8

const (
	// Round is `( )`.
	Round BracketType = iota
	// Square is `[ ]`.
	Square
	// Curly is `{ }`.
	Curly
)

// Open returns the opening symbol.
func (b BracketType) Open() string {
	switch b {
	case Round:
		return "("
	case Square:
		return "["
	case Curly:
		return "{"
	default:
		return "?"
	}
}

// Close returns the closing symbol.
func (b BracketType) Close() string {
	switch b {
	case Round:
		return ")"
	case Square:
		return "]"
	case Curly:
		return "}"
	default:
		return "?"
	}
}

func (b BracketType) String() string {
	switch b {
	case Round:
		return "round"
	case Square:
		return "square"
	case Curly:
		return "curly"
	default:
		return fmt.Sprintf("BracketType(%d)", uint8(b))
	}
}

// OpeningBracket reports whether s opens a bracket and which one.
func OpeningBracket(s string) (BracketType, bool) {
	switch s {
	case "(":
		return Round, true
	case "[":
		return Square, true
	case "{":
		return Curly, true
	default:
		return 0, false
	}
}

// ClosingBracket reports whether s closes a bracket and which one.
func ClosingBracket(s string) (BracketType, bool) {
	switch s {
	case ")":
		return Round, true
	case "]":
		return Square, true
	case "}":
		return Curly, true
	default:
		return 0, false
	}
}
