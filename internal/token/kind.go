package token

import "fmt"

// Kind represents the category of a lexical token.
type Kind uint8

const (
	// Invalid is the zero kind and never produced by the lexer.
	Invalid Kind = iota
	// KindSeparator is a whitespace run, line break or `;`.
	KindSeparator
	// KindSymbol is a single punctuation codepoint.
	KindSymbol
	// KindText is a maximal run of non-symbol, non-space codepoints.
	KindText
	// KindInteger is a folded character or integer literal.
	KindInteger
	// KindString is a folded string literal.
	KindString
	// KindLabel is `@name`.
	KindLabel
	// KindPlaceholder is `$name`.
	KindPlaceholder
	// KindDirective is `!name`.
	KindDirective
	// KindBracket is a matched bracket pair and its children.
	KindBracket
)

var kindNames = [...]string{
	Invalid:         "Invalid",
	KindSeparator:   "Separator",
	KindSymbol:      "Symbol",
	KindText:        "Text",
	KindInteger:     "Integer",
	KindString:      "StringLiteral",
	KindLabel:       "Label",
	KindPlaceholder: "Placeholder",
	KindDirective:   "Directive",
	KindBracket:     "Bracket",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}
