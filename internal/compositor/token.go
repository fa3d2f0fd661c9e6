package compositor

import (
	"fmt"
	"strconv"

	"axiom/internal/lang"
	"axiom/internal/source"
)

// Token is a node of the compositor tree. The set of implementations is closed.
type Token interface {
	Source() source.Slice
	String() string
	isToken()
}

// Separator mirrors token.Separator.
type Separator struct {
	Type lang.SeparatorType
	Span source.Slice
}

// Symbol mirrors token.Symbol.
type Symbol struct {
	Value string
	Span  source.Slice
}

// Text mirrors token.Text.
type Text struct {
	Value string
	Span  source.Slice
}

// Integer mirrors token.Integer.
type Integer struct {
	Value int64
	Span  source.Slice
}

// StringLiteral mirrors token.StringLiteral.
type StringLiteral struct {
	Value string
	Span  source.Slice
}

// Label mirrors token.Label.
type Label struct {
	ID   lang.NamespacedId
	Span source.Slice
}

// Placeholder mirrors token.Placeholder.
type Placeholder struct {
	ID   lang.NamespacedId
	Span source.Slice
}

// Bracket holds compositor children of a bracket pair.
type Bracket struct {
	Type   lang.BracketType
	Tokens []Token
	Open   source.Slice
	Close  source.Slice
}

func (Separator) isToken()     {}
func (Symbol) isToken()        {}
func (Text) isToken()          {}
func (Integer) isToken()       {}
func (StringLiteral) isToken() {}
func (Label) isToken()         {}
func (Placeholder) isToken()   {}
func (Bracket) isToken()       {}

func (t Separator) Source() source.Slice     { return t.Span }
func (t Symbol) Source() source.Slice        { return t.Span }
func (t Text) Source() source.Slice          { return t.Span }
func (t Integer) Source() source.Slice       { return t.Span }
func (t StringLiteral) Source() source.Slice { return t.Span }
func (t Label) Source() source.Slice         { return t.Span }
func (t Placeholder) Source() source.Slice   { return t.Span }

// Source spans from the opening to the closing symbol.
func (t Bracket) Source() source.Slice {
	if t.Open.IsZero() {
		return t.Close
	}
	if t.Close.IsZero() {
		return t.Open
	}
	return source.Join(t.Open, t.Close)
}

func (t Separator) String() string     { return fmt.Sprintf("Separator(%s)", t.Type) }
func (t Symbol) String() string        { return fmt.Sprintf("Symbol(%q)", t.Value) }
func (t Text) String() string          { return fmt.Sprintf("Text(%q)", t.Value) }
func (t Integer) String() string       { return "Integer(" + strconv.FormatInt(t.Value, 10) + ")" }
func (t StringLiteral) String() string { return fmt.Sprintf("StringLiteral(%q)", t.Value) }
func (t Label) String() string         { return fmt.Sprintf("Label(%s)", t.ID) }
func (t Placeholder) String() string   { return fmt.Sprintf("Placeholder(%s)", t.ID) }

func (t Bracket) String() string {
	return fmt.Sprintf("Bracket(%s, %d tokens)", t.Type, len(t.Tokens))
}
