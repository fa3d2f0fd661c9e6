package token

import (
	"fmt"
	"strconv"

	"axiom/internal/lang"
	"axiom/internal/source"
)

// Token is a lexical token. The set of implementations is closed.
type Token interface {
	// Source returns the unit slice the token was built from.
	Source() source.Slice
	Kind() Kind
	String() string
	isToken()
}

// Separator is whitespace, a line break or an explicit terminator.
type Separator struct {
	Type lang.SeparatorType
	Span source.Slice
}

// Symbol is a single punctuation codepoint.
type Symbol struct {
	Value string
	Span  source.Slice
}

// Text is a word, possibly a merged `a::b` chain.
type Text struct {
	Value string
	Span  source.Slice
}

// Integer is a numeric or character literal.
type Integer struct {
	Value int64
	Span  source.Slice
}

// StringLiteral is a string literal with escapes applied.
type StringLiteral struct {
	Value string
	Span  source.Slice
}

// Label is `@id`.
type Label struct {
	ID   lang.NamespacedId
	Span source.Slice
}

// Placeholder is `$id`.
type Placeholder struct {
	ID   lang.NamespacedId
	Span source.Slice
}

// Directive is `!name`.
type Directive struct {
	Name string
	Span source.Slice
}

// Bracket is a matched bracket pair with the tokens between them.
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
func (Directive) isToken()     {}
func (Bracket) isToken()       {}

func (t Separator) Source() source.Slice     { return t.Span }
func (t Symbol) Source() source.Slice        { return t.Span }
func (t Text) Source() source.Slice          { return t.Span }
func (t Integer) Source() source.Slice       { return t.Span }
func (t StringLiteral) Source() source.Slice { return t.Span }
func (t Label) Source() source.Slice         { return t.Span }
func (t Placeholder) Source() source.Slice   { return t.Span }
func (t Directive) Source() source.Slice     { return t.Span }

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

func (Separator) Kind() Kind     { return KindSeparator }
func (Symbol) Kind() Kind        { return KindSymbol }
func (Text) Kind() Kind          { return KindText }
func (Integer) Kind() Kind       { return KindInteger }
func (StringLiteral) Kind() Kind { return KindString }
func (Label) Kind() Kind         { return KindLabel }
func (Placeholder) Kind() Kind   { return KindPlaceholder }
func (Directive) Kind() Kind     { return KindDirective }
func (Bracket) Kind() Kind       { return KindBracket }

func (t Separator) String() string     { return fmt.Sprintf("Separator(%s)", t.Type) }
func (t Symbol) String() string        { return fmt.Sprintf("Symbol(%q)", t.Value) }
func (t Text) String() string          { return fmt.Sprintf("Text(%q)", t.Value) }
func (t Integer) String() string       { return "Integer(" + strconv.FormatInt(t.Value, 10) + ")" }
func (t StringLiteral) String() string { return fmt.Sprintf("StringLiteral(%q)", t.Value) }
func (t Label) String() string         { return fmt.Sprintf("Label(%s)", t.ID) }
func (t Placeholder) String() string   { return fmt.Sprintf("Placeholder(%s)", t.ID) }
func (t Directive) String() string     { return fmt.Sprintf("Directive(%s)", t.Name) }

func (t Bracket) String() string {
	return fmt.Sprintf("Bracket(%s, %d tokens)", t.Type, len(t.Tokens))
}

// IsSeparator reports whether t is a separator, optionally restricted to levels.
func IsSeparator(t Token, levels lang.LevelSet) bool {
	sep, ok := t.(Separator)
	return ok && levels.Has(sep.Type)
}

// IsSymbol reports whether t is the symbol s.
func IsSymbol(t Token, s string) bool {
	sym, ok := t.(Symbol)
	return ok && sym.Value == s
}

// Spans returns the source slices of tokens in order.
func Spans(tokens []Token) []source.Slice {
	out := make([]source.Slice, len(tokens))
	for i, t := range tokens {
		out[i] = t.Source()
	}
	return out
}

// SourceOf joins the spans of a non-empty token list.
func SourceOf(tokens []Token) source.Slice {
	return source.Join(Spans(tokens)...)
}

// Depth returns the maximal bracket nesting depth of tokens.
func Depth(tokens []Token) int {
	depth := 0
	for _, t := range tokens {
		if b, ok := t.(Bracket); ok {
			depth = max(depth, 1+Depth(b.Tokens))
		}
	}
	return depth
}
