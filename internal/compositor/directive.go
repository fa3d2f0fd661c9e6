package compositor

import (
	"fmt"
	"strings"

	"axiom/internal/lang"
	"axiom/internal/source"
	"axiom/internal/token"
)

// Directive is a structured `!name ...` node.
type Directive interface {
	Token
	Name() string
}

// Include is `!include "unit"` or `!include $unit`.
type Include struct {
	Target ParamValue[string]
	Span   source.Slice
}

// Define is `!define id value...`.
type Define struct {
	ID    lang.NamespacedId
	Value []Token
	Span  source.Slice
}

// Insert is `!insert template (args)`.
type Insert struct {
	Template  ParamValue[TemplateHeader]
	Arguments TemplatePrototype
	Span      source.Slice
}

// Region is `!region`.
type Region struct{ Span source.Slice }

// At is `!at address`.
type At struct {
	Address ParamValue[uint64]
	Span    source.Slice
}

// In is `!in $region`.
type In struct {
	Region ParamValue[lang.NamespacedId]
	Span   source.Slice
}

// If is `!if condition...`; the condition stays lexical for the expansion engine.
type If struct {
	Condition []token.Token
	Span      source.Slice
}

// Else is `!else`.
type Else struct{ Span source.Slice }

// Repeated is `!repeated count`.
type Repeated struct {
	Count ParamValue[uint64]
	Span  source.Slice
}

// Inline is `!inline`.
type Inline struct{ Span source.Slice }

// Private is `!private`.
type Private struct{ Span source.Slice }

// Public is `!public` with an optional placeholder target.
type Public struct {
	// Target is nil when the directive has no target.
	Target ParamValue[lang.NamespacedId]
	Span   source.Slice
}

// Global is `!global`.
type Global struct{ Span source.Slice }

func (Include) Name() string  { return "include" }
func (Define) Name() string   { return "define" }
func (Insert) Name() string   { return "insert" }
func (Region) Name() string   { return "region" }
func (At) Name() string       { return "at" }
func (In) Name() string       { return "in" }
func (If) Name() string       { return "if" }
func (Else) Name() string     { return "else" }
func (Repeated) Name() string { return "repeated" }
func (Inline) Name() string   { return "inline" }
func (Private) Name() string  { return "private" }
func (Public) Name() string   { return "public" }
func (Global) Name() string   { return "global" }

func (Include) isToken()  {}
func (Define) isToken()   {}
func (Insert) isToken()   {}
func (Region) isToken()   {}
func (At) isToken()       {}
func (In) isToken()       {}
func (If) isToken()       {}
func (Else) isToken()     {}
func (Repeated) isToken() {}
func (Inline) isToken()   {}
func (Private) isToken()  {}
func (Public) isToken()   {}
func (Global) isToken()   {}

func (d Include) Source() source.Slice  { return d.Span }
func (d Define) Source() source.Slice   { return d.Span }
func (d Insert) Source() source.Slice   { return d.Span }
func (d Region) Source() source.Slice   { return d.Span }
func (d At) Source() source.Slice       { return d.Span }
func (d In) Source() source.Slice       { return d.Span }
func (d If) Source() source.Slice       { return d.Span }
func (d Else) Source() source.Slice     { return d.Span }
func (d Repeated) Source() source.Slice { return d.Span }
func (d Inline) Source() source.Slice   { return d.Span }
func (d Private) Source() source.Slice  { return d.Span }
func (d Public) Source() source.Slice   { return d.Span }
func (d Global) Source() source.Slice   { return d.Span }

func (d Include) String() string { return fmt.Sprintf("Include(%s)", d.Target) }
func (d Define) String() string  { return fmt.Sprintf("Define(%s, %d tokens)", d.ID, len(d.Value)) }
func (d Insert) String() string {
	return fmt.Sprintf("Insert(%s, %d positional, %d keyword)", d.Template, len(d.Arguments.Positional), len(d.Arguments.Order))
}
func (Region) String() string     { return "Region" }
func (d At) String() string       { return fmt.Sprintf("At(%s)", d.Address) }
func (d In) String() string       { return fmt.Sprintf("In(%s)", d.Region) }
func (d If) String() string       { return fmt.Sprintf("If(%s)", d.Text()) }
func (Else) String() string       { return "Else" }
func (d Repeated) String() string { return fmt.Sprintf("Repeated(%s)", d.Count) }
func (Inline) String() string     { return "Inline" }
func (Private) String() string    { return "Private" }
func (Global) String() string     { return "Global" }

func (d Public) String() string {
	if d.Target == nil {
		return "Public"
	}
	return fmt.Sprintf("Public(%s)", d.Target)
}

// Text returns the condition as written.
func (d If) Text() string {
	return rawText(d.Condition)
}

func rawText(tokens []token.Token) string {
	var b strings.Builder
	for _, t := range tokens {
		b.WriteString(t.Source().Text())
	}
	return b.String()
}
