package compositor

import (
	"fmt"

	"axiom/internal/lang"
	"axiom/internal/source"
)

// ParamValue is a directive argument: a literal Value or a PlaceholderRef
// resolved later by template expansion.
type ParamValue[T any] interface {
	Source() source.Slice
	String() string
	isParamValue()
}

// Value is a literal argument.
type Value[T any] struct {
	Value T
	Span  source.Slice
}

// PlaceholderRef is an argument deferred to template expansion.
type PlaceholderRef[T any] struct {
	ID   lang.NamespacedId
	Span source.Slice
}

func (Value[T]) isParamValue()          {}
func (PlaceholderRef[T]) isParamValue() {}

func (v Value[T]) Source() source.Slice          { return v.Span }
func (p PlaceholderRef[T]) Source() source.Slice { return p.Span }

func (v Value[T]) String() string          { return fmt.Sprintf("%v", v.Value) }
func (p PlaceholderRef[T]) String() string { return "$" + p.ID.String() }

// TemplateParameter is one formal parameter of a template header.
type TemplateParameter struct {
	ID lang.NamespacedId
	// Default is nil when the parameter has no default.
	Default []Token
	Span    source.Slice
}

// TemplateHeader is `(params) -> { body }`.
type TemplateHeader struct {
	Parameters []TemplateParameter
	Body       *Bracket
}

func (h TemplateHeader) String() string {
	return fmt.Sprintf("template(%d parameters)", len(h.Parameters))
}

// KeywordArg is an `id: value` argument of a template call.
type KeywordArg struct {
	ID    lang.NamespacedId
	Value []Token
}

// TemplatePrototype holds the actual arguments of one template call.
type TemplatePrototype struct {
	Positional [][]Token
	// Keyword is keyed by lang.NamespacedId.Key.
	Keyword map[string]KeywordArg
	// Order lists Keyword keys in source order.
	Order []string
}

// KeywordArgs returns keyword arguments in source order.
func (p TemplatePrototype) KeywordArgs() []KeywordArg {
	out := make([]KeywordArg, 0, len(p.Order))
	for _, k := range p.Order {
		out = append(out, p.Keyword[k])
	}
	return out
}
