package parser

import (
	"fmt"

	"axiom/internal/lang"
	"axiom/internal/source"
	"axiom/internal/token"
)

// ValueParser reads one typed value from a reader.
type ValueParser[T any] interface {
	Parse(r *Reader) (T, error)
}

// ParserFunc adapts a function to ValueParser.
type ParserFunc[T any] func(r *Reader) (T, error)

// Parse calls f(r).
func (f ParserFunc[T]) Parse(r *Reader) (T, error) {
	return f(r)
}

// Sourced is a value together with the tokens it was read from.
type Sourced[T any] struct {
	Value  T
	Source source.Slice
}

// Value runs p speculatively: on failure the reader is rewound.
func Value[T any](r *Reader, p ValueParser[T]) (T, error) {
	r.Snapshot()
	v, err := p.Parse(r)
	if err != nil {
		r.Revert()
		var zero T
		return zero, err
	}
	r.Accept()
	return v, nil
}

// SourcedValue is Value that also reports the span of the consumed tokens.
func SourcedValue[T any](r *Reader, p ValueParser[T]) (Sourced[T], error) {
	r.Snapshot()
	v, err := p.Parse(r)
	if err != nil {
		r.Revert()
		return Sourced[T]{}, err
	}
	read := r.Accept()
	out := Sourced[T]{Value: v}
	if len(read) > 0 {
		out.Source = token.SourceOf(read)
	}
	return out, nil
}

// ExpectError reports that the next token is not what a value parser wanted.
// Got is nil at end of input.
type ExpectError struct {
	Want string
	Got  token.Token
}

func (e *ExpectError) Error() string {
	if e.Got == nil {
		return fmt.Sprintf("expected %s, found end of input", e.Want)
	}
	return fmt.Sprintf("expected %s, found %s", e.Want, e.Got)
}

func expected(r *Reader, want string) *ExpectError {
	t, _ := r.Peek()
	return &ExpectError{Want: want, Got: t}
}

// IntegerParser reads an Integer token.
var IntegerParser ValueParser[int64] = ParserFunc[int64](func(r *Reader) (int64, error) {
	v, ok := Take[token.Integer](r)
	if !ok {
		return 0, expected(r, "integer")
	}
	return v.Value, nil
})

// UnsignedParser reads a non-negative Integer token.
var UnsignedParser ValueParser[uint64] = ParserFunc[uint64](func(r *Reader) (uint64, error) {
	v, ok := TakeIf(r, func(i token.Integer) bool { return i.Value >= 0 })
	if !ok {
		return 0, expected(r, "unsigned integer")
	}
	return uint64(v.Value), nil
})

// NamespacedIdParser reads a Text token as a namespaced id.
var NamespacedIdParser ValueParser[lang.NamespacedId] = ParserFunc[lang.NamespacedId](func(r *Reader) (lang.NamespacedId, error) {
	v, ok := Take[token.Text](r)
	if !ok {
		return nil, expected(r, "identifier")
	}
	return lang.ParseNamespacedId(v.Value), nil
})
