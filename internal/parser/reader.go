package parser

import (
	"axiom/internal/lang"
	"axiom/internal/source"
	"axiom/internal/token"
)

// Reader: курсор с откатом поверх фиксированной последовательности токенов.
// Snapshot кладёт текущую позицию на стек, Revert откатывается к ней,
// Accept снимает метку, оставляя прочитанное. Reader локален для одного разбора.
type Reader struct {
	tokens []token.Token
	pos    int
	marks  []int
	last   source.Slice // span последнего съеденного токена
}

// NewReader creates a reader positioned at the first token.
func NewReader(tokens []token.Token) Reader {
	return Reader{tokens: tokens}
}

// EOF reports whether every token has been consumed.
func (r *Reader) EOF() bool {
	return r.pos >= len(r.tokens)
}

// Remaining returns the number of unconsumed tokens.
func (r *Reader) Remaining() int {
	return len(r.tokens) - r.pos
}

// Peek returns the next token without consuming it.
func (r *Reader) Peek() (token.Token, bool) {
	if r.EOF() {
		return nil, false
	}
	return r.tokens[r.pos], true
}

// Next consumes one token.
func (r *Reader) Next() (token.Token, bool) {
	t, ok := r.Peek()
	if ok {
		r.advance(t)
	}
	return t, ok
}

// NextIf consumes the next token only if pred accepts it.
func (r *Reader) NextIf(pred func(token.Token) bool) (token.Token, bool) {
	t, ok := r.Peek()
	if !ok || !pred(t) {
		return nil, false
	}
	r.advance(t)
	return t, true
}

// Symbol consumes the symbol s.
func (r *Reader) Symbol(s string) bool {
	_, ok := r.NextIf(func(t token.Token) bool { return token.IsSymbol(t, s) })
	return ok
}

// Take consumes the next token if it has type T.
func Take[T token.Token](r *Reader) (T, bool) {
	return TakeIf(r, func(T) bool { return true })
}

// TakeIf consumes the next token if it has type T and pred accepts it.
func TakeIf[T token.Token](r *Reader, pred func(T) bool) (T, bool) {
	var zero T
	t, ok := r.Peek()
	if !ok {
		return zero, false
	}
	v, ok := t.(T)
	if !ok || !pred(v) {
		return zero, false
	}
	r.advance(t)
	return v, true
}

// Snapshot pushes the current position.
func (r *Reader) Snapshot() {
	r.marks = append(r.marks, r.pos)
}

// Revert pops the last snapshot, rewinds to it and returns the tokens read since.
func (r *Reader) Revert() []token.Token {
	mark := r.pop()
	read := r.tokens[mark:r.pos]
	r.pos = mark
	r.last = source.Slice{}
	if mark > 0 {
		r.last = r.tokens[mark-1].Source()
	}
	return read
}

// Accept pops the last snapshot keeping the position and returns the tokens read since.
func (r *Reader) Accept() []token.Token {
	mark := r.pop()
	return r.tokens[mark:r.pos]
}

func (r *Reader) pop() int {
	if len(r.marks) == 0 {
		panic("parser: reader has no snapshot to pop")
	}
	mark := r.marks[len(r.marks)-1]
	r.marks = r.marks[:len(r.marks)-1]
	return mark
}

// Separator consumes a separator whose severity is in levels.
//
// End of input counts as an implicit Normal separator and an adjacent
// non-separator token as an implicit NoSeparator; neither is consumed.
func (r *Reader) Separator(levels lang.LevelSet) (lang.SeparatorType, bool) {
	t, ok := r.Peek()
	if !ok {
		return lang.Normal, levels.Has(lang.Normal)
	}
	sep, ok := t.(token.Separator)
	if !ok {
		return lang.NoSeparator, levels.Has(lang.NoSeparator)
	}
	if !levels.Has(sep.Type) {
		return sep.Type, false
	}
	r.advance(t)
	return sep.Type, true
}

// AnySeparator consumes one real separator or accepts end of input.
func (r *Reader) AnySeparator() (lang.SeparatorType, bool) {
	return r.Separator(lang.AnySeparator)
}

// UntilSeparator collects tokens up to a separator of at least minLevel.
// The terminating separator is consumed but not returned.
func (r *Reader) UntilSeparator(minLevel lang.SeparatorType) []token.Token {
	start := r.pos
	for !r.EOF() {
		t := r.tokens[r.pos]
		if sep, ok := t.(token.Separator); ok && sep.Type >= minLevel {
			out := r.tokens[start:r.pos]
			r.advance(t)
			return out
		}
		r.advance(t)
	}
	return r.tokens[start:r.pos]
}

// Rest consumes and returns every remaining token.
func (r *Reader) Rest() []token.Token {
	out := r.tokens[r.pos:]
	if len(out) > 0 {
		r.last = out[len(out)-1].Source()
	}
	r.pos = len(r.tokens)
	return out
}

// Mark returns the current position for Since.
func (r *Reader) Mark() int {
	return r.pos
}

// Since returns the tokens consumed after mark.
func (r *Reader) Since(mark int) []token.Token {
	if mark > r.pos {
		return nil
	}
	return r.tokens[mark:r.pos]
}

// Here returns the best slice to report a problem at the cursor: the next
// token, or an empty slice right after the last consumed token, or fallback.
func (r *Reader) Here(fallback source.Slice) source.Slice {
	if t, ok := r.Peek(); ok {
		return t.Source()
	}
	if !r.last.IsZero() {
		return source.Slice{Unit: r.last.Unit, Index: r.last.End()}
	}
	return fallback
}

func (r *Reader) advance(t token.Token) {
	r.pos++
	r.last = t.Source()
}
