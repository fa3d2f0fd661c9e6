package testkit

import (
	"fmt"

	"axiom/internal/compositor"
	"axiom/internal/source"
	"axiom/internal/token"
)

// CheckTokenInvariants runs a minimal set of span invariants on lexer output:
// 1) every span is non-empty and lies inside unit
// 2) siblings are ordered and do not overlap
// 3) bracket children lie between the opening and closing symbols
func CheckTokenInvariants(tokens []token.Token, unit *source.Unit) error {
	if unit == nil {
		return fmt.Errorf("nil unit")
	}
	for i, t := range tokens {
		if err := checkSpan(t.Source(), unit); err != nil {
			return fmt.Errorf("token %d (%s): %w", i, t, err)
		}
	}
	if err := checkOrder(len(tokens), func(i int) source.Slice { return tokens[i].Source() }); err != nil {
		return err
	}
	for _, t := range tokens {
		b, ok := t.(token.Bracket)
		if !ok {
			continue
		}
		if err := checkEnclosed(b.Open, b.Close, len(b.Tokens), func(i int) source.Slice { return b.Tokens[i].Source() }); err != nil {
			return err
		}
		if err := CheckTokenInvariants(b.Tokens, unit); err != nil {
			return err
		}
	}
	return nil
}

// CheckTreeInvariants applies the same checks to a compositor tree.
// Directive arguments are not descended into; brackets are.
func CheckTreeInvariants(tree []compositor.Token, unit *source.Unit) error {
	if unit == nil {
		return fmt.Errorf("nil unit")
	}
	for i, t := range tree {
		if _, ok := t.(compositor.Directive); ok {
			continue
		}
		if err := checkSpan(t.Source(), unit); err != nil {
			return fmt.Errorf("token %d (%s): %w", i, t, err)
		}
	}
	if err := checkOrder(len(tree), func(i int) source.Slice { return tree[i].Source() }); err != nil {
		return err
	}
	for _, t := range tree {
		b, ok := t.(compositor.Bracket)
		if !ok {
			continue
		}
		if err := checkEnclosed(b.Open, b.Close, len(b.Tokens), func(i int) source.Slice { return b.Tokens[i].Source() }); err != nil {
			return err
		}
		if err := CheckTreeInvariants(b.Tokens, unit); err != nil {
			return err
		}
	}
	return nil
}

func checkSpan(s source.Slice, unit *source.Unit) error {
	if s.Unit != unit {
		return fmt.Errorf("span %v belongs to another unit", s)
	}
	if s.Length <= 0 {
		return fmt.Errorf("empty span at %d", s.Index)
	}
	if s.Index < 0 || s.End() > len(unit.Text) {
		return fmt.Errorf("span %d..%d beyond unit of %d bytes", s.Index, s.End(), len(unit.Text))
	}
	return nil
}

func checkOrder(n int, at func(int) source.Slice) error {
	for i := 1; i < n; i++ {
		prev, cur := at(i-1), at(i)
		if cur.Index < prev.End() {
			return fmt.Errorf("span %d..%d overlaps previous %d..%d", cur.Index, cur.End(), prev.Index, prev.End())
		}
	}
	return nil
}

func checkEnclosed(open, closing source.Slice, n int, at func(int) source.Slice) error {
	for i := 0; i < n; i++ {
		s := at(i)
		if s.Index < open.End() || s.End() > closing.Index {
			return fmt.Errorf("child %d..%d outside bracket %d..%d", s.Index, s.End(), open.Index, closing.End())
		}
	}
	return nil
}
