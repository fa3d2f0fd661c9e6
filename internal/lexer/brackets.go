package lexer

import (
	"axiom/internal/diag"
	"axiom/internal/lang"
	"axiom/internal/source"
	"axiom/internal/token"
)

// MatchBrackets groups tokens between matching bracket symbols into Bracket tokens.
var MatchBrackets = Pass{Name: "match-brackets", Apply: matchBrackets}

// TrimScopes strips boundary separators at the top level and inside every bracket.
var TrimScopes = Pass{Name: "trim-scopes", Apply: func(tokens []token.Token) ([]token.Token, error) {
	return token.Trim(tokens), nil
}}

type scope struct {
	typ    lang.BracketType
	open   source.Slice
	tokens []token.Token
}

func matchBrackets(tokens []token.Token) ([]token.Token, error) {
	stack := []*scope{{tokens: make([]token.Token, 0, len(tokens))}}

	for _, t := range tokens {
		sym, ok := t.(token.Symbol)
		if !ok {
			top := stack[len(stack)-1]
			top.tokens = append(top.tokens, t)
			continue
		}
		if typ, ok := lang.OpeningBracket(sym.Value); ok {
			stack = append(stack, &scope{typ: typ, open: sym.Span})
			continue
		}
		typ, ok := lang.ClosingBracket(sym.Value)
		if !ok {
			top := stack[len(stack)-1]
			top.tokens = append(top.tokens, t)
			continue
		}
		if len(stack) == 1 {
			return nil, diag.Errorf(diag.LexUnmatchedClose, sym.Span, "closing bracket %q without opening bracket", sym.Value)
		}
		inner := stack[len(stack)-1]
		if inner.typ != typ {
			return nil, diag.Errorf(diag.LexMismatchedBracket, sym.Span,
				"closing bracket %q does not match opening bracket %q", sym.Value, inner.typ.Open()).
				WithNote(inner.open, "opening bracket is here")
		}
		stack = stack[:len(stack)-1]
		parent := stack[len(stack)-1]
		parent.tokens = append(parent.tokens, token.Bracket{
			Type:   inner.typ,
			Tokens: inner.tokens,
			Open:   inner.open,
			Close:  sym.Span,
		})
	}

	if len(stack) > 1 {
		unclosed := stack[1]
		return nil, diag.Errorf(diag.LexUnclosedBracket, unclosed.open, "unmatched opening bracket %q", unclosed.typ.Open())
	}
	return stack[0].tokens, nil
}
