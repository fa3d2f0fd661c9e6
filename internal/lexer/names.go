package lexer

import (
	"axiom/internal/diag"
	"axiom/internal/lang"
	"axiom/internal/source"
	"axiom/internal/token"
)

// MergeNamespacedIds merges `a : : b : : c` into the single Text "a::b::c".
var MergeNamespacedIds = Pass{Name: "merge-namespaced-ids", Apply: mergeNamespacedIds}

// ExtractPlaceholders turns `$name` into a Placeholder.
var ExtractPlaceholders = prefixedPass("extract-placeholders", "$", "placeholder",
	diag.LexPlaceholderMissing, diag.LexPlaceholderInvalid,
	func(text token.Text, span source.Slice) token.Token {
		return token.Placeholder{ID: lang.ParseNamespacedId(text.Value), Span: span}
	})

// ExtractLabels turns `@name` into a Label.
var ExtractLabels = prefixedPass("extract-labels", "@", "label",
	diag.LexLabelMissing, diag.LexLabelInvalid,
	func(text token.Text, span source.Slice) token.Token {
		return token.Label{ID: lang.ParseNamespacedId(text.Value), Span: span}
	})

// ExtractDirectives turns `!name` into a Directive.
var ExtractDirectives = prefixedPass("extract-directives", "!", "directive",
	diag.LexDirectiveMissing, diag.LexDirectiveInvalid,
	func(text token.Text, span source.Slice) token.Token {
		return token.Directive{Name: text.Value, Span: span}
	})

func mergeNamespacedIds(tokens []token.Token) ([]token.Token, error) {
	out := make([]token.Token, 0, len(tokens))
	for i := 0; i < len(tokens); i++ {
		first, ok := tokens[i].(token.Text)
		if !ok {
			out = append(out, tokens[i])
			continue
		}
		value := first.Value
		span := first.Span
		for i+3 < len(tokens) &&
			token.IsSymbol(tokens[i+1], ":") &&
			token.IsSymbol(tokens[i+2], ":") {
			next, ok := tokens[i+3].(token.Text)
			if !ok {
				break
			}
			value += lang.NamespaceSeparator + next.Value
			span = source.Join(span, next.Span)
			i += 3
		}
		out = append(out, token.Text{Value: value, Span: span})
	}
	return out, nil
}

func prefixedPass(name, symbol, what string, missing, invalid diag.Code, build func(token.Text, source.Slice) token.Token) Pass {
	return Pass{
		Name: name,
		Apply: func(tokens []token.Token) ([]token.Token, error) {
			out := make([]token.Token, 0, len(tokens))
			for i := 0; i < len(tokens); i++ {
				t := tokens[i]
				if !token.IsSymbol(t, symbol) {
					out = append(out, t)
					continue
				}
				if i+1 >= len(tokens) {
					return nil, diag.Errorf(missing, t.Source(), "missing %s name after %q", what, symbol)
				}
				text, ok := tokens[i+1].(token.Text)
				if !ok {
					return nil, diag.Errorf(invalid, tokens[i+1].Source(), "invalid %s name %s", what, tokens[i+1])
				}
				out = append(out, build(text, source.Join(t.Source(), text.Span)))
				i++
			}
			return out, nil
		},
	}
}
