package compositor

// Walk calls visit for every token of the tree in source order, depth first.
// Children are bracket contents, define values, template parameter defaults,
// template bodies and call arguments. Returning false skips the children of
// the visited token.
func Walk(tokens []Token, visit func(Token) bool) {
	for _, t := range tokens {
		if !visit(t) {
			continue
		}
		switch t := t.(type) {
		case Bracket:
			Walk(t.Tokens, visit)
		case Define:
			Walk(t.Value, visit)
		case Insert:
			if h, ok := t.Template.(Value[TemplateHeader]); ok {
				for _, p := range h.Value.Parameters {
					Walk(p.Default, visit)
				}
				if h.Value.Body != nil {
					Walk([]Token{*h.Value.Body}, visit)
				}
			}
			for _, arg := range t.Arguments.Positional {
				Walk(arg, visit)
			}
			for _, arg := range t.Arguments.KeywordArgs() {
				Walk(arg.Value, visit)
			}
		}
	}
}

// Includes returns the directives of the tree that include other units.
func Includes(tokens []Token) []Include {
	var out []Include
	Walk(tokens, func(t Token) bool {
		if inc, ok := t.(Include); ok {
			out = append(out, inc)
		}
		return true
	})
	return out
}
