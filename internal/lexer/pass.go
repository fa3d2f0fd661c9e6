package lexer

import (
	"axiom/internal/token"
)

// Pass is one rewrite step of the lexer pipeline.
type Pass struct {
	Name  string
	Apply func([]token.Token) ([]token.Token, error)
}

// Mapping builds a pass that rewrites every top-level token independently.
func Mapping(name string, fn func(token.Token) (token.Token, error)) Pass {
	return Pass{
		Name: name,
		Apply: func(tokens []token.Token) ([]token.Token, error) {
			out := make([]token.Token, len(tokens))
			for i, t := range tokens {
				mapped, err := fn(t)
				if err != nil {
					return nil, err
				}
				out[i] = mapped
			}
			return out, nil
		},
	}
}

// Passes is the lexer pipeline. Later passes rely on the shape produced by
// earlier ones, so the order is fixed.
var Passes = []Pass{
	FoldCharacters,
	FoldStrings,
	MapStrongSeparators,
	MapIntegers,
	MergeNamespacedIds,
	ExtractPlaceholders,
	ExtractLabels,
	ExtractDirectives,
	MatchBrackets,
	TrimScopes,
}

// PassNames returns the pipeline pass names in order.
func PassNames() []string {
	names := make([]string, len(Passes))
	for i, p := range Passes {
		names[i] = p.Name
	}
	return names
}
