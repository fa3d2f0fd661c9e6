package driver

import (
	"axiom/internal/compositor"
	"axiom/internal/diag"
)

// Summary condenses the result of parsing one unit.
type Summary struct {
	Tokens     int
	Directives int
	// Includes lists literal include targets in source order.
	Includes []string
	Err      *diag.Error
}

// Summarize counts the tokens and directives of a tree.
func Summarize(tree []compositor.Token, err *diag.Error) Summary {
	s := Summary{Includes: CollectIncludes(tree), Err: err}
	compositor.Walk(tree, func(t compositor.Token) bool {
		s.Tokens++
		if _, ok := t.(compositor.Directive); ok {
			s.Directives++
		}
		return true
	})
	return s
}

// CollectIncludes lists the literal include targets of a tree, depth first.
// Placeholder targets are left to template expansion.
func CollectIncludes(tree []compositor.Token) []string {
	var out []string
	for _, inc := range compositor.Includes(tree) {
		if v, ok := inc.Target.(compositor.Value[string]); ok {
			out = append(out, v.Value)
		}
	}
	return out
}
