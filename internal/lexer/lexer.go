// Package lexer turns unit text into the final lexical token stream:
// Tokenize produces primitive tokens and the Passes pipeline folds literals,
// extracts names and builds bracket trees.
package lexer

import (
	"context"
	"fmt"

	"axiom/internal/source"
	"axiom/internal/token"
	"axiom/internal/trace"
)

// Options tunes Lex.
type Options struct {
	// StopAfter ends the pipeline after the named pass; empty runs every pass.
	StopAfter string
}

// Lex tokenizes unit and runs the full pipeline.
func Lex(ctx context.Context, unit *source.Unit) ([]token.Token, error) {
	return LexWith(ctx, unit, Options{})
}

// LexWith tokenizes unit and runs the pipeline up to opts.StopAfter.
// Every pass is reported as a unit-scope trace span.
func LexWith(ctx context.Context, unit *source.Unit, opts Options) ([]token.Token, error) {
	passes, err := selectPasses(opts.StopAfter)
	if err != nil {
		return nil, err
	}

	ctx = trace.WithSite(ctx, trace.Site{Unit: unit.ID})
	_, span := trace.Start(ctx, trace.ScopeUnit, "pass", trace.Site{Pass: "tokenize"})
	tokens, err := Tokenize(unit)
	span.Tokens(len(tokens)).End(err)
	if err != nil {
		return nil, err
	}

	return Run(ctx, tokens, passes)
}

// Run applies passes to tokens in order.
func Run(ctx context.Context, tokens []token.Token, passes []Pass) ([]token.Token, error) {
	for _, p := range passes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		_, span := trace.Start(ctx, trace.ScopeUnit, "pass", trace.Site{Pass: p.Name})
		out, err := p.Apply(tokens)
		span.Tokens(len(out)).End(err)
		if err != nil {
			return nil, err
		}
		tokens = out
	}
	return tokens, nil
}

func selectPasses(stopAfter string) ([]Pass, error) {
	if stopAfter == "" {
		return Passes, nil
	}
	if stopAfter == "tokenize" {
		return nil, nil
	}
	for i, p := range Passes {
		if p.Name == stopAfter {
			return Passes[:i+1], nil
		}
	}
	return nil, fmt.Errorf("unknown lexer pass %q (expected tokenize or one of %v)", stopAfter, PassNames())
}
