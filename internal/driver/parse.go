package driver

import (
	"context"

	"axiom/internal/compositor"
	"axiom/internal/diag"
	"axiom/internal/lexer"
	"axiom/internal/source"
	"axiom/internal/token"
)

// TokenizeResult holds the lexical tokens of one unit.
type TokenizeResult struct {
	Set    *source.UnitSet
	Unit   *source.Unit
	Tokens []token.Token
}

// ParseResult holds the compositor tree of one unit.
type ParseResult struct {
	Set  *source.UnitSet
	Unit *source.Unit
	Tree []compositor.Token
}

// Tokenize loads path and runs the lexer up to opts.StopAfter.
// Once the unit is loaded the result is returned even when lexing fails,
// so the caller can render the error against its set.
func Tokenize(ctx context.Context, path string, opts Options) (*TokenizeResult, error) {
	set := source.NewUnitSet()
	unit, err := loadUnit(set, path, opts)
	if err != nil {
		return nil, err
	}
	res := &TokenizeResult{Set: set, Unit: unit}
	err = opts.Timer.Measure("lex", func() error {
		var lexErr error
		res.Tokens, lexErr = lexer.LexWith(ctx, unit, lexer.Options{StopAfter: opts.StopAfter})
		return lexErr
	})
	return res, err
}

// Parse loads path, lexes it and builds its compositor tree.
// As with Tokenize, the result is non-nil once the unit is loaded.
func Parse(ctx context.Context, path string, opts Options) (*ParseResult, error) {
	set := source.NewUnitSet()
	unit, err := loadUnit(set, path, opts)
	if err != nil {
		return nil, err
	}
	res := &ParseResult{Set: set, Unit: unit}
	res.Tree, err = parseUnit(ctx, unit, opts)
	return res, err
}

func loadUnit(set *source.UnitSet, path string, opts Options) (*source.Unit, error) {
	var unit *source.Unit
	err := opts.Timer.Measure("load", func() error {
		var loadErr error
		unit, loadErr = set.Load(path, opts.load())
		return loadErr
	})
	if err != nil {
		return nil, diag.Wrap(diag.DrvLoadFile, nil, err, "cannot load "+path)
	}
	return unit, nil
}

// parseUnit runs the lexer pipeline and the compositor on a loaded unit.
func parseUnit(ctx context.Context, unit *source.Unit, opts Options) ([]compositor.Token, error) {
	var tokens []token.Token
	err := opts.Timer.Measure("lex", func() error {
		var lexErr error
		tokens, lexErr = lexer.Lex(ctx, unit)
		return lexErr
	})
	if err != nil {
		return nil, err
	}
	var tree []compositor.Token
	err = opts.Timer.Measure("parse", func() error {
		var parseErr error
		tree, parseErr = compositor.ParseWith(ctx, tokens, opts.compositor())
		return parseErr
	})
	return tree, err
}
