package compositor

import (
	"axiom/internal/diag"
	"axiom/internal/lang"
	"axiom/internal/parser"
	"axiom/internal/source"
	"axiom/internal/token"
)

// weak is the single required separator between a directive and its argument.
var weak = lang.Levels(lang.Weak)

// bare builds the grammar of a directive without arguments.
func bare(mk func(source.Slice) Directive) grammar {
	return func(_ *state, c *call) (Directive, error) {
		return mk(c.directive.Span), nil
	}
}

// separated consumes the weak separator after the directive name.
func (c *call) separated() bool {
	_, ok := c.r.Separator(weak)
	return ok
}

func (c *call) missing(code diag.Code, msg string) *diag.Error {
	return diag.Errorf(code, c.directive.Span, "%s", msg)
}

func parseInclude(_ *state, c *call) (Directive, error) {
	if !c.separated() {
		return nil, c.missing(diag.SynIncludeMissing, "include directive is missing a target")
	}
	t, ok := c.r.Peek()
	if !ok {
		return nil, c.missing(diag.SynIncludeMissing, "include directive is missing a target")
	}
	var target ParamValue[string]
	switch t := t.(type) {
	case token.StringLiteral:
		target = Value[string]{Value: t.Value, Span: t.Span}
	case token.Placeholder:
		target = PlaceholderRef[string]{ID: t.ID, Span: t.Span}
	default:
		return nil, diag.Errorf(diag.SynIncludeKind, t.Source(), "invalid include target %s", t)
	}
	c.r.Next()
	return Include{Target: target, Span: c.span()}, nil
}

func parseDefine(st *state, c *call) (Directive, error) {
	if !c.separated() {
		return nil, c.missing(diag.SynDefineMissingID, "definition has no id and value")
	}
	id, err := parser.Value(c.r, parser.NamespacedIdParser)
	if err != nil {
		return nil, diag.Wrap(diag.SynDefineMissingID, c.r.Here(c.directive.Span), err, "invalid definition id")
	}
	if !c.separated() {
		return nil, c.missing(diag.SynDefineEmpty, "definition "+id.String()+" has no value")
	}
	value := token.Trim(c.r.UntilSeparator(lang.Normal))
	if len(value) == 0 {
		return nil, c.missing(diag.SynDefineEmpty, "definition "+id.String()+" has no value")
	}
	converted, err := st.parseTokens(value)
	if err != nil {
		return nil, err
	}
	return Define{ID: id, Value: converted, Span: c.span()}, nil
}

func parseInsert(st *state, c *call) (Directive, error) {
	if !c.separated() {
		return nil, c.missing(diag.SynInsertMissing, "insert has no template and arguments")
	}
	t, ok := c.r.Peek()
	if !ok {
		return nil, c.missing(diag.SynInsertMissing, "insert has no template and arguments")
	}

	var tmpl ParamValue[TemplateHeader]
	switch t := t.(type) {
	case token.Placeholder:
		c.r.Next()
		tmpl = PlaceholderRef[TemplateHeader]{ID: t.ID, Span: t.Span}
	case token.Bracket:
		if t.Type != lang.Round {
			return nil, diag.Errorf(diag.SynInsertTemplate, t.Source(), "invalid template %s", t)
		}
		c.r.Next()
		header, span, err := st.templateHeader(c, t)
		if err != nil {
			return nil, err
		}
		tmpl = Value[TemplateHeader]{Value: header, Span: span}
	default:
		return nil, diag.Errorf(diag.SynInsertTemplate, t.Source(), "invalid template %s", t)
	}

	c.r.Separator(lang.OptionalWeak)
	args, ok := parser.TakeIf(c.r, func(b token.Bracket) bool { return b.Type == lang.Round })
	if !ok {
		return nil, diag.Errorf(diag.SynInsertMissing, c.r.Here(tmpl.Source()), "missing template arguments")
	}
	proto, err := st.templatePrototype(args)
	if err != nil {
		return nil, err
	}
	return Insert{Template: tmpl, Arguments: proto, Span: c.span()}, nil
}

// unsigned reads an unsigned integer literal or a placeholder.
func (c *call) unsigned(missing, kind diag.Code, what string) (ParamValue[uint64], error) {
	if !c.separated() {
		return nil, c.missing(missing, c.directive.Name+" directive is missing "+what)
	}
	if v, err := parser.SourcedValue(c.r, parser.UnsignedParser); err == nil {
		return Value[uint64]{Value: v.Value, Span: v.Source}, nil
	}
	if p, ok := parser.Take[token.Placeholder](c.r); ok {
		return PlaceholderRef[uint64]{ID: p.ID, Span: p.Span}, nil
	}
	t, ok := c.r.Peek()
	if !ok {
		return nil, c.missing(missing, c.directive.Name+" directive is missing "+what)
	}
	return nil, diag.Errorf(kind, t.Source(), "invalid %s %s", what, t)
}

func parseAt(_ *state, c *call) (Directive, error) {
	addr, err := c.unsigned(diag.SynAtMissing, diag.SynAtKind, "a position")
	if err != nil {
		return nil, err
	}
	return At{Address: addr, Span: c.span()}, nil
}

func parseRepeated(_ *state, c *call) (Directive, error) {
	count, err := c.unsigned(diag.SynRepeatedMissing, diag.SynRepeatedKind, "a repeat count")
	if err != nil {
		return nil, err
	}
	return Repeated{Count: count, Span: c.span()}, nil
}

func parseIn(_ *state, c *call) (Directive, error) {
	if !c.separated() {
		return nil, c.missing(diag.SynInMissing, "in directive is missing a region reference")
	}
	if p, ok := parser.Take[token.Placeholder](c.r); ok {
		return In{Region: PlaceholderRef[lang.NamespacedId]{ID: p.ID, Span: p.Span}, Span: c.span()}, nil
	}
	t, ok := c.r.Peek()
	if !ok {
		return nil, c.missing(diag.SynInMissing, "in directive is missing a region reference")
	}
	return nil, diag.Errorf(diag.SynInKind, t.Source(), "invalid region reference %s", t)
}

func parseIf(_ *state, c *call) (Directive, error) {
	if !c.separated() {
		return nil, c.missing(diag.SynIfEmpty, "missing condition")
	}
	cond := token.Trim(c.r.UntilSeparator(lang.Normal))
	if len(cond) == 0 {
		return nil, c.missing(diag.SynIfEmpty, "missing condition")
	}
	return If{Condition: cond, Span: c.span()}, nil
}

// parsePublic backtracks to a bare Public when no placeholder target follows.
func parsePublic(_ *state, c *call) (Directive, error) {
	c.r.Snapshot()
	if c.separated() {
		if p, ok := parser.Take[token.Placeholder](c.r); ok {
			c.r.Accept()
			return Public{Target: PlaceholderRef[lang.NamespacedId]{ID: p.ID, Span: p.Span}, Span: c.span()}, nil
		}
	}
	c.r.Revert()
	return Public{Span: c.directive.Span}, nil
}
