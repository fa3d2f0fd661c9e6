package compositor

import (
	"axiom/internal/diag"
	"axiom/internal/lang"
	"axiom/internal/parser"
	"axiom/internal/source"
	"axiom/internal/token"
)

// templateHeader parses `(params) -> { body }`; the reader is right after the
// parameter bracket. The returned slice spans from `(` to `}`.
func (st *state) templateHeader(c *call, params token.Bracket) (TemplateHeader, source.Slice, error) {
	c.r.Separator(lang.OptionalWeak)
	if !c.r.Symbol("-") || !c.r.Symbol(">") {
		return TemplateHeader{}, source.Slice{}, diag.Errorf(diag.SynInsertTemplate, params.Source(), "template header is missing ->")
	}
	c.r.Separator(lang.OptionalWeak)
	body, ok := parser.TakeIf(c.r, func(b token.Bracket) bool { return b.Type == lang.Curly })
	if !ok {
		return TemplateHeader{}, source.Slice{}, diag.Errorf(diag.SynInsertTemplate, c.r.Here(params.Source()), "template header is missing a { body }")
	}

	parameters, err := st.templateParameters(params)
	if err != nil {
		return TemplateHeader{}, source.Slice{}, err
	}
	converted, err := st.convert(body)
	if err != nil {
		return TemplateHeader{}, source.Slice{}, err
	}
	b := converted.(Bracket)
	return TemplateHeader{Parameters: parameters, Body: &b}, source.Join(params.Source(), body.Source()), nil
}

// templateParameters parses `id` and `id = default` entries.
func (st *state) templateParameters(params token.Bracket) ([]TemplateParameter, error) {
	entries := parser.SplitList(params.Tokens)
	out := make([]TemplateParameter, 0, len(entries))
	seen := make(map[string]bool, len(entries))
	for i, entry := range entries {
		if len(entry) == 0 {
			return nil, diag.Errorf(diag.SynInsertTemplate, params.Open, "template parameter %d is empty", i+1)
		}
		r := parser.NewReader(entry)
		id, err := parser.Value(&r, parser.NamespacedIdParser)
		if err != nil {
			return nil, diag.Wrap(diag.SynInsertTemplate, entry[0].Source(), err, "invalid template parameter")
		}
		if seen[id.Key()] {
			return nil, diag.Errorf(diag.SynInsertTemplate, entry[0].Source(), "duplicate template parameter %s", id)
		}
		seen[id.Key()] = true

		param := TemplateParameter{ID: id, Span: token.SourceOf(entry)}
		if !r.EOF() {
			r.Separator(lang.OptionalWeak)
			if !r.Symbol("=") {
				t, _ := r.Peek()
				return nil, diag.Errorf(diag.SynInsertTemplate, r.Here(param.Span), "unexpected %s after parameter %s", t, id)
			}
			r.Separator(lang.OptionalWeak)
			def := r.Rest()
			if len(def) == 0 {
				return nil, diag.Errorf(diag.SynHeaderDefault, param.Span, "parameter %s has an empty default", id)
			}
			if param.Default, err = st.parseTokens(def); err != nil {
				return nil, err
			}
		}
		out = append(out, param)
	}
	return out, nil
}

// templatePrototype splits call arguments into positional and keyword ones.
func (st *state) templatePrototype(args token.Bracket) (TemplatePrototype, error) {
	proto := TemplatePrototype{
		Positional: [][]Token{},
		Keyword:    map[string]KeywordArg{},
	}
	for i, entry := range parser.SplitList(args.Tokens) {
		if len(entry) == 0 {
			return TemplatePrototype{}, diag.Errorf(diag.SynArgumentList, args.Source(), "argument %d is empty", i+1)
		}
		r := parser.NewReader(entry)
		id, ok := keyword(&r)
		if !ok {
			value, err := st.parseTokens(entry)
			if err != nil {
				return TemplatePrototype{}, err
			}
			proto.Positional = append(proto.Positional, value)
			continue
		}

		rest := r.Rest()
		if len(rest) == 0 {
			return TemplatePrototype{}, diag.Errorf(diag.SynArgumentList, token.SourceOf(entry), "keyword argument %s has no value", id)
		}
		key := id.Key()
		if _, dup := proto.Keyword[key]; dup {
			return TemplatePrototype{}, diag.Errorf(diag.SynArgumentList, entry[0].Source(), "duplicate keyword argument %s", id)
		}
		value, err := st.parseTokens(rest)
		if err != nil {
			return TemplatePrototype{}, err
		}
		proto.Keyword[key] = KeywordArg{ID: id, Value: value}
		proto.Order = append(proto.Order, key)
	}
	return proto, nil
}

// keyword consumes `id :` and the separator after it, or nothing.
func keyword(r *parser.Reader) (lang.NamespacedId, bool) {
	r.Snapshot()
	id, err := parser.Value(r, parser.NamespacedIdParser)
	if err == nil {
		r.Separator(lang.OptionalWeak)
		if r.Symbol(":") {
			r.Separator(lang.OptionalWeak)
			r.Accept()
			return id, true
		}
	}
	r.Revert()
	return nil, false
}
