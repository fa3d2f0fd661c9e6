package compositor

import (
	"context"
	"fmt"

	"axiom/internal/diag"
	"axiom/internal/lang"
	"axiom/internal/parser"
	"axiom/internal/source"
	"axiom/internal/token"
	"axiom/internal/trace"
)

// DefaultMaxDepth bounds recursion over nested token sequences.
const DefaultMaxDepth = 256

// Options tunes ParseWith.
type Options struct {
	// MaxDepth is the deepest nesting of brackets, define values, template
	// headers and arguments; <= 0 means DefaultMaxDepth.
	MaxDepth int
}

// grammar parses the arguments of one directive; the reader is positioned
// right after the directive token.
type grammar func(st *state, c *call) (Directive, error)

// grammars is filled in init: grammar bodies call parseTokens, which reads the registry.
var grammars map[string]grammar

func init() {
	grammars = map[string]grammar{
		"include":  parseInclude,
		"define":   parseDefine,
		"insert":   parseInsert,
		"region":   bare(func(s source.Slice) Directive { return Region{Span: s} }),
		"at":       parseAt,
		"in":       parseIn,
		"if":       parseIf,
		"else":     bare(func(s source.Slice) Directive { return Else{Span: s} }),
		"repeated": parseRepeated,
		"inline":   bare(func(s source.Slice) Directive { return Inline{Span: s} }),
		"private":  bare(func(s source.Slice) Directive { return Private{Span: s} }),
		"public":   parsePublic,
		"global":   bare(func(s source.Slice) Directive { return Global{Span: s} }),
	}
}

// Directives returns the names of all known directives.
func Directives() []string {
	return []string{"include", "define", "insert", "region", "at", "in", "if", "else", "repeated", "inline", "private", "public", "global"}
}

// Parse converts a lexed token stream into the compositor tree.
func Parse(tokens []token.Token) ([]Token, error) {
	return ParseWith(context.Background(), tokens, Options{})
}

// ParseWith is Parse with a context and options. Every directive is
// reported as a node-scope trace span.
func ParseWith(ctx context.Context, tokens []token.Token, opts Options) ([]Token, error) {
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	st := &state{ctx: ctx, maxDepth: opts.MaxDepth}
	return st.parseTokens(tokens)
}

type state struct {
	ctx      context.Context
	depth    int
	maxDepth int
}

// call is one directive being parsed.
type call struct {
	directive token.Directive
	r         *parser.Reader
	mark      int
}

// span covers the directive and the arguments consumed so far,
// without a trailing terminator.
func (c *call) span() source.Slice {
	read := c.r.Since(c.mark)
	for len(read) > 0 && token.IsSeparator(read[len(read)-1], lang.AnySeparator) {
		read = read[:len(read)-1]
	}
	if len(read) == 0 {
		return c.directive.Span
	}
	return source.Join(c.directive.Span, token.SourceOf(read))
}

func (st *state) parseTokens(tokens []token.Token) ([]Token, error) {
	if len(tokens) == 0 {
		return []Token{}, nil
	}
	if err := st.ctx.Err(); err != nil {
		return nil, err
	}
	st.depth++
	defer func() { st.depth-- }()
	if st.depth > st.maxDepth {
		return nil, diag.Errorf(diag.SynTooDeep, tokens[0].Source(), "nesting deeper than %d levels", st.maxDepth)
	}

	out := make([]Token, 0, len(tokens))
	r := parser.NewReader(tokens)
	for !r.EOF() {
		t, _ := r.Next()
		dir, ok := t.(token.Directive)
		if !ok {
			conv, err := st.convert(t)
			if err != nil {
				return nil, err
			}
			out = append(out, conv)
			continue
		}
		d, err := st.directive(dir, &r)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

func (st *state) directive(dir token.Directive, r *parser.Reader) (Directive, error) {
	g, ok := grammars[dir.Name]
	if !ok {
		return nil, diag.Errorf(diag.SynUnknownDirective, dir.Span, "unknown directive %q", dir.Name)
	}
	site := trace.Site{Directive: dir.Name}
	if dir.Span.Unit != nil {
		site.Unit = dir.Span.Unit.ID
	}
	_, span := trace.Start(st.ctx, trace.ScopeNode, "directive", site)
	d, err := g(st, &call{directive: dir, r: r, mark: r.Mark()})
	span.End(err)
	if err != nil {
		return nil, err
	}
	return d, nil
}

// convert maps a non-directive token onto the compositor algebra.
func (st *state) convert(t token.Token) (Token, error) {
	switch t := t.(type) {
	case token.Separator:
		return Separator{Type: t.Type, Span: t.Span}, nil
	case token.Symbol:
		return Symbol{Value: t.Value, Span: t.Span}, nil
	case token.Text:
		return Text{Value: t.Value, Span: t.Span}, nil
	case token.Integer:
		return Integer{Value: t.Value, Span: t.Span}, nil
	case token.StringLiteral:
		return StringLiteral{Value: t.Value, Span: t.Span}, nil
	case token.Label:
		return Label{ID: t.ID, Span: t.Span}, nil
	case token.Placeholder:
		return Placeholder{ID: t.ID, Span: t.Span}, nil
	case token.Bracket:
		children, err := st.parseTokens(t.Tokens)
		if err != nil {
			return nil, err
		}
		return Bracket{Type: t.Type, Tokens: children, Open: t.Open, Close: t.Close}, nil
	case token.Directive:
		panic("compositor: directive token reached the literal mapping")
	default:
		panic(fmt.Sprintf("compositor: unexpected token %T", t))
	}
}
