package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"axiom/internal/compositor"
	"axiom/internal/source"
)

// TreeFormat selects the rendering of a compositor tree.
type TreeFormat uint8

const (
	TreePretty TreeFormat = iota
	TreeJSON
	TreeYAML
)

// ParseTreeFormat converts a CLI value to a TreeFormat.
func ParseTreeFormat(s string) (TreeFormat, error) {
	switch s {
	case "pretty", "":
		return TreePretty, nil
	case "json":
		return TreeJSON, nil
	case "yaml":
		return TreeYAML, nil
	default:
		return TreePretty, fmt.Errorf("unknown tree format %q (expected pretty|json|yaml)", s)
	}
}

// TreeNode is a format-neutral view of one compositor token.
type TreeNode struct {
	Kind     string     `json:"kind" yaml:"kind"`
	Value    string     `json:"value,omitempty" yaml:"value,omitempty"`
	At       string     `json:"at,omitempty" yaml:"at,omitempty"`
	Children []TreeNode `json:"children,omitempty" yaml:"children,omitempty"`
}

func at(s source.Slice) string {
	if s.IsZero() {
		return ""
	}
	pos := s.Position()
	return fmt.Sprintf("%d:%d", pos.Line, pos.Col)
}

// BuildTree converts compositor tokens into tree nodes.
func BuildTree(tokens []compositor.Token) []TreeNode {
	out := make([]TreeNode, 0, len(tokens))
	for _, t := range tokens {
		out = append(out, buildNode(t))
	}
	return out
}

func buildNode(t compositor.Token) TreeNode {
	n := TreeNode{At: at(t.Source())}
	switch t := t.(type) {
	case compositor.Separator:
		n.Kind, n.Value = "separator", t.Type.String()
	case compositor.Symbol:
		n.Kind, n.Value = "symbol", t.Value
	case compositor.Text:
		n.Kind, n.Value = "text", t.Value
	case compositor.Integer:
		n.Kind, n.Value = "integer", strconv.FormatInt(t.Value, 10)
	case compositor.StringLiteral:
		n.Kind, n.Value = "string", strconv.Quote(t.Value)
	case compositor.Label:
		n.Kind, n.Value = "label", t.ID.String()
	case compositor.Placeholder:
		n.Kind, n.Value = "placeholder", t.ID.String()
	case compositor.Bracket:
		n.Kind, n.Value = "bracket", t.Type.String()
		n.Children = BuildTree(t.Tokens)
	case compositor.Include:
		n.Kind, n.Value = t.Name(), t.Target.String()
	case compositor.Define:
		n.Kind, n.Value = t.Name(), t.ID.String()
		n.Children = BuildTree(t.Value)
	case compositor.Insert:
		n.Kind = t.Name()
		n.Children = insertChildren(t)
		if _, ok := t.Template.(compositor.PlaceholderRef[compositor.TemplateHeader]); ok {
			n.Value = t.Template.String()
		}
	case compositor.At:
		n.Kind, n.Value = t.Name(), t.Address.String()
	case compositor.In:
		n.Kind, n.Value = t.Name(), t.Region.String()
	case compositor.Repeated:
		n.Kind, n.Value = t.Name(), t.Count.String()
	case compositor.If:
		n.Kind, n.Value = t.Name(), t.Text()
	case compositor.Public:
		n.Kind = t.Name()
		if t.Target != nil {
			n.Value = t.Target.String()
		}
	case compositor.Directive:
		n.Kind = t.Name()
	default:
		n.Kind = fmt.Sprintf("%T", t)
	}
	return n
}

func insertChildren(ins compositor.Insert) []TreeNode {
	var out []TreeNode
	if h, ok := ins.Template.(compositor.Value[compositor.TemplateHeader]); ok {
		for _, p := range h.Value.Parameters {
			out = append(out, TreeNode{Kind: "parameter", Value: p.ID.String(), At: at(p.Span), Children: BuildTree(p.Default)})
		}
		if h.Value.Body != nil {
			out = append(out, TreeNode{Kind: "body", At: at(h.Value.Body.Source()), Children: BuildTree(h.Value.Body.Tokens)})
		}
	}
	for _, arg := range ins.Arguments.Positional {
		out = append(out, TreeNode{Kind: "argument", Children: BuildTree(arg)})
	}
	for _, arg := range ins.Arguments.KeywordArgs() {
		out = append(out, TreeNode{Kind: "argument", Value: arg.ID.String(), Children: BuildTree(arg.Value)})
	}
	return out
}

// FormatTree renders tokens in the given format.
func FormatTree(w io.Writer, tokens []compositor.Token, format TreeFormat) error {
	nodes := BuildTree(tokens)
	switch format {
	case TreeJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(nodes)
	case TreeYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(nodes); err != nil {
			return err
		}
		return encoder.Close()
	default:
		return formatTreePretty(w, nodes, 0)
	}
}

func formatTreePretty(w io.Writer, nodes []TreeNode, depth int) error {
	for _, n := range nodes {
		line := strings.Repeat("  ", depth) + n.Kind
		if n.Value != "" {
			line += " " + n.Value
		}
		if n.At != "" {
			line += " @" + n.At
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
		if err := formatTreePretty(w, n.Children, depth+1); err != nil {
			return err
		}
	}
	return nil
}
