package diagfmt

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	"axiom/internal/compositor"
	"axiom/internal/lexer"
	"axiom/internal/source"
)

func compose(t *testing.T, input string) []compositor.Token {
	t.Helper()
	tokens, err := lexer.Lex(context.Background(), source.NewUnit("tree.axm", input))
	if err != nil {
		t.Fatalf("Lex: %v", err)
	}
	out, err := compositor.Parse(tokens)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return out
}

func TestFormatTreePretty(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{
			input: "!at $pos\n(a)",
			want: `at $pos @1:1
separator normal @1:9
bracket round @2:1
  text a @2:2
`,
		},
		{
			input: "!insert (a = 1) -> { nop } ($x, k: 2)",
			want: `insert @1:1
  parameter a @1:10
    integer 1 @1:14
  body @1:20
    text nop @1:22
  argument
    placeholder x @1:29
  argument k
    integer 2 @1:36
`,
		},
		{
			input: `!include "lib"; !define n 'a'`,
			want: `include lib @1:1
separator strong @1:15
separator weak @1:16
define n @1:17
  integer 97 @1:27
`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var buf bytes.Buffer
			if err := FormatTree(&buf, compose(t, tt.input), TreePretty); err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.want, buf.String()); diff != "" {
				t.Fatalf("tree mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFormatTreeEncoded(t *testing.T) {
	tree := compose(t, "!if $a == 1\n!public $sym\n[1, \"s\"]")
	want := BuildTree(tree)

	var buf bytes.Buffer
	if err := FormatTree(&buf, tree, TreeJSON); err != nil {
		t.Fatal(err)
	}
	var fromJSON []TreeNode
	if err := json.Unmarshal(buf.Bytes(), &fromJSON); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if diff := cmp.Diff(want, fromJSON); diff != "" {
		t.Fatalf("json mismatch (-want +got):\n%s", diff)
	}

	buf.Reset()
	if err := FormatTree(&buf, tree, TreeYAML); err != nil {
		t.Fatal(err)
	}
	var fromYAML []TreeNode
	if err := yaml.Unmarshal(buf.Bytes(), &fromYAML); err != nil {
		t.Fatalf("invalid YAML: %v\n%s", err, buf.String())
	}
	if diff := cmp.Diff(want, fromYAML); diff != "" {
		t.Fatalf("yaml mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(buf.String(), "kind: if") {
		t.Fatalf("expected an if node in:\n%s", buf.String())
	}
	if want[0].Value != "$a == 1" || want[1].Kind != "public" || want[1].Value != "$sym" {
		t.Fatalf("unexpected nodes %+v", want[:2])
	}
}

func TestParseTreeFormat(t *testing.T) {
	for in, want := range map[string]TreeFormat{"": TreePretty, "pretty": TreePretty, "json": TreeJSON, "yaml": TreeYAML} {
		got, err := ParseTreeFormat(in)
		if err != nil || got != want {
			t.Fatalf("ParseTreeFormat(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseTreeFormat("xml"); err == nil {
		t.Fatal("expected an error for xml")
	}
}
