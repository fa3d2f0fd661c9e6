package compositor_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"axiom/internal/compositor"
	"axiom/internal/diag"
	"axiom/internal/lang"
	"axiom/internal/lexer"
	"axiom/internal/source"
	"axiom/internal/trace"
)

func TestLiteralMapping(t *testing.T) {
	out := parse(t, `mov r0, 0x10; @loop ($a, "s")`)
	want := []string{
		`Text("mov")`, "Separator(weak)", `Text("r0")`, `Symbol(",")`, "Separator(weak)",
		"Integer(16)", "Separator(strong)", "Separator(weak)", "Label(loop)", "Separator(weak)",
		`(Placeholder(a) Symbol(",") Separator(weak) StringLiteral("s"))`,
	}
	if diff := cmp.Diff(want, describe(out)); diff != "" {
		t.Fatalf("tokens mismatch (-want +got):\n%s", diff)
	}
	if got := out[5].Source().Text(); got != "0x10" {
		t.Fatalf("integer span = %q, want %q", got, "0x10")
	}
	if got := out[10].Source().Text(); got != `($a, "s")` {
		t.Fatalf("bracket span = %q", got)
	}
}

func TestAtDirective(t *testing.T) {
	at := single[compositor.At](t, "!at $pos")
	ref, ok := at.Address.(compositor.PlaceholderRef[uint64])
	if !ok {
		t.Fatalf("address = %T, want placeholder", at.Address)
	}
	if diff := cmp.Diff(lang.NamespacedId{"pos"}, ref.ID); diff != "" {
		t.Fatalf("placeholder id mismatch (-want +got):\n%s", diff)
	}
	if got := at.Span.Text(); got != "!at $pos" {
		t.Fatalf("directive span = %q", got)
	}

	at = single[compositor.At](t, "!at 42")
	v, ok := at.Address.(compositor.Value[uint64])
	if !ok || v.Value != 42 {
		t.Fatalf("address = %v, want Value(42)", at.Address)
	}
	if got := v.Span.Text(); got != "42" {
		t.Fatalf("value span = %q", got)
	}
}

func TestInsertPlaceholderTemplate(t *testing.T) {
	ins := single[compositor.Insert](t, "!insert $tmpl (1, x: 2)")
	ref, ok := ins.Template.(compositor.PlaceholderRef[compositor.TemplateHeader])
	if !ok || ref.ID.String() != "tmpl" {
		t.Fatalf("template = %v, want $tmpl", ins.Template)
	}
	if len(ins.Arguments.Positional) != 1 {
		t.Fatalf("positional = %d, want 1", len(ins.Arguments.Positional))
	}
	if diff := cmp.Diff([]string{"Integer(1)"}, describe(ins.Arguments.Positional[0])); diff != "" {
		t.Fatalf("positional mismatch (-want +got):\n%s", diff)
	}
	kw, ok := ins.Arguments.Keyword["x"]
	if !ok {
		t.Fatalf("keyword x missing: %v", ins.Arguments.Order)
	}
	if diff := cmp.Diff([]string{"Integer(2)"}, describe(kw.Value)); diff != "" {
		t.Fatalf("keyword mismatch (-want +got):\n%s", diff)
	}
	if got := ins.Span.Text(); got != "!insert $tmpl (1, x: 2)" {
		t.Fatalf("directive span = %q", got)
	}
}

func TestInsertTemplateHeader(t *testing.T) {
	ins := single[compositor.Insert](t, "!insert (a, b = 2) -> { add a, b } (1, b : 3,)")
	v, ok := ins.Template.(compositor.Value[compositor.TemplateHeader])
	if !ok {
		t.Fatalf("template = %T, want literal header", ins.Template)
	}
	if got := v.Span.Text(); got != "(a, b = 2) -> { add a, b }" {
		t.Fatalf("template span = %q", got)
	}
	params := v.Value.Parameters
	if len(params) != 2 {
		t.Fatalf("parameters = %d, want 2", len(params))
	}
	if params[0].ID.String() != "a" || params[0].Default != nil {
		t.Fatalf("first parameter = %v %v", params[0].ID, params[0].Default)
	}
	if params[1].ID.String() != "b" {
		t.Fatalf("second parameter = %v", params[1].ID)
	}
	if diff := cmp.Diff([]string{"Integer(2)"}, describe(params[1].Default)); diff != "" {
		t.Fatalf("default mismatch (-want +got):\n%s", diff)
	}
	if got := params[1].Span.Text(); got != "b = 2" {
		t.Fatalf("parameter span = %q", got)
	}

	body := v.Value.Body
	if body == nil || body.Type != lang.Curly {
		t.Fatalf("body = %v", body)
	}
	wantBody := []string{`Text("add")`, "Separator(weak)", `Text("a")`, `Symbol(",")`, "Separator(weak)", `Text("b")`}
	if diff := cmp.Diff(wantBody, describe(body.Tokens)); diff != "" {
		t.Fatalf("body mismatch (-want +got):\n%s", diff)
	}

	if len(ins.Arguments.Positional) != 1 || len(ins.Arguments.Order) != 1 {
		t.Fatalf("arguments = %+v", ins.Arguments)
	}
	if diff := cmp.Diff([]string{"Integer(3)"}, describe(ins.Arguments.Keyword["b"].Value)); diff != "" {
		t.Fatalf("keyword mismatch (-want +got):\n%s", diff)
	}
}

func TestInsertKeywordOrder(t *testing.T) {
	ins := single[compositor.Insert](t, "!insert $t (z: 1, a::b: (2), 3)")
	var ids []string
	for _, kw := range ins.Arguments.KeywordArgs() {
		ids = append(ids, kw.ID.String())
	}
	if diff := cmp.Diff([]string{"z", "a::b"}, ids); diff != "" {
		t.Fatalf("keyword order mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"(Integer(2))"}, describe(ins.Arguments.Keyword["a::b"].Value)); diff != "" {
		t.Fatalf("keyword value mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Integer(3)"}, describe(ins.Arguments.Positional[0])); diff != "" {
		t.Fatalf("positional mismatch (-want +got):\n%s", diff)
	}
}

func TestInsertEmptyArguments(t *testing.T) {
	ins := single[compositor.Insert](t, "!insert $t ()")
	if len(ins.Arguments.Positional) != 0 || len(ins.Arguments.Keyword) != 0 {
		t.Fatalf("arguments = %+v, want none", ins.Arguments)
	}
}

func TestDefine(t *testing.T) {
	out := parse(t, "!define answer 42\nmov r0, answer")
	def, ok := out[0].(compositor.Define)
	if !ok {
		t.Fatalf("first token = %v, want Define", out[0])
	}
	if def.ID.String() != "answer" {
		t.Fatalf("id = %v", def.ID)
	}
	if diff := cmp.Diff([]string{"Integer(42)"}, describe(def.Value)); diff != "" {
		t.Fatalf("value mismatch (-want +got):\n%s", diff)
	}
	if got := def.Span.Text(); got != "!define answer 42" {
		t.Fatalf("directive span = %q", got)
	}
	// the statement terminator belongs to the definition
	want := []string{`Text("mov")`, "Separator(weak)", `Text("r0")`, `Symbol(",")`, "Separator(weak)", `Text("answer")`}
	if diff := cmp.Diff(want, describe(out[1:])); diff != "" {
		t.Fatalf("rest mismatch (-want +got):\n%s", diff)
	}
}

func TestDefineValueIsParsed(t *testing.T) {
	def := single[compositor.Define](t, "!define ns::org !at 3 ;")
	if diff := cmp.Diff(lang.NamespacedId{"ns", "org"}, def.ID); diff != "" {
		t.Fatalf("id mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"At(3)"}, describe(def.Value)); diff != "" {
		t.Fatalf("value mismatch (-want +got):\n%s", diff)
	}
}

func TestIf(t *testing.T) {
	out := parse(t, "!if $x == 1\nnop\n!else\nhalt")
	want := []string{"If($x == 1)", `Text("nop")`, "Separator(normal)", "Else", "Separator(normal)", `Text("halt")`}
	if diff := cmp.Diff(want, describe(out)); diff != "" {
		t.Fatalf("tokens mismatch (-want +got):\n%s", diff)
	}
	cond := out[0].(compositor.If).Condition
	if len(cond) != 6 {
		t.Fatalf("condition has %d lexical tokens, want 6", len(cond))
	}
}

func TestBareDirectives(t *testing.T) {
	out := parse(t, "!region\n!inline\n!private\n!global")
	want := []string{"Region", "Separator(normal)", "Inline", "Separator(normal)", "Private", "Separator(normal)", "Global"}
	if diff := cmp.Diff(want, describe(out)); diff != "" {
		t.Fatalf("tokens mismatch (-want +got):\n%s", diff)
	}
	if got := out[0].Source().Text(); got != "!region" {
		t.Fatalf("region span = %q", got)
	}
}

func TestPublic(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"!public $sym", []string{"Public($sym)"}},
		{"!public", []string{"Public"}},
		{"!public foo", []string{"Public", "Separator(weak)", `Text("foo")`}},
		{"!public\n$sym", []string{"Public", "Separator(normal)", "Placeholder(sym)"}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, describe(parse(t, tt.input))); diff != "" {
				t.Fatalf("tokens mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestIncludeInRepeated(t *testing.T) {
	inc := single[compositor.Include](t, `!include "lib/math"`)
	if v, ok := inc.Target.(compositor.Value[string]); !ok || v.Value != "lib/math" {
		t.Fatalf("target = %v", inc.Target)
	}
	inc = single[compositor.Include](t, "!include $unit")
	if _, ok := inc.Target.(compositor.PlaceholderRef[string]); !ok {
		t.Fatalf("target = %T, want placeholder", inc.Target)
	}

	in := single[compositor.In](t, "!in $ram")
	if in.Region.String() != "$ram" {
		t.Fatalf("region = %v", in.Region)
	}

	out := parse(t, "!repeated 0b100 nop")
	want := []string{"Repeated(4)", "Separator(weak)", `Text("nop")`}
	if diff := cmp.Diff(want, describe(out)); diff != "" {
		t.Fatalf("tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestErrors(t *testing.T) {
	tests := []struct {
		input  string
		code   diag.Code
		offset int
	}{
		{"!frobnicate", diag.SynUnknownDirective, 0},
		{"(!nope)", diag.SynUnknownDirective, 1},
		{"!include", diag.SynIncludeMissing, 0},
		{"!include\n\"a\"", diag.SynIncludeMissing, 0},
		{"!include 42", diag.SynIncludeKind, 9},
		{"!define", diag.SynDefineMissingID, 0},
		{"!define 42 x", diag.SynDefineMissingID, 8},
		{"!define x", diag.SynDefineEmpty, 0},
		{"!insert", diag.SynInsertMissing, 0},
		{"!insert $t", diag.SynInsertMissing, 10},
		{"!insert foo (1)", diag.SynInsertTemplate, 8},
		{"!insert (a) (1)", diag.SynInsertTemplate, 8},
		{"!insert (a) -> (1)", diag.SynInsertTemplate, 15},
		{"!insert (a, , b) -> {} (1)", diag.SynInsertTemplate, 8},
		{"!insert (a, a) -> {} (1)", diag.SynInsertTemplate, 12},
		{"!insert (a b) -> {} (1)", diag.SynInsertTemplate, 11},
		{"!insert (a =) -> {x} ()", diag.SynHeaderDefault, 9},
		{"!insert $t (1, , 2)", diag.SynArgumentList, 11},
		{"!insert $t (x: 1, x: 2)", diag.SynArgumentList, 18},
		{"!insert $t (x:)", diag.SynArgumentList, 12},
		{"!at", diag.SynAtMissing, 0},
		{"!at foo", diag.SynAtKind, 4},
		{"!in", diag.SynInMissing, 0},
		{"!in 5", diag.SynInKind, 4},
		{"!if", diag.SynIfEmpty, 0},
		{"!repeated", diag.SynRepeatedMissing, 0},
		{"!repeated x", diag.SynRepeatedKind, 10},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := parseWith(tt.input, compositor.Options{})
			expectError(t, err, tt.code, tt.offset)
		})
	}
}

func TestMaxDepth(t *testing.T) {
	if _, err := parseWith("(((a)))", compositor.Options{MaxDepth: 4}); err != nil {
		t.Fatalf("depth 4: %v", err)
	}
	_, err := parseWith("(((a)))", compositor.Options{MaxDepth: 3})
	expectError(t, err, diag.SynTooDeep, 3)

	deep := strings.Repeat("(", 300) + "a" + strings.Repeat(")", 300)
	_, err = parseWith(deep, compositor.Options{})
	expectError(t, err, diag.SynTooDeep, compositor.DefaultMaxDepth)
}

func TestParseCancelled(t *testing.T) {
	tokens, err := lexer.Lex(context.Background(), source.NewUnit("test", "nop"))
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := compositor.ParseWith(ctx, tokens, compositor.Options{}); err != context.Canceled {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestDirectiveSpansAreTraced(t *testing.T) {
	ring := trace.NewRingTracer(64, trace.LevelDebug)
	ctx := trace.WithTracer(context.Background(), ring)
	tokens, err := lexer.Lex(context.Background(), source.NewUnit("test", "!at 1\n!bogus"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := compositor.ParseWith(ctx, tokens, compositor.Options{}); err == nil {
		t.Fatal("expected an error for !bogus")
	}
	var sites []trace.Site
	for _, ev := range ring.Snapshot() {
		if ev.Kind == trace.KindSpanEnd && ev.Name == "directive" {
			sites = append(sites, ev.Site)
		}
	}
	if diff := cmp.Diff([]trace.Site{{Unit: "test", Directive: "at"}}, sites); diff != "" {
		t.Fatalf("span mismatch (-want +got):\n%s", diff)
	}
}

func TestFailedDirectiveSpanCarriesCode(t *testing.T) {
	ring := trace.NewRingTracer(64, trace.LevelDebug)
	ctx := trace.WithTracer(context.Background(), ring)
	tokens, err := lexer.Lex(context.Background(), source.NewUnit("test", "!at"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := compositor.ParseWith(ctx, tokens, compositor.Options{}); err == nil {
		t.Fatal("expected an error for a bare !at")
	}
	failed := ring.Failures()
	if len(failed) != 1 || failed[0].Site.Directive != "at" || failed[0].Code != diag.SynAtMissing {
		t.Fatalf("failures = %+v", failed)
	}
}

func TestDirectivesAreRegistered(t *testing.T) {
	for _, name := range compositor.Directives() {
		_, err := parseWith("!"+name, compositor.Options{})
		if d, ok := diag.As(err); ok && d.Code == diag.SynUnknownDirective {
			t.Fatalf("directive %q is not registered", name)
		}
	}
}
