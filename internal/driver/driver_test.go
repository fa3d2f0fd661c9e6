package driver

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"axiom/internal/diag"
	"axiom/internal/observ"
	"axiom/internal/source"
	"axiom/internal/token"
	"axiom/internal/trace"
)

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestParseFile(t *testing.T) {
	dir := writeFiles(t, map[string]string{"main.axm": "!at 1\nnop\n"})
	timer := observ.NewTimer()
	res, err := Parse(context.Background(), filepath.Join(dir, "main.axm"), Options{Timer: timer})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	// at, separator, text
	if len(res.Tree) != 3 {
		t.Fatalf("tree has %d tokens, want 3", len(res.Tree))
	}
	var phases []string
	for _, p := range timer.Phases() {
		phases = append(phases, p.Name)
	}
	if diff := cmp.Diff([]string{"load", "lex", "parse"}, phases); diff != "" {
		t.Fatalf("phases mismatch (-want +got):\n%s", diff)
	}
}

func TestParseReportsErrorsWithResult(t *testing.T) {
	dir := writeFiles(t, map[string]string{"bad.axm": "!bogus"})
	res, err := Parse(context.Background(), filepath.Join(dir, "bad.axm"), Options{})
	d, ok := diag.As(err)
	if !ok || d.Code != diag.SynUnknownDirective {
		t.Fatalf("err = %v, want SYN2001", err)
	}
	if res == nil || res.Unit == nil || res.Set.Len() != 1 {
		t.Fatalf("expected the loaded unit alongside the error, got %+v", res)
	}
}

func TestParseLoadError(t *testing.T) {
	res, err := Parse(context.Background(), filepath.Join(t.TempDir(), "missing.axm"), Options{})
	if res != nil {
		t.Fatalf("unexpected result %+v", res)
	}
	d, ok := diag.As(err)
	if !ok || d.Code != diag.DrvLoadFile {
		t.Fatalf("err = %v, want DRV3002", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("err = %v does not wrap os.ErrNotExist", err)
	}
}

func TestTokenizeStopAfter(t *testing.T) {
	dir := writeFiles(t, map[string]string{"c.axm": "'a'"})
	path := filepath.Join(dir, "c.axm")

	res, err := Tokenize(context.Background(), path, Options{StopAfter: "tokenize"})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Tokens) != 3 {
		t.Fatalf("raw tokens = %v, want three", res.Tokens)
	}

	res, err = Tokenize(context.Background(), path, Options{StopAfter: "fold-characters"})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Tokens) != 1 || res.Tokens[0].Kind() != token.KindInteger {
		t.Fatalf("folded tokens = %v, want one integer", res.Tokens)
	}
}

func TestSummarize(t *testing.T) {
	dir := writeFiles(t, map[string]string{"s.axm": "!include \"lib\"\n(!include $x)\nnop"})
	res, err := Parse(context.Background(), filepath.Join(dir, "s.axm"), Options{})
	if err != nil {
		t.Fatal(err)
	}
	s := Summarize(res.Tree, nil)
	// include, separator, bracket, include, separator, text
	if s.Tokens != 6 || s.Directives != 2 {
		t.Fatalf("summary = %+v", s)
	}
	if diff := cmp.Diff([]string{"lib"}, s.Includes); diff != "" {
		t.Fatalf("includes mismatch (-want +got):\n%s", diff)
	}
}

func TestParseDir(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"a.axm":     "nop",
		"b.axm":     "nop\n!bogus",
		"sub/c.axm": "!include \"a\"",
		"notes.txt": "!bogus",
	})
	set, results, bag, err := ParseDir(context.Background(), dir, Options{}, 2)
	if err != nil {
		t.Fatalf("ParseDir: %v", err)
	}
	var paths []string
	for _, r := range results {
		paths = append(paths, set.DisplayPath(r.Unit))
	}
	if diff := cmp.Diff([]string{"a.axm", "b.axm", "sub/c.axm"}, paths); diff != "" {
		t.Fatalf("units mismatch (-want +got):\n%s", diff)
	}
	if bag.Len() != 1 {
		t.Fatalf("bag has %d errors, want 1", bag.Len())
	}
	if got := diag.FormatShort(bag.Items(), set, false); got != `error SYN2001 b.axm:2:1 unknown directive "bogus"` {
		t.Fatalf("unexpected errors %q", got)
	}
	if results[1].Tree != nil || results[1].Summary.Err == nil {
		t.Fatalf("failed unit result = %+v", results[1])
	}
	if diff := cmp.Diff([]string{"a"}, results[2].Summary.Includes); diff != "" {
		t.Fatalf("includes mismatch (-want +got):\n%s", diff)
	}
}

func TestParseDirCache(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"ok.axm":  "!include \"lib\"\nnop",
		"bad.axm": "(a\n]",
	})
	cache, err := NewDiskCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	opts := Options{Cache: cache}

	_, first, _, err := ParseDir(context.Background(), dir, opts, 1)
	if err != nil {
		t.Fatal(err)
	}
	_, second, bag, err := ParseDir(context.Background(), dir, opts, 1)
	if err != nil {
		t.Fatal(err)
	}
	for i := range second {
		if first[i].Cached || !second[i].Cached {
			t.Fatalf("%s: cached %v then %v", second[i].Path, first[i].Cached, second[i].Cached)
		}
		a, b := first[i].Summary, second[i].Summary
		if a.Tokens != b.Tokens || a.Directives != b.Directives || !cmp.Equal(a.Includes, b.Includes) {
			t.Fatalf("%s: summary %+v != %+v", second[i].Path, a, b)
		}
	}

	// bad.axm sorts first
	cachedErr := second[0].Summary.Err
	if cachedErr == nil || cachedErr.Code != diag.LexMismatchedBracket {
		t.Fatalf("cached error = %v", cachedErr)
	}
	if cachedErr.Error() != first[0].Summary.Err.Error() || len(cachedErr.Notes) != 1 {
		t.Fatalf("cached error %v differs from %v", cachedErr, first[0].Summary.Err)
	}
	if bag.Len() != 1 {
		t.Fatalf("bag has %d errors, want 1", bag.Len())
	}

	if err := cache.DropAll(); err != nil {
		t.Fatal(err)
	}
}

func TestDiskCacheRejectsOtherContent(t *testing.T) {
	cache, err := NewDiskCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	unit := source.NewUnit("u.axm", "nop")
	if err := cache.Put(unit, Options{}, Summary{Tokens: 1}); err != nil {
		t.Fatal(err)
	}
	if _, ok, err := cache.Get(unit, Options{}); err != nil || !ok {
		t.Fatalf("Get = %v, %v", ok, err)
	}
	if _, ok, _ := cache.Get(source.NewUnit("u.axm", "halt"), Options{}); ok {
		t.Fatal("changed text must miss")
	}
	if _, ok, _ := cache.Get(unit, Options{MaxDepth: 3}); ok {
		t.Fatal("changed options must miss")
	}
}

func TestParseProgram(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"main.axm":     "!include \"lib\"\n!include \"dir/util.axm\"",
		"lib.axm":      "!include \"dir/util.axm\"\n!include $other",
		"dir/util.axm": "nop",
	})
	set := source.NewUnitSetWithBase(dir)
	entry, err := set.Load(filepath.Join(dir, "main.axm"), source.LoadOptions{})
	if err != nil {
		t.Fatal(err)
	}
	memo := NewUnitCache(4)
	resolver := &DirResolver{Set: set, Dirs: []string{dir}}

	prog, err := ParseProgram(context.Background(), set, entry, resolver, Options{Memo: memo})
	if err != nil {
		t.Fatalf("ParseProgram: %v", err)
	}
	var units []string
	for _, u := range prog.Units {
		units = append(units, set.DisplayPath(u.Unit))
	}
	if diff := cmp.Diff([]string{"main.axm", "lib.axm", "dir/util.axm"}, units); diff != "" {
		t.Fatalf("units mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"dir/util.axm"}, prog.Units[1].Includes); diff != "" {
		t.Fatalf("lib includes mismatch (-want +got):\n%s", diff)
	}
	if memo.Len() != 3 || set.Len() != 3 {
		t.Fatalf("memo %d units, set %d units; want 3 each", memo.Len(), set.Len())
	}

	// второй вход переиспользует разобранные юниты
	lib, _ := set.Get(prog.Units[1].Unit.ID)
	again, err := ParseProgram(context.Background(), set, lib, resolver, Options{Memo: memo})
	if err != nil || len(again.Units) != 2 {
		t.Fatalf("ParseProgram(lib) = %v, %v", again, err)
	}
	if set.Len() != 3 {
		t.Fatalf("units reloaded: set has %d", set.Len())
	}
}

func TestParseProgramMissingUnit(t *testing.T) {
	dir := writeFiles(t, map[string]string{"main.axm": "nop\n!include \"nope\""})
	set := source.NewUnitSetWithBase(dir)
	entry, err := set.Load(filepath.Join(dir, "main.axm"), source.LoadOptions{})
	if err != nil {
		t.Fatal(err)
	}
	prog, err := ParseProgram(context.Background(), set, entry, &DirResolver{Set: set, Dirs: []string{dir}}, Options{})
	d, ok := diag.As(err)
	if !ok || d.Code != diag.DrvMissingUnit {
		t.Fatalf("err = %v, want DRV3001", err)
	}
	if s, _ := d.Slice(); s.Index != 13 || s.Text() != `"nope"` {
		t.Fatalf("error points at %q (%d)", s.Text(), s.Index)
	}
	if !errors.Is(err, ErrUnitNotFound) {
		t.Fatalf("err = %v does not wrap ErrUnitNotFound", err)
	}
	if len(prog.Units) != 1 {
		t.Fatalf("partial program has %d units, want 1", len(prog.Units))
	}
}

func TestParseDirTracesUnits(t *testing.T) {
	dir := writeFiles(t, map[string]string{"a.axm": "nop", "b.axm": "!bogus"})
	tracer := trace.NewRingTracer(256, trace.LevelDetail)
	ctx := trace.WithTracer(context.Background(), tracer)
	if _, _, _, err := ParseDir(ctx, dir, Options{}, 0); err != nil {
		t.Fatal(err)
	}

	var dirSpan uint64
	units := map[string]trace.Event{}
	for _, ev := range tracer.Snapshot() {
		if ev.Kind != trace.KindSpanEnd {
			continue
		}
		switch ev.Name {
		case "parse-dir":
			dirSpan = ev.SpanID
			if ev.Tokens != 2 {
				t.Fatalf("parse-dir counted %d units, want 2", ev.Tokens)
			}
		case "unit":
			units[ev.Site.Unit] = ev
		}
	}
	if dirSpan == 0 || len(units) != 2 {
		t.Fatalf("parse-dir span %d, unit spans %v", dirSpan, units)
	}
	for id, ev := range units {
		if ev.ParentID != dirSpan {
			t.Fatalf("unit %s has parent %d, want %d", id, ev.ParentID, dirSpan)
		}
	}
	if ev := units["a.axm"]; ev.Failed || ev.Tokens != 1 {
		t.Fatalf("a.axm span = %+v", ev)
	}
	if ev := units["b.axm"]; !ev.Failed || ev.Code != diag.SynUnknownDirective {
		t.Fatalf("b.axm span = %+v, want failure %s", ev, diag.SynUnknownDirective.ID())
	}
}

func TestParseProgramTracesPassesPerUnit(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"main.axm": `!include "lib"` + "\nnop",
		"lib.axm":  "@1",
	})
	set := source.NewUnitSetWithBase(dir)
	entry, err := set.Load(filepath.Join(dir, "main.axm"), source.LoadOptions{})
	if err != nil {
		t.Fatal(err)
	}
	ring := trace.NewRingTracer(256, trace.LevelDetail)
	ctx := trace.WithTracer(context.Background(), ring)
	if _, err := ParseProgram(ctx, set, entry, &DirResolver{Set: set, Dirs: []string{dir}}, Options{}); err == nil {
		t.Fatal("expected lib.axm to fail")
	}

	failed := ring.Failures()
	var sites []trace.Site
	var codes []diag.Code
	for _, ev := range failed {
		sites = append(sites, ev.Site)
		codes = append(codes, ev.Code)
	}
	wantSites := []trace.Site{
		{Unit: "lib.axm", Pass: "extract-labels"},
		{Unit: "lib.axm"},
		{Unit: "main.axm"},
	}
	if diff := cmp.Diff(wantSites, sites); diff != "" {
		t.Fatalf("failed sites (-want +got):\n%s", diff)
	}
	wantCodes := []diag.Code{diag.LexLabelInvalid, diag.LexLabelInvalid, diag.LexLabelInvalid}
	if diff := cmp.Diff(wantCodes, codes); diff != "" {
		t.Fatalf("failure codes (-want +got):\n%s", diff)
	}
}
