package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"axiom/internal/driver"
)

func TestColorEnabled(t *testing.T) {
	if on, err := colorEnabled("on", os.Stderr); err != nil || !on {
		t.Fatalf("on = %v, %v", on, err)
	}
	if on, err := colorEnabled("OFF", os.Stderr); err != nil || on {
		t.Fatalf("off = %v, %v", on, err)
	}
	if _, err := colorEnabled("always", os.Stderr); err == nil {
		t.Fatal("expected error for unknown mode")
	}
}

func TestCheckPathFile(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.axm")
	bad := filepath.Join(dir, "bad.axm")
	if err := os.WriteFile(good, []byte("!include \"lib\"\nnop"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(bad, []byte("!at"), 0o600); err != nil {
		t.Fatal(err)
	}

	target, err := checkPath(context.Background(), good, driver.Options{}, 1)
	if err != nil || len(target.errs) != 0 {
		t.Fatalf("good: %v, %v", target.errs, err)
	}
	var buf bytes.Buffer
	printSummaries(&buf, target)
	if got := buf.String(); !strings.HasPrefix(got, "ok  ") || !strings.Contains(got, "includes lib") {
		t.Fatalf("summary = %q", got)
	}

	target, err = checkPath(context.Background(), bad, driver.Options{}, 1)
	if err != nil || len(target.errs) != 1 {
		t.Fatalf("bad: %v, %v", target.errs, err)
	}
	buf.Reset()
	env := &runEnv{}
	if err := printCheckErrors(&buf, &buf, env, []checkTarget{target}, "short"); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); !strings.Contains(got, "error SYN2009") {
		t.Fatalf("short output = %q", got)
	}
}

func TestCheckPathDir(t *testing.T) {
	dir := t.TempDir()
	for name, content := range map[string]string{"a.axm": "nop", "b.axm": "(a"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	target, err := checkPath(context.Background(), dir, driver.Options{}, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(target.results) != 2 || len(target.errs) != 1 {
		t.Fatalf("results %d, errors %d", len(target.results), len(target.errs))
	}
	var buf bytes.Buffer
	printSummaries(&buf, target)
	want := "ok   a.axm: 1 tokens, 0 directives\nFAIL b.axm: 0 tokens, 0 directives\n"
	if buf.String() != want {
		t.Fatalf("summaries = %q, want %q", buf.String(), want)
	}
}

func TestReportPassesOtherErrors(t *testing.T) {
	env := &runEnv{}
	plain := errors.New("boom")
	if err := env.report(&bytes.Buffer{}, plain, nil); err != plain {
		t.Fatalf("report = %v", err)
	}
	if err := env.report(&bytes.Buffer{}, nil, nil); err != nil {
		t.Fatalf("report(nil) = %v", err)
	}
}
