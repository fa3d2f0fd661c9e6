package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"axiom/internal/diag"
	"axiom/internal/source"
)

// TestPathModes проверяет различные режимы форматирования путей
func TestPathModes(t *testing.T) {
	set := source.NewUnitSetWithBase("/home/user/project")
	unit := set.Add("/home/user/project/src/test.axm", "ld r0, \"abc\n", 0)
	errs := []*diag.Error{
		diag.Errorf(diag.LexStringUnterminated, unit.Slice(7, 11), "unterminated string literal"),
	}

	tests := []struct {
		name     string
		mode     PathMode
		contains string
	}{
		{"Absolute path", PathModeAbsolute, "/home/user/project/src/test.axm:1:8"},
		{"Relative path", PathModeRelative, "src/test.axm:1:8"},
		{"Basename only", PathModeBasename, "test.axm:1:8"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Pretty(&buf, errs, set, PrettyOpts{PathMode: tt.mode})
			output := buf.String()

			if !strings.Contains(output, tt.contains) {
				t.Errorf("Expected output to contain %q, got:\n%s", tt.contains, output)
			}
			if !strings.Contains(output, "ERROR LEX1007: unterminated string literal") {
				t.Errorf("Expected header in output, got:\n%s", output)
			}
		})
	}
}

// TestPathModeAuto проверяет авто-режим выбора пути
func TestPathModeAuto(t *testing.T) {
	set := source.NewUnitSet()
	tests := []struct {
		path     string
		expected string
	}{
		{"test.axm", "test.axm:1:1"},
		{"very/long/relative/path/to/some/nested/directory/file.axm", " file.axm:1:1"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			unit := set.AddVirtual(tt.path, "nop\n")
			var buf bytes.Buffer
			Pretty(&buf, []*diag.Error{diag.Errorf(diag.SynUnknownDirective, unit.Slice(0, 3), "x")}, set, PrettyOpts{})
			if !strings.HasPrefix(buf.String(), strings.TrimSpace(tt.expected)) {
				t.Errorf("Expected output to start with %q, got:\n%s", tt.expected, buf.String())
			}
		})
	}
}

func TestPrettyCaret(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		start int
		end   int
		line  string
		caret string
	}{
		{"ascii", "ld r0, \"abc\n", 7, 11, "1 | ld r0, \"abc", "  |        ^~~~"},
		{"wide", "ab 世界 x", 10, 11, "1 | ab 世界 x", "  |         ^"},
		{"tab", "\tnop", 1, 4, "1 |     nop", "  |     ^~~"},
		{"empty slice", "nop", 3, 3, "1 | nop", "  |    ^"},
		{"multi line", "(a\nb", 0, 4, "1 | (a", "  | ^~"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			unit := source.NewUnit("t.axm", tt.text)
			var buf bytes.Buffer
			Pretty(&buf, []*diag.Error{diag.Errorf(diag.LexUnclosedBracket, unit.Slice(tt.start, tt.end), "m")}, nil, PrettyOpts{})
			lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
			if len(lines) != 3 {
				t.Fatalf("expected 3 lines, got:\n%s", buf.String())
			}
			if lines[1] != tt.line {
				t.Errorf("source line = %q, want %q", lines[1], tt.line)
			}
			if lines[2] != tt.caret {
				t.Errorf("caret line = %q, want %q", lines[2], tt.caret)
			}
		})
	}
}

func TestPrettyContextAndNotes(t *testing.T) {
	unit := source.NewUnit("test.axm", "(a\n]")
	e := diag.Errorf(diag.LexMismatchedBracket, unit.Slice(3, 4), "mismatched closing bracket").
		WithNote(unit.Slice(0, 1), "opening bracket is here")

	var buf bytes.Buffer
	Pretty(&buf, []*diag.Error{e}, nil, PrettyOpts{Context: 1, ShowNotes: true})
	output := buf.String()

	for _, want := range []string{
		"test.axm:2:1: ERROR LEX1016: mismatched closing bracket\n",
		"1 | (a\n",
		"2 | ]\n",
		"note: test.axm:1:1: opening bracket is here\n",
	} {
		if !strings.Contains(output, want) {
			t.Fatalf("expected %q in output, got:\n%s", want, output)
		}
	}

	buf.Reset()
	Pretty(&buf, []*diag.Error{e}, nil, PrettyOpts{})
	if strings.Contains(buf.String(), "note:") {
		t.Fatalf("notes rendered without ShowNotes:\n%s", buf.String())
	}
}

func TestPrettyGeneratedAndCause(t *testing.T) {
	e := diag.Wrap(diag.DrvLoadFile, source.Generated{Generator: "include"}, errString("no such file"), "cannot load unit")
	var buf bytes.Buffer
	Pretty(&buf, []*diag.Error{e}, nil, PrettyOpts{})
	want := "<include>: ERROR DRV3002: cannot load unit: no such file\n"
	if buf.String() != want {
		t.Fatalf("got %q, want %q", buf.String(), want)
	}
}

func TestPrettyColor(t *testing.T) {
	unit := source.NewUnit("c.axm", "nop")
	errs := []*diag.Error{diag.Errorf(diag.SynUnknownDirective, unit.Slice(0, 3), "x")}

	var buf bytes.Buffer
	Pretty(&buf, errs, nil, PrettyOpts{Color: true})
	if !strings.Contains(buf.String(), "\x1b[") {
		t.Fatalf("expected ANSI escapes, got %q", buf.String())
	}
	buf.Reset()
	Pretty(&buf, errs, nil, PrettyOpts{Color: false})
	if strings.Contains(buf.String(), "\x1b[") {
		t.Fatalf("unexpected ANSI escapes in %q", buf.String())
	}
}

type errString string

func (e errString) Error() string { return string(e) }
