package diag

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"axiom/internal/source"
)

type goldenError struct {
	Kind    string
	Code    string
	Path    string
	Line    int
	Column  int
	Message string
}

// FormatShort renders errors into a stable, single-line-per-entry
// representation suitable for golden files and CLI short output:
//
//	error LEX1017 main.axm:1:1 unmatched opening bracket
//
// Paths are resolved through set when it is non-nil.
func FormatShort(errs []*Error, set *source.UnitSet, includeNotes bool) string {
	if len(errs) == 0 {
		return ""
	}

	rendered := make([]goldenError, 0, len(errs))
	for _, e := range errs {
		rendered = appendError(rendered, e, set, includeNotes)
	}

	sort.SliceStable(rendered, func(i, j int) bool {
		di, dj := rendered[i], rendered[j]
		if di.Path != dj.Path {
			return di.Path < dj.Path
		}
		if di.Line != dj.Line {
			return di.Line < dj.Line
		}
		if di.Column != dj.Column {
			return di.Column < dj.Column
		}
		if di.Kind != dj.Kind {
			return di.Kind < dj.Kind
		}
		return di.Code < dj.Code
	})

	var b strings.Builder
	for i, d := range rendered {
		fmt.Fprintf(&b, "%s %s %s:%d:%d %s", d.Kind, d.Code, d.Path, d.Line, d.Column, d.Message)
		if i < len(rendered)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func appendError(out []goldenError, e *Error, set *source.UnitSet, includeNotes bool) []goldenError {
	if e == nil {
		return out
	}
	msg := e.Msg
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	path, line, col := resolveRef(e.Ref, set)
	out = append(out, goldenError{
		Kind:    "error",
		Code:    e.Code.ID(),
		Path:    path,
		Line:    line,
		Column:  col,
		Message: sanitizeMessage(msg),
	})

	if includeNotes {
		for _, note := range e.Notes {
			npath, nline, ncol := resolveRef(note.Ref, set)
			out = append(out, goldenError{
				Kind:    "note",
				Code:    e.Code.ID(),
				Path:    npath,
				Line:    nline,
				Column:  ncol,
				Message: sanitizeMessage(note.Msg),
			})
		}
	}
	return out
}

func resolveRef(ref source.Reference, set *source.UnitSet) (path string, line, col int) {
	switch r := ref.(type) {
	case source.Slice:
		if r.Unit == nil {
			return "<unknown>", 0, 0
		}
		path = r.Unit.ID
		if set != nil {
			path = set.DisplayPath(r.Unit)
		}
		return normalizePath(path), r.Line(), r.Column()
	case source.Generated:
		return "<" + r.Generator + ">", 0, 0
	default:
		return "<unknown>", 0, 0
	}
}

func normalizePath(path string) string {
	p := filepath.ToSlash(path)
	for strings.HasPrefix(p, "./") {
		p = strings.TrimPrefix(p, "./")
	}
	return p
}

func sanitizeMessage(msg string) string {
	msg = strings.ReplaceAll(msg, "\r\n", "\n")
	msg = strings.ReplaceAll(msg, "\r", "\n")
	msg = strings.ReplaceAll(msg, "\n", " ")
	return strings.TrimSpace(msg)
}
