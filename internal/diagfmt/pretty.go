package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"axiom/internal/diag"
	"axiom/internal/source"
)

const tabWidth = 4

type palette struct {
	err, note, loc, gutter, caret, noteCaret *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:       color.New(color.FgRed, color.Bold),
		note:      color.New(color.FgCyan, color.Bold),
		loc:       color.New(color.Bold),
		gutter:    color.New(color.FgBlue),
		caret:     color.New(color.FgRed, color.Bold),
		noteCaret: color.New(color.FgCyan),
	}
	for _, c := range []*color.Color{p.err, p.note, p.loc, p.gutter, p.caret, p.noteCaret} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// Pretty форматирует ошибки в человекочитаемый вид.
// Для каждой ошибки печатает:
// <path>:<line>:<col>: ERROR <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Slice, затем Notes.
// Цвет включается опцией.
func Pretty(w io.Writer, errs []*diag.Error, set *source.UnitSet, opts PrettyOpts) {
	p := newPalette(opts.Color)
	for i, e := range errs {
		if e == nil {
			continue
		}
		if i > 0 {
			fmt.Fprintln(w)
		}
		prettyError(w, e, set, opts, p)
	}
}

func prettyError(w io.Writer, e *diag.Error, set *source.UnitSet, opts PrettyOpts, p palette) {
	msg := e.Msg
	if msg == "" {
		msg = e.Code.Title()
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	fmt.Fprintf(w, "%s: %s %s\n",
		p.loc.Sprint(location(e.Ref, set, opts.PathMode)),
		p.err.Sprintf("ERROR %s:", e.Code.ID()),
		msg)
	if s, ok := e.Slice(); ok {
		snippet(w, s, opts.Context, p, p.caret)
	}

	if !opts.ShowNotes {
		return
	}
	for _, n := range e.Notes {
		fmt.Fprintf(w, "  %s %s: %s\n", p.note.Sprint("note:"), location(n.Ref, set, opts.PathMode), n.Msg)
		if s, ok := n.Ref.(source.Slice); ok && !s.IsZero() {
			snippet(w, s, 0, p, p.noteCaret)
		}
	}
}

// snippet prints the line of s with context lines above and a caret underline.
func snippet(w io.Writer, s source.Slice, context int, p palette, caret *color.Color) {
	pos := s.Position()
	line := int(pos.Line)
	first := max(1, line-context)
	gutter := len(strconv.Itoa(line))

	for n := first; n <= line; n++ {
		fmt.Fprintf(w, "%s %s\n", p.gutter.Sprintf("%*d |", gutter, n), expandTabs(s.Unit.Line(n)))
	}

	text := s.Unit.Line(line)
	runes := []rune(text)
	col := min(int(pos.Col)-1, len(runes))
	prefix := runewidth.StringWidth(expandTabs(string(runes[:col])))

	// подчёркиваем только первую строку среза
	target := s.Text()
	if i := strings.IndexByte(target, '\n'); i >= 0 {
		target = target[:i]
	}
	width := max(1, runewidth.StringWidth(expandTabs(target)))

	underline := "^" + strings.Repeat("~", width-1)
	fmt.Fprintf(w, "%s %s%s\n", p.gutter.Sprintf("%*s |", gutter, ""), strings.Repeat(" ", prefix), caret.Sprint(underline))
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
