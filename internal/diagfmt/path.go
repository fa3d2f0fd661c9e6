package diagfmt

import (
	"path/filepath"
	"strings"

	"axiom/internal/source"
)

// autoPathLimit is the display length above which auto mode falls back to the basename.
const autoPathLimit = 40

func formatPath(set *source.UnitSet, unit *source.Unit, mode PathMode) string {
	if unit == nil {
		return "<unknown>"
	}
	display := unit.ID
	if set != nil {
		display = set.DisplayPath(unit)
	}
	switch mode {
	case PathModeAbsolute:
		if unit.Flags&source.UnitVirtual != 0 {
			return unit.ID
		}
		if abs, err := filepath.Abs(unit.ID); err == nil {
			return filepath.ToSlash(abs)
		}
		return unit.ID
	case PathModeRelative:
		return filepath.ToSlash(display)
	case PathModeBasename:
		return filepath.Base(unit.ID)
	default:
		if len(display) > autoPathLimit && strings.Count(display, "/") > 2 {
			return filepath.Base(display)
		}
		return filepath.ToSlash(display)
	}
}

// location renders `path:line:col` for a reference.
func location(ref source.Reference, set *source.UnitSet, mode PathMode) string {
	switch r := ref.(type) {
	case source.Slice:
		if r.Unit == nil {
			return "<unknown>"
		}
		pos := r.Position()
		return formatPath(set, r.Unit, mode) + ":" + itoa(int(pos.Line)) + ":" + itoa(int(pos.Col))
	case source.Generated:
		return "<" + r.Generator + ">"
	default:
		return "<unknown>"
	}
}
