package diagfmt

// PathMode specifies how unit paths are displayed.
type PathMode uint8

const (
	// PathModeAuto chooses relative or absolute path automatically.
	PathModeAuto PathMode = iota
	// PathModeAbsolute always uses absolute paths.
	PathModeAbsolute
	PathModeRelative
	PathModeBasename
)

// PrettyOpts configures pretty-printing of errors.
type PrettyOpts struct {
	Color     bool
	Context   int // строк контекста перед ошибкой
	PathMode  PathMode
	ShowNotes bool
}

// JSONOpts configures JSON output of errors.
type JSONOpts struct {
	IncludePositions bool // добавить line/col
	PathMode         PathMode
	Max              int // обрезка вывода
	IncludeNotes     bool
}
