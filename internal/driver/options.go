package driver

import (
	"axiom/internal/compositor"
	"axiom/internal/observ"
	"axiom/internal/source"
)

// UnitExt is the file extension of assembler units.
const UnitExt = ".axm"

// Options configures the driver entry points.
type Options struct {
	// MaxDepth bounds compositor recursion; <= 0 uses the compositor default.
	MaxDepth int
	// NFC normalises unit text on load.
	NFC bool
	// StopAfter ends lexing after the named pass (Tokenize only).
	StopAfter string
	// MaxErrors limits the error bag of directory runs; <= 0 means unlimited.
	MaxErrors int
	// Timer records load/lex/parse phases when non-nil.
	Timer *observ.Timer
	// Cache stores per-unit check summaries on disk when non-nil.
	Cache *DiskCache
	// Memo shares parsed trees between ParseProgram calls when non-nil.
	Memo *UnitCache
}

func (o Options) load() source.LoadOptions {
	return source.LoadOptions{NFC: o.NFC}
}

func (o Options) compositor() compositor.Options {
	return compositor.Options{MaxDepth: o.MaxDepth}
}
