package source

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// LoadOptions controls text normalisation applied by UnitSet.Load.
type LoadOptions struct {
	// NFC normalises the text to Unicode Normalization Form C.
	NFC bool
}

// UnitSet manages the units of one compilation, indexed by id.
type UnitSet struct {
	units   []*Unit
	index   map[string]*Unit // id -> latest unit
	baseDir string
}

// NewUnitSet creates a new empty UnitSet.
func NewUnitSet() *UnitSet {
	return &UnitSet{
		units: make([]*Unit, 0),
		index: make(map[string]*Unit),
	}
}

// NewUnitSetWithBase создаёт UnitSet с заданной базовой директорией.
func NewUnitSetWithBase(baseDir string) *UnitSet {
	set := NewUnitSet()
	set.baseDir = baseDir
	return set
}

// BaseDir returns the directory unit paths are reported relative to.
// When unset, the working directory is used.
func (set *UnitSet) BaseDir() string {
	if set.baseDir == "" {
		if wd, err := os.Getwd(); err == nil {
			return wd
		}
	}
	return set.baseDir
}

// Add stores a unit built from already normalised text.
// Adding a unit with an existing id replaces the index entry; older units
// stay valid for references that still point at them.
func (set *UnitSet) Add(id, text string, flags UnitFlags) *Unit {
	unit := newUnit(id, text, flags)
	set.units = append(set.units, unit)
	set.index[id] = unit
	return unit
}

// AddVirtual adds an in-memory unit with the UnitVirtual flag.
func (set *UnitSet) AddVirtual(id, text string) *Unit {
	return set.Add(id, text, UnitVirtual)
}

// Load reads a file from disk, normalizes BOM/CRLF (and optionally NFC), and adds it.
// The unit id is the cleaned, slash-separated path.
func (set *UnitSet) Load(path string, opts LoadOptions) (*Unit, error) {
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return set.AddBytes(normalizePath(path), content, opts), nil
}

// AddBytes normalises raw file content and adds it under id.
func (set *UnitSet) AddBytes(id string, content []byte, opts LoadOptions) *Unit {
	content, hadBOM := removeBOM(content)
	content, hadCRLF := normalizeCRLF(content)

	flags := UnitFlags(0)
	if hadBOM {
		flags |= UnitHadBOM
	}
	if hadCRLF {
		flags |= UnitNormalizedCRLF
	}
	if opts.NFC && !norm.NFC.IsNormal(content) {
		content = norm.NFC.Bytes(content)
		flags |= UnitNormalizedNFC
	}
	return set.Add(id, string(content), flags)
}

// Get returns the latest unit registered under id.
func (set *UnitSet) Get(id string) (*Unit, bool) {
	unit, ok := set.index[id]
	return unit, ok
}

// Units returns all units in insertion order.
func (set *UnitSet) Units() []*Unit {
	return append([]*Unit(nil), set.units...)
}

// Len returns the number of added units, including superseded versions.
func (set *UnitSet) Len() int {
	return len(set.units)
}

// DisplayPath formats a unit id for user-facing output relative to BaseDir.
// Virtual units and ids that are not paths are returned unchanged.
func (set *UnitSet) DisplayPath(unit *Unit) string {
	if unit == nil {
		return ""
	}
	if unit.Flags&UnitVirtual != 0 || !filepath.IsAbs(unit.ID) {
		return unit.ID
	}
	rel, err := filepath.Rel(set.BaseDir(), unit.ID)
	if err != nil || strings.HasPrefix(rel, "..") {
		return unit.ID
	}
	return filepath.ToSlash(rel)
}

func (set *UnitSet) String() string {
	return fmt.Sprintf("UnitSet(%d units)", len(set.units))
}
