package source

type (
	// UnitFlags encodes metadata about how a unit's text was obtained.
	UnitFlags uint8
)

const (
	// UnitVirtual indicates the unit was added from memory (test, stdin, generated).
	UnitVirtual UnitFlags = 1 << iota
	UnitHadBOM
	UnitNormalizedCRLF
	UnitNormalizedNFC
)

// LineCol represents a human-readable position in a unit.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based, in codepoints
}
