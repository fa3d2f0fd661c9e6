package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Normalization modes of [lexer].normalize.
const (
	NormalizeNone = "none"
	NormalizeNFC  = "nfc"
)

// Manifest is a loaded axiom.toml.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// Config mirrors the sections of axiom.toml.
type Config struct {
	Package  PackageConfig  `toml:"package"`
	Assemble AssembleConfig `toml:"assemble"`
	Lexer    LexerConfig    `toml:"lexer"`
}

type PackageConfig struct {
	Name string `toml:"name"`
}

// AssembleConfig names the entry unit and the include search path.
type AssembleConfig struct {
	Main    string   `toml:"main"`
	Include []string `toml:"include"`
}

type LexerConfig struct {
	Normalize string `toml:"normalize"`
}

// Find loads the nearest axiom.toml above startDir.
// ok is false when no manifest exists.
func Find(startDir string) (*Manifest, bool, error) {
	manifestPath, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	m, err := Load(manifestPath)
	if err != nil {
		return nil, true, err
	}
	return m, true, nil
}

// Load parses and validates the manifest at path.
func Load(path string) (*Manifest, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") {
		return nil, fmt.Errorf("%s: missing [package]", path)
	}
	if !meta.IsDefined("package", "name") || strings.TrimSpace(cfg.Package.Name) == "" {
		return nil, fmt.Errorf("%s: missing [package].name", path)
	}
	if !meta.IsDefined("assemble") {
		return nil, fmt.Errorf("%s: missing [assemble]", path)
	}
	if !meta.IsDefined("assemble", "main") || strings.TrimSpace(cfg.Assemble.Main) == "" {
		return nil, fmt.Errorf("%s: missing [assemble].main", path)
	}
	if meta.IsDefined("lexer", "normalize") {
		switch cfg.Lexer.Normalize {
		case NormalizeNone, NormalizeNFC:
		default:
			return nil, fmt.Errorf("%s: [lexer].normalize must be %q or %q, got %q",
				path, NormalizeNFC, NormalizeNone, cfg.Lexer.Normalize)
		}
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%s: unknown key %s", path, undecoded[0])
	}
	return &Manifest{Path: path, Root: filepath.Dir(path), Config: cfg}, nil
}

// MainPath resolves [assemble].main against the project root and checks
// that it names an existing unit file.
func (m *Manifest) MainPath() (string, error) {
	mainPath := filepath.Join(m.Root, filepath.FromSlash(strings.TrimSpace(m.Config.Assemble.Main)))
	info, err := os.Stat(mainPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%s: [assemble].main path does not exist: %s", m.Path, mainPath)
		}
		return "", fmt.Errorf("%s: failed to stat [assemble].main: %w", m.Path, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%s: [assemble].main must be a file", m.Path)
	}
	return mainPath, nil
}

// IncludeDirs returns the include search path: the directory of the main
// unit first, then [assemble].include relative to the root.
func (m *Manifest) IncludeDirs() []string {
	dirs := []string{filepath.Dir(filepath.Join(m.Root, filepath.FromSlash(m.Config.Assemble.Main)))}
	for _, d := range m.Config.Assemble.Include {
		if !filepath.IsAbs(d) {
			d = filepath.Join(m.Root, filepath.FromSlash(d))
		}
		dirs = append(dirs, filepath.Clean(d))
	}
	return dirs
}

// NFC reports whether units are NFC-normalised on load.
func (m *Manifest) NFC() bool {
	return m != nil && m.Config.Lexer.Normalize == NormalizeNFC
}
