package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB, ограничение для тестового корпуса
)

func addCorpusSeeds(f *testing.F) {
	addTestdataSeeds(f)
	addDirectiveSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все *.axm файлы
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if filepath.Ext(path) != ".axm" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
	if err != nil {
		return
	}
	// добавляем хотя бы один минимальный пример на случай пустого testdata
	f.Add([]byte{})
	f.Add([]byte("nop\n"))
}

// addDirectiveSeeds adds one snippet per directive shape plus literal edge cases.
func addDirectiveSeeds(f *testing.F) {
	for _, seed := range []string{
		"a # not code\n   b",
		"'\\n' 'a' \"str\\t\" 0x10 0b101 -7",
		"this::is::a::namespace",
		"!at $pos\n!at 42",
		"{",
		"!insert $tmpl (1, x: 2)",
		"!insert (a, b = 2) -> { add a, b } (1, b : 3,)",
		"!define ns::org !at 3 ;",
		"!if $x == 1 ;\n nop\n!else\n halt",
		"!region !inline !private !global !public $sym !public",
		"!include \"lib\" !in text !repeated 4 ( mov @loop, [r0] )",
		"((((((((((((((((((((a))))))))))))))))))))",
	} {
		f.Add([]byte(seed))
	}
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
