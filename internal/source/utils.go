package source

import (
	"path/filepath"
	"slices"
	"sort"
	"unicode/utf8"
)

// normalizeCRLF заменяет все \r\n на \n, не трогая одиночные \r.
// Возвращает новый слайс и флаг: были ли замены (true, если хотя бы одна).
func normalizeCRLF(content []byte) ([]byte, bool) {
	if !slices.Contains(content, '\r') {
		return content, false
	}

	out := make([]byte, 0, len(content))
	changed := false

	i := 0
	for i < len(content) {
		if content[i] == '\r' && i+1 < len(content) && content[i+1] == '\n' {
			out = append(out, '\n')
			i += 2
			changed = true
		} else {
			out = append(out, content[i])
			i++
		}
	}
	return out, changed
}

func removeBOM(content []byte) ([]byte, bool) {
	if len(content) < 3 {
		return content, false
	}

	if content[0] == 0xEF && content[1] == 0xBB && content[2] == 0xBF {
		return content[3:], true
	}

	return content, false
}

func buildLineIndex(text string) []int {
	out := make([]int, 0, len(text)/32)
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			out = append(out, i)
		}
	}
	return out
}

// toLine returns the 1-based line containing off and the byte offset the line starts at.
func toLine(lineIdx []int, off int) (line, start int) {
	// количество переводов строк строго до off
	n := sort.SearchInts(lineIdx, off)
	if n == 0 {
		return 1, 0
	}
	return n + 1, lineIdx[n-1] + 1
}

func utf8Count(s string) int {
	return utf8.RuneCountInString(s)
}

func normalizePath(p string) string {
	return filepath.ToSlash(filepath.Clean(p))
}
