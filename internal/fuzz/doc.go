// Package fuzztests houses Go fuzz harnesses that exercise the assembler
// front end (source -> lexer -> compositor). Its goal is to smoke test
// robustness and guard against panics or runaway recursion on arbitrary
// inputs.
//
// Назначение: запускать fuzz-обработчики, которые загружают байты в UnitSet и
// прогоняют их через лексер и компоновщик, проверяя инварианты спанов.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
//
// Зависимости: internal/source, internal/lexer, internal/compositor,
// internal/testkit.

package fuzztests
