package lexer

import (
	"unicode/utf8"

	"axiom/internal/source"
)

// Cursor представляет собой позицию внутри текста юнита.
// Все смещения байтовые; чтение идёт по кодпоинтам.
type Cursor struct {
	Unit *source.Unit
	Off  int
	// Limit is the exclusive upper bound for Off.
	Limit int
}

// NewCursor creates a cursor over Unit.Text[start:limit].
func NewCursor(unit *source.Unit, start, limit int) Cursor {
	limit = min(limit, len(unit.Text))
	return Cursor{Unit: unit, Off: start, Limit: limit}
}

// EOF проверяет, достигнут ли конец диапазона
func (c *Cursor) EOF() bool {
	return c.Off >= c.Limit
}

// Peek читает текущую руну, не сдвигая курсор
func (c *Cursor) Peek() (r rune, size int) {
	if c.EOF() {
		return utf8.RuneError, 0
	}
	b := c.Unit.Text[c.Off]
	if b < utf8.RuneSelf { // fast-path ASCII
		return rune(b), 1
	}
	return utf8.DecodeRuneInString(c.Unit.Text[c.Off:c.Limit])
}

// Bump перемещает курсор на одну руну вперед и возвращает её
func (c *Cursor) Bump() rune {
	r, sz := c.Peek()
	c.Off += sz
	return r
}

// BumpWhile съедает руны, пока pred истинен
func (c *Cursor) BumpWhile(pred func(rune) bool) {
	for !c.EOF() {
		r, sz := c.Peek()
		if !pred(r) {
			return
		}
		c.Off += sz
	}
}

// Mark это метка, что бы быстро получать Slice читаемого фрагмента
type Mark int

// Mark сохраняет текущую позицию курсора
func (c *Cursor) Mark() Mark {
	return Mark(c.Off)
}

// SliceFrom получает Slice для фрагмента, начиная с метки
func (c *Cursor) SliceFrom(m Mark) source.Slice {
	return c.Unit.Slice(int(m), c.Off)
}

// Reset возвращает курсор назад к метке
func (c *Cursor) Reset(m Mark) {
	c.Off = int(m)
}
