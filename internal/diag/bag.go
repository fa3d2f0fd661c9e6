package diag

import (
	"fmt"
	"sort"
	"sync"
)

// Bag collects errors of several units, up to a limit.
// It is safe for concurrent use.
type Bag struct {
	mu    sync.Mutex
	items []*Error
	max   int
}

// NewBag creates a bag holding at most max errors; max <= 0 means unlimited.
func NewBag(max int) *Bag {
	return &Bag{max: max}
}

// Add добавляет ошибку, учитывая лимит.
// Возвращает false, если ошибка не добавлена (достигнут лимит).
func (b *Bag) Add(e *Error) bool {
	if e == nil {
		return false
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.max > 0 && len(b.items) >= b.max {
		return false
	}
	b.items = append(b.items, e)
	return true
}

// длина
func (b *Bag) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.items)
}

// HasErrors reports whether the bag is non-empty.
func (b *Bag) HasErrors() bool {
	return b.Len() > 0
}

// Items возвращает копию собранных ошибок.
func (b *Bag) Items() []*Error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]*Error(nil), b.items...)
}

// Sort сортирует ошибки по: unit, offset, code
// для стабильного и детерминированного порядка вывода.
func (b *Bag) Sort() {
	b.mu.Lock()
	defer b.mu.Unlock()
	sort.SliceStable(b.items, func(i, j int) bool {
		ui, oi := errorKey(b.items[i])
		uj, oj := errorKey(b.items[j])
		if ui != uj {
			return ui < uj
		}
		if oi != oj {
			return oi < oj
		}
		return b.items[i].Code < b.items[j].Code
	})
}

// простая дедупликация (по Code+Ref+Msg)
func (b *Bag) Dedup() {
	b.mu.Lock()
	defer b.mu.Unlock()
	seen := make(map[string]bool)
	items := make([]*Error, 0, len(b.items))
	for _, e := range b.items {
		unit, off := errorKey(e)
		key := fmt.Sprintf("%s:%s:%d:%s", e.Code.ID(), unit, off, e.Msg)
		if seen[key] {
			continue
		}
		seen[key] = true
		items = append(items, e)
	}
	b.items = items
}

func errorKey(e *Error) (unit string, off int) {
	if s, ok := e.Slice(); ok {
		return s.Unit.ID, s.Index
	}
	return "", -1
}
