package driver

import (
	"sync"

	"axiom/internal/compositor"
	"axiom/internal/diag"
	"axiom/internal/source"
)

// minimal per-process cache by unit id + content hash
type cached struct {
	hash uint64
	tree []compositor.Token
	err  *diag.Error
}

// UnitCache keeps parsed trees in memory so that units included from
// several entry points are parsed once per process.
type UnitCache struct {
	mu     sync.RWMutex
	byUnit map[string]cached // key: unit id
}

// NewUnitCache creates a UnitCache with the given capacity hint.
func NewUnitCache(capHint int) *UnitCache {
	return &UnitCache{byUnit: make(map[string]cached, capHint)}
}

// Get returns the tree or error recorded for unit, if its text is unchanged.
func (c *UnitCache) Get(unit *source.Unit) ([]compositor.Token, *diag.Error, bool) {
	if c == nil {
		return nil, nil, false
	}
	c.mu.RLock()
	rec, ok := c.byUnit[unit.ID]
	c.mu.RUnlock()
	if !ok || rec.hash != unit.Hash {
		return nil, nil, false
	}
	return rec.tree, rec.err, true
}

// Put records the outcome of parsing unit.
func (c *UnitCache) Put(unit *source.Unit, tree []compositor.Token, err *diag.Error) {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.byUnit[unit.ID] = cached{hash: unit.Hash, tree: tree, err: err}
	c.mu.Unlock()
}

// Len returns the number of cached units.
func (c *UnitCache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.byUnit)
}
