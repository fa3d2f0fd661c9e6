package driver

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"fortio.org/safecast"
	"github.com/cespare/xxhash/v2"
	"github.com/vmihailenco/msgpack/v5"

	"axiom/internal/diag"
	"axiom/internal/source"
)

// Current schema version - increment when DiskPayload format changes
const diskCacheSchemaVersion uint16 = 1

// DiskCache хранит сводки разбора юнитов на диске по хешу содержимого.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiskNote is a cached error note.
type DiskNote struct {
	Start  uint32
	Length uint32
	Msg    string
}

// DiskPayload stores the summary of one unit.
type DiskPayload struct {
	// Schema version for safe invalidation when format changes
	Schema uint16

	Unit string
	Hash uint64

	Tokens     uint32
	Directives uint32
	Includes   []string

	// Error, if the unit failed
	Failed bool
	Code   uint16
	Msg    string
	Cause  string
	HasRef bool
	Start  uint32
	Length uint32
	Notes  []DiskNote
}

// OpenDiskCache initializes and returns a disk cache at the standard location.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return NewDiskCache(filepath.Join(base, app))
}

// NewDiskCache opens a cache rooted at dir, creating it if needed.
func NewDiskCache(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// cacheKey covers everything that changes a summary: schema, unit id,
// text and the options that affect parsing.
func cacheKey(unit *source.Unit, opts Options) uint64 {
	d := xxhash.New()
	_, _ = d.WriteString(strconv.Itoa(int(diskCacheSchemaVersion)))
	_, _ = d.WriteString("\x00" + unit.ID + "\x00")
	_, _ = d.WriteString(strconv.Itoa(opts.MaxDepth))
	_, _ = d.WriteString("\x00")
	_, _ = d.WriteString(unit.Text)
	return d.Sum64()
}

func (c *DiskCache) pathFor(key uint64) string {
	// Для удобства читаемости/очистки используется подкаталог "units".
	return filepath.Join(c.dir, "units", strconv.FormatUint(key, 16)+".mp")
}

// Put serializes and writes a unit summary to the disk cache.
func (c *DiskCache) Put(unit *source.Unit, opts Options, s Summary) error {
	if c == nil {
		return nil
	}
	payload, err := toDiskPayload(unit, s)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(cacheKey(unit, opts))
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		_ = os.Remove(f.Name())
	}()

	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

// Get reads the summary of unit. A payload of another schema or content
// is treated as a miss.
func (c *DiskCache) Get(unit *source.Unit, opts Options) (Summary, bool, error) {
	if c == nil {
		return Summary{}, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(cacheKey(unit, opts)))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Summary{}, false, nil
		}
		return Summary{}, false, err
	}
	defer func() {
		_ = f.Close()
	}()

	var payload DiskPayload
	if err := msgpack.NewDecoder(f).Decode(&payload); err != nil {
		return Summary{}, false, err
	}
	if payload.Schema != diskCacheSchemaVersion || payload.Unit != unit.ID || payload.Hash != unit.Hash {
		return Summary{}, false, nil
	}
	return fromDiskPayload(unit, &payload), true, nil
}

// DropAll invalidates the cache, useful after format changes.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return os.RemoveAll(old)
}

func toDiskPayload(unit *source.Unit, s Summary) (*DiskPayload, error) {
	tokens, err := safecast.Conv[uint32](s.Tokens)
	if err != nil {
		return nil, err
	}
	directives, err := safecast.Conv[uint32](s.Directives)
	if err != nil {
		return nil, err
	}
	payload := &DiskPayload{
		Schema:     diskCacheSchemaVersion,
		Unit:       unit.ID,
		Hash:       unit.Hash,
		Tokens:     tokens,
		Directives: directives,
		Includes:   s.Includes,
	}
	e := s.Err
	if e == nil {
		return payload, nil
	}

	payload.Failed = true
	payload.Code = uint16(e.Code)
	payload.Msg = e.Msg
	if e.Cause != nil {
		payload.Cause = e.Cause.Error()
	}
	if sl, ok := e.Slice(); ok && sl.Unit == unit {
		if payload.Start, payload.Length, err = sliceBounds(sl); err != nil {
			return nil, err
		}
		payload.HasRef = true
	}
	for _, n := range e.Notes {
		sl, ok := n.Ref.(source.Slice)
		if !ok || sl.Unit != unit {
			continue
		}
		start, length, err := sliceBounds(sl)
		if err != nil {
			return nil, err
		}
		payload.Notes = append(payload.Notes, DiskNote{Start: start, Length: length, Msg: n.Msg})
	}
	return payload, nil
}

func sliceBounds(s source.Slice) (start, length uint32, err error) {
	if start, err = safecast.Conv[uint32](s.Index); err != nil {
		return 0, 0, err
	}
	if length, err = safecast.Conv[uint32](s.Length); err != nil {
		return 0, 0, err
	}
	return start, length, nil
}

func fromDiskPayload(unit *source.Unit, p *DiskPayload) Summary {
	s := Summary{
		Tokens:     int(p.Tokens),
		Directives: int(p.Directives),
		Includes:   p.Includes,
	}
	if !p.Failed {
		return s
	}
	e := &diag.Error{Code: diag.Code(p.Code), Msg: p.Msg}
	if p.Cause != "" {
		e.Cause = errors.New(p.Cause)
	}
	if p.HasRef {
		e.Ref = unit.Slice(int(p.Start), int(p.Start+p.Length))
	}
	for _, n := range p.Notes {
		e.Notes = append(e.Notes, diag.Note{Ref: unit.Slice(int(n.Start), int(n.Start+n.Length)), Msg: n.Msg})
	}
	s.Err = e
	return s
}
