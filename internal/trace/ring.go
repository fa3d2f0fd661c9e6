package trace

import (
	"io"
	"sync"
)

// RingTracer keeps the last events in memory for a crash dump.
type RingTracer struct {
	mu     sync.Mutex
	events []Event
	next   int // slot of the next write once the ring is full
	size   int
	level  Level
}

// NewRingTracer keeps up to size events; size <= 0 means DefaultRingSize.
func NewRingTracer(size int, level Level) *RingTracer {
	if size <= 0 {
		size = DefaultRingSize
	}
	return &RingTracer{events: make([]Event, 0, size), size: size, level: level}
}

// Emit stores a copy of ev, overwriting the oldest event when full.
func (t *RingTracer) Emit(ev *Event) {
	if !passes(t.level, ev) {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.events) < t.size {
		t.events = append(t.events, *ev)
		return
	}
	t.events[t.next] = *ev
	t.next = (t.next + 1) % t.size
}

// Snapshot returns the stored events, oldest first.
func (t *RingTracer) Snapshot() []Event {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Event, 0, len(t.events))
	out = append(out, t.events[t.next:]...)
	return append(out, t.events[:t.next]...)
}

// Failures returns the stored ends of failed spans, oldest first.
func (t *RingTracer) Failures() []Event {
	var out []Event
	for _, ev := range t.Snapshot() {
		if ev.Kind == KindSpanEnd && ev.Failed {
			out = append(out, ev)
		}
	}
	return out
}

// Dump writes the stored events to w.
func (t *RingTracer) Dump(w io.Writer, format Format) error {
	for _, ev := range t.Snapshot() {
		if _, err := w.Write(FormatEvent(&ev, format)); err != nil {
			return err
		}
	}
	return nil
}

func (t *RingTracer) Flush() error { return nil }

func (t *RingTracer) Close() error { return nil }

func (t *RingTracer) Level() Level { return t.level }

func (t *RingTracer) Enabled() bool { return t.level > LevelOff }

// FindRing returns the ring buffer behind t, looking through MultiTracer
// and Heartbeat wrappers.
func FindRing(t Tracer) (*RingTracer, bool) {
	switch tr := t.(type) {
	case *RingTracer:
		return tr, true
	case *Heartbeat:
		return FindRing(tr.Tracer)
	case *MultiTracer:
		for _, inner := range tr.tracers {
			if ring, ok := FindRing(inner); ok {
				return ring, true
			}
		}
	}
	return nil, false
}
