package trace

import (
	"io"
	"os"
	"sync"
)

// StreamTracer writes each event as it arrives.
type StreamTracer struct {
	mu     sync.Mutex
	w      io.Writer
	level  Level
	format Format
}

// NewStreamTracer writes events passing level to w.
func NewStreamTracer(w io.Writer, level Level, format Format) *StreamTracer {
	if format == FormatAuto {
		format = FormatText
	}
	return &StreamTracer{w: w, level: level, format: format}
}

// Emit writes ev. Write errors are dropped: tracing never fails a run.
func (t *StreamTracer) Emit(ev *Event) {
	if !passes(t.level, ev) {
		return
	}
	data := FormatEvent(ev, t.format)
	t.mu.Lock()
	defer t.mu.Unlock()
	_, _ = t.w.Write(data)
}

// Flush flushes w when it buffers.
func (t *StreamTracer) Flush() error {
	if f, ok := t.w.(interface{ Flush() error }); ok {
		return f.Flush()
	}
	return nil
}

// Close flushes and closes w unless it is stdout or stderr.
func (t *StreamTracer) Close() error {
	if err := t.Flush(); err != nil {
		return err
	}
	if t.w == os.Stderr || t.w == os.Stdout {
		return nil
	}
	if c, ok := t.w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func (t *StreamTracer) Level() Level { return t.level }

func (t *StreamTracer) Enabled() bool { return t.level > LevelOff }

// passes lets heartbeats through at every level that traces at all and
// failed span ends through from LevelError up.
func passes(level Level, ev *Event) bool {
	switch {
	case ev.Kind == KindHeartbeat:
		return level > LevelOff
	case ev.Kind == KindSpanEnd && ev.Failed && level.opens(ev.Scope):
		return true
	}
	return level.ShouldEmit(ev.Scope)
}
