package trace

import (
	"fmt"
	"slices"
	"sync"
	"time"
)

// Heartbeat forwards events to the wrapped tracer and every interval emits
// a beat naming the most recently begun span that is still open. A unit
// stuck in one lexer pass shows up as beats repeating that pass.
type Heartbeat struct {
	Tracer

	interval time.Duration
	mu       sync.Mutex
	open     []openSpan // in begin order
	beats    uint64

	stop chan struct{}
	done chan struct{}
	once sync.Once
}

type openSpan struct {
	id      uint64
	name    string
	site    Site
	started time.Time
}

// StartHeartbeat wraps t and starts the beat goroutine. It returns nil when
// t is disabled or interval is not positive; Stop and Close stop the beat.
func StartHeartbeat(t Tracer, interval time.Duration) *Heartbeat {
	if t == nil || !t.Enabled() || interval <= 0 {
		return nil
	}
	h := &Heartbeat{
		Tracer:   t,
		interval: interval,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	go h.run()
	return h
}

// Emit records span boundaries and forwards ev.
func (h *Heartbeat) Emit(ev *Event) {
	h.mu.Lock()
	switch ev.Kind {
	case KindSpanBegin:
		h.open = append(h.open, openSpan{id: ev.SpanID, name: ev.Name, site: ev.Site, started: ev.Time})
	case KindSpanEnd:
		if i := slices.IndexFunc(h.open, func(o openSpan) bool { return o.id == ev.SpanID }); i >= 0 {
			h.open = slices.Delete(h.open, i, i+1)
		}
	}
	h.mu.Unlock()
	h.Tracer.Emit(ev)
}

func (h *Heartbeat) run() {
	defer close(h.done)
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()
	for {
		select {
		case now := <-ticker.C:
			h.Tracer.Emit(h.beat(now))
		case <-h.stop:
			return
		}
	}
}

func (h *Heartbeat) beat(now time.Time) *Event {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.beats++
	ev := &Event{
		Time:   now,
		Seq:    NextSeq(),
		Kind:   KindHeartbeat,
		Scope:  ScopeDriver,
		Name:   "heartbeat",
		Tokens: -1,
		Detail: fmt.Sprintf("#%d idle", h.beats),
	}
	if n := len(h.open); n > 0 {
		last := h.open[n-1]
		ev.SpanID = last.id
		ev.Site = last.site
		ev.Detail = fmt.Sprintf("#%d in %s for %s, %d open", h.beats, last.name, now.Sub(last.started).Round(time.Millisecond), n)
	}
	return ev
}

// Stop ends the beat goroutine and waits for it. Safe on nil and repeated calls.
func (h *Heartbeat) Stop() {
	if h == nil {
		return
	}
	h.once.Do(func() { close(h.stop) })
	<-h.done
}

// Close stops the beat and closes the wrapped tracer.
func (h *Heartbeat) Close() error {
	h.Stop()
	return h.Tracer.Close()
}
