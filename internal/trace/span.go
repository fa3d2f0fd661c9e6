package trace

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"axiom/internal/diag"
)

var (
	seqCounter  atomic.Uint64
	spanCounter atomic.Uint64
)

// NextSeq returns a monotonically increasing sequence number.
func NextSeq() uint64 { return seqCounter.Add(1) }

// Span is one open operation. A nil *Span is inert, so callers never check
// whether tracing is on.
type Span struct {
	tracer  Tracer
	id      uint64
	parent  uint64
	scope   Scope
	name    string
	site    Site
	started time.Time
	tokens  int
}

// Begin emits the begin event of a span below parent. It returns nil when
// t is disabled or does not open scope.
func Begin(t Tracer, scope Scope, name string, parent uint64, site Site) *Span {
	if t == nil || !t.Enabled() || !t.Level().opens(scope) {
		return nil
	}
	s := &Span{
		tracer:  t,
		id:      spanCounter.Add(1),
		parent:  parent,
		scope:   scope,
		name:    name,
		site:    site,
		started: time.Now(),
		tokens:  -1,
	}
	t.Emit(s.event(KindSpanBegin, s.started))
	return s
}

func (s *Span) event(kind Kind, at time.Time) *Event {
	return &Event{
		Time:     at,
		Seq:      NextSeq(),
		Kind:     kind,
		Scope:    s.scope,
		SpanID:   s.id,
		ParentID: s.parent,
		Name:     s.name,
		Site:     s.site,
		Tokens:   -1,
	}
}

// ID returns the span id, 0 for a nil span.
func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.id
}

// Site returns what the span works on.
func (s *Span) Site() Site {
	if s == nil {
		return Site{}
	}
	return s.site
}

// Tokens records how many tokens the span produced.
func (s *Span) Tokens(n int) *Span {
	if s != nil {
		s.tokens = n
	}
	return s
}

// End emits the end event and returns the span duration. A *diag.Error in
// err's chain puts its code on the event; cancellation is reported as
// failure without a code.
func (s *Span) End(err error) time.Duration {
	if s == nil {
		return 0
	}
	now := time.Now()
	ev := s.event(KindSpanEnd, now)
	ev.Elapsed = now.Sub(s.started)
	ev.Tokens = s.tokens
	if err != nil {
		ev.Failed = true
		ev.Detail = err.Error()
		if d, ok := diag.As(err); ok {
			ev.Code = d.Code
		} else if errors.Is(err, context.Canceled) {
			ev.Detail = "canceled"
		}
	}
	s.tracer.Emit(ev)
	return ev.Elapsed
}
