package trace

import (
	"time"

	"axiom/internal/diag"
)

// Kind represents the type of trace event.
type Kind uint8

const (
	KindSpanBegin Kind = iota + 1 // span start
	KindSpanEnd                   // span end, carries Elapsed and the error code
	KindPoint                     // instant event
	KindHeartbeat                 // periodic liveness signal with the innermost open span
)

var kindNames = [...]string{
	KindSpanBegin: "begin",
	KindSpanEnd:   "end",
	KindPoint:     "point",
	KindHeartbeat: "heartbeat",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "unknown"
}

// Scope indicates the granularity level of the event.
// Lower numeric values represent coarser events.
type Scope uint8

const (
	ScopeDriver Scope = iota + 1 // directory and program runs
	ScopePass                    // pipeline stages of one command (load, lex, parse)
	ScopeUnit                    // one unit and its lexer passes
	ScopeNode                    // one directive
)

var scopeNames = [...]string{
	ScopeDriver: "driver",
	ScopePass:   "pass",
	ScopeUnit:   "unit",
	ScopeNode:   "node",
}

func (s Scope) String() string {
	if int(s) < len(scopeNames) && scopeNames[s] != "" {
		return scopeNames[s]
	}
	return "unknown"
}

// Site names the part of the front end a span works on.
// Empty fields are inherited from the parent span.
type Site struct {
	Unit      string // unit id
	Pass      string // lexer pass or "tokenize"
	Directive string // directive name without the '!'
}

// merge fills the empty fields of s from outer.
func (s Site) merge(outer Site) Site {
	if s.Unit == "" {
		s.Unit = outer.Unit
	}
	if s.Pass == "" {
		s.Pass = outer.Pass
	}
	if s.Directive == "" {
		s.Directive = outer.Directive
	}
	return s
}

// Event represents a single trace event.
type Event struct {
	Time     time.Time
	Seq      uint64 // global sequence number (monotonic)
	Kind     Kind
	Scope    Scope
	SpanID   uint64
	ParentID uint64 // 0 for a root span
	Name     string // e.g. "parse-dir", "unit", "pass", "directive"
	Site     Site

	// Filled on KindSpanEnd only.
	Elapsed time.Duration
	Tokens  int       // tokens produced, or units for program spans; -1 if not counted
	Code    diag.Code // code of the failure; UnknownCode with Failed means a non-diag error
	Failed  bool
	Detail  string
}
