// Package trace records what the front end is doing: directory and program
// runs, pipeline stages, units, lexer passes and directives.
//
// A span names its Site (unit id, lexer pass, directive) and ends with the
// error it failed with, so the trace of a bad unit reads
//
//	12:00:01.204     ← pass main.axm/extract-labels tokens=0 41µs LEX1012 (...)
//
// Spans nest through the context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	ctx, span := trace.Start(ctx, trace.ScopeUnit, "unit", trace.Site{Unit: unit.ID})
//	tokens, err := lexer.Lex(ctx, unit)
//	span.Tokens(len(tokens)).End(err)
//
// Start and the *Span methods are no-ops when the tracer is off or its
// level drops the scope.
//
// Levels: off, error (failed spans only), phase (driver and pass scopes),
// detail (adds units and lexer passes), debug (adds directives).
//
// Tracers: Nop, StreamTracer (text or NDJSON), RingTracer (kept for a crash
// dump), MultiTracer and Heartbeat, which reports the innermost open span at
// a fixed interval so a hung pass can be located.
package trace
