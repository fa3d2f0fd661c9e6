package trace

import "context"

type tracerKey struct{}

type frameKey struct{}

// frame is the innermost open span of a context and the site it works on.
type frame struct {
	span uint64
	site Site
}

// FromContext returns the tracer attached to ctx, or Nop.
func FromContext(ctx context.Context) Tracer {
	if ctx == nil {
		return Nop
	}
	if t, ok := ctx.Value(tracerKey{}).(Tracer); ok {
		return t
	}
	return Nop
}

// WithTracer attaches t to ctx.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	return context.WithValue(ctx, tracerKey{}, t)
}

func frameOf(ctx context.Context) frame {
	if ctx == nil {
		return frame{}
	}
	f, _ := ctx.Value(frameKey{}).(frame)
	return f
}

// ParentID is the id of the innermost span open in ctx, 0 at the root.
func ParentID(ctx context.Context) uint64 {
	return frameOf(ctx).span
}

// SiteOf returns what ctx is working on.
func SiteOf(ctx context.Context) Site {
	return frameOf(ctx).site
}

// WithSite narrows the site of ctx without opening a span, so spans begun
// below it name the unit even when no unit span was emitted.
func WithSite(ctx context.Context, site Site) context.Context {
	f := frameOf(ctx)
	f.site = site.merge(f.site)
	return context.WithValue(ctx, frameKey{}, f)
}

// Start begins a span below the innermost span of ctx. The returned
// context carries the span as parent; when the tracer drops the scope it
// is ctx itself and the span is nil.
func Start(ctx context.Context, scope Scope, name string, site Site) (context.Context, *Span) {
	t := FromContext(ctx)
	if !t.Enabled() || !t.Level().opens(scope) {
		return ctx, nil
	}
	f := frameOf(ctx)
	span := Begin(t, scope, name, f.span, site.merge(f.site))
	return context.WithValue(ctx, frameKey{}, frame{span: span.id, site: span.site}), span
}
