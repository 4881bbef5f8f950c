package trace

import (
	"context"
	"sync/atomic"
	"time"
)

var (
	seqCounter  atomic.Uint64
	spanCounter atomic.Uint64
)

func nextSeq() uint64 { return seqCounter.Add(1) }

type tracerKey struct{}

type spanKey struct{}

// WithTracer attaches t to ctx. A nil t means Nop.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	return context.WithValue(ctx, tracerKey{}, t)
}

// FromContext returns the tracer attached to ctx, or Nop.
func FromContext(ctx context.Context) Tracer {
	if ctx != nil {
		if t, ok := ctx.Value(tracerKey{}).(Tracer); ok {
			return t
		}
	}
	return Nop
}

// Span is an open interval of work. A nil *Span is valid and records nothing,
// which is what Start hands out when the level filters the scope.
type Span struct {
	tracer Tracer
	id     uint64
	parent uint64
	depth  int
	scope  Scope
	name   string
	begun  time.Time
	attrs  []Attr
}

// Current returns the innermost recorded span of ctx, or nil.
func Current(ctx context.Context) *Span {
	if ctx == nil {
		return nil
	}
	s, _ := ctx.Value(spanKey{}).(*Span)
	return s
}

// Start opens a span under the current one and returns a context carrying
// it. When the tracer's level does not record scope, ctx is returned as is
// and the span is nil.
func Start(ctx context.Context, scope Scope, name string, attrs ...Attr) (context.Context, *Span) {
	t := FromContext(ctx)
	if !t.Level().Allows(scope) {
		return ctx, nil
	}
	s := &Span{
		tracer: t,
		id:     spanCounter.Add(1),
		scope:  scope,
		name:   name,
		begun:  time.Now(),
		attrs:  attrs,
	}
	if parent := Current(ctx); parent != nil {
		s.parent = parent.id
		s.depth = parent.depth + 1
	}
	t.Emit(s.event(KindSpanBegin, s.begun))
	return context.WithValue(ctx, spanKey{}, s), s
}

// Set appends an attribute reported on the end event.
func (s *Span) Set(key, value string) *Span {
	if s != nil {
		s.attrs = append(s.attrs, Attr{Key: key, Value: value})
	}
	return s
}

// End closes the span with an optional status word and returns its length.
func (s *Span) End(status string) time.Duration {
	if s == nil {
		return 0
	}
	now := time.Now()
	ev := s.event(KindSpanEnd, now)
	ev.Status = status
	ev.Elapsed = now.Sub(s.begun)
	s.tracer.Emit(ev)
	return ev.Elapsed
}

// ID is 0 for a nil span.
func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.id
}

func (s *Span) event(kind Kind, at time.Time) Event {
	return Event{
		Seq:    nextSeq(),
		At:     at,
		Kind:   kind,
		Scope:  s.scope,
		Span:   s.id,
		Parent: s.parent,
		Depth:  s.depth,
		Name:   s.name,
		Attrs:  s.attrs,
	}
}
