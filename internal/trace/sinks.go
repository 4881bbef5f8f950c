package trace

import (
	"errors"
	"io"
	"sync"
)

// Tracer receives events. Implementations must be safe for concurrent use:
// the build pipeline compiles files in parallel.
type Tracer interface {
	Emit(ev Event)
	Level() Level
	// Close flushes pending output and releases files the tracer opened.
	Close() error
}

type nop struct{}

func (nop) Emit(Event)   {}
func (nop) Level() Level { return LevelOff }
func (nop) Close() error { return nil }

// Nop records nothing.
var Nop Tracer = nop{}

// Stream writes each event to w as it arrives.
type Stream struct {
	mu     sync.Mutex
	w      io.Writer
	level  Level
	format Format
	owned  io.Closer
	err    error
}

// NewStream wraps w. The caller keeps ownership of w.
func NewStream(w io.Writer, level Level, format Format) *Stream {
	return &Stream{w: w, level: level, format: format}
}

func (s *Stream) Emit(ev Event) {
	data := Encode(ev, s.format)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return
	}
	// первая ошибка записи выключает поток, сборка продолжается
	_, s.err = s.w.Write(data)
}

func (s *Stream) Level() Level { return s.level }

// Close reports the first write error and closes w if the stream opened it.
func (s *Stream) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := s.err
	if s.owned != nil {
		err = errors.Join(err, s.owned.Close())
		s.owned = nil
	}
	return err
}

// Ring keeps the most recent events in memory.
type Ring struct {
	mu    sync.Mutex
	buf   []Event
	next  int
	count int
	level Level
}

// DefaultRingSize is used when a non-positive size is requested.
const DefaultRingSize = 4096

// NewRing allocates a ring holding size events.
func NewRing(size int, level Level) *Ring {
	if size <= 0 {
		size = DefaultRingSize
	}
	return &Ring{buf: make([]Event, size), level: level}
}

func (r *Ring) Emit(ev Event) {
	r.mu.Lock()
	r.buf[r.next] = ev
	r.next = (r.next + 1) % len(r.buf)
	r.count = min(r.count+1, len(r.buf))
	r.mu.Unlock()
}

func (r *Ring) Level() Level { return r.level }

func (r *Ring) Close() error { return nil }

// Events returns the retained events, oldest first.
func (r *Ring) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, 0, r.count)
	start := (r.next - r.count + len(r.buf)) % len(r.buf)
	for i := range r.count {
		out = append(out, r.buf[(start+i)%len(r.buf)])
	}
	return out
}

// Dump writes the retained events to w in format f.
func (r *Ring) Dump(w io.Writer, f Format) error {
	for _, ev := range r.Events() {
		if _, err := w.Write(Encode(ev, f)); err != nil {
			return err
		}
	}
	return nil
}

// Tee sends every event to each of its tracers.
type Tee struct {
	level   Level
	tracers []Tracer
}

// NewTee fans out to tracers at the given level.
func NewTee(level Level, tracers ...Tracer) *Tee {
	return &Tee{level: level, tracers: tracers}
}

func (t *Tee) Emit(ev Event) {
	for _, tr := range t.tracers {
		tr.Emit(ev)
	}
}

func (t *Tee) Level() Level { return t.level }

func (t *Tee) Close() error {
	var errs []error
	for _, tr := range t.tracers {
		errs = append(errs, tr.Close())
	}
	return errors.Join(errs...)
}

// Ring returns the first Ring among the tracers, if any.
func (t *Tee) Ring() *Ring {
	for _, tr := range t.tracers {
		if r, ok := tr.(*Ring); ok {
			return r
		}
	}
	return nil
}
