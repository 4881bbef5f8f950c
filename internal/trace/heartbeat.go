package trace

import (
	"context"
	"runtime"
	"strconv"
	"sync"
	"time"
)

// StartHeartbeat emits a heartbeat event every interval until ctx is done or
// the returned stop function is called. Heartbeats that keep coming while no
// span ends point at a hung build. Each beat carries the goroutine count and
// live heap size. stop waits for the emitter to exit and may be called twice.
func StartHeartbeat(ctx context.Context, t Tracer, interval time.Duration) (stop func()) {
	if t == nil || t.Level() == LevelOff || interval <= 0 {
		return func() {}
	}
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	depth := 0
	var parent uint64
	if s := Current(ctx); s != nil {
		parent, depth = s.id, s.depth+1
	}

	go func() {
		defer close(done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		var mem runtime.MemStats
		for beat := 1; ; beat++ {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				runtime.ReadMemStats(&mem)
				t.Emit(Event{
					Seq:    nextSeq(),
					At:     now,
					Kind:   KindHeartbeat,
					Scope:  ScopeCommand,
					Parent: parent,
					Depth:  depth,
					Name:   "heartbeat",
					Attrs: []Attr{
						Int("beat", beat),
						Int("goroutines", runtime.NumGoroutine()),
						String("heap", strconv.FormatUint(mem.HeapAlloc, 10)),
					},
				})
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			cancel()
			<-done
		})
	}
}
