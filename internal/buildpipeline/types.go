package buildpipeline

import (
	"fmt"
	"io"
	"slices"
	"sync"
	"time"
)

// Stage is a step one file goes through during a build.
type Stage string

const (
	StageLex      Stage = "lex"
	StageParse    Stage = "parse"
	StageGenerate Stage = "generate"
	StageWrite    Stage = "write" // output lands in the out directory
)

// Stages lists every stage in pipeline order.
var Stages = []Stage{StageLex, StageParse, StageGenerate, StageWrite}

// Status is where a file stands within its current stage.
type Status string

const (
	StatusQueued  Status = "queued"
	StatusWorking Status = "working"
	StatusDone    Status = "done"
	StatusError   Status = "error"
)

// Event reports the progress of one file. Elapsed is set on the final event
// of a file and on the end of each stage.
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
	Cached  bool
}

// ProgressSink consumes progress events. Build calls OnEvent from several
// goroutines at once.
type ProgressSink interface {
	OnEvent(Event)
}

// Timings sums stage durations over every file of a build. Safe for
// concurrent use; the zero value is ready.
type Timings struct {
	mu    sync.Mutex
	total [4]time.Duration
	seen  [4]bool
}

func stageIndex(s Stage) int { return slices.Index(Stages, s) }

// Add accumulates d into stage; unknown stages are ignored.
func (t *Timings) Add(stage Stage, d time.Duration) {
	i := stageIndex(stage)
	if t == nil || i < 0 {
		return
	}
	t.mu.Lock()
	t.total[i] += d
	t.seen[i] = true
	t.mu.Unlock()
}

// Has reports whether stage ran at least once.
func (t *Timings) Has(stage Stage) bool {
	i := stageIndex(stage)
	if i < 0 {
		return false
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.seen[i]
}

func (t *Timings) Duration(stage Stage) time.Duration {
	i := stageIndex(stage)
	if i < 0 {
		return 0
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.total[i]
}

// Total sums every stage.
func (t *Timings) Total() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	var sum time.Duration
	for _, d := range t.total {
		sum += d
	}
	return sum
}

// WriteTable prints one line per stage that ran, then the total.
func (t *Timings) WriteTable(w io.Writer) error {
	line := func(name string, d time.Duration) error {
		_, err := fmt.Fprintf(w, "%-9s %8.1f ms\n", name, float64(d)/float64(time.Millisecond))
		return err
	}
	for _, s := range Stages {
		if !t.Has(s) {
			continue
		}
		if err := line(string(s), t.Duration(s)); err != nil {
			return err
		}
	}
	return line("total", t.Total())
}
