// Package observ measures how long the phases of a compilation take.
package observ

import (
	"fmt"
	"strings"
	"time"
)

// Lap is one timed run of a phase.
type Lap struct {
	Name   string
	Took   time.Duration
	Failed bool
}

// Timer keeps laps in the order they finished. It is not safe for concurrent
// use; each compiled file owns its own Timer.
type Timer struct {
	laps []Lap
	now  func() time.Time
}

func NewTimer() *Timer { return &Timer{now: time.Now} }

// Measure runs fn as phase name and returns fn's error unchanged.
func (t *Timer) Measure(name string, fn func() error) error {
	start := t.now()
	err := fn()
	t.Record(name, t.now().Sub(start), err != nil)
	return err
}

// Record appends a lap measured elsewhere.
func (t *Timer) Record(name string, took time.Duration, failed bool) {
	t.laps = append(t.laps, Lap{Name: name, Took: took, Failed: failed})
}

// Laps returns a copy of the recorded laps.
func (t *Timer) Laps() []Lap { return append([]Lap(nil), t.laps...) }

// Duration sums every lap called name.
func (t *Timer) Duration(name string) time.Duration {
	var d time.Duration
	for _, l := range t.laps {
		if l.Name == name {
			d += l.Took
		}
	}
	return d
}

// Total sums all laps.
func (t *Timer) Total() time.Duration {
	var d time.Duration
	for _, l := range t.laps {
		d += l.Took
	}
	return d
}

// Summary renders an aligned table ending with the total.
func (t *Timer) Summary() string {
	var b strings.Builder
	row := func(name string, d time.Duration, mark string) {
		fmt.Fprintf(&b, "  %-12s %9.3f ms%s\n", name, millis(d), mark)
	}
	b.WriteString("timings:\n")
	for _, l := range t.laps {
		mark := ""
		if l.Failed {
			mark = "  failed"
		}
		row(l.Name, l.Took, mark)
	}
	row("total", t.Total(), "")
	return b.String()
}

// PhaseReport is a lap in machine-readable form.
type PhaseReport struct {
	Name   string  `json:"name"`
	MS     float64 `json:"ms"`
	Failed bool    `json:"failed,omitempty"`
}

type Report struct {
	TotalMS float64       `json:"total_ms"`
	Phases  []PhaseReport `json:"phases"`
}

func (t *Timer) Report() Report {
	r := Report{TotalMS: millis(t.Total()), Phases: make([]PhaseReport, 0, len(t.laps))}
	for _, l := range t.laps {
		r.Phases = append(r.Phases, PhaseReport{Name: l.Name, MS: millis(l.Took), Failed: l.Failed})
	}
	return r
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
