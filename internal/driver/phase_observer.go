package driver

import "time"

// Phase names reported by Compile.
const (
	PhaseLex     = "lex"
	PhaseParse   = "parse"
	PhaseCodegen = "codegen"
)

// PhaseStatus reports whether a phase started or finished.
type PhaseStatus int

const (
	// PhaseStart indicates that a compilation phase has begun.
	PhaseStart PhaseStatus = iota
	PhaseEnd
)

// PhaseEvent describes a timing phase boundary.
type PhaseEvent struct {
	Name    string
	Status  PhaseStatus
	Elapsed time.Duration
}

// PhaseObserver receives phase events emitted during Compile.
type PhaseObserver func(PhaseEvent)

func (o PhaseObserver) start(name string) {
	if o != nil {
		o(PhaseEvent{Name: name, Status: PhaseStart})
	}
}

func (o PhaseObserver) end(name string, elapsed time.Duration) {
	if o != nil {
		o(PhaseEvent{Name: name, Status: PhaseEnd, Elapsed: elapsed})
	}
}
