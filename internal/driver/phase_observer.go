package driver

import "time"

// PhaseStatus reports whether a phase started or finished.
type PhaseStatus int

const (
	PhaseStart PhaseStatus = iota
	PhaseEnd
)

// PhaseEvent describes a phase boundary of Compile.
type PhaseEvent struct {
	Name    string // PhaseLoad, PhaseParse, ...
	Status  PhaseStatus
	Elapsed time.Duration // PhaseEnd only
	Err     error         // PhaseEnd only
}

// PhaseObserver receives phase events emitted during Compile.
type PhaseObserver func(PhaseEvent)

// Phase names, also used for observ.Timer entries.
const (
	PhaseLoad    = "load"
	PhaseParse   = "lex+parse"
	PhaseCodegen = "codegen"
	PhaseVerify  = "verify"
)

func (o PhaseObserver) emit(ev PhaseEvent) {
	if o != nil {
		o(ev)
	}
}
