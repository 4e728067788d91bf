package buildpipeline

import "time"

// Stage describes a high-level pipeline phase.
type Stage string

const (
	// StageParse covers loading, lexing and parsing.
	StageParse Stage = "parse"
	// StageCodegen lowers the AST through the IR builder.
	StageCodegen Stage = "codegen"
	// StageVerify checks the built IR.
	StageVerify Stage = "verify"
	// StageEmit writes the object file or the IR text.
	StageEmit Stage = "emit"
	// StageRun executes the program on the VM.
	StageRun Stage = "run"
)

// Status captures progress state within a stage.
type Status string

const (
	// StatusQueued indicates the task is waiting to start.
	StatusQueued Status = "queued"
	// StatusWorking indicates the task is currently working.
	StatusWorking Status = "working"
	// StatusDone indicates the task is done.
	StatusDone Status = "done"
	// StatusError indicates the task encountered an error.
	StatusError Status = "error"
)

// Event reports progress for a file (or for the overall pipeline when File is empty).
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events.
type ProgressSink interface {
	OnEvent(Event)
}

// Timings records stage durations in the order the stages first ran.
type Timings struct {
	entries []stageTiming
}

type stageTiming struct {
	stage Stage
	dur   time.Duration
}

func (t *Timings) find(stage Stage) int {
	for i := range t.entries {
		if t.entries[i].stage == stage {
			return i
		}
	}
	return -1
}

// Set stores a duration for the given stage, replacing an earlier one.
func (t *Timings) Set(stage Stage, dur time.Duration) {
	if t == nil {
		return
	}
	if i := t.find(stage); i >= 0 {
		t.entries[i].dur = dur
		return
	}
	t.entries = append(t.entries, stageTiming{stage: stage, dur: dur})
}

// Add accumulates dur into stage and returns the new total for it.
func (t *Timings) Add(stage Stage, dur time.Duration) time.Duration {
	if t == nil {
		return dur
	}
	if i := t.find(stage); i >= 0 {
		t.entries[i].dur += dur
		return t.entries[i].dur
	}
	t.entries = append(t.entries, stageTiming{stage: stage, dur: dur})
	return dur
}

// Has reports whether a duration for stage is recorded.
func (t Timings) Has(stage Stage) bool {
	return t.find(stage) >= 0
}

// Duration returns the recorded duration for stage.
func (t Timings) Duration(stage Stage) time.Duration {
	if i := t.find(stage); i >= 0 {
		return t.entries[i].dur
	}
	return 0
}

// Stages lists recorded stages in execution order.
func (t Timings) Stages() []Stage {
	out := make([]Stage, 0, len(t.entries))
	for _, e := range t.entries {
		out = append(out, e.stage)
	}
	return out
}

// Total returns the sum of all recorded stages.
func (t Timings) Total() time.Duration {
	var total time.Duration
	for _, e := range t.entries {
		total += e.dur
	}
	return total
}
