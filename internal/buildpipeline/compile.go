package buildpipeline

import (
	"context"
	"fmt"
	"time"

	"aic/internal/backend/llvm"
	"aic/internal/driver"
)

// CompileRequest configures the shared compilation pipeline.
type CompileRequest struct {
	Input string
	// Source, when non-nil, is compiled instead of reading Input.
	Source         []byte
	Backend        driver.Backend
	Entry          string
	MaxDiagnostics int
	LLVM           llvm.Options
	EnableTimings  bool
	Progress       ProgressSink
	// BaseDir shortens the file label of progress events.
	BaseDir string
}

// CompileResult captures the driver result and stage timings.
type CompileResult struct {
	Result  *driver.Result
	Timings Timings
}

// Compile runs parsing, code generation and verification. A result with a
// bag is returned alongside driver.ErrDiagnostics.
func Compile(ctx context.Context, req *CompileRequest) (CompileResult, error) {
	var result CompileResult
	if ctx == nil {
		ctx = context.Background()
	}
	if req == nil {
		return result, fmt.Errorf("missing compile request")
	}
	if req.Input == "" {
		return result, fmt.Errorf("missing input path")
	}

	files := req.progressFiles()
	emitQueued(req.Progress, files)
	observer := &phaseObserver{
		sink:    req.Progress,
		files:   files,
		timings: &result.Timings,
	}

	res, err := driver.Compile(ctx, driver.CompileRequest{
		Path:           req.Input,
		Source:         req.Source,
		MaxDiagnostics: req.MaxDiagnostics,
		Backend:        req.Backend,
		LLVM:           req.LLVM,
		Entry:          req.Entry,
		EnableTimings:  req.EnableTimings,
		Observer:       observer.OnPhase,
	})
	result.Result = res
	return result, err
}

func (req *CompileRequest) progressFiles() []string {
	if req.Progress == nil {
		return nil
	}
	return ProgressFiles([]string{req.Input}, req.BaseDir)
}

// phaseObserver turns driver phase events into stage progress and timings.
type phaseObserver struct {
	sink    ProgressSink
	files   []string
	timings *Timings

	parseStarted bool
}

// OnPhase updates progress and timings based on compiler phase events.
func (p *phaseObserver) OnPhase(ev driver.PhaseEvent) {
	if p == nil {
		return
	}
	stage, ok := stageOf(ev.Name)
	if !ok {
		return
	}
	if ev.Status == driver.PhaseStart {
		// load и lex+parse показываются одной стадией
		if stage == StageParse {
			if p.parseStarted {
				return
			}
			p.parseStarted = true
		}
		emitStage(p.sink, p.files, stage, StatusWorking, nil, 0)
		return
	}

	elapsed := p.timings.Add(stage, ev.Elapsed)
	// StatusDone шлёт вызывающий, когда весь файл готов
	if ev.Err != nil {
		emitStage(p.sink, p.files, stage, StatusError, ev.Err, elapsed)
	}
}

func stageOf(phase string) (Stage, bool) {
	switch phase {
	case driver.PhaseLoad, driver.PhaseParse:
		return StageParse, true
	case driver.PhaseCodegen:
		return StageCodegen, true
	case driver.PhaseVerify:
		return StageVerify, true
	default:
		return "", false
	}
}

func emitQueued(sink ProgressSink, files []string) {
	if sink == nil {
		return
	}
	for _, file := range files {
		sink.OnEvent(Event{File: file, Stage: StageParse, Status: StatusQueued})
	}
}

func emitStage(sink ProgressSink, files []string, stage Stage, status Status, err error, elapsed time.Duration) {
	if sink == nil {
		return
	}
	sink.OnEvent(Event{Stage: stage, Status: status, Err: err, Elapsed: elapsed})
	for _, file := range files {
		sink.OnEvent(Event{File: file, Stage: stage, Status: status, Err: err, Elapsed: elapsed})
	}
}
