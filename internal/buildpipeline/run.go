package buildpipeline

import (
	"context"
	"fmt"
	"time"

	"aic/internal/backend/vm"
	"aic/internal/codegen"
	"aic/internal/driver"
)

// RunRequest configures compilation and execution on the VM.
type RunRequest struct {
	CompileRequest
	// MaxDepth bounds interpreted recursion; vm.DefaultMaxDepth when zero.
	MaxDepth int
}

// RunResult is the outcome of a VM run.
type RunResult struct {
	Compile *driver.Result
	// Value is the raw i32 returned by the entry function.
	Value    int64
	ExitCode uint8
	Timings  Timings
}

// Run compiles req.Input with the VM backend and executes the entry point.
func Run(ctx context.Context, req *RunRequest) (RunResult, error) {
	var result RunResult
	if req == nil {
		return result, fmt.Errorf("missing run request")
	}
	reqCopy := *req
	req = &reqCopy
	req.Backend = driver.BackendVM

	compileRes, err := Compile(ctx, &req.CompileRequest)
	result.Compile = compileRes.Result
	result.Timings = compileRes.Timings
	if err != nil {
		return result, err
	}
	mod, ok := compileRes.Result.Unit.(*vm.Module)
	if !ok {
		return result, fmt.Errorf("unexpected unit %T for the vm backend", compileRes.Result.Unit)
	}

	entry := req.Entry
	if entry == "" {
		entry = codegen.DefaultEntry
	}
	files := req.progressFiles()
	runStart := time.Now()
	emitStage(req.Progress, files, StageRun, StatusWorking, nil, 0)
	value, err := vm.NewVM(mod, vm.Options{MaxDepth: req.MaxDepth}).Run(ctx, entry)
	result.Timings.Set(StageRun, time.Since(runStart))
	if err != nil {
		emitStage(req.Progress, files, StageRun, StatusError, err, result.Timings.Duration(StageRun))
		return result, err
	}
	result.Value = value
	result.ExitCode = vm.ExitCode(value)
	emitStage(req.Progress, files, StageRun, StatusDone, nil, result.Timings.Duration(StageRun))
	return result, nil
}
