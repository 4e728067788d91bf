// Package buildpipeline orchestrates the compilation process.
package buildpipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"aic/internal/diag"
	"aic/internal/driver"
	"aic/internal/project"
	"aic/internal/source"
)

// BuildRequest configures output generation for a compilation.
type BuildRequest struct {
	CompileRequest
	// Output is the object file path; "<module>.o" when empty.
	Output string
	// Module names the default output; the input stem when empty.
	Module string
	// EmitIR returns the IR text instead of writing an object file.
	EmitIR bool
}

// BuildResult captures build artefacts and timings.
type BuildResult struct {
	Input      string
	OutputPath string // empty with EmitIR
	IR         string // set with EmitIR
	Compile    *driver.Result
	Timings    Timings
}

// OutputPath resolves the object file path of req.
func (req *BuildRequest) OutputPath() string {
	if req.Output != "" {
		return req.Output
	}
	module := req.Module
	if module == "" {
		module = project.ModuleName(req.Input)
	}
	return project.ObjectName(module)
}

// Build compiles req.Input with the LLVM backend and emits either the IR
// text or a native object file.
func Build(ctx context.Context, req *BuildRequest) (BuildResult, error) {
	var result BuildResult
	if req == nil {
		return result, fmt.Errorf("missing build request")
	}
	reqCopy := *req
	req = &reqCopy
	req.Backend = driver.BackendLLVM
	result.Input = req.Input

	compileRes, err := Compile(ctx, &req.CompileRequest)
	result.Compile = compileRes.Result
	result.Timings = compileRes.Timings
	if err != nil {
		return result, err
	}
	files := req.progressFiles()

	emitStart := time.Now()
	emitStage(req.Progress, files, StageEmit, StatusWorking, nil, 0)
	unit := compileRes.Result.Unit

	if req.EmitIR {
		result.IR = unit.String()
	} else {
		outputPath := req.OutputPath()
		if dir := filepath.Dir(outputPath); dir != "." {
			if err := os.MkdirAll(dir, 0o750); err != nil {
				err = fmt.Errorf("failed to create output dir: %w", err)
				emitStage(req.Progress, files, StageEmit, StatusError, err, 0)
				return result, err
			}
		}
		if err := unit.EmitObject(ctx, outputPath); err != nil {
			if ctx.Err() != nil {
				return result, ctx.Err()
			}
			reportEmitFailure(compileRes.Result, outputPath, err)
			err = fmt.Errorf("failed to emit %s: %w", outputPath, driver.ErrDiagnostics)
			emitStage(req.Progress, files, StageEmit, StatusError, err, 0)
			return result, err
		}
		result.OutputPath = outputPath
	}

	result.Timings.Set(StageEmit, time.Since(emitStart))
	emitStage(req.Progress, files, StageEmit, StatusDone, nil, result.Timings.Duration(StageEmit))
	return result, nil
}

// reportEmitFailure records a toolchain failure as a backend diagnostic
// so that it is rendered like any other compile error.
func reportEmitFailure(res *driver.Result, outputPath string, err error) {
	if res == nil || res.Bag == nil {
		return
	}
	var primary source.Span
	if res.File != nil {
		primary.File = res.File.ID
	}
	msg := fmt.Sprintf("cannot write %s: %v", outputPath, err)
	res.Bag.Add(diag.NewError(diag.BackendEmitFailed, primary, msg))
}

// BuildAll runs Build for every request with at most jobs builds at once
// (GOMAXPROCS when jobs <= 0). Results keep the order of reqs; the first
// failure is returned after all builds finish.
func BuildAll(ctx context.Context, reqs []*BuildRequest, jobs int) ([]BuildResult, error) {
	results := make([]BuildResult, len(reqs))
	if len(reqs) == 0 {
		return results, nil
	}
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	outputs := make(map[string]string, len(reqs))
	for _, req := range reqs {
		if req == nil || req.EmitIR {
			continue
		}
		out := filepath.Clean(req.OutputPath())
		if prev, ok := outputs[out]; ok {
			return results, fmt.Errorf("%s and %s both write %s; pass distinct outputs", prev, req.Input, out)
		}
		outputs[out] = req.Input
	}

	var g errgroup.Group
	g.SetLimit(min(jobs, len(reqs)))
	for i, req := range reqs {
		g.Go(func() error {
			res, err := Build(ctx, req)
			results[i] = res
			return err
		})
	}
	return results, g.Wait()
}
