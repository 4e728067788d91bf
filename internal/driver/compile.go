// Package driver runs the front end and code generation for one source
// file at a time.
package driver

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"fortio.org/safecast"

	"aic/internal/ast"
	"aic/internal/backend/llvm"
	"aic/internal/backend/vm"
	"aic/internal/codegen"
	"aic/internal/diag"
	"aic/internal/ir"
	"aic/internal/observ"
	"aic/internal/parser"
	"aic/internal/source"
	"aic/internal/trace"
)

// Backend selects the ir.Builder implementation.
type Backend string

const (
	BackendLLVM Backend = "llvm"
	BackendVM   Backend = "vm"
)

func ParseBackend(s string) (Backend, error) {
	switch b := Backend(strings.ToLower(strings.TrimSpace(s))); b {
	case "":
		return BackendLLVM, nil
	case BackendLLVM, BackendVM:
		return b, nil
	default:
		return "", fmt.Errorf("unsupported backend: %s (supported: llvm, vm)", s)
	}
}

// ErrDiagnostics is returned when the compilation reported errors; they
// are in Result.Bag.
var ErrDiagnostics = errors.New("compilation failed")

type CompileRequest struct {
	Path string
	// Source, when non-nil, is compiled instead of reading Path.
	Source         []byte
	MaxDiagnostics int
	Backend        Backend // BackendLLVM when empty
	LLVM           llvm.Options
	Entry          string // codegen.DefaultEntry when empty
	// EnableTimings appends an ObsTimings info diagnostic.
	EnableTimings bool
	Observer      PhaseObserver
}

type Result struct {
	FileSet *source.FileSet
	File    *source.File
	Builder *ast.Builder
	Program ast.ProgramID
	Bag     *diag.Bag
	// Unit is the verified IR; nil unless compilation succeeded.
	Unit  ir.Builder
	Timer *observ.Timer
}

// Compile loads, parses and lowers req.Path. Diagnostics go to the bag and
// yield ErrDiagnostics; other errors are I/O failures or cancellation.
func Compile(ctx context.Context, req CompileRequest) (*Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	res := &Result{
		FileSet: source.NewFileSet(),
		Bag:     diag.NewBag(req.MaxDiagnostics),
		Timer:   observ.NewTimer(),
	}

	span := trace.Begin(trace.FromContext(ctx), trace.ScopeDriver, "compile", trace.ParentID(ctx)).
		WithExtra("path", req.Path).
		WithExtra("backend", string(req.Backend))
	ctx = trace.WithSpan(ctx, span)

	err := res.compile(ctx, req)
	detail := "ok"
	if err != nil {
		detail = err.Error()
	}
	span.End(detail)

	if req.EnableTimings {
		report := res.Timer.Report()
		appendTimingDiagnostic(res.Bag, timingPayload{
			Kind:    "compile",
			Path:    req.Path,
			TotalMS: report.TotalMS,
			Phases:  report.Phases,
		})
	}
	return res, err
}

func (r *Result) compile(ctx context.Context, req CompileRequest) error {
	if err := r.phase(ctx, req.Observer, PhaseLoad, func() error { return r.load(req) }); err != nil {
		return err
	}
	if err := r.phase(ctx, req.Observer, PhaseParse, func() error { return r.parse(req) }); err != nil {
		return err
	}

	var unit ir.Builder
	err := r.phase(ctx, req.Observer, PhaseCodegen, func() error {
		var err error
		if unit, err = newUnit(req); err != nil {
			return err
		}
		return r.generate(ctx, req, unit)
	})
	if err != nil {
		return err
	}

	err = r.phase(ctx, req.Observer, PhaseVerify, func() error {
		if err := unit.Verify(); err != nil {
			r.Bag.Add(diag.NewError(diag.BackendVerifyFailed, r.programSpan(), err.Error()))
			return ErrDiagnostics
		}
		return nil
	})
	if err != nil {
		return err
	}
	r.Unit = unit
	return nil
}

// phase runs fn with timing, tracing and observer notifications.
func (r *Result) phase(ctx context.Context, obs PhaseObserver, name string, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	obs.emit(PhaseEvent{Name: name, Status: PhaseStart})
	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, name, trace.ParentID(ctx))
	start := time.Now()

	err := r.Timer.Measure(name, fn)

	if err != nil {
		span.End("failed")
	} else {
		span.End("")
	}
	obs.emit(PhaseEvent{Name: name, Status: PhaseEnd, Elapsed: time.Since(start), Err: err})
	return err
}

func (r *Result) load(req CompileRequest) error {
	if req.Source != nil {
		r.File = r.FileSet.Get(r.FileSet.AddVirtual(req.Path, req.Source))
		return nil
	}
	id, err := r.FileSet.Load(req.Path)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", req.Path, err)
	}
	r.File = r.FileSet.Get(id)
	return nil
}

func (r *Result) parse(req CompileRequest) error {
	maxErrors, err := safecast.Conv[uint](max(req.MaxDiagnostics, 0))
	if err != nil {
		return err
	}
	r.Builder = ast.NewBuilder(ast.Hints{})
	res := parser.ParseFile(r.File, r.Builder, parser.Options{
		MaxErrors: maxErrors,
		Reporter:  diag.BagReporter{Bag: r.Bag},
	})
	r.Program = res.Program
	if !res.OK() || r.Bag.HasErrors() {
		return ErrDiagnostics
	}
	return nil
}

func (r *Result) generate(ctx context.Context, req CompileRequest, unit ir.Builder) error {
	err := codegen.Generate(ctx, r.Builder, r.Program, unit, codegen.Options{Entry: req.Entry})
	var cgErr *codegen.Error
	if errors.As(err, &cgErr) {
		d := cgErr.Diagnostic()
		if !r.Bag.Add(d) {
			// лимит уже исчерпан, но ошибку кодогенерации терять нельзя
			overflow := diag.NewBag(1)
			overflow.Add(d)
			r.Bag.Merge(overflow)
		}
		return ErrDiagnostics
	}
	return err
}

func (r *Result) programSpan() source.Span {
	if r.Builder != nil {
		if p := r.Builder.Programs.Get(r.Program); p != nil {
			return p.Span
		}
	}
	if r.File != nil {
		return source.Span{File: r.File.ID}
	}
	return source.Span{}
}

func newUnit(req CompileRequest) (ir.Builder, error) {
	backend, err := ParseBackend(string(req.Backend))
	if err != nil {
		return nil, err
	}
	if backend == BackendVM {
		return vm.New(), nil
	}
	return llvm.New(req.LLVM), nil
}
