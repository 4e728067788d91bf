// Package codegen lowers a parsed program to IR through an ir.Builder.
//
// Top-level statements become the body of an implicit entry function;
// top-level fn declarations become separate functions.
package codegen

import (
	"context"
	"fmt"
	"strconv"

	"aic/internal/ast"
	"aic/internal/diag"
	"aic/internal/ir"
	"aic/internal/source"
	"aic/internal/symbols"
	"aic/internal/trace"
)

// DefaultEntry is the name of the implicit entry function.
const DefaultEntry = "main"

// Options configures Generate.
type Options struct {
	Entry string // DefaultEntry when empty
}

type funcInfo struct {
	fn     ir.Func
	span   source.Span // name of the declaration
	params []ir.Type
	result ir.Type
}

// fnState is the per-function part of the generator, saved around nested
// declarations.
type fnState struct {
	fn        ir.Func
	result    ir.Type
	entry     bool
	reachable bool // false inside blocks that no edge reaches
}

type generator struct {
	ctx       context.Context
	b         *ast.Builder
	ir        ir.Builder
	env       *symbols.Env
	funcs     map[string]*funcInfo
	entryName string
	tracer    trace.Tracer
	parent    uint64

	fnState
}

// Generate lowers prog into builder. The first error aborts lowering and
// is returned as *Error; cancellation of ctx is returned as is.
func Generate(ctx context.Context, b *ast.Builder, prog ast.ProgramID, builder ir.Builder, opts Options) error {
	program := b.Programs.Get(prog)
	if program == nil {
		return fmt.Errorf("codegen: unknown program %d", prog)
	}
	if opts.Entry == "" {
		opts.Entry = DefaultEntry
	}
	g := &generator{
		ctx:       ctx,
		b:         b,
		ir:        builder,
		env:       symbols.NewEnv(),
		funcs:     make(map[string]*funcInfo),
		entryName: opts.Entry,
		tracer:    trace.FromContext(ctx),
	}

	span := trace.Begin(g.tracer, trace.ScopePass, "lower", trace.ParentID(ctx))
	g.parent = span.ID()
	err := g.run(program)
	detail := "ok"
	if err != nil {
		detail = "error"
	}
	span.WithExtra("functions", strconv.Itoa(len(g.funcs)+1)).End(detail)
	return err
}

func (g *generator) run(program *ast.Program) error {
	if err := g.declare(program.Stmts); err != nil {
		return err
	}
	fn, err := g.ir.CreateFunction(g.entryName, nil, ir.I32)
	if err != nil {
		return fmt.Errorf("codegen: %w", err)
	}

	span := trace.Begin(g.tracer, trace.ScopeFunc, "fn:"+g.entryName, g.parent)
	defer span.End("")

	g.env.Push(symbols.ScopeModule)
	defer g.env.Pop()
	g.enter(fn, true)
	if err := g.lowerBlock(program.Stmts, true); err != nil {
		return err
	}
	return g.finish(g.entryName, program.Span)
}

// declare creates every top-level function up front so calls may refer to
// functions declared later in the file.
func (g *generator) declare(stmts []ast.StmtID) error {
	for _, id := range stmts {
		decl, ok := g.b.Stmts.FnDecl(id)
		if !ok {
			continue
		}
		if decl.Name == g.entryName {
			return errorf(diag.SemaEntrypointConflict, decl.NameSpan,
				"function '%s' conflicts with the implicit entry point", decl.Name)
		}
		if prev, ok := g.funcs[decl.Name]; ok {
			return fromSymbols(&symbols.DuplicateBindingError{
				Name:     decl.Name,
				Span:     decl.NameSpan,
				Previous: prev.span,
			}, decl.NameSpan)
		}

		params := make([]ir.Type, len(decl.Params))
		for i, p := range decl.Params {
			t, ok := valueType(p.Type)
			if !ok {
				return errorf(diag.SemaUnsupportedType, p.Type.Span,
					"parameter '%s' has unsupported type %s", p.Name, p.Type.Kind)
			}
			params[i] = t
		}
		result, ok := resultType(decl.Result)
		if !ok {
			return errorf(diag.SemaUnsupportedType, decl.Result.Span,
				"function '%s' has unsupported result type %s", decl.Name, decl.Result.Kind)
		}

		fn, err := g.ir.CreateFunction(decl.Name, params, result)
		if err != nil {
			return fmt.Errorf("codegen: %w", err)
		}
		g.funcs[decl.Name] = &funcInfo{fn: fn, span: decl.NameSpan, params: params, result: result}
	}
	return nil
}

func (g *generator) enter(fn ir.Func, entry bool) {
	g.fnState = fnState{fn: fn, result: fn.Result(), entry: entry, reachable: true}
	g.ir.PositionAt(g.ir.AppendBlock(fn, "entry"))
}

// finish terminates the current block when control falls off the end.
func (g *generator) finish(name string, span source.Span) error {
	if g.ir.InsertBlock().Terminated() {
		return nil
	}
	switch {
	case !g.reachable:
		g.terminateDead()
	case g.result == ir.Void:
		g.ir.BuildRet(nil)
	case g.entry:
		g.ir.BuildRet(g.ir.ConstInt(ir.I32, 0))
	default:
		return errorf(diag.SemaMissingReturn, span,
			"function '%s' may reach its end without returning a %s value", name, typeName(g.result))
	}
	return nil
}

// terminateDead closes a block without predecessors. Its return value is
// never observed.
func (g *generator) terminateDead() {
	if g.result == ir.Void {
		g.ir.BuildRet(nil)
		return
	}
	g.ir.BuildRet(g.ir.ConstInt(g.result, 0))
}

// lowerFnDecl lowers a declared function; the caller's insertion point,
// scope stack and function state are restored afterwards.
func (g *generator) lowerFnDecl(decl *ast.FnDeclData) (err error) {
	info, ok := g.funcs[decl.Name]
	if !ok {
		return fmt.Errorf("codegen: function '%s' was not declared", decl.Name)
	}
	if err := g.ctx.Err(); err != nil {
		return err
	}

	span := trace.Begin(g.tracer, trace.ScopeFunc, "fn:"+decl.Name, g.parent)
	saved, block, scopes := g.fnState, g.ir.InsertBlock(), g.env.Save()
	defer func() {
		g.env.Restore(scopes)
		g.fnState = saved
		if block != nil {
			g.ir.PositionAt(block)
		}
		detail := ""
		if err != nil {
			detail = "error"
		}
		span.WithExtra("params", strconv.Itoa(len(decl.Params))).End(detail)
	}()

	g.env.Push(symbols.ScopeFunction)
	g.enter(info.fn, false)
	for i, p := range decl.Params {
		slot := g.ir.BuildAlloca(info.params[i], p.Name)
		g.ir.BuildStore(g.ir.Param(info.fn, i), slot)
		// параметры неизменяемы, как let
		if err := g.declareLocal(symbols.Binding{Name: p.Name, Slot: slot, Type: info.params[i], Span: p.Span}); err != nil {
			return err
		}
	}
	if err := g.lowerBlock(decl.Body, true); err != nil {
		return err
	}
	return g.finish(decl.Name, decl.NameSpan)
}

func (g *generator) declareLocal(b symbols.Binding) error {
	if err := g.env.Declare(b); err != nil {
		return fromSymbols(err, b.Span)
	}
	return nil
}
