// Package testkit holds checks shared by parser, fuzz and codegen tests.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"aic/internal/ast"
	"aic/internal/source"
)

// CheckSpanInvariants runs the span invariants on a parsed program:
// 1) program span is within file content bounds
// 2) every statement and expression span is non-empty, points to the file
// and lies inside its parent
// 3) statements of one list follow source order without overlapping
func CheckSpanInvariants(b *ast.Builder, prog ast.ProgramID, sf *source.File) error {
	if b == nil || sf == nil {
		return fmt.Errorf("nil builder or file")
	}
	p := b.Programs.Get(prog)
	if p == nil {
		return fmt.Errorf("program node not found")
	}

	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	if p.Span.File != sf.ID {
		return fmt.Errorf("program span points to different file id: got=%d want=%d", p.Span.File, sf.ID)
	}
	if p.Span.End > lenContent || p.Span.Start > p.Span.End {
		return fmt.Errorf("program span %v outside content of %d bytes", p.Span, lenContent)
	}
	c := checker{b: b, file: sf.ID}
	return c.stmtList(p.Stmts, p.Span)
}

type checker struct {
	b    *ast.Builder
	file source.FileID
}

func (c checker) within(what string, sp, parent source.Span) error {
	if sp.End <= sp.Start {
		return fmt.Errorf("empty %s span: %v", what, sp)
	}
	if sp.File != c.file {
		return fmt.Errorf("%s span file mismatch: got=%d want=%d", what, sp.File, c.file)
	}
	if sp.Start < parent.Start || sp.End > parent.End {
		return fmt.Errorf("%s span %v is outside parent span %v", what, sp, parent)
	}
	return nil
}

func (c checker) stmtList(ids []ast.StmtID, parent source.Span) error {
	var prevEnd uint32
	for i, id := range ids {
		st := c.b.Stmts.Get(id)
		if st == nil {
			return fmt.Errorf("nil stmt for id=%d", id)
		}
		if err := c.within(st.Kind.String(), st.Span, parent); err != nil {
			return err
		}
		if i > 0 && st.Span.Start < prevEnd {
			return fmt.Errorf("stmt span %v overlaps the previous statement", st.Span)
		}
		prevEnd = st.Span.End
		if err := c.stmt(id, st); err != nil {
			return err
		}
	}
	return nil
}

func (c checker) stmt(id ast.StmtID, st *ast.Stmt) error {
	switch st.Kind {
	case ast.StmtFnDecl:
		fn, _ := c.b.Stmts.FnDecl(id)
		for _, param := range fn.Params {
			if err := c.within("param", param.Span, st.Span); err != nil {
				return err
			}
		}
		return c.stmtList(fn.Body, st.Span)
	case ast.StmtLet, ast.StmtVar:
		bd, _ := c.b.Stmts.Binding(id)
		return c.expr(bd.Value, st.Span)
	case ast.StmtAssign:
		as, _ := c.b.Stmts.Assign(id)
		return c.expr(as.Value, st.Span)
	case ast.StmtIf:
		data, _ := c.b.Stmts.If(id)
		if err := c.expr(data.Cond, st.Span); err != nil {
			return err
		}
		if err := c.stmtList(data.Then, st.Span); err != nil {
			return err
		}
		return c.stmtList(data.Else, st.Span)
	case ast.StmtReturn:
		ret, _ := c.b.Stmts.Return(id)
		return c.expr(ret.Value, st.Span)
	case ast.StmtExpr, ast.StmtTail:
		es, _ := c.b.Stmts.ExprStmt(id)
		return c.expr(es.Expr, st.Span)
	}
	return nil
}

func (c checker) expr(id ast.ExprID, parent source.Span) error {
	if id == ast.NoExprID {
		return nil
	}
	e := c.b.Exprs.Get(id)
	if e == nil {
		return fmt.Errorf("nil expr for id=%d", id)
	}
	if err := c.within(e.Kind.String(), e.Span, parent); err != nil {
		return err
	}
	switch e.Kind {
	case ast.ExprBinary:
		bin, _ := c.b.Exprs.Binary(id)
		if err := c.expr(bin.Left, e.Span); err != nil {
			return err
		}
		return c.expr(bin.Right, e.Span)
	case ast.ExprUnary:
		un, _ := c.b.Exprs.Unary(id)
		return c.expr(un.Operand, e.Span)
	case ast.ExprCall:
		call, _ := c.b.Exprs.Call(id)
		for _, arg := range call.Args {
			if err := c.expr(arg, e.Span); err != nil {
				return err
			}
		}
	}
	return nil
}
