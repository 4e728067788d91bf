package ast

import "slices"

// EqualPrograms compares two programs structurally, ignoring spans and IDs.
// The programs may live in different builders.
func EqualPrograms(a *Builder, pa ProgramID, b *Builder, pb ProgramID) bool {
	x, y := a.Programs.Get(pa), b.Programs.Get(pb)
	if x == nil || y == nil {
		return x == y
	}
	return equalStmtLists(a, x.Stmts, b, y.Stmts)
}

func equalStmtLists(a *Builder, xs []StmtID, b *Builder, ys []StmtID) bool {
	if len(xs) != len(ys) {
		return false
	}
	for i := range xs {
		if !EqualStmts(a, xs[i], b, ys[i]) {
			return false
		}
	}
	return true
}

func EqualStmts(a *Builder, sa StmtID, b *Builder, sb StmtID) bool {
	x, y := a.Stmts.Get(sa), b.Stmts.Get(sb)
	if x == nil || y == nil {
		return x == y
	}
	if x.Kind != y.Kind {
		return false
	}
	switch x.Kind {
	case StmtFnDecl:
		fx, _ := a.Stmts.FnDecl(sa)
		fy, _ := b.Stmts.FnDecl(sb)
		return fx.Name == fy.Name &&
			fx.Result.Kind == fy.Result.Kind &&
			slices.EqualFunc(fx.Params, fy.Params, func(p, q FnParam) bool {
				return p.Name == q.Name && p.Type.Kind == q.Type.Kind
			}) &&
			equalStmtLists(a, fx.Body, b, fy.Body)
	case StmtLet, StmtVar:
		bx, _ := a.Stmts.Binding(sa)
		by, _ := b.Stmts.Binding(sb)
		return bx.Name == by.Name && bx.Type.Kind == by.Type.Kind &&
			bx.Mutable == by.Mutable && EqualExprs(a, bx.Value, b, by.Value)
	case StmtAssign:
		ax, _ := a.Stmts.Assign(sa)
		ay, _ := b.Stmts.Assign(sb)
		return ax.Name == ay.Name && EqualExprs(a, ax.Value, b, ay.Value)
	case StmtIf:
		ix, _ := a.Stmts.If(sa)
		iy, _ := b.Stmts.If(sb)
		return ix.HasElse == iy.HasElse &&
			EqualExprs(a, ix.Cond, b, iy.Cond) &&
			equalStmtLists(a, ix.Then, b, iy.Then) &&
			equalStmtLists(a, ix.Else, b, iy.Else)
	case StmtReturn:
		rx, _ := a.Stmts.Return(sa)
		ry, _ := b.Stmts.Return(sb)
		return EqualExprs(a, rx.Value, b, ry.Value)
	case StmtExpr, StmtTail:
		ex, _ := a.Stmts.ExprStmt(sa)
		ey, _ := b.Stmts.ExprStmt(sb)
		return EqualExprs(a, ex.Expr, b, ey.Expr)
	}
	return false
}

func EqualExprs(a *Builder, ea ExprID, b *Builder, eb ExprID) bool {
	x, y := a.Exprs.Get(ea), b.Exprs.Get(eb)
	if x == nil || y == nil {
		return x == y
	}
	if x.Kind != y.Kind {
		return false
	}
	switch x.Kind {
	case ExprIntLit:
		lx, _ := a.Exprs.IntLit(ea)
		ly, _ := b.Exprs.IntLit(eb)
		return lx.Text == ly.Text
	case ExprBoolLit:
		lx, _ := a.Exprs.BoolLit(ea)
		ly, _ := b.Exprs.BoolLit(eb)
		return lx.Value == ly.Value
	case ExprBinary:
		bx, _ := a.Exprs.Binary(ea)
		by, _ := b.Exprs.Binary(eb)
		return bx.Op == by.Op && EqualExprs(a, bx.Left, b, by.Left) && EqualExprs(a, bx.Right, b, by.Right)
	case ExprUnary:
		ux, _ := a.Exprs.Unary(ea)
		uy, _ := b.Exprs.Unary(eb)
		return ux.Op == uy.Op && EqualExprs(a, ux.Operand, b, uy.Operand)
	case ExprCall:
		cx, _ := a.Exprs.Call(ea)
		cy, _ := b.Exprs.Call(eb)
		if cx.Name != cy.Name || len(cx.Args) != len(cy.Args) {
			return false
		}
		for i := range cx.Args {
			if !EqualExprs(a, cx.Args[i], b, cy.Args[i]) {
				return false
			}
		}
		return true
	case ExprVar:
		vx, _ := a.Exprs.Var(ea)
		vy, _ := b.Exprs.Var(eb)
		return vx.Name == vy.Name
	}
	return false
}
