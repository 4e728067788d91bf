package codegen

import (
	"fmt"

	"aic/internal/ast"
	"aic/internal/diag"
	"aic/internal/ir"
	"aic/internal/source"
	"aic/internal/symbols"
)

// lowerBlock lowers stmts in order. ret marks a block in return position:
// its last statement may produce the function result.
func (g *generator) lowerBlock(stmts []ast.StmtID, ret bool) error {
	for i, id := range stmts {
		if g.ir.InsertBlock().Terminated() {
			// код после return: отдельный блок без предшественников
			g.ir.PositionAt(g.ir.AppendBlock(g.fn, "dead"))
			g.reachable = false
		}
		if err := g.lowerStmt(id, ret && i == len(stmts)-1); err != nil {
			return err
		}
	}
	return nil
}

func (g *generator) lowerStmt(id ast.StmtID, ret bool) error {
	st := g.b.Stmts.Get(id)
	if st == nil {
		return fmt.Errorf("codegen: unknown statement %d", id)
	}
	switch st.Kind {
	case ast.StmtFnDecl:
		decl, _ := g.b.Stmts.FnDecl(id)
		return g.lowerFnDecl(decl)
	case ast.StmtLet, ast.StmtVar:
		data, _ := g.b.Stmts.Binding(id)
		return g.lowerBinding(st.Span, data)
	case ast.StmtAssign:
		data, _ := g.b.Stmts.Assign(id)
		return g.lowerAssign(data)
	case ast.StmtIf:
		data, _ := g.b.Stmts.If(id)
		return g.lowerIf(data, ret)
	case ast.StmtReturn:
		data, _ := g.b.Stmts.Return(id)
		return g.lowerReturn(st.Span, data.Value)
	case ast.StmtExpr:
		data, _ := g.b.Stmts.ExprStmt(id)
		_, _, err := g.lowerExpr(data.Expr, ir.I32)
		return err
	case ast.StmtTail:
		data, _ := g.b.Stmts.ExprStmt(id)
		if ret {
			return g.lowerReturn(st.Span, data.Expr)
		}
		_, _, err := g.lowerExpr(data.Expr, ir.I32)
		return err
	default:
		return fmt.Errorf("codegen: unexpected statement kind %s", st.Kind)
	}
}

func (g *generator) lowerBinding(span source.Span, d *ast.BindingData) error {
	var (
		typ  ir.Type
		init ir.Value
		err  error
	)
	if d.Type.IsSet() {
		t, ok := valueType(d.Type)
		if !ok {
			return errorf(diag.SemaUnsupportedType, d.Type.Span,
				"binding '%s' has unsupported type %s", d.Name, d.Type.Kind)
		}
		typ = t
	}
	switch {
	case d.Value.IsValid() && d.Type.IsSet():
		init, err = g.lowerTyped(d.Value, typ, fmt.Sprintf("initializer of '%s'", d.Name))
	case d.Value.IsValid():
		init, typ, err = g.lowerValue(d.Value, ir.I32)
	case d.Type.IsSet():
		init = g.ir.ConstInt(typ, 0)
	default:
		return errorf(diag.SemaTypeMismatch, span, "cannot infer the type of '%s'", d.Name)
	}
	if err != nil {
		return err
	}

	// имя объявляется после инициализатора: `let x = x + 1` видит внешний x
	slot := g.ir.BuildAlloca(typ, d.Name)
	g.ir.BuildStore(init, slot)
	return g.declareLocal(symbols.Binding{
		Name:    d.Name,
		Slot:    slot,
		Type:    typ,
		Mutable: d.Mutable,
		Span:    d.NameSpan,
	})
}

func (g *generator) lowerAssign(d *ast.AssignData) error {
	b, err := g.env.Resolve(d.Name)
	if err != nil {
		return fromSymbols(err, d.NameSpan)
	}
	if !b.Mutable {
		e := errorf(diag.SemaImmutableAssignment, d.NameSpan, "cannot assign to immutable binding '%s'", d.Name)
		e.Notes = []diag.Note{{Span: b.Span, Msg: "declared here; use 'var' to allow assignment"}}
		return e
	}
	v, err := g.lowerTyped(d.Value, b.Type, fmt.Sprintf("assignment to '%s'", d.Name))
	if err != nil {
		return err
	}
	g.ir.BuildStore(v, b.Slot)
	return nil
}

func (g *generator) lowerReturn(span source.Span, value ast.ExprID) error {
	switch {
	case g.result == ir.Void:
		if value.IsValid() {
			_, t, err := g.lowerExpr(value, ir.I32)
			if err != nil {
				return err
			}
			if t != ir.Void {
				return errorf(diag.SemaTypeMismatch, g.exprSpan(value),
					"function '%s' returns nothing, found a value of type %s", g.fn.Name(), typeName(t))
			}
		}
		g.ir.BuildRet(nil)
	case !value.IsValid():
		return errorf(diag.SemaTypeMismatch, span,
			"function '%s' must return a %s value", g.fn.Name(), typeName(g.result))
	default:
		v, err := g.lowerTyped(value, g.result, "return value")
		if err != nil {
			return err
		}
		g.ir.BuildRet(v)
	}
	return nil
}

// lowerIf emits then/else/merge blocks. In return position with both
// branches terminated the merge block has no predecessors and is removed.
func (g *generator) lowerIf(d *ast.IfData, ret bool) error {
	cond, err := g.lowerCond(d.Cond)
	if err != nil {
		return err
	}
	thenBlk := g.ir.AppendBlock(g.fn, "then")
	var elseBlk ir.Block
	if d.HasElse {
		elseBlk = g.ir.AppendBlock(g.fn, "else")
	}
	merge := g.ir.AppendBlock(g.fn, "merge")
	if d.HasElse {
		g.ir.BuildCondBr(cond, thenBlk, elseBlk)
	} else {
		g.ir.BuildCondBr(cond, thenBlk, merge)
	}

	reachable := g.reachable
	thenDone, err := g.lowerBranch(thenBlk, d.Then, merge, ret, reachable)
	if err != nil {
		return err
	}
	elseDone := false
	if d.HasElse {
		if elseDone, err = g.lowerBranch(elseBlk, d.Else, merge, ret, reachable); err != nil {
			return err
		}
	}

	bothDone := d.HasElse && thenDone && elseDone
	if ret && bothDone {
		g.ir.RemoveBlock(merge)
		return nil
	}
	g.ir.PositionAt(merge)
	g.reachable = reachable && !bothDone
	return nil
}

// lowerBranch lowers one arm in its own scope and reports whether it ends
// without falling through to merge.
func (g *generator) lowerBranch(blk ir.Block, stmts []ast.StmtID, merge ir.Block, ret, reachable bool) (bool, error) {
	g.ir.PositionAt(blk)
	g.reachable = reachable
	g.env.Push(symbols.ScopeBlock)
	defer g.env.Pop()

	if err := g.lowerBlock(stmts, ret); err != nil {
		return false, err
	}
	if g.ir.InsertBlock().Terminated() {
		return true, nil
	}
	if reachable && !g.reachable {
		g.terminateDead()
		return true, nil
	}
	g.ir.BuildBr(merge)
	return false, nil
}
