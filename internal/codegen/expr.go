package codegen

import (
	"fmt"
	"strconv"

	"fortio.org/safecast"

	"aic/internal/ast"
	"aic/internal/diag"
	"aic/internal/ir"
	"aic/internal/source"
	"aic/internal/symbols"
)

func (g *generator) exprSpan(id ast.ExprID) source.Span {
	if e := g.b.Exprs.Get(id); e != nil {
		return e.Span
	}
	return source.Span{}
}

// lowerExpr lowers id; hint is the type expected by the context and only
// decides the type of integer literals. Void is returned for calls to
// functions without a result, with a nil value.
func (g *generator) lowerExpr(id ast.ExprID, hint ir.Type) (ir.Value, ir.Type, error) {
	expr := g.b.Exprs.Get(id)
	if expr == nil {
		return nil, ir.Void, fmt.Errorf("codegen: unknown expression %d", id)
	}
	switch expr.Kind {
	case ast.ExprIntLit:
		lit, _ := g.b.Exprs.IntLit(id)
		return g.lowerInt(expr.Span, lit.Text, hint)
	case ast.ExprBoolLit:
		lit, _ := g.b.Exprs.BoolLit(id)
		var v int64
		if lit.Value {
			v = 1
		}
		return g.ir.ConstInt(ir.I1, v), ir.I1, nil
	case ast.ExprVar:
		data, _ := g.b.Exprs.Var(id)
		b, err := g.env.Resolve(data.Name)
		if err != nil {
			return nil, ir.Void, fromSymbols(err, expr.Span)
		}
		return g.ir.BuildLoad(b.Type, b.Slot), b.Type, nil
	case ast.ExprUnary:
		data, _ := g.b.Exprs.Unary(id)
		return g.lowerUnary(expr.Span, data, hint)
	case ast.ExprBinary:
		data, _ := g.b.Exprs.Binary(id)
		return g.lowerBinary(expr.Span, data, hint)
	case ast.ExprCall:
		data, _ := g.b.Exprs.Call(id)
		return g.lowerCall(expr.Span, data)
	default:
		return nil, ir.Void, fmt.Errorf("codegen: unexpected expression kind %s", expr.Kind)
	}
}

// lowerValue is lowerExpr for contexts that need a value.
func (g *generator) lowerValue(id ast.ExprID, hint ir.Type) (ir.Value, ir.Type, error) {
	v, t, err := g.lowerExpr(id, hint)
	if err != nil {
		return nil, ir.Void, err
	}
	if t == ir.Void {
		return nil, ir.Void, errorf(diag.SemaTypeMismatch, g.exprSpan(id), "expression has no value")
	}
	return v, t, nil
}

// lowerTyped requires the value to have type want; what names the
// position in the error message.
func (g *generator) lowerTyped(id ast.ExprID, want ir.Type, what string) (ir.Value, error) {
	v, t, err := g.lowerValue(id, want)
	if err != nil {
		return nil, err
	}
	if t != want {
		return nil, errorf(diag.SemaTypeMismatch, g.exprSpan(id),
			"%s: expected %s, found %s", what, typeName(want), typeName(t))
	}
	return v, nil
}

func (g *generator) lowerInt(span source.Span, text string, hint ir.Type) (ir.Value, ir.Type, error) {
	typ := ir.I32
	if hint == ir.I64 {
		typ = ir.I64
	}
	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return nil, ir.Void, errorf(diag.SemaIntOutOfRange, span, "integer literal %s does not fit in i64", text)
	}
	if typ == ir.I32 {
		if _, err := safecast.Conv[int32](n); err != nil {
			return nil, ir.Void, errorf(diag.SemaIntOutOfRange, span, "integer literal %s does not fit in i32", text)
		}
	}
	return g.ir.ConstInt(typ, n), typ, nil
}

// lowerCond yields an i1; integers are compared against zero.
func (g *generator) lowerCond(id ast.ExprID) (ir.Value, error) {
	v, t, err := g.lowerValue(id, ir.I32)
	if err != nil {
		return nil, err
	}
	switch t {
	case ir.I1:
		return v, nil
	case ir.I32, ir.I64:
		return g.ir.BuildCompare(ir.NE, v, g.ir.ConstInt(t, 0)), nil
	default:
		return nil, errorf(diag.SemaTypeMismatch, g.exprSpan(id), "condition must be bool or integer, found %s", typeName(t))
	}
}

func (g *generator) lowerUnary(span source.Span, d *ast.ExprUnaryData, hint ir.Type) (ir.Value, ir.Type, error) {
	if d.Op == ast.UnaryNot {
		v, err := g.lowerTyped(d.Operand, ir.I1, "operand of '!'")
		if err != nil {
			return nil, ir.Void, err
		}
		return g.ir.BuildUnary(ir.Not, v), ir.I1, nil
	}
	v, t, err := g.lowerValue(d.Operand, numericHint(hint))
	if err != nil {
		return nil, ir.Void, err
	}
	if !isNumeric(t) {
		return nil, ir.Void, errorf(diag.SemaTypeMismatch, span, "operator '-' expects an integer, found %s", typeName(t))
	}
	return g.ir.BuildUnary(ir.Neg, v), t, nil
}

func (g *generator) lowerBinary(span source.Span, d *ast.ExprBinaryData, hint ir.Type) (ir.Value, ir.Type, error) {
	if d.Op.IsLogical() {
		what := fmt.Sprintf("operand of '%s'", d.Op)
		l, err := g.lowerTyped(d.Left, ir.I1, what)
		if err != nil {
			return nil, ir.Void, err
		}
		r, err := g.lowerTyped(d.Right, ir.I1, what)
		if err != nil {
			return nil, ir.Void, err
		}
		op := ir.And
		if d.Op == ast.BinOr {
			op = ir.Or
		}
		return g.ir.BuildBinary(op, l, r), ir.I1, nil
	}

	fallback := ir.I32
	if d.Op.IsArithmetic() {
		fallback = numericHint(hint)
	}
	l, lt, err := g.lowerValue(d.Left, g.operandHint(d.Left, d.Right, fallback))
	if err != nil {
		return nil, ir.Void, err
	}
	r, rt, err := g.lowerValue(d.Right, lt)
	if err != nil {
		return nil, ir.Void, err
	}

	if pred, ok := predicates[d.Op]; ok {
		if lt != rt {
			return nil, ir.Void, errorf(diag.SemaTypeMismatch, span,
				"cannot compare %s with %s", typeName(lt), typeName(rt))
		}
		if lt == ir.I1 && pred != ir.EQ && pred != ir.NE {
			return nil, ir.Void, errorf(diag.SemaTypeMismatch, span, "operator '%s' is not defined for bool", d.Op)
		}
		return g.ir.BuildCompare(pred, l, r), ir.I1, nil
	}
	if lt != rt || !isNumeric(lt) {
		return nil, ir.Void, errorf(diag.SemaTypeMismatch, span,
			"operator '%s' expects matching integer operands, found %s and %s", d.Op, typeName(lt), typeName(rt))
	}
	return g.ir.BuildBinary(arithOps[d.Op], l, r), lt, nil
}

func (g *generator) lowerCall(span source.Span, d *ast.ExprCallData) (ir.Value, ir.Type, error) {
	info, ok := g.funcs[d.Name]
	if !ok {
		e := fromSymbols(&symbols.UnboundNameError{Name: d.Name}, d.NameSpan)
		e.Msg = fmt.Sprintf("unknown function '%s'", d.Name)
		return nil, ir.Void, e
	}
	if len(d.Args) != len(info.params) {
		e := errorf(diag.SemaArityMismatch, span,
			"function '%s' takes %d argument(s), %d given", d.Name, len(info.params), len(d.Args))
		e.Notes = []diag.Note{{Span: info.span, Msg: "declared here"}}
		return nil, ir.Void, e
	}
	args := make([]ir.Value, len(d.Args))
	for i, arg := range d.Args {
		v, err := g.lowerTyped(arg, info.params[i], fmt.Sprintf("argument %d of '%s'", i+1, d.Name))
		if err != nil {
			return nil, ir.Void, err
		}
		args[i] = v
	}
	return g.ir.BuildCall(info.fn, args), info.result, nil
}

func numericHint(hint ir.Type) ir.Type {
	if hint == ir.I64 {
		return ir.I64
	}
	return ir.I32
}

// operandHint picks the literal type for a binary operation from whichever
// operand has a known type, so `1 + x` and `x + 1` agree.
func (g *generator) operandHint(l, r ast.ExprID, fallback ir.Type) ir.Type {
	if t, ok := g.staticType(l); ok {
		return t
	}
	if t, ok := g.staticType(r); ok {
		return t
	}
	return fallback
}

// staticType is the type of id when it does not depend on a hint.
// It emits nothing.
func (g *generator) staticType(id ast.ExprID) (ir.Type, bool) {
	expr := g.b.Exprs.Get(id)
	if expr == nil {
		return ir.Void, false
	}
	switch expr.Kind {
	case ast.ExprBoolLit:
		return ir.I1, true
	case ast.ExprVar:
		data, _ := g.b.Exprs.Var(id)
		b, ok := g.env.Lookup(data.Name)
		return b.Type, ok
	case ast.ExprCall:
		data, _ := g.b.Exprs.Call(id)
		info, ok := g.funcs[data.Name]
		if !ok || info.result == ir.Void {
			return ir.Void, false
		}
		return info.result, true
	case ast.ExprUnary:
		data, _ := g.b.Exprs.Unary(id)
		if data.Op == ast.UnaryNot {
			return ir.I1, true
		}
		return g.staticType(data.Operand)
	case ast.ExprBinary:
		data, _ := g.b.Exprs.Binary(id)
		if !data.Op.IsArithmetic() {
			return ir.I1, true
		}
		if t, ok := g.staticType(data.Left); ok {
			return t, true
		}
		return g.staticType(data.Right)
	default:
		return ir.Void, false
	}
}
