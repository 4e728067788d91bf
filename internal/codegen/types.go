package codegen

import (
	"aic/internal/ast"
	"aic/internal/ir"
)

// valueType maps a type usable for parameters and bindings.
func valueType(t ast.TypeRef) (ir.Type, bool) {
	switch t.Kind {
	case ast.TypeI32:
		return ir.I32, true
	case ast.TypeI64:
		return ir.I64, true
	case ast.TypeBool:
		return ir.I1, true
	default:
		return ir.Void, false
	}
}

func resultType(t ast.TypeRef) (ir.Type, bool) {
	if t.Kind == ast.TypeNone || t.Kind == ast.TypeVoid {
		return ir.Void, true
	}
	return valueType(t)
}

// typeName prints IR types the way they are spelled in source.
func typeName(t ir.Type) string {
	if t == ir.I1 {
		return "bool"
	}
	return t.String()
}

var arithOps = map[ast.BinaryOp]ir.BinaryOp{
	ast.BinAdd: ir.Add,
	ast.BinSub: ir.Sub,
	ast.BinMul: ir.Mul,
	ast.BinDiv: ir.SDiv,
}

var predicates = map[ast.BinaryOp]ir.Predicate{
	ast.BinEq:        ir.EQ,
	ast.BinNotEq:     ir.NE,
	ast.BinLess:      ir.SLT,
	ast.BinLessEq:    ir.SLE,
	ast.BinGreater:   ir.SGT,
	ast.BinGreaterEq: ir.SGE,
}

func isNumeric(t ir.Type) bool {
	return t == ir.I32 || t == ir.I64
}
