package ast

import (
	"aic/internal/source"
)

type ExprKind uint8

const (
	ExprIntLit ExprKind = iota
	ExprBoolLit
	ExprBinary
	ExprUnary
	ExprCall
	ExprVar
)

func (k ExprKind) String() string {
	switch k {
	case ExprIntLit:
		return "IntLit"
	case ExprBoolLit:
		return "BoolLit"
	case ExprBinary:
		return "Binary"
	case ExprUnary:
		return "Unary"
	case ExprCall:
		return "Call"
	case ExprVar:
		return "Var"
	default:
		return "Expr(?)"
	}
}

type Expr struct {
	Kind    ExprKind
	Span    source.Span
	Payload PayloadID
}

type BinaryOp uint8

const (
	BinAdd BinaryOp = iota
	BinSub
	BinMul
	BinDiv
	BinEq
	BinNotEq
	BinLess
	BinLessEq
	BinGreater
	BinGreaterEq
	BinAnd
	BinOr
)

var binaryOpText = [...]string{
	BinAdd:       "+",
	BinSub:       "-",
	BinMul:       "*",
	BinDiv:       "/",
	BinEq:        "==",
	BinNotEq:     "!=",
	BinLess:      "<",
	BinLessEq:    "<=",
	BinGreater:   ">",
	BinGreaterEq: ">=",
	BinAnd:       "&&",
	BinOr:        "||",
}

func (op BinaryOp) String() string {
	if int(op) < len(binaryOpText) {
		return binaryOpText[op]
	}
	return "?"
}

// IsArithmetic reports + - * /.
func (op BinaryOp) IsArithmetic() bool {
	return op <= BinDiv
}

// IsComparison reports == != < <= > >=.
func (op BinaryOp) IsComparison() bool {
	return op >= BinEq && op <= BinGreaterEq
}

func (op BinaryOp) IsLogical() bool {
	return op == BinAnd || op == BinOr
}

type UnaryOp uint8

const (
	UnaryNeg UnaryOp = iota
	UnaryNot
)

func (op UnaryOp) String() string {
	if op == UnaryNot {
		return "!"
	}
	return "-"
}

// ExprIntLitData keeps the literal text; it is converted when the target type is known.
type ExprIntLitData struct {
	Text string
}

type ExprBoolLitData struct {
	Value bool
}

type ExprBinaryData struct {
	Op    BinaryOp
	Left  ExprID
	Right ExprID
}

type ExprUnaryData struct {
	Op      UnaryOp
	Operand ExprID
}

type ExprCallData struct {
	Name     string
	NameSpan source.Span
	Args     []ExprID
}

type ExprVarData struct {
	Name string
}
