package parser

import (
	"aic/internal/ast"
	"aic/internal/token"
)

// Таблица приоритетов бинарных операторов; больше — сильнее связывает.
// Все бинарные операторы левоассоциативны.
const (
	precLogicalOr      = 1 // ||
	precLogicalAnd     = 2 // &&
	precEquality       = 3 // == !=
	precComparison     = 4 // < <= > >=
	precAdditive       = 5 // + -
	precMultiplicative = 6 // * /
)

// binaryOp returns the operator and its precedence, or -1 for non-operators.
func binaryOp(kind token.Kind) (ast.BinaryOp, int) {
	switch kind {
	case token.OrOr:
		return ast.BinOr, precLogicalOr
	case token.AndAnd:
		return ast.BinAnd, precLogicalAnd
	case token.EqEq:
		return ast.BinEq, precEquality
	case token.BangEq:
		return ast.BinNotEq, precEquality
	case token.Lt:
		return ast.BinLess, precComparison
	case token.LtEq:
		return ast.BinLessEq, precComparison
	case token.Gt:
		return ast.BinGreater, precComparison
	case token.GtEq:
		return ast.BinGreaterEq, precComparison
	case token.Plus:
		return ast.BinAdd, precAdditive
	case token.Minus:
		return ast.BinSub, precAdditive
	case token.Star:
		return ast.BinMul, precMultiplicative
	case token.Slash:
		return ast.BinDiv, precMultiplicative
	default:
		return 0, -1
	}
}

func unaryOp(kind token.Kind) (ast.UnaryOp, bool) {
	switch kind {
	case token.Minus:
		return ast.UnaryNeg, true
	case token.Bang:
		return ast.UnaryNot, true
	default:
		return 0, false
	}
}
