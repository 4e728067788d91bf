package parser

import (
	"aic/internal/ast"
	"aic/internal/diag"
	"aic/internal/source"
	"aic/internal/token"
)

func (p *Parser) parseExpr() (ast.ExprID, bool) {
	return p.parseBinaryExpr(1)
}

// parseBinaryExpr — Pratt-цикл; operators below minPrec end the loop.
func (p *Parser) parseBinaryExpr(minPrec int) (ast.ExprID, bool) {
	left, ok := p.parseUnaryExpr()
	if !ok {
		return ast.NoExprID, false
	}
	for {
		op, prec := binaryOp(p.peek().Kind)
		if prec < minPrec {
			return left, true
		}
		p.advance()
		// левая ассоциативность: правая часть связывает строго сильнее
		right, ok := p.parseBinaryExpr(prec + 1)
		if !ok {
			return ast.NoExprID, false
		}
		span := p.arenas.Exprs.Get(left).Span.Cover(p.arenas.Exprs.Get(right).Span)
		left = p.arenas.Exprs.NewBinary(span, op, left, right)
	}
}

// parseUnaryExpr collects prefix operators and applies them right to left.
func (p *Parser) parseUnaryExpr() (ast.ExprID, bool) {
	type prefixOp struct {
		op   ast.UnaryOp
		span source.Span
	}
	var prefixes []prefixOp
	for {
		op, ok := unaryOp(p.peek().Kind)
		if !ok {
			break
		}
		prefixes = append(prefixes, prefixOp{op: op, span: p.advance().Span})
	}

	expr, ok := p.parsePrimaryExpr()
	if !ok {
		return ast.NoExprID, false
	}
	for i := len(prefixes) - 1; i >= 0; i-- {
		span := prefixes[i].span.Cover(p.arenas.Exprs.Get(expr).Span)
		expr = p.arenas.Exprs.NewUnary(span, prefixes[i].op, expr)
	}
	return expr, true
}

func (p *Parser) parsePrimaryExpr() (ast.ExprID, bool) {
	tok := p.peek()
	switch tok.Kind {
	case token.IntLit:
		p.advance()
		return p.arenas.Exprs.NewIntLit(tok.Span, tok.Text), true

	case token.KwTrue, token.KwFalse:
		p.advance()
		return p.arenas.Exprs.NewBoolLit(tok.Span, tok.Kind == token.KwTrue), true

	case token.Ident:
		p.advance()
		if p.at(token.LParen) {
			return p.parseCallExpr(tok)
		}
		return p.arenas.Exprs.NewVar(tok.Span, tok.Text), true

	case token.LParen:
		return p.parseParenExpr()

	default:
		p.err(diag.SynExpectExpression, "expected expression, got "+describe(tok))
		return ast.NoExprID, false
	}
}

func (p *Parser) parseParenExpr() (ast.ExprID, bool) {
	open := p.advance()
	inner, ok := p.parseExpr()
	if !ok {
		return ast.NoExprID, false
	}
	if !p.at(token.RParen) {
		p.report(diag.SynUnclosedParen, p.diagnosticSpan(), "expected ')', got "+describe(p.peek()),
			[]diag.Note{{Span: open.Span, Msg: "'(' opened here"}})
		return ast.NoExprID, false
	}
	p.advance()
	if p.at(token.LParen) {
		p.err(diag.SynCallTarget, "only a function name can be called")
		return ast.NoExprID, false
	}
	return inner, true
}

// parseCallExpr parses "(args)" after the callee name.
func (p *Parser) parseCallExpr(name token.Token) (ast.ExprID, bool) {
	p.advance() // (
	var args []ast.ExprID
	for !p.at(token.RParen) {
		arg, ok := p.parseExpr()
		if !ok {
			return ast.NoExprID, false
		}
		args = append(args, arg)
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	closeTok, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ',' or ')' in argument list, got "+describe(p.peek()))
	if !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewCall(name.Span.Cover(closeTok.Span), name.Text, name.Span, args), true
}
