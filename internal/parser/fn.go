package parser

import (
	"aic/internal/ast"
	"aic/internal/diag"
	"aic/internal/token"
)

// fn name(a: T, b: T) -> R { body }
func (p *Parser) parseFnDecl() (ast.StmtID, bool) {
	fnTok := p.advance()
	name, ok := p.expectIdent("function name")
	if !ok {
		return ast.NoStmtID, false
	}
	if _, ok = p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after function name, got "+describe(p.peek())); !ok {
		return ast.NoStmtID, false
	}
	params, ok := p.parseFnParams()
	if !ok {
		return ast.NoStmtID, false
	}

	if !p.at(token.Arrow) {
		p.err(diag.SynExpectArrow, "function '"+name.Text+"' needs an explicit return type ('-> type'), got "+describe(p.peek()))
		return ast.NoStmtID, false
	}
	p.advance()
	result, ok := p.parseType()
	if !ok {
		return ast.NoStmtID, false
	}

	body, ok := p.parseBlock()
	if !ok {
		return ast.NoStmtID, false
	}
	span := fnTok.Span.Cover(p.lastSpan)
	return p.arenas.Stmts.NewFnDecl(span, name.Text, name.Span, params, result, body), true
}

// parseFnParams parses the list after '(' up to and including ')'.
// A trailing comma is accepted.
func (p *Parser) parseFnParams() ([]ast.FnParam, bool) {
	var params []ast.FnParam
	for !p.at(token.RParen) {
		name, ok := p.expectIdent("parameter name")
		if !ok {
			return nil, false
		}
		if _, ok = p.expect(token.Colon, diag.SynExpectColon, "parameter '"+name.Text+"' needs a type: expected ':', got "+describe(p.peek())); !ok {
			return nil, false
		}
		typ, ok := p.parseType()
		if !ok {
			return nil, false
		}
		params = append(params, ast.FnParam{Name: name.Text, Span: name.Span.Cover(typ.Span), Type: typ})
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ',' or ')' in parameter list, got "+describe(p.peek())); !ok {
		return nil, false
	}
	return params, true
}
