package parser

import (
	"aic/internal/ast"
	"aic/internal/diag"
	"aic/internal/token"
)

// parseStmt parses one statement of a block closed by closing.
// ok with an invalid ID means the tokens were consumed but nothing is kept.
func (p *Parser) parseStmt(closing token.Kind, top bool) (ast.StmtID, bool) {
	switch p.peek().Kind {
	case token.KwFn:
		if top {
			return p.parseFnDecl()
		}
		fnTok := p.peek()
		p.report(diag.SynFnNotAllowed, fnTok.Span, "functions can only be declared at top level", nil)
		// разбираем целиком, чтобы не сыпать каскадными ошибками
		p.parseFnDecl()
		return ast.NoStmtID, true
	case token.KwLet:
		return p.parseBinding(false)
	case token.KwVar:
		return p.parseBinding(true)
	case token.KwReturn:
		return p.parseReturn()
	case token.KwIf:
		return p.parseIf()
	default:
		return p.parseExprOrAssign(closing)
	}
}

// parseBlock parses '{' stmt* tail? '}'.
func (p *Parser) parseBlock() ([]ast.StmtID, bool) {
	open, ok := p.expect(token.LBrace, diag.SynExpectBlock, "expected '{', got "+describe(p.peek()))
	if !ok {
		return nil, false
	}
	stmts := p.parseStmtList(token.RBrace, false)
	if !p.at(token.RBrace) {
		if !p.opts.Enough() {
			p.report(diag.SynUnclosedBrace, p.diagnosticSpan(), "expected '}', got "+describe(p.peek()),
				[]diag.Note{{Span: open.Span, Msg: "block opened here"}})
		}
		return stmts, false
	}
	p.advance()
	return stmts, true
}

// let x: T = e;  var x: T = e;  var x: T;
func (p *Parser) parseBinding(mutable bool) (ast.StmtID, bool) {
	kw := p.advance()
	name, ok := p.expectIdent("variable name")
	if !ok {
		return ast.NoStmtID, false
	}

	var typ ast.TypeRef
	if p.at(token.Colon) {
		p.advance()
		if typ, ok = p.parseType(); !ok {
			return ast.NoStmtID, false
		}
	}

	value := ast.NoExprID
	switch {
	case p.at(token.Assign):
		p.advance()
		if value, ok = p.parseExpr(); !ok {
			return ast.NoStmtID, false
		}
	case !mutable:
		p.report(diag.SynLetNeedsInit, name.Span, "let binding '"+name.Text+"' needs an initializer", nil)
	case !typ.IsSet():
		p.report(diag.SynVarNeedsType, name.Span, "var '"+name.Text+"' without initializer needs a type annotation", nil)
	}

	semi, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after declaration, got "+describe(p.peek()))
	if !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewBinding(kw.Span.Cover(semi.Span), mutable, name.Text, name.Span, typ, value), true
}

// return e?;
func (p *Parser) parseReturn() (ast.StmtID, bool) {
	kw := p.advance()
	value := ast.NoExprID
	if !p.atOr(token.Semicolon, token.RBrace, token.EOF) {
		var ok bool
		if value, ok = p.parseExpr(); !ok {
			return ast.NoStmtID, false
		}
	}
	semi, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after return, got "+describe(p.peek()))
	if !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewReturn(kw.Span.Cover(semi.Span), value), true
}

// parseExprOrAssign handles "x = e;", "e;" and the block tail "e".
func (p *Parser) parseExprOrAssign(closing token.Kind) (ast.StmtID, bool) {
	expr, ok := p.parseExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	exprSpan := p.arenas.Exprs.Get(expr).Span

	if p.at(token.Assign) {
		p.advance()
		target, isVar := p.arenas.Exprs.Var(expr)
		if !isVar {
			p.report(diag.SynBadAssignTarget, exprSpan, "only a variable can be assigned to", nil)
		}
		value, ok := p.parseExpr()
		if !ok {
			return ast.NoStmtID, false
		}
		semi, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "expected ';' after assignment, got "+describe(p.peek()))
		if !ok {
			return ast.NoStmtID, false
		}
		if !isVar {
			return ast.NoStmtID, true
		}
		return p.arenas.Stmts.NewAssign(exprSpan.Cover(semi.Span), target.Name, exprSpan, value), true
	}

	switch {
	case p.at(token.Semicolon):
		semi := p.advance()
		return p.arenas.Stmts.NewExprStmt(exprSpan.Cover(semi.Span), expr), true
	case p.at(closing), p.at(token.EOF):
		return p.arenas.Stmts.NewTail(exprSpan, expr), true
	default:
		p.err(diag.SynExpectSemicolon, "expected ';' after expression, got "+describe(p.peek()))
		return ast.NoStmtID, false
	}
}
