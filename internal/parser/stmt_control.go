package parser

import (
	"aic/internal/ast"
	"aic/internal/token"
)

// if cond { ... } else if cond { ... } else { ... }
// "else if" is stored as an else branch holding a single nested if.
func (p *Parser) parseIf() (ast.StmtID, bool) {
	kw := p.advance()
	cond, ok := p.parseExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	then, ok := p.parseBlock()
	if !ok {
		return ast.NoStmtID, false
	}
	span := kw.Span.Cover(p.lastSpan)

	var els []ast.StmtID
	hasElse := false
	if p.at(token.KwElse) {
		p.advance()
		hasElse = true
		if p.at(token.KwIf) {
			nested, ok := p.parseIf()
			if !ok {
				return ast.NoStmtID, false
			}
			els = []ast.StmtID{nested}
		} else {
			if els, ok = p.parseBlock(); !ok {
				return ast.NoStmtID, false
			}
		}
		span = span.Cover(p.lastSpan)
	}
	return p.arenas.Stmts.NewIf(span, cond, then, els, hasElse), true
}
