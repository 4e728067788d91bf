package parser

import (
	"aic/internal/ast"
	"aic/internal/diag"
	"aic/internal/token"
)

// parseType reads a built-in type name.
func (p *Parser) parseType() (ast.TypeRef, bool) {
	tok := p.peek()
	if tok.Kind != token.Ident {
		p.err(diag.SynExpectType, "expected type, got "+describe(tok))
		return ast.TypeRef{}, false
	}
	p.advance()
	kind, ok := ast.LookupType(tok.Text)
	if !ok {
		p.report(diag.SynExpectType, tok.Span, "unknown type '"+tok.Text+"'", nil)
		return ast.TypeRef{}, false
	}
	return ast.TypeRef{Kind: kind, Span: tok.Span}, true
}
