package parser

import (
	"slices"

	"aic/internal/diag"
	"aic/internal/source"
	"aic/internal/token"
)

// peek returns the next significant token. Error tokens were already
// reported by the lexer; they are skipped here but fail the parse.
func (p *Parser) peek() token.Token {
	for {
		tok := p.lx.Peek()
		if tok.Kind != token.Invalid {
			return tok
		}
		p.lx.Next()
		p.invalid++
	}
}

func (p *Parser) at(k token.Kind) bool {
	return p.peek().Kind == k
}

func (p *Parser) atOr(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.peek().Kind)
}

// advance — съедает следующий токен и обновляет lastSpan
func (p *Parser) advance() token.Token {
	p.peek()
	tok := p.lx.Next()
	if tok.Kind != token.EOF {
		p.lastSpan = tok.Span
	}
	return tok
}

// diagnosticSpan points at the next token, or just past the last one on EOF.
func (p *Parser) diagnosticSpan() source.Span {
	peek := p.peek()
	if peek.Kind == token.EOF && p.lastSpan.End > 0 {
		return source.Span{File: p.lastSpan.File, Start: p.lastSpan.End, End: p.lastSpan.End}
	}
	return peek.Span
}

// expect — ожидаем конкретный токен; если его нет, репортим.
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	sp := p.diagnosticSpan()
	p.report(code, sp, msg, nil)
	return token.Token{Kind: token.Invalid, Span: sp}, false
}

func (p *Parser) expectIdent(what string) (token.Token, bool) {
	return p.expect(token.Ident, diag.SynExpectIdentifier, "expected "+what+", got "+describe(p.peek()))
}

// err репортует ошибку на текущем токене
func (p *Parser) err(code diag.Code, msg string) {
	p.report(code, p.diagnosticSpan(), msg, nil)
}

func (p *Parser) report(code diag.Code, sp source.Span, msg string, notes []diag.Note) {
	p.opts.CurrentErrors++
	if p.opts.Reporter == nil {
		return
	}
	if p.opts.MaxErrors > 0 && p.opts.CurrentErrors > p.opts.MaxErrors {
		return
	}
	p.opts.Reporter.Report(code, diag.SevError, sp, msg, notes)
}

// resyncStatement skips tokens until a point where a new statement can start:
// after ';', before a statement keyword, before the closing token.
func (p *Parser) resyncStatement(closing token.Kind) {
	for {
		tok := p.peek()
		switch {
		case tok.Kind == token.EOF, tok.Kind == closing, tok.IsStmtStart():
			return
		case tok.Kind == token.Semicolon:
			p.advance()
			return
		case tok.Kind == token.RBrace:
			// лишняя '}' на верхнем уровне
			p.advance()
			return
		}
		p.advance()
	}
}

func describe(tok token.Token) string {
	switch tok.Kind {
	case token.EOF:
		return "end of file"
	case token.Ident:
		return "identifier '" + tok.Text + "'"
	case token.IntLit:
		return "integer '" + tok.Text + "'"
	default:
		return "'" + tok.Kind.String() + "'"
	}
}
