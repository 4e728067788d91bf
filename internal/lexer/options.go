package lexer

import (
	"aic/internal/diag"
	"aic/internal/source"
)

type Options struct {
	// Reporter receives lexical errors; nil means they are dropped and lexing continues.
	Reporter diag.Reporter
	// KeepTrivia attaches whitespace and comments to Token.Leading.
	KeepTrivia bool
}

func (lx *Lexer) errLex(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		diag.ReportError(lx.opts.Reporter, code, sp, msg).Emit()
	}
}
