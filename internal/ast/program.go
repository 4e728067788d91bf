package ast

import "aic/internal/source"

// Program is the ordered list of top-level statements of one file.
type Program struct {
	Span  source.Span
	Stmts []StmtID
}

type Programs struct {
	Arena *Arena[Program]
}

func NewPrograms(capHint uint) *Programs {
	return &Programs{Arena: NewArena[Program](capHint)}
}

func (p *Programs) New(span source.Span, stmts []StmtID) ProgramID {
	return ProgramID(p.Arena.Allocate(Program{Span: span, Stmts: append([]StmtID(nil), stmts...)}))
}

func (p *Programs) Get(id ProgramID) *Program {
	return p.Arena.Get(uint32(id))
}
