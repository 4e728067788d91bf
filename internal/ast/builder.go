package ast

type Hints struct{ Programs, Stmts, Exprs uint }

// Builder owns every arena of one parse session.
type Builder struct {
	Programs *Programs
	Stmts    *Stmts
	Exprs    *Exprs
}

func NewBuilder(hints Hints) *Builder {
	if hints.Programs == 0 {
		hints.Programs = 1
	}
	if hints.Stmts == 0 {
		hints.Stmts = 1 << 7
	}
	if hints.Exprs == 0 {
		hints.Exprs = 1 << 8
	}
	return &Builder{
		Programs: NewPrograms(hints.Programs),
		Stmts:    NewStmts(hints.Stmts),
		Exprs:    NewExprs(hints.Exprs),
	}
}

// IsTail reports whether id is a tail expression statement.
func (b *Builder) IsTail(id StmtID) bool {
	st := b.Stmts.Get(id)
	return st != nil && st.Kind == StmtTail
}
