package ast

import (
	"aic/internal/source"
)

type Stmts struct {
	Arena    *Arena[Stmt]
	Fns      *Arena[FnDeclData]
	Bindings *Arena[BindingData]
	Assigns  *Arena[AssignData]
	Ifs      *Arena[IfData]
	Returns  *Arena[ReturnData]
	Exprs    *Arena[ExprStmtData]
}

func NewStmts(capHint uint) *Stmts {
	if capHint == 0 {
		capHint = 1 << 8
	}
	return &Stmts{
		Arena:    NewArena[Stmt](capHint),
		Fns:      NewArena[FnDeclData](capHint / 8),
		Bindings: NewArena[BindingData](capHint / 2),
		Assigns:  NewArena[AssignData](capHint / 4),
		Ifs:      NewArena[IfData](capHint / 4),
		Returns:  NewArena[ReturnData](capHint / 4),
		Exprs:    NewArena[ExprStmtData](capHint / 2),
	}
}

func (s *Stmts) new(kind StmtKind, span source.Span, payload uint32) StmtID {
	return StmtID(s.Arena.Allocate(Stmt{Kind: kind, Span: span, Payload: PayloadID(payload)}))
}

func (s *Stmts) Get(id StmtID) *Stmt {
	return s.Arena.Get(uint32(id))
}

func (s *Stmts) payload(id StmtID, kinds ...StmtKind) (uint32, bool) {
	st := s.Get(id)
	if st == nil {
		return 0, false
	}
	for _, k := range kinds {
		if st.Kind == k {
			return uint32(st.Payload), true
		}
	}
	return 0, false
}

// NewFnDecl creates a function declaration; params and body are copied.
func (s *Stmts) NewFnDecl(span source.Span, name string, nameSpan source.Span, params []FnParam, result TypeRef, body []StmtID) StmtID {
	payload := s.Fns.Allocate(FnDeclData{
		Name:     name,
		NameSpan: nameSpan,
		Params:   append([]FnParam(nil), params...),
		Result:   result,
		Body:     append([]StmtID(nil), body...),
	})
	return s.new(StmtFnDecl, span, payload)
}

func (s *Stmts) FnDecl(id StmtID) (*FnDeclData, bool) {
	p, ok := s.payload(id, StmtFnDecl)
	if !ok {
		return nil, false
	}
	return s.Fns.Get(p), true
}

// NewBinding creates a let (mutable=false) or var (mutable=true) declaration.
func (s *Stmts) NewBinding(span source.Span, mutable bool, name string, nameSpan source.Span, typ TypeRef, value ExprID) StmtID {
	kind := StmtLet
	if mutable {
		kind = StmtVar
	}
	payload := s.Bindings.Allocate(BindingData{
		Name:     name,
		NameSpan: nameSpan,
		Type:     typ,
		Value:    value,
		Mutable:  mutable,
	})
	return s.new(kind, span, payload)
}

// Binding returns the payload of a let or var statement.
func (s *Stmts) Binding(id StmtID) (*BindingData, bool) {
	p, ok := s.payload(id, StmtLet, StmtVar)
	if !ok {
		return nil, false
	}
	return s.Bindings.Get(p), true
}

func (s *Stmts) NewAssign(span source.Span, name string, nameSpan source.Span, value ExprID) StmtID {
	return s.new(StmtAssign, span, s.Assigns.Allocate(AssignData{Name: name, NameSpan: nameSpan, Value: value}))
}

func (s *Stmts) Assign(id StmtID) (*AssignData, bool) {
	p, ok := s.payload(id, StmtAssign)
	if !ok {
		return nil, false
	}
	return s.Assigns.Get(p), true
}

func (s *Stmts) NewIf(span source.Span, cond ExprID, then, els []StmtID, hasElse bool) StmtID {
	payload := s.Ifs.Allocate(IfData{
		Cond:    cond,
		Then:    append([]StmtID(nil), then...),
		Else:    append([]StmtID(nil), els...),
		HasElse: hasElse,
	})
	return s.new(StmtIf, span, payload)
}

func (s *Stmts) If(id StmtID) (*IfData, bool) {
	p, ok := s.payload(id, StmtIf)
	if !ok {
		return nil, false
	}
	return s.Ifs.Get(p), true
}

func (s *Stmts) NewReturn(span source.Span, value ExprID) StmtID {
	return s.new(StmtReturn, span, s.Returns.Allocate(ReturnData{Value: value}))
}

func (s *Stmts) Return(id StmtID) (*ReturnData, bool) {
	p, ok := s.payload(id, StmtReturn)
	if !ok {
		return nil, false
	}
	return s.Returns.Get(p), true
}

func (s *Stmts) NewExprStmt(span source.Span, expr ExprID) StmtID {
	return s.new(StmtExpr, span, s.Exprs.Allocate(ExprStmtData{Expr: expr}))
}

// NewTail creates the terminator-free last expression of a block.
func (s *Stmts) NewTail(span source.Span, expr ExprID) StmtID {
	return s.new(StmtTail, span, s.Exprs.Allocate(ExprStmtData{Expr: expr}))
}

// ExprStmt returns the payload of an expression statement or a tail.
func (s *Stmts) ExprStmt(id StmtID) (*ExprStmtData, bool) {
	p, ok := s.payload(id, StmtExpr, StmtTail)
	if !ok {
		return nil, false
	}
	return s.Exprs.Get(p), true
}
