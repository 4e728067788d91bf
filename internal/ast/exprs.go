package ast

import (
	"aic/internal/source"
)

// Exprs manages allocation of expressions and their per-kind payloads.
type Exprs struct {
	Arena    *Arena[Expr]
	IntLits  *Arena[ExprIntLitData]
	BoolLits *Arena[ExprBoolLitData]
	Binaries *Arena[ExprBinaryData]
	Unaries  *Arena[ExprUnaryData]
	Calls    *Arena[ExprCallData]
	Vars     *Arena[ExprVarData]
}

func NewExprs(capHint uint) *Exprs {
	if capHint == 0 {
		capHint = 1 << 8
	}
	return &Exprs{
		Arena:    NewArena[Expr](capHint),
		IntLits:  NewArena[ExprIntLitData](capHint / 2),
		BoolLits: NewArena[ExprBoolLitData](capHint / 8),
		Binaries: NewArena[ExprBinaryData](capHint / 2),
		Unaries:  NewArena[ExprUnaryData](capHint / 8),
		Calls:    NewArena[ExprCallData](capHint / 8),
		Vars:     NewArena[ExprVarData](capHint / 2),
	}
}

func (e *Exprs) new(kind ExprKind, span source.Span, payload uint32) ExprID {
	return ExprID(e.Arena.Allocate(Expr{Kind: kind, Span: span, Payload: PayloadID(payload)}))
}

func (e *Exprs) Get(id ExprID) *Expr {
	return e.Arena.Get(uint32(id))
}

func (e *Exprs) payload(id ExprID, kind ExprKind) (uint32, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != kind {
		return 0, false
	}
	return uint32(expr.Payload), true
}

func (e *Exprs) NewIntLit(span source.Span, text string) ExprID {
	return e.new(ExprIntLit, span, e.IntLits.Allocate(ExprIntLitData{Text: text}))
}

func (e *Exprs) IntLit(id ExprID) (*ExprIntLitData, bool) {
	p, ok := e.payload(id, ExprIntLit)
	if !ok {
		return nil, false
	}
	return e.IntLits.Get(p), true
}

func (e *Exprs) NewBoolLit(span source.Span, value bool) ExprID {
	return e.new(ExprBoolLit, span, e.BoolLits.Allocate(ExprBoolLitData{Value: value}))
}

func (e *Exprs) BoolLit(id ExprID) (*ExprBoolLitData, bool) {
	p, ok := e.payload(id, ExprBoolLit)
	if !ok {
		return nil, false
	}
	return e.BoolLits.Get(p), true
}

func (e *Exprs) NewBinary(span source.Span, op BinaryOp, left, right ExprID) ExprID {
	return e.new(ExprBinary, span, e.Binaries.Allocate(ExprBinaryData{Op: op, Left: left, Right: right}))
}

func (e *Exprs) Binary(id ExprID) (*ExprBinaryData, bool) {
	p, ok := e.payload(id, ExprBinary)
	if !ok {
		return nil, false
	}
	return e.Binaries.Get(p), true
}

func (e *Exprs) NewUnary(span source.Span, op UnaryOp, operand ExprID) ExprID {
	return e.new(ExprUnary, span, e.Unaries.Allocate(ExprUnaryData{Op: op, Operand: operand}))
}

func (e *Exprs) Unary(id ExprID) (*ExprUnaryData, bool) {
	p, ok := e.payload(id, ExprUnary)
	if !ok {
		return nil, false
	}
	return e.Unaries.Get(p), true
}

// NewCall creates a call; args are copied.
func (e *Exprs) NewCall(span source.Span, name string, nameSpan source.Span, args []ExprID) ExprID {
	payload := e.Calls.Allocate(ExprCallData{
		Name:     name,
		NameSpan: nameSpan,
		Args:     append([]ExprID(nil), args...),
	})
	return e.new(ExprCall, span, payload)
}

func (e *Exprs) Call(id ExprID) (*ExprCallData, bool) {
	p, ok := e.payload(id, ExprCall)
	if !ok {
		return nil, false
	}
	return e.Calls.Get(p), true
}

func (e *Exprs) NewVar(span source.Span, name string) ExprID {
	return e.new(ExprVar, span, e.Vars.Allocate(ExprVarData{Name: name}))
}

func (e *Exprs) Var(id ExprID) (*ExprVarData, bool) {
	p, ok := e.payload(id, ExprVar)
	if !ok {
		return nil, false
	}
	return e.Vars.Get(p), true
}
