package ast

import (
	"aic/internal/source"
)

type StmtKind uint8

const (
	StmtFnDecl StmtKind = iota
	StmtLet
	StmtVar
	StmtAssign
	StmtIf
	StmtReturn
	StmtExpr
	StmtTail
)

func (k StmtKind) String() string {
	switch k {
	case StmtFnDecl:
		return "FnDecl"
	case StmtLet:
		return "Let"
	case StmtVar:
		return "Var"
	case StmtAssign:
		return "Assign"
	case StmtIf:
		return "If"
	case StmtReturn:
		return "Return"
	case StmtExpr:
		return "ExprStmt"
	case StmtTail:
		return "Tail"
	default:
		return "Stmt(?)"
	}
}

type Stmt struct {
	Kind    StmtKind
	Span    source.Span
	Payload PayloadID
}

// FnParam is a function parameter; it belongs to its FnDecl.
type FnParam struct {
	Name string
	Span source.Span
	Type TypeRef
}

type FnDeclData struct {
	Name     string
	NameSpan source.Span
	Params   []FnParam
	Result   TypeRef
	Body     []StmtID
}

// BindingData is shared by let and var; Mutable tells them apart.
type BindingData struct {
	Name     string
	NameSpan source.Span
	Type     TypeRef // TypeNone when omitted
	Value    ExprID  // NoExprID when omitted (var only)
	Mutable  bool
}

type AssignData struct {
	Name     string
	NameSpan source.Span
	Value    ExprID
}

type IfData struct {
	Cond    ExprID
	Then    []StmtID
	Else    []StmtID
	HasElse bool
}

type ReturnData struct {
	Value ExprID // NoExprID for bare return
}

// ExprStmtData is used for both expression statements and tail expressions.
type ExprStmtData struct {
	Expr ExprID
}
