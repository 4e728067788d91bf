package diagfmt

import (
	"strings"

	"aic/internal/ast"
)

// FormatExpr renders an expression as an S-expression, e.g. "(+ 2 (* 3 4))".
// Unary minus prints as "(- x)", calls as "(call f a b)".
func FormatExpr(b *ast.Builder, id ast.ExprID) string {
	var sb strings.Builder
	writeExpr(&sb, b, id)
	return sb.String()
}

func writeExpr(sb *strings.Builder, b *ast.Builder, id ast.ExprID) {
	expr := b.Exprs.Get(id)
	if expr == nil {
		sb.WriteString("<nil>")
		return
	}
	switch expr.Kind {
	case ast.ExprIntLit:
		lit, _ := b.Exprs.IntLit(id)
		sb.WriteString(lit.Text)
	case ast.ExprBoolLit:
		lit, _ := b.Exprs.BoolLit(id)
		if lit.Value {
			sb.WriteString("true")
		} else {
			sb.WriteString("false")
		}
	case ast.ExprVar:
		v, _ := b.Exprs.Var(id)
		sb.WriteString(v.Name)
	case ast.ExprBinary:
		bin, _ := b.Exprs.Binary(id)
		sb.WriteString("(" + bin.Op.String() + " ")
		writeExpr(sb, b, bin.Left)
		sb.WriteByte(' ')
		writeExpr(sb, b, bin.Right)
		sb.WriteByte(')')
	case ast.ExprUnary:
		un, _ := b.Exprs.Unary(id)
		sb.WriteString("(" + un.Op.String() + " ")
		writeExpr(sb, b, un.Operand)
		sb.WriteByte(')')
	case ast.ExprCall:
		call, _ := b.Exprs.Call(id)
		sb.WriteString("(call " + call.Name)
		for _, arg := range call.Args {
			sb.WriteByte(' ')
			writeExpr(sb, b, arg)
		}
		sb.WriteByte(')')
	}
}

// FormatStmt renders a statement in the same S-expression style:
//
//	(let a i32 10) (var b _ 20) (= b 5) (return 1) (expr e) (tail e)
//	(if c (then ...) (else ...)) (fn f ((x i32)) i32 ...)
func FormatStmt(b *ast.Builder, id ast.StmtID) string {
	var sb strings.Builder
	writeStmt(&sb, b, id)
	return sb.String()
}

// FormatProgramSExpr renders all top-level statements separated by spaces.
func FormatProgramSExpr(b *ast.Builder, prog ast.ProgramID) string {
	p := b.Programs.Get(prog)
	if p == nil {
		return ""
	}
	var sb strings.Builder
	writeStmtList(&sb, b, p.Stmts)
	return sb.String()
}

func writeStmtList(sb *strings.Builder, b *ast.Builder, ids []ast.StmtID) {
	for i, id := range ids {
		if i > 0 {
			sb.WriteByte(' ')
		}
		writeStmt(sb, b, id)
	}
}

func typeName(t ast.TypeRef) string {
	if !t.IsSet() {
		return "_"
	}
	return t.Kind.String()
}

func writeStmt(sb *strings.Builder, b *ast.Builder, id ast.StmtID) {
	st := b.Stmts.Get(id)
	if st == nil {
		sb.WriteString("<nil>")
		return
	}
	switch st.Kind {
	case ast.StmtFnDecl:
		fn, _ := b.Stmts.FnDecl(id)
		sb.WriteString("(fn " + fn.Name + " (")
		for i, p := range fn.Params {
			if i > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString("(" + p.Name + " " + typeName(p.Type) + ")")
		}
		sb.WriteString(") " + typeName(fn.Result))
		if len(fn.Body) > 0 {
			sb.WriteByte(' ')
			writeStmtList(sb, b, fn.Body)
		}
		sb.WriteByte(')')
	case ast.StmtLet, ast.StmtVar:
		bind, _ := b.Stmts.Binding(id)
		kw := "let"
		if bind.Mutable {
			kw = "var"
		}
		sb.WriteString("(" + kw + " " + bind.Name + " " + typeName(bind.Type))
		if bind.Value.IsValid() {
			sb.WriteByte(' ')
			writeExpr(sb, b, bind.Value)
		}
		sb.WriteByte(')')
	case ast.StmtAssign:
		as, _ := b.Stmts.Assign(id)
		sb.WriteString("(= " + as.Name + " ")
		writeExpr(sb, b, as.Value)
		sb.WriteByte(')')
	case ast.StmtIf:
		ifs, _ := b.Stmts.If(id)
		sb.WriteString("(if ")
		writeExpr(sb, b, ifs.Cond)
		sb.WriteString(" (then")
		for _, s := range ifs.Then {
			sb.WriteByte(' ')
			writeStmt(sb, b, s)
		}
		sb.WriteByte(')')
		if ifs.HasElse {
			sb.WriteString(" (else")
			for _, s := range ifs.Else {
				sb.WriteByte(' ')
				writeStmt(sb, b, s)
			}
			sb.WriteByte(')')
		}
		sb.WriteByte(')')
	case ast.StmtReturn:
		ret, _ := b.Stmts.Return(id)
		sb.WriteString("(return")
		if ret.Value.IsValid() {
			sb.WriteByte(' ')
			writeExpr(sb, b, ret.Value)
		}
		sb.WriteByte(')')
	case ast.StmtExpr, ast.StmtTail:
		es, _ := b.Stmts.ExprStmt(id)
		if st.Kind == ast.StmtTail {
			sb.WriteString("(tail ")
		} else {
			sb.WriteString("(expr ")
		}
		writeExpr(sb, b, es.Expr)
		sb.WriteByte(')')
	}
}
