package ast_test

import (
	"testing"

	"aic/internal/ast"
	"aic/internal/source"
)

func span(a, b uint32) source.Span { return source.Span{Start: a, End: b} }

func TestArenaOneBased(t *testing.T) {
	a := ast.NewArena[int](0)
	if a.Get(0) != nil || a.Get(1) != nil {
		t.Fatalf("empty arena must return nil")
	}
	id := a.Allocate(7)
	if id != 1 || *a.Get(id) != 7 || a.Len() != 1 {
		t.Fatalf("Allocate/Get mismatch: id=%d", id)
	}
}

func TestAccessorsCheckKind(t *testing.T) {
	b := ast.NewBuilder(ast.Hints{})
	lit := b.Exprs.NewIntLit(span(0, 1), "1")
	v := b.Exprs.NewVar(span(4, 5), "x")
	bin := b.Exprs.NewBinary(span(0, 5), ast.BinAdd, lit, v)

	if _, ok := b.Exprs.Binary(lit); ok {
		t.Errorf("Binary(lit) must fail")
	}
	data, ok := b.Exprs.Binary(bin)
	if !ok || data.Left != lit || data.Right != v || data.Op != ast.BinAdd {
		t.Fatalf("Binary(bin) = %+v, %v", data, ok)
	}
	if d, ok := b.Exprs.IntLit(lit); !ok || d.Text != "1" {
		t.Errorf("IntLit = %+v", d)
	}

	tail := b.Stmts.NewTail(span(0, 5), bin)
	if !b.IsTail(tail) {
		t.Errorf("IsTail = false")
	}
	if d, ok := b.Stmts.ExprStmt(tail); !ok || d.Expr != bin {
		t.Errorf("ExprStmt(tail) = %+v", d)
	}

	let := b.Stmts.NewBinding(span(0, 10), false, "a", span(4, 5), ast.TypeRef{Kind: ast.TypeI32}, lit)
	vr := b.Stmts.NewBinding(span(0, 10), true, "b", span(4, 5), ast.TypeRef{}, ast.NoExprID)
	if b.Stmts.Get(let).Kind != ast.StmtLet || b.Stmts.Get(vr).Kind != ast.StmtVar {
		t.Fatalf("binding kinds mismatch")
	}
	if d, _ := b.Stmts.Binding(vr); !d.Mutable || d.Value.IsValid() || d.Type.IsSet() {
		t.Errorf("var payload = %+v", d)
	}
}

func TestNodesOwnTheirSlices(t *testing.T) {
	b := ast.NewBuilder(ast.Hints{})
	args := []ast.ExprID{b.Exprs.NewIntLit(span(0, 1), "1")}
	call := b.Exprs.NewCall(span(0, 5), "f", span(0, 1), args)
	args[0] = ast.NoExprID
	if d, _ := b.Exprs.Call(call); d.Args[0] == ast.NoExprID {
		t.Fatalf("call args alias the caller's slice")
	}
}

func TestEqualPrograms(t *testing.T) {
	build := func(op ast.BinaryOp, shift uint32) (*ast.Builder, ast.ProgramID) {
		b := ast.NewBuilder(ast.Hints{})
		l := b.Exprs.NewIntLit(span(shift, shift+1), "2")
		r := b.Exprs.NewIntLit(span(shift+4, shift+5), "3")
		tail := b.Stmts.NewTail(span(shift, shift+5), b.Exprs.NewBinary(span(shift, shift+5), op, l, r))
		return b, b.Programs.New(span(0, 10), []ast.StmtID{tail})
	}
	b1, p1 := build(ast.BinAdd, 0)
	b2, p2 := build(ast.BinAdd, 100)
	b3, p3 := build(ast.BinMul, 0)
	if !ast.EqualPrograms(b1, p1, b2, p2) {
		t.Errorf("spans must not affect equality")
	}
	if ast.EqualPrograms(b1, p1, b3, p3) {
		t.Errorf("different operators compare equal")
	}
}

func TestLookupType(t *testing.T) {
	for name, want := range map[string]ast.TypeKind{"i32": ast.TypeI32, "i64": ast.TypeI64, "void": ast.TypeVoid, "string": ast.TypeString, "bool": ast.TypeBool} {
		if got, ok := ast.LookupType(name); !ok || got != want {
			t.Errorf("LookupType(%q) = %v, %v", name, got, ok)
		}
		if want.String() != name {
			t.Errorf("%v.String() = %q", want, want.String())
		}
	}
	if _, ok := ast.LookupType("int"); ok {
		t.Errorf("int is not a type name")
	}
}
