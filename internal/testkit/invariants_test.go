package testkit_test

import (
	"strings"
	"testing"

	"aic/internal/ast"
	"aic/internal/parser"
	"aic/internal/source"
	"aic/internal/testkit"
)

func TestCheckSpanInvariantsOnParsedPrograms(t *testing.T) {
	for _, src := range []string{
		"",
		"1 + 2 * 3",
		"let a = 10;\nvar b: i64 = 2;\nb = 3;\na",
		"fn f(x: i32, y: i32) -> i32 {\n    if x < y { return x; } else { y }\n}\nf(1, 2)",
		"// comment\n-(1)",
	} {
		fs, b, res, bag := parser.ParseText("t.aic", []byte(src), 0)
		if bag.HasErrors() {
			t.Fatalf("%q: unexpected diagnostics", src)
		}
		file, _ := fs.GetByPath("t.aic")
		if err := testkit.CheckSpanInvariants(b, res.Program, file); err != nil {
			t.Fatalf("%q: %v", src, err)
		}
	}
}

func TestCheckSpanInvariantsDetectsBrokenSpans(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("t.aic", []byte("1 + 2;")))
	sp := func(start, end uint32) source.Span { return source.Span{File: file.ID, Start: start, End: end} }

	tests := []struct {
		name  string
		build func(b *ast.Builder) ast.ProgramID
		want  string
	}{
		{"child outside parent", func(b *ast.Builder) ast.ProgramID {
			lit := b.Exprs.NewIntLit(sp(0, 6), "1")
			return b.Programs.New(sp(0, 6), []ast.StmtID{b.Stmts.NewExprStmt(sp(0, 2), lit)})
		}, "outside parent"},
		{"empty span", func(b *ast.Builder) ast.ProgramID {
			lit := b.Exprs.NewIntLit(sp(1, 1), "1")
			return b.Programs.New(sp(0, 6), []ast.StmtID{b.Stmts.NewExprStmt(sp(0, 6), lit)})
		}, "empty"},
		{"overlapping statements", func(b *ast.Builder) ast.ProgramID {
			one := b.Stmts.NewExprStmt(sp(0, 4), b.Exprs.NewIntLit(sp(0, 1), "1"))
			two := b.Stmts.NewExprStmt(sp(2, 6), b.Exprs.NewIntLit(sp(4, 5), "2"))
			return b.Programs.New(sp(0, 6), []ast.StmtID{one, two})
		}, "overlaps"},
		{"program past the end", func(b *ast.Builder) ast.ProgramID {
			return b.Programs.New(sp(0, 60), nil)
		}, "outside content"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := ast.NewBuilder(ast.Hints{})
			err := testkit.CheckSpanInvariants(b, tt.build(b), file)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error = %v, want %q", err, tt.want)
			}
		})
	}
}
