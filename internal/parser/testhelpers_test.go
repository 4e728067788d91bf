package parser_test

import (
	"fmt"
	"strings"
	"testing"

	"aic/internal/ast"
	"aic/internal/diag"
	"aic/internal/diagfmt"
	"aic/internal/parser"
	"aic/internal/testkit"
)

func diagnosticsSummary(bag *diag.Bag) string {
	if bag == nil {
		return "<nil bag>"
	}
	diags := bag.Items()
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message)
	}
	return strings.Join(lines, "; ")
}

// mustParse parses src and fails the test on any diagnostic or broken span.
func mustParse(t *testing.T, src string) (*ast.Builder, ast.ProgramID) {
	t.Helper()
	fs, b, res, bag := parser.ParseText("test.aic", []byte(src), 0)
	if !res.OK() || bag.HasErrors() {
		t.Fatalf("unexpected diagnostics for %q: %s", src, diagnosticsSummary(bag))
	}
	file, ok := fs.GetByPath("test.aic")
	if !ok {
		t.Fatalf("test.aic is not in the file set")
	}
	if err := testkit.CheckSpanInvariants(b, res.Program, file); err != nil {
		t.Fatalf("span invariants for %q: %v", src, err)
	}
	return b, res.Program
}

// parseExprText parses "src;" and returns the expression as an S-expression.
func parseExprText(t *testing.T, src string) string {
	t.Helper()
	b, prog := mustParse(t, src+";")
	p := b.Programs.Get(prog)
	if len(p.Stmts) != 1 {
		t.Fatalf("expected 1 statement, got %d\n%s", len(p.Stmts), diagfmt.Sdump(p))
	}
	es, ok := b.Stmts.ExprStmt(p.Stmts[0])
	if !ok {
		t.Fatalf("expected expression statement\n%s", diagfmt.Sdump(b.Stmts.Get(p.Stmts[0])))
	}
	return diagfmt.FormatExpr(b, es.Expr)
}

func codes(bag *diag.Bag) []diag.Code {
	out := make([]diag.Code, 0, bag.Len())
	for _, d := range bag.Items() {
		out = append(out, d.Code)
	}
	return out
}
