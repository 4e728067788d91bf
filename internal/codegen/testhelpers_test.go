package codegen_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"aic/internal/ast"
	"aic/internal/backend/vm"
	"aic/internal/codegen"
	"aic/internal/diag"
	"aic/internal/parser"
)

func mustParse(t *testing.T, src string) (*ast.Builder, ast.ProgramID) {
	t.Helper()
	_, b, res, bag := parser.ParseText("test.aic", []byte(src), 0)
	if !res.OK() || bag.HasErrors() {
		var msgs []string
		for _, d := range bag.Items() {
			msgs = append(msgs, fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message))
		}
		t.Fatalf("parse %q: %s", src, strings.Join(msgs, "; "))
	}
	return b, res.Program
}

// generate lowers src into a fresh VM module.
func generate(t *testing.T, src string) (*vm.Module, error) {
	t.Helper()
	b, prog := mustParse(t, src)
	m := vm.New()
	err := codegen.Generate(context.Background(), b, prog, m, codegen.Options{})
	return m, err
}

func mustGenerate(t *testing.T, src string) *vm.Module {
	t.Helper()
	m, err := generate(t, src)
	if err != nil {
		t.Fatalf("Generate(%q): %v", src, err)
	}
	if err := m.Verify(); err != nil {
		t.Fatalf("Verify(%q): %v\n%s", src, err, m.String())
	}
	return m
}

// run compiles src and returns the raw result of main.
func run(t *testing.T, src string) int64 {
	t.Helper()
	m := mustGenerate(t, src)
	got, err := m.Run(context.Background(), codegen.DefaultEntry)
	if err != nil {
		t.Fatalf("Run(%q): %v\n%s", src, err, m.String())
	}
	return got
}

// expectCode asserts that lowering src fails with code.
func expectCode(t *testing.T, src string, code diag.Code) *codegen.Error {
	t.Helper()
	_, err := generate(t, src)
	if err == nil {
		t.Fatalf("Generate(%q): expected %s, got success", src, code.ID())
	}
	var cgErr *codegen.Error
	if !errors.As(err, &cgErr) {
		t.Fatalf("Generate(%q): expected *codegen.Error, got %T: %v", src, err, err)
	}
	if cgErr.Code != code {
		t.Fatalf("Generate(%q): expected %s, got %s (%s)", src, code.ID(), cgErr.Code.ID(), cgErr.Msg)
	}
	return cgErr
}
