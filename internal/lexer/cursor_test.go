package lexer_test

import (
	"testing"

	"aic/internal/lexer"
	"aic/internal/source"
)

func TestCursor(t *testing.T) {
	fs := source.NewFileSet()
	c := lexer.NewCursor(fs.Get(fs.AddVirtual("c.aic", []byte("ab"))))

	m := c.Mark()
	if b0, b1, ok := c.Peek2(); !ok || b0 != 'a' || b1 != 'b' {
		t.Fatalf("Peek2 = %c %c %v", b0, b1, ok)
	}
	if !c.Eat('a') || c.Eat('x') {
		t.Fatalf("Eat mismatch")
	}
	if _, _, ok := c.Peek2(); ok {
		t.Fatalf("Peek2 at last byte must fail")
	}
	if c.Bump() != 'b' || !c.EOF() || c.Bump() != 0 || c.Peek() != 0 {
		t.Fatalf("Bump/EOF mismatch")
	}
	if sp := c.SpanFrom(m); sp.Start != 0 || sp.End != 2 {
		t.Fatalf("SpanFrom = %v", sp)
	}
	c.Reset(m)
	if c.Off != 0 || c.Peek() != 'a' {
		t.Fatalf("Reset did not rewind")
	}
}
