package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"aic/internal/parser"
)

func TestFormatProgramSExpr(t *testing.T) {
	src := `fn add(a: i32, b: i32) -> i32 { a + b }
let x: i64 = 7;
var y = -x;
if y < 0 { y = 1; } else { return 2; }
add(1, 2)
`
	_, b, res, bag := parser.ParseText("prog.aic", []byte(src), 0)
	if !res.OK() {
		t.Fatalf("parse failed: %v", bag.Items())
	}
	got := FormatProgramSExpr(b, res.Program)
	want := "(fn add ((a i32) (b i32)) i32 (tail (+ a b))) " +
		"(let x i64 7) (var y _ (- x)) " +
		"(if (< y 0) (then (= y 1)) (else (return 2))) " +
		"(tail (call add 1 2))"
	if got != want {
		t.Errorf("mismatch\nwant: %s\ngot:  %s", want, got)
	}
}

func TestFormatProgramTree(t *testing.T) {
	fs, b, res, _ := parser.ParseText("tree.aic", []byte("let a = 1;\nif a == 1 { 2 } else { 3 }\n"), 0)

	var buf bytes.Buffer
	if err := FormatProgram(&buf, b, res.Program, fs); err != nil {
		t.Fatalf("FormatProgram: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"tree.aic (span: 1:1-",
		"├─ Let (span: 1:1-1:11)",
		"│  ├─ Name: a",
		"└─ If (span: 2:1-",
		"   ├─ Cond: (== a 1)",
		"   │  └─ Tail (span: 2:13-2:14)",
		"   └─ Else",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in tree:\n%s", want, out)
		}
	}
}

func TestDumpProgram(t *testing.T) {
	_, b, res, _ := parser.ParseText("dump.aic", []byte("let answer = 42;"), 0)

	var buf bytes.Buffer
	if err := DumpProgram(&buf, b, res.Program); err != nil {
		t.Fatalf("DumpProgram: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Bindings", `Name: "answer"`, `Text: "42"`} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in dump:\n%s", want, out)
		}
	}
}
