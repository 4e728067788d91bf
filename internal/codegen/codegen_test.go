package codegen_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"aic/internal/backend/vm"
	"aic/internal/codegen"
	"aic/internal/diag"
	"aic/internal/symbols"
	"aic/internal/trace"
)

func TestPrograms(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want uint8
	}{
		{"simple", "42 + 42", 84},
		{"zero", "0", 0},
		{"negative", "-(-1)", 1},
		{"negative wraps", "-(1)", 255},
		{"function call", "fn zero() -> i32 { 0 }\nzero()", 0},
		{"let and var", "let a: i32 = 10; var b: i32 = 20; a + b", 30},
		{"if true", "if true { 1 } else { 0 }", 1},
		{"if false", "if false { 1 } else { 0 }", 0},
		{"nested if", `
let x = 5;
if x > 1 {
    if x > 3 { 1 } else { 2 }
} else {
    3
}`, 1},
		{"else if chain", `
let x = 2;
if x == 1 { 1 } else if x == 2 { 2 } else { 3 }`, 2},
		{"else if without else falls through", `
let x = 3;
if x == 1 { 1 } else if x == 2 { 2 } else if x == 4 { 4 }
3`, 3},
		{"boolean and comparison", `
let a = 10;
let b = 20;
if a < b && !(a == b) || false { 42 } else { 0 }`, 42},
		{"comments", `
// leading comment
let a = 10; // trailing
/* block
   comment */
let b = 20;
a + b`, 30},
		{"mutable var", "var x: i32 = 10; x = 5; x + 10", 15},
		{"precedence", "2 + 3 * 4 - 8 / 2", 10},
		{"unary precedence", "-2 * 3 + 10", 4},
		{"integer condition", "let n = 7; if n { 1 } else { 0 }", 1},
		{"return statement", "return 9; 1", 9},
		{"main falls off", "let x = 1;", 0},
		{"var zero value", "var x: i32; x", 0},
		{"forward call", "let r = twice(21);\nfn twice(x: i32) -> i32 { x * 2 }\nr", 42},
		{"recursion", `
fn fact(n: i32) -> i32 {
    if n <= 1 { return 1; }
    n * fact(n - 1)
}
fact(5)`, 120},
		{"i64 arithmetic", `
fn big(x: i64) -> i64 { x * 1000000 }
if big(5000) > 4000000000 { 1 } else { 0 }`, 1},
		{"void function", `
var hits: i32 = 0;
fn noop() -> void { return; }
noop();
hits + 7`, 7},
		{"shadowing in branch", `
let x = 1;
if true { let x = 50; x } else { 0 }
x`, 1},
		{"shadowing by let", "let x = 1; let y = x + 1; y", 2},
		{"assignment in branch", `
var x: i32 = 1;
if x == 1 { x = 10; } else { x = 20; }
x`, 10},
		{"bool binding", "let ok: bool = 3 > 2; if ok { 5 } else { 6 }", 5},
		{"stray semicolons", ";; let a = 3;; a", 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := vm.ExitCode(run(t, tt.src)); got != tt.want {
				t.Fatalf("exit code = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCustomEntryFallsOffWithZero(t *testing.T) {
	// пользовательская main допустима, когда точка входа названа иначе
	src := "fn main() -> i32 { 9 }\nlet x = main();"
	b, prog := mustParse(t, src)
	m := vm.New()
	if err := codegen.Generate(context.Background(), b, prog, m, codegen.Options{Entry: "start"}); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if err := m.Verify(); err != nil {
		t.Fatalf("Verify: %v\n%s", err, m.String())
	}
	got, err := m.Run(context.Background(), "start")
	if err != nil || got != 0 {
		t.Fatalf("Run(start) = %d, %v; want 0", got, err)
	}
	if got, err := m.Run(context.Background(), "main"); err != nil || got != 9 {
		t.Fatalf("Run(main) = %d, %v; want 9", got, err)
	}
	// обычная функция без return не получает неявный 0
	expectCode(t, "fn f() -> i32 { let y = 1; }\nf()", diag.SemaMissingReturn)
}

func TestTailValuePropagation(t *testing.T) {
	src := `
fn value() -> i32 { 5 }
fn nothing() -> void { let x = 1; }
nothing();
value()`
	m := mustGenerate(t, src)
	fn, ok := m.Lookup("nothing")
	if !ok || fn.Result().String() != "void" {
		t.Fatalf("nothing() should return void")
	}
	got, err := m.Run(context.Background(), "main")
	if err != nil || got != 5 {
		t.Fatalf("Run = %d, %v; want 5", got, err)
	}
}

func TestTailOutsideReturnPositionIsDiscarded(t *testing.T) {
	// tail-значения ветвей не последнего if отбрасываются
	src := `
let x = 1;
if x == 1 { 100 } else { 200 }
7`
	if got := run(t, src); got != 7 {
		t.Fatalf("got %d, want 7", got)
	}
}

func TestMergePruning(t *testing.T) {
	tests := []struct {
		name      string
		src       string
		wantMerge bool
	}{
		{"both branches return", "fn f(x: i32) -> i32 { if x > 0 { 1 } else { 2 } }\nf(1)", false},
		{"no else keeps merge", "fn f(x: i32) -> void { if x > 0 { return; } }\nf(1);", true},
		{"not in return position", "fn f(x: i32) -> i32 { if x > 0 { return 1; } else { return 2; } 3 }\nf(1)", true},
		{"one branch falls through", "fn f(x: i32) -> i32 { var y: i32 = 0; if x > 0 { return 1; } else { y = 2; } y }\nf(0)", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := mustGenerate(t, tt.src)
			fn, ok := m.Lookup("f")
			if !ok {
				t.Fatal("function f not found")
			}
			hasMerge := false
			for _, b := range fn.Blocks {
				if strings.HasPrefix(b.Label(), "merge") {
					hasMerge = true
				}
			}
			if hasMerge != tt.wantMerge {
				t.Fatalf("merge present = %v, want %v\n%s", hasMerge, tt.wantMerge, m.String())
			}
		})
	}
}

func TestElseIfChainShape(t *testing.T) {
	src := `
fn pick(x: i32) -> i32 {
    if x == 1 { 10 } else if x == 2 { 20 } else { 30 }
}
pick(2)`
	m := mustGenerate(t, src)
	fn, _ := m.Lookup("pick")
	var labels []string
	for _, b := range fn.Blocks {
		labels = append(labels, b.Label())
	}
	got := strings.Join(labels, " ")
	want := "entry then else then.1 else.1"
	if got != want {
		t.Fatalf("blocks = %q, want %q\n%s", got, want, m.String())
	}
	res, err := m.Run(context.Background(), "main")
	if err != nil || res != 20 {
		t.Fatalf("Run = %d, %v; want 20", res, err)
	}
}

func TestStatementsAfterReturn(t *testing.T) {
	src := "fn f() -> i32 { return 4; let y = 2; }\nf()"
	m := mustGenerate(t, src)
	fn, _ := m.Lookup("f")
	if len(fn.Blocks) != 2 || !strings.HasPrefix(fn.Blocks[1].Label(), "dead") {
		t.Fatalf("expected entry + dead block\n%s", m.String())
	}
	if got, _ := m.Run(context.Background(), "main"); got != 4 {
		t.Fatalf("got %d, want 4", got)
	}
	// имена в недостижимом коде всё равно проверяются
	expectCode(t, "fn g() -> i32 { return 1; missing }\ng()", diag.SemaUnboundName)
}

func TestScoping(t *testing.T) {
	src := `
if true { var inner: i32 = 1; }
inner`
	e := expectCode(t, src, diag.SemaUnboundName)
	if !errors.Is(e, symbols.ErrUnboundName) {
		t.Fatalf("error should wrap symbols.ErrUnboundName: %v", e)
	}

	// тело функции не видит привязок верхнего уровня
	expectCode(t, "let g = 1;\nfn f() -> i32 { g }\nf()", diag.SemaUnboundName)
}

func TestMutability(t *testing.T) {
	e := expectCode(t, "let x = 1; x = 2; x", diag.SemaImmutableAssignment)
	if len(e.Notes) != 1 || !strings.Contains(e.Notes[0].Msg, "var") {
		t.Fatalf("expected a note pointing to the declaration, got %+v", e.Notes)
	}
	expectCode(t, "fn f(a: i32) -> i32 { a = 2; a }\nf(1)", diag.SemaImmutableAssignment)
	if got := run(t, "var x: i32 = 1; x = 2; x"); got != 2 {
		t.Fatalf("var assignment: got %d, want 2", got)
	}
}

func TestErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code diag.Code
	}{
		{"unbound variable", "y + 1", diag.SemaUnboundName},
		{"unknown function", "nope()", diag.SemaUnboundName},
		{"assign to unbound", "z = 1;", diag.SemaUnboundName},
		{"duplicate let", "let a = 1; let a = 2; a", diag.SemaDuplicateBinding},
		{"duplicate param", "fn f(a: i32, a: i32) -> i32 { a }\nf(1, 2)", diag.SemaDuplicateBinding},
		{"duplicate function", "fn f() -> i32 { 1 }\nfn f() -> i32 { 2 }\nf()", diag.SemaDuplicateBinding},
		{"user main", "fn main() -> i32 { 0 }", diag.SemaEntrypointConflict},
		{"arity", "fn f(a: i32) -> i32 { a }\nf(1, 2)", diag.SemaArityMismatch},
		{"argument type", "fn f(a: i32) -> i32 { a }\nf(true)", diag.SemaTypeMismatch},
		{"binding type", "let a: i32 = true; 0", diag.SemaTypeMismatch},
		{"mixed arithmetic", "fn f(a: i64) -> i64 { a }\nlet x: i32 = 1; f(2) + x", diag.SemaTypeMismatch},
		{"bool arithmetic", "true + 1", diag.SemaTypeMismatch},
		{"not on integer", "!1", diag.SemaTypeMismatch},
		{"negate bool", "-true", diag.SemaTypeMismatch},
		{"bool ordering", "true < false", diag.SemaTypeMismatch},
		{"logical on integers", "1 && 2", diag.SemaTypeMismatch},
		{"main tail type", "true", diag.SemaTypeMismatch},
		{"void value", "fn f() -> void { return; }\nlet x = f(); 0", diag.SemaTypeMismatch},
		{"return value from void", "fn f() -> void { 1 }\nf();", diag.SemaTypeMismatch},
		{"missing return value", "fn f() -> i32 { return; }\nf()", diag.SemaTypeMismatch},
		{"missing return", "fn f(x: i32) -> i32 { if x > 0 { return 1; } }\nf(1)", diag.SemaMissingReturn},
		{"no tail", "fn f() -> i32 { let a = 1; }\nf()", diag.SemaMissingReturn},
		{"float param", "fn f(a: f32) -> i32 { 0 }\n0", diag.SemaUnsupportedType},
		{"string result", "fn f() -> string { 0 }\n0", diag.SemaUnsupportedType},
		{"void param", "fn f(a: void) -> i32 { 0 }\n0", diag.SemaUnsupportedType},
		{"f64 binding", "var a: f64; 0", diag.SemaUnsupportedType},
		{"i32 overflow", "2147483648", diag.SemaIntOutOfRange},
		{"i64 overflow", "let a: i64 = 9223372036854775808; 0", diag.SemaIntOutOfRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expectCode(t, tt.src, tt.code)
		})
	}
}

func TestErrorDiagnostic(t *testing.T) {
	src := "let a = 1;\nlet a = 2;\na"
	e := expectCode(t, src, diag.SemaDuplicateBinding)
	d := e.Diagnostic()
	if d.Severity != diag.SevError || d.Code != diag.SemaDuplicateBinding {
		t.Fatalf("unexpected diagnostic %+v", d)
	}
	if len(d.Notes) != 1 || d.Notes[0].Msg != "previous declaration is here" {
		t.Fatalf("expected previous-declaration note, got %+v", d.Notes)
	}
	if !errors.Is(e, symbols.ErrDuplicateBinding) {
		t.Fatal("error should wrap symbols.ErrDuplicateBinding")
	}
	if !strings.HasPrefix(e.Error(), "SEM3001: ") {
		t.Fatalf("Error() = %q", e.Error())
	}
}

func TestCustomEntry(t *testing.T) {
	b, prog := mustParse(t, "fn main() -> i32 { 3 }\nmain()")
	m := vm.New()
	if err := codegen.Generate(context.Background(), b, prog, m, codegen.Options{Entry: "start"}); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	got, err := m.Run(context.Background(), "start")
	if err != nil || got != 3 {
		t.Fatalf("Run(start) = %d, %v; want 3", got, err)
	}
}

func TestCancelledContext(t *testing.T) {
	b, prog := mustParse(t, "fn f() -> i32 { 1 }\nf()")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := codegen.Generate(ctx, b, prog, vm.New(), codegen.Options{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestTraceSpans(t *testing.T) {
	ring := trace.NewRingTracer(64, trace.LevelFunc)
	ctx := trace.WithTracer(context.Background(), ring)
	b, prog := mustParse(t, "fn a() -> i32 { 1 }\nfn b() -> i32 { 2 }\na() + b()")
	if err := codegen.Generate(ctx, b, prog, vm.New(), codegen.Options{}); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	var begins []string
	for _, ev := range ring.Snapshot() {
		if ev.Kind == trace.KindSpanBegin {
			begins = append(begins, ev.Name)
		}
	}
	got := strings.Join(begins, ",")
	if got != "lower,fn:main,fn:a,fn:b" {
		t.Fatalf("spans = %s", got)
	}
}
