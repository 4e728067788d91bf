package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func runCLI(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code = execute(args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestBuildEmitIR(t *testing.T) {
	src := writeFile(t, filepath.Join(t.TempDir(), "prog.aic"), "let x = 40;\nx + 2\n")
	for _, flag := range []string{"--emit-ir", "--emit-llvm"} {
		code, out, errOut := runCLI(t, "build", "-i", src, flag)
		if code != 0 {
			t.Fatalf("%s: exit %d, stderr:\n%s", flag, code, errOut)
		}
		if !strings.Contains(out, "define i32 @main()") {
			t.Fatalf("%s: IR not printed:\n%s", flag, out)
		}
		if strings.Contains(out, "compiled to") {
			t.Fatalf("%s: no object must be written", flag)
		}
	}
}

func TestBuildReportsDiagnostics(t *testing.T) {
	src := writeFile(t, filepath.Join(t.TempDir(), "bad.aic"), "let a = 1;\nb\n")
	code, _, errOut := runCLI(t, "--color=off", "build", "-i", src, "--emit-ir")
	if code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
	if !strings.Contains(errOut, "bad.aic:2:1: ERROR SEM3002") {
		t.Fatalf("unexpected stderr:\n%s", errOut)
	}
	if strings.Contains(errOut, "error: ") {
		t.Fatalf("reported diagnostics must not be repeated as an error:\n%s", errOut)
	}
}

func TestBuildJSONDiagnostics(t *testing.T) {
	src := writeFile(t, filepath.Join(t.TempDir(), "bad.aic"), "let = 1;")
	code, _, errOut := runCLI(t, "--format=json", "build", src, "--emit-ir")
	if code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
	var payload struct {
		Count       int `json:"count"`
		Diagnostics []struct {
			Code string `json:"code"`
		} `json:"diagnostics"`
	}
	if err := json.Unmarshal([]byte(errOut), &payload); err != nil {
		t.Fatalf("stderr is not JSON: %v\n%s", err, errOut)
	}
	if payload.Count == 0 || payload.Diagnostics[0].Code != "SYN2005" {
		t.Fatalf("unexpected payload %+v", payload)
	}
}

func TestBuildWithoutInput(t *testing.T) {
	t.Chdir(t.TempDir())
	code, _, errOut := runCLI(t, "build")
	if code != 1 || !strings.Contains(errOut, "no input file") {
		t.Fatalf("exit %d, stderr:\n%s", code, errOut)
	}
}

func TestBuildOutputNeedsSingleInput(t *testing.T) {
	code, _, errOut := runCLI(t, "build", "-i", "a.aic", "-i", "b.aic", "-o", "x.o")
	if code != 1 || !strings.Contains(errOut, "--output cannot be used") {
		t.Fatalf("exit %d, stderr:\n%s", code, errOut)
	}
}

func TestBuildFromManifest(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "aic.toml"), `[package]
name = "demo"

[build]
main = "src/main.aic"
emit-ir = true
`)
	writeFile(t, filepath.Join(dir, "src", "main.aic"), "fn seven() -> i32 { 7 }\nseven()")
	sub := filepath.Join(dir, "src")
	t.Chdir(sub)

	code, out, errOut := runCLI(t, "build")
	if code != 0 {
		t.Fatalf("exit %d, stderr:\n%s", code, errOut)
	}
	if !strings.Contains(out, "define i32 @seven()") {
		t.Fatalf("manifest emit-ir not honoured:\n%s", out)
	}
}

func TestBuildAndLinkWithClang(t *testing.T) {
	if _, err := exec.LookPath("clang"); err != nil {
		t.Skip("clang not installed")
	}
	dir := t.TempDir()
	src := writeFile(t, filepath.Join(dir, "answer.aic"), `
let a = 10;
let b = 20;
if a < b && !(a == b) || false { 42 } else { 0 }
`)
	obj := filepath.Join(dir, "answer.o")
	code, out, errOut := runCLI(t, "build", "-i", src, "-o", obj, "--ui=off")
	if code != 0 {
		t.Fatalf("exit %d, stderr:\n%s", code, errOut)
	}
	if !strings.Contains(out, "compiled to "+obj) {
		t.Fatalf("unexpected stdout:\n%s", out)
	}

	exe := filepath.Join(dir, "answer")
	if linkOut, err := exec.Command("clang", obj, "-o", exe).CombinedOutput(); err != nil {
		t.Fatalf("link: %v\n%s", err, linkOut)
	}
	err := exec.Command(exe).Run()
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) || exitErr.ExitCode() != 42 {
		t.Fatalf("expected exit status 42, got %v", err)
	}
}

func TestRunExitCode(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		src  string
		want int
	}{
		{"42 + 42", 84},
		{"0", 0},
		{"-(1)", 255},
		{"fn zero() -> i32 { 0 }\nzero()", 0},
	}
	for i, tt := range tests {
		src := writeFile(t, filepath.Join(dir, "run"+string(rune('a'+i))+".aic"), tt.src)
		code, _, errOut := runCLI(t, "run", src)
		if code != tt.want {
			t.Fatalf("%q: exit %d, want %d\n%s", tt.src, code, tt.want, errOut)
		}
	}
}

func TestRunTimings(t *testing.T) {
	src := writeFile(t, filepath.Join(t.TempDir(), "t.aic"), "0")
	code, _, errOut := runCLI(t, "--timings", "run", src)
	if code != 0 {
		t.Fatalf("exit %d", code)
	}
	for _, want := range []string{"parsed", "lowered", "ran", "total"} {
		if !strings.Contains(errOut, want) {
			t.Fatalf("timings missing %q:\n%s", want, errOut)
		}
	}
}

func TestCheck(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "ok.aic"), "1")
	code, out, _ := runCLI(t, "check", dir)
	if code != 0 || !strings.Contains(out, "checked 1 file(s), 0 with errors") {
		t.Fatalf("exit %d, stdout:\n%s", code, out)
	}

	writeFile(t, filepath.Join(dir, "nested", "bad.aic"), "fn f() -> i32 { }\nf()")
	code, out, errOut := runCLI(t, "--color=off", "check", dir)
	if code != 1 || !strings.Contains(out, "checked 2 file(s), 1 with errors") {
		t.Fatalf("exit %d, stdout:\n%s", code, out)
	}
	if !strings.Contains(errOut, "SEM3007") {
		t.Fatalf("missing-return diagnostic not printed:\n%s", errOut)
	}
}

func TestTokenize(t *testing.T) {
	src := writeFile(t, filepath.Join(t.TempDir(), "tok.aic"), "let x = 1;")
	code, out, _ := runCLI(t, "tokenize", "--json", src)
	if code != 0 {
		t.Fatalf("exit %d", code)
	}
	var toks []map[string]any
	if err := json.Unmarshal([]byte(out), &toks); err != nil {
		t.Fatalf("bad JSON: %v\n%s", err, out)
	}
	if len(toks) != 6 {
		t.Fatalf("got %d tokens", len(toks))
	}
}

func TestParse(t *testing.T) {
	src := writeFile(t, filepath.Join(t.TempDir(), "p.aic"), "1 + 2 * 3")
	code, out, _ := runCLI(t, "parse", "--sexpr", src)
	if code != 0 || !strings.Contains(out, "(+ 1 (* 2 3))") {
		t.Fatalf("exit %d, stdout:\n%s", code, out)
	}
	code, _, _ = runCLI(t, "parse", "--sexpr", "--dump", src)
	if code != 1 {
		t.Fatalf("conflicting flags must fail")
	}
}

func TestInit(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "hello")
	code, out, errOut := runCLI(t, "init", dir)
	if code != 0 {
		t.Fatalf("exit %d, stderr:\n%s", code, errOut)
	}
	if !strings.Contains(out, "created hello/aic.toml") {
		t.Fatalf("unexpected stdout:\n%s", out)
	}
	code, _, errOut = runCLI(t, "run", filepath.Join(dir, "main.aic"))
	if code != 42 {
		t.Fatalf("scaffolded program exit %d, want 42\n%s", code, errOut)
	}
	if code, _, _ = runCLI(t, "init", dir); code != 1 {
		t.Fatalf("second init must fail")
	}
}

func TestVersion(t *testing.T) {
	code, out, _ := runCLI(t, "--color=off", "version")
	if code != 0 || !strings.HasPrefix(out, "aic ") {
		t.Fatalf("exit %d, stdout %q", code, out)
	}
	code, out, _ = runCLI(t, "--format=json", "version", "--full")
	if code != 0 || !strings.Contains(out, `"tool": "aic"`) || !strings.Contains(out, `"git_commit"`) {
		t.Fatalf("exit %d, stdout %q", code, out)
	}
}

func TestInvalidFlags(t *testing.T) {
	tests := [][]string{
		{"--color=sometimes", "version"},
		{"--format=xml", "version"},
		{"--trace-level=loud", "version"},
		{"build", "--ui=maybe", "-i", "x.aic"},
	}
	for _, args := range tests {
		if code, _, _ := runCLI(t, args...); code != 1 {
			t.Fatalf("%v: exit %d, want 1", args, code)
		}
	}
}

func TestTraceToStderr(t *testing.T) {
	src := writeFile(t, filepath.Join(t.TempDir(), "tr.aic"), "0")
	code, _, errOut := runCLI(t, "--trace=-", "run", src)
	if code != 0 {
		t.Fatalf("exit %d", code)
	}
	for _, want := range []string{"compile", "lex+parse", "codegen", "verify"} {
		if !strings.Contains(errOut, want) {
			t.Fatalf("trace missing %q:\n%s", want, errOut)
		}
	}
}

func TestProfilingFlags(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, filepath.Join(dir, "p.aic"), "fn f(n: i32) -> i32 { n + 1 }\nf(1)")
	cpu, mem := filepath.Join(dir, "cpu.pprof"), filepath.Join(dir, "mem.pprof")
	code, _, errOut := runCLI(t, "--cpu-profile", cpu, "--mem-profile", mem, "run", src)
	if code != 2 {
		t.Fatalf("exit %d, stderr:\n%s", code, errOut)
	}
	for _, path := range []string{cpu, mem} {
		if info, err := os.Stat(path); err != nil || info.Size() == 0 {
			t.Fatalf("profile %s not written: %v", filepath.Base(path), err)
		}
	}
}

func TestTraceNDJSON(t *testing.T) {
	src := writeFile(t, filepath.Join(t.TempDir(), "tr.aic"), "0")
	code, _, errOut := runCLI(t, "--trace=-", "--trace-format=ndjson", "run", src)
	if code != 0 {
		t.Fatalf("exit %d", code)
	}
	lines := strings.Split(strings.TrimSpace(errOut), "\n")
	for _, line := range lines {
		var ev struct {
			Name string `json:"name"`
		}
		if err := json.Unmarshal([]byte(line), &ev); err != nil {
			t.Fatalf("line is not JSON: %v\n%s", err, line)
		}
	}
	if code, _, _ := runCLI(t, "--trace=-", "--trace-format=xml", "run", src); code != 1 {
		t.Fatalf("invalid trace format must fail")
	}
}
