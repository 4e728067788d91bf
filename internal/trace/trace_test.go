package trace_test

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"aic/internal/trace"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]trace.Level{
		"off":    trace.LevelOff,
		"error":  trace.LevelError,
		"PHASE":  trace.LevelPhase,
		"func":   trace.LevelFunc,
		"detail": trace.LevelFunc,
		"debug":  trace.LevelDebug,
	}
	for in, want := range cases {
		got, err := trace.ParseLevel(in)
		if err != nil || got != want {
			t.Fatalf("ParseLevel(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := trace.ParseLevel("loud"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestLevelFiltersScopes(t *testing.T) {
	if trace.LevelPhase.ShouldEmit(trace.ScopeFunc) {
		t.Fatal("phase level must not emit func spans")
	}
	if !trace.LevelFunc.ShouldEmit(trace.ScopeFunc) {
		t.Fatal("func level must emit func spans")
	}
	if trace.LevelFunc.ShouldEmit(trace.ScopeNode) {
		t.Fatal("func level must not emit node events")
	}
	if trace.LevelError.ShouldEmit(trace.ScopeDriver) {
		t.Fatal("error level emits nothing through spans")
	}
}

func TestStreamTracerText(t *testing.T) {
	var buf bytes.Buffer
	tr := trace.NewStreamTracer(&buf, trace.LevelFunc, trace.FormatText)

	root := trace.Begin(tr, trace.ScopePass, "codegen", 0)
	fn := trace.Begin(tr, trace.ScopeFunc, "fn:fact", root.ID())
	fn.WithExtra("params", "1").WithExtra("blocks", "4").End("")
	trace.Begin(tr, trace.ScopeNode, "stmt", fn.ID()).End("") // отфильтровано
	root.End("ok")

	out := buf.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], "→ codegen") {
		t.Fatalf("unexpected first line %q", lines[0])
	}
	if !strings.Contains(lines[2], "← fn:fact {blocks=4, params=1}") {
		t.Fatalf("extras must be sorted: %q", lines[2])
	}
	if !strings.Contains(lines[3], "← codegen (ok)") {
		t.Fatalf("unexpected last line %q", lines[3])
	}
}

func TestStreamTracerNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := trace.NewStreamTracer(&buf, trace.LevelDebug, trace.FormatNDJSON)
	trace.Point(tr, trace.ScopeDriver, "start", "x.aic", 0)

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("invalid json %q: %v", buf.String(), err)
	}
	if rec["kind"] != "point" || rec["scope"] != "driver" || rec["detail"] != "x.aic" {
		t.Fatalf("unexpected record %v", rec)
	}
}

func TestRingTracerWraps(t *testing.T) {
	tr := trace.NewRingTracer(3, trace.LevelDebug)
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		trace.Point(tr, trace.ScopePass, name, "", 0)
	}
	var names []string
	for _, ev := range tr.Snapshot() {
		names = append(names, ev.Name)
	}
	if got := strings.Join(names, ","); got != "c,d,e" {
		t.Fatalf("snapshot = %s, want c,d,e", got)
	}
}

func TestNewOffIsNop(t *testing.T) {
	tr, err := trace.New(trace.Config{Level: trace.LevelOff})
	if err != nil {
		t.Fatal(err)
	}
	if tr.Enabled() {
		t.Fatal("off tracer must be disabled")
	}
	span := trace.Begin(tr, trace.ScopeDriver, "x", 0)
	if span.End("") != 0 || span.ID() != 0 {
		t.Fatal("disabled span must be inert")
	}
}

func TestContextPropagation(t *testing.T) {
	if trace.FromContext(context.Background()) != trace.Nop {
		t.Fatal("empty context must yield Nop")
	}
	ring := trace.NewRingTracer(8, trace.LevelDebug)
	ctx := trace.WithTracer(context.Background(), ring)
	span := trace.Begin(trace.FromContext(ctx), trace.ScopeDriver, "build", 0)
	ctx = trace.WithSpan(ctx, span)
	if trace.ParentID(ctx) != span.ID() || span.ID() == 0 {
		t.Fatalf("parent id = %d, want %d", trace.ParentID(ctx), span.ID())
	}
}
