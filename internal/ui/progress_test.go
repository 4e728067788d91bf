package ui

import (
	"errors"
	"strings"
	"testing"

	"aic/internal/buildpipeline"
)

func newTestModel(files ...string) *progressModel {
	return NewProgressModel("build", files, nil).(*progressModel)
}

func TestApplyEventTracksStages(t *testing.T) {
	m := newTestModel("a.aic", "b.aic")
	m.applyEvent(buildpipeline.Event{File: "a.aic", Stage: buildpipeline.StageCodegen, Status: buildpipeline.StatusWorking})
	m.applyEvent(buildpipeline.Event{File: "b.aic", Stage: buildpipeline.StageEmit, Status: buildpipeline.StatusDone})
	m.applyEvent(buildpipeline.Event{File: "ghost.aic", Stage: buildpipeline.StageRun, Status: buildpipeline.StatusWorking})

	if got := m.items[0].status; got != "lowering" {
		t.Fatalf("a.aic status = %q", got)
	}
	if got := m.items[1].status; got != "done" {
		t.Fatalf("b.aic status = %q", got)
	}
	if got := m.percent(); got != (0.4+1.0)/2 {
		t.Fatalf("percent = %v", got)
	}
}

func TestErrorSticks(t *testing.T) {
	m := newTestModel("bad.aic")
	m.applyEvent(buildpipeline.Event{File: "bad.aic", Stage: buildpipeline.StageCodegen, Status: buildpipeline.StatusError, Err: errors.New("compilation failed")})
	m.applyEvent(buildpipeline.Event{File: "bad.aic", Stage: buildpipeline.StageEmit, Status: buildpipeline.StatusDone})

	if m.items[0].status != "error" {
		t.Fatalf("error status was overwritten: %q", m.items[0].status)
	}
	m.done = true
	view := m.View()
	for _, want := range []string{"[1/1]", "compilation failed", "1 of 1 failed"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}
}

func TestOverallEventSetsHeader(t *testing.T) {
	m := newTestModel("x.aic")
	m.applyEvent(buildpipeline.Event{Stage: buildpipeline.StageVerify, Status: buildpipeline.StatusWorking})
	if m.stageLabel != "verifying" {
		t.Fatalf("stage label = %q", m.stageLabel)
	}
	if !strings.Contains(m.View(), "(verifying)") {
		t.Fatalf("header lacks stage label")
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short.aic", 20, "short.aic"},
		{"very/long/path/to/file.aic", 10, "very/lo..."},
		{"abcdef", 3, "abc"},
		{"日本語.aic", 5, "日..."},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.width); got != tt.want {
			t.Fatalf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}
