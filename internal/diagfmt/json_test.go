package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"aic/internal/diag"
	"aic/internal/source"
)

func sampleBag() (*source.FileSet, *diag.Bag) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("dir/sample.aic", []byte("let a = 1;\na = 2;\n"))
	bag := diag.NewBag(10)
	bag.Add(diag.NewError(diag.SemaImmutableAssignment, source.Span{File: id, Start: 11, End: 12}, "cannot assign to immutable binding 'a'").
		WithNote(source.Span{File: id, Start: 4, End: 5}, "declared here"))
	bag.Add(diag.New(diag.SevWarning, diag.ObsInfo, source.Span{File: id, Start: 0, End: 3}, "info"))
	return fs, bag
}

func TestJSONBasic(t *testing.T) {
	fs, bag := sampleBag()

	var buf bytes.Buffer
	err := JSON(&buf, bag, fs, JSONOpts{IncludePositions: true, PathMode: PathModeBasename, IncludeNotes: true})
	if err != nil {
		t.Fatalf("JSON() error: %v", err)
	}

	var out Output
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if out.Count != 2 || len(out.Diagnostics) != 2 {
		t.Fatalf("expected 2 diagnostics, got count=%d len=%d", out.Count, len(out.Diagnostics))
	}
	d := out.Diagnostics[0]
	if d.Severity != "ERROR" || d.Code != "SEM3005" {
		t.Errorf("unexpected severity/code: %s %s", d.Severity, d.Code)
	}
	if d.Location.File != "sample.aic" {
		t.Errorf("expected basename path, got %q", d.Location.File)
	}
	if d.Location.StartLine != 2 || d.Location.StartCol != 1 {
		t.Errorf("expected 2:1, got %d:%d", d.Location.StartLine, d.Location.StartCol)
	}
	if len(d.Notes) != 1 || d.Notes[0].Location.StartCol != 5 {
		t.Errorf("unexpected notes: %+v", d.Notes)
	}
}

func TestJSONMaxAndNoPositions(t *testing.T) {
	fs, bag := sampleBag()

	out := BuildOutput(bag, fs, JSONOpts{Max: 1})
	if len(out.Diagnostics) != 1 {
		t.Fatalf("expected 1 record, got %d", len(out.Diagnostics))
	}
	// Count всегда отражает полное количество
	if out.Count != 2 {
		t.Errorf("expected count=2, got %d", out.Count)
	}
	loc := out.Diagnostics[0].Location
	if loc.StartLine != 0 || loc.StartByte != 11 || loc.EndByte != 12 {
		t.Errorf("unexpected location: %+v", loc)
	}
	if len(out.Diagnostics[0].Notes) != 0 {
		t.Errorf("notes must be omitted without IncludeNotes")
	}
}

func TestMsgpackRoundTrip(t *testing.T) {
	fs, bag := sampleBag()
	opts := JSONOpts{IncludePositions: true, IncludeNotes: true}

	var buf bytes.Buffer
	if err := Msgpack(&buf, bag, fs, opts); err != nil {
		t.Fatalf("Msgpack() error: %v", err)
	}
	got, err := DecodeMsgpack(&buf)
	if err != nil {
		t.Fatalf("DecodeMsgpack() error: %v", err)
	}
	want := BuildOutput(bag, fs, opts)
	if got.Count != want.Count || len(got.Diagnostics) != len(want.Diagnostics) {
		t.Fatalf("decoded %+v, want %+v", got, want)
	}
	if got.Diagnostics[0].Message != want.Diagnostics[0].Message ||
		got.Diagnostics[0].Location != want.Diagnostics[0].Location {
		t.Errorf("record mismatch:\n got %+v\nwant %+v", got.Diagnostics[0], want.Diagnostics[0])
	}
}
