package project_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"aic/internal/project"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestDiscoverWalksUp(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, project.ManifestName), `
[package]
name = "demo"

[build]
main = "src/main.aic"
`)
	nested := filepath.Join(root, "src", "deep")
	if err := os.MkdirAll(nested, 0o750); err != nil {
		t.Fatal(err)
	}

	m, ok, err := project.Discover(nested)
	if err != nil || !ok {
		t.Fatalf("Discover = %v, %v", ok, err)
	}
	if m.Config.Package.Name != "demo" {
		t.Fatalf("name = %q", m.Config.Package.Name)
	}
	if want := filepath.Join(m.Root, "src", "main.aic"); m.MainPath() != want {
		t.Fatalf("MainPath = %q, want %q", m.MainPath(), want)
	}
	if want := filepath.Join(m.Root, "demo.o"); m.OutputPath() != want {
		t.Fatalf("OutputPath = %q, want %q", m.OutputPath(), want)
	}
}

func TestDiscoverNone(t *testing.T) {
	_, ok, err := project.Discover(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	// t.TempDir не лежит внутри проекта aic, если только кто-то не создал aic.toml в /tmp
	if ok {
		t.Skip("an aic.toml exists above the temp dir")
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"missing name", "[build]\nmain = \"a.aic\"\n", "missing [package].name"},
		{"missing main", "[package]\nname = \"x\"\n", "missing [build].main"},
		{"unknown key", "[package]\nname = \"x\"\nauthor = \"me\"\n[build]\nmain = \"a.aic\"\n", "unknown key"},
		{"bad toml", "[package\n", "failed to parse TOML"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), project.ManifestName)
			writeFile(t, path, tt.content)
			_, err := project.Load(path)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("Load error = %v, want %q", err, tt.want)
			}
		})
	}
}

func TestOutputOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), project.ManifestName)
	writeFile(t, path, "[package]\nname = \"x\"\n[build]\nmain = \"a.aic\"\noutput = \"out/x.o\"\nemit-ir = true\n")
	m, err := project.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(m.Root, "out", "x.o"); m.OutputPath() != want {
		t.Fatalf("OutputPath = %q, want %q", m.OutputPath(), want)
	}
	if !m.Config.Build.EmitIR {
		t.Fatal("emit-ir not decoded")
	}
}

func TestInit(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "hello")
	written, err := project.Init(dir, "hello")
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	if len(written) != 2 {
		t.Fatalf("written = %v", written)
	}
	m, err := project.Load(filepath.Join(dir, project.ManifestName))
	if err != nil {
		t.Fatalf("Load after Init: %v", err)
	}
	if m.Config.Package.Name != "hello" || m.Config.Build.Main != "main.aic" {
		t.Fatalf("unexpected config %+v", m.Config)
	}
	if _, err := project.Init(dir, "hello"); err == nil {
		t.Fatal("second Init must refuse to overwrite")
	}
}

func TestNames(t *testing.T) {
	if got := project.ModuleName("dir/prog.aic"); got != "prog" {
		t.Fatalf("ModuleName = %q", got)
	}
	if got := project.ObjectName("prog"); got != "prog.o" {
		t.Fatalf("ObjectName = %q", got)
	}
	if got := project.ObjectName(""); got != "a.o" {
		t.Fatalf("ObjectName(\"\") = %q", got)
	}
}
