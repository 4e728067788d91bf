// Package project locates and reads the aic.toml manifest.
package project

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// ManifestName is the file searched for by Find.
const ManifestName = "aic.toml"

// SourceExt is the extension of aic source files.
const SourceExt = ".aic"

type Config struct {
	Package PackageConfig `toml:"package"`
	Build   BuildConfig   `toml:"build"`
}

type PackageConfig struct {
	Name string `toml:"name"`
}

type BuildConfig struct {
	Main   string `toml:"main"`             // relative to the manifest directory
	Output string `toml:"output,omitempty"` // default "<name>.o"
	EmitIR bool   `toml:"emit-ir,omitempty"`
}

// Manifest is a parsed aic.toml.
type Manifest struct {
	Path   string
	Root   string // directory holding the manifest
	Config Config
}

// Find walks up from startDir looking for aic.toml.
func Find(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false, nil
		}
		dir = parent
	}
}

// Load reads and validates the manifest at path.
func Load(path string) (*Manifest, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%s: unknown key %q", path, undecoded[0].String())
	}
	if !meta.IsDefined("package", "name") || strings.TrimSpace(cfg.Package.Name) == "" {
		return nil, fmt.Errorf("%s: missing [package].name", path)
	}
	if !meta.IsDefined("build", "main") || strings.TrimSpace(cfg.Build.Main) == "" {
		return nil, fmt.Errorf("%s: missing [build].main", path)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	return &Manifest{Path: abs, Root: filepath.Dir(abs), Config: cfg}, nil
}

// Discover finds and loads the nearest manifest; ok is false when there is none.
func Discover(startDir string) (m *Manifest, ok bool, err error) {
	path, ok, err := Find(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	m, err = Load(path)
	return m, true, err
}

// MainPath is the absolute path of [build].main.
func (m *Manifest) MainPath() string {
	return filepath.Join(m.Root, filepath.FromSlash(strings.TrimSpace(m.Config.Build.Main)))
}

// OutputPath is [build].output resolved against Root, or "<name>.o".
func (m *Manifest) OutputPath() string {
	out := strings.TrimSpace(m.Config.Build.Output)
	if out == "" {
		out = ObjectName(m.Config.Package.Name)
	}
	if filepath.IsAbs(out) {
		return out
	}
	return filepath.Join(m.Root, filepath.FromSlash(out))
}

// ModuleName derives a module name from a source path: the file stem.
func ModuleName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// ObjectName is the default object file name for a module.
func ObjectName(module string) string {
	if module == "" {
		module = "a"
	}
	return module + ".o"
}

// Encode renders cfg as TOML.
func Encode(cfg Config) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Init writes aic.toml and an entry file into dir. Existing files are not
// overwritten.
func Init(dir, name string) (written []string, err error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create directory %q: %w", dir, err)
	}
	if name == "" || !validName(name) {
		name = "aic-project"
	}
	manifestPath := filepath.Join(dir, ManifestName)
	if _, err := os.Stat(manifestPath); err == nil {
		return nil, fmt.Errorf("%s already exists", manifestPath)
	}

	cfg := Config{
		Package: PackageConfig{Name: name},
		Build:   BuildConfig{Main: "main" + SourceExt},
	}
	data, err := Encode(cfg)
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(manifestPath, data, 0o600); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", manifestPath, err)
	}
	written = append(written, manifestPath)

	mainPath := filepath.Join(dir, cfg.Build.Main)
	if _, err := os.Stat(mainPath); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(mainPath, []byte(helloSource), 0o600); err != nil {
			return written, fmt.Errorf("failed to write %s: %w", mainPath, err)
		}
		written = append(written, mainPath)
	}
	return written, nil
}

const helloSource = `// exit code is the value of the last expression
fn answer() -> i32 {
    40 + 2
}

answer()
`

func validName(name string) bool {
	for _, r := range name {
		ok := r == '-' || r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
		if !ok {
			return false
		}
	}
	return true
}
