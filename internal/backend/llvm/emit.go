package llvm

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// ErrNoToolchain is returned when neither clang nor llc can be found.
var ErrNoToolchain = errors.New("clang not found; install with: sudo apt-get update && sudo apt-get install -y clang llvm")

// EmitObject compiles the module into a native object at path. The IR
// goes through a temporary .ll file next to the output; the object is
// renamed into place only on success.
func (m *Module) EmitObject(ctx context.Context, path string) error {
	dir := filepath.Dir(path)
	tmpDir, err := os.MkdirTemp(dir, ".aic-*")
	if err != nil {
		return fmt.Errorf("failed to create tmp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	llPath := filepath.Join(tmpDir, "out.ll")
	if err := os.WriteFile(llPath, []byte(m.String()), 0o600); err != nil {
		return fmt.Errorf("failed to write LLVM IR: %w", err)
	}
	objPath := filepath.Join(tmpDir, "out.o")
	if err := m.compileIR(ctx, llPath, objPath); err != nil {
		return err
	}
	if err := os.Rename(objPath, path); err != nil {
		return fmt.Errorf("failed to move object to %q: %w", path, err)
	}
	return nil
}

func (m *Module) compileIR(ctx context.Context, llPath, objPath string) error {
	clangErr := ErrNoToolchain
	if _, err := exec.LookPath(m.opts.Clang); err == nil {
		clangErr = m.run(ctx, m.opts.Clang, "-c", "-x", "ir", llPath, "-o", objPath)
		if clangErr == nil {
			return nil
		}
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	// Fallback to llc
	llcPath, llcErr := exec.LookPath(m.opts.LLC)
	if llcErr != nil {
		if errors.Is(clangErr, ErrNoToolchain) {
			return ErrNoToolchain
		}
		return fmt.Errorf("clang failed and llc not found: %w", clangErr)
	}
	if err := m.run(ctx, llcPath, "-filetype=obj", llPath, "-o", objPath); err != nil {
		return fmt.Errorf("clang and llc failed: %w", errors.Join(clangErr, err))
	}
	return nil
}

func (m *Module) run(ctx context.Context, name string, args ...string) error {
	if m.opts.CommandLog != nil {
		if _, err := fmt.Fprintf(m.opts.CommandLog, "%s %s\n", name, strings.Join(args, " ")); err != nil {
			return fmt.Errorf("failed to print command: %w", err)
		}
	}
	// #nosec G204 -- tool paths come from configuration, arguments are generated
	cmd := exec.CommandContext(ctx, name, args...)
	var stderr strings.Builder
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return fmt.Errorf("%s: %w", name, err)
		}
		return fmt.Errorf("%s: %s", name, msg)
	}
	return nil
}
