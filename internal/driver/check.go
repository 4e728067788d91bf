package driver

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"aic/internal/project"
)

type CheckOptions struct {
	MaxDiagnostics int
	Jobs           int // GOMAXPROCS when <= 0
	EnableTimings  bool
}

// CheckResult is the outcome for one file. Err holds failures that are
// not diagnostics (unreadable file, cancellation).
type CheckResult struct {
	Path   string
	Result *Result
	Err    error
}

// Failed reports whether the file has errors of any kind.
func (c CheckResult) Failed() bool {
	return c.Err != nil || c.Result == nil || c.Result.Bag.HasErrors()
}

// ListSources expands directories into their *.aic files. The result is
// sorted and free of duplicates.
func ListSources(paths []string) ([]string, error) {
	seen := make(map[string]struct{})
	var files []string
	add := func(path string) {
		clean := filepath.Clean(path)
		if _, ok := seen[clean]; ok {
			return
		}
		seen[clean] = struct{}{}
		files = append(files, clean)
	}
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			add(p)
			continue
		}
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && filepath.Ext(path) == project.SourceExt {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	sort.Strings(files)
	return files, nil
}

// CheckFiles compiles every file against the VM backend in parallel and
// collects the diagnostics. Each file gets its own FileSet and arenas.
func CheckFiles(ctx context.Context, paths []string, opts CheckOptions) ([]CheckResult, error) {
	files, err := ListSources(paths)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no %s files found", project.SourceExt)
	}
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// индексы уникальны для каждой горутины, мьютекс не нужен
	results := make([]CheckResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := Compile(gctx, CompileRequest{
				Path:           path,
				MaxDiagnostics: opts.MaxDiagnostics,
				Backend:        BackendVM,
				EnableTimings:  opts.EnableTimings,
			})
			if errors.Is(err, ErrDiagnostics) {
				err = nil
			}
			results[i] = CheckResult{Path: path, Result: res, Err: err}
			if errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
