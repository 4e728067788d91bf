package buildpipeline

import (
	"path/filepath"
	"sort"
	"strings"
)

// progressName is the label shown for path: relative to baseDir when
// path lies under it, slash-separated.
func progressName(path, baseDir string) string {
	if path == "" {
		return ""
	}
	clean := filepath.Clean(path)
	base := strings.TrimSpace(baseDir)
	if base != "" {
		if abs, err := filepath.Abs(base); err == nil {
			base = abs
		}
		if abs, err := filepath.Abs(clean); err == nil {
			clean = abs
		}
		if rel, err := filepath.Rel(base, clean); err == nil && rel != "." && !strings.HasPrefix(rel, "..") {
			clean = rel
		}
	}
	return filepath.ToSlash(clean)
}

// ProgressFiles maps paths to the sorted, unique labels used in Event.File.
func ProgressFiles(files []string, baseDir string) []string {
	if len(files) == 0 {
		return files
	}
	normalized := make([]string, 0, len(files))
	seen := make(map[string]struct{}, len(files))
	for _, file := range files {
		name := progressName(file, baseDir)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		normalized = append(normalized, name)
	}
	sort.Strings(normalized)
	return normalized
}
