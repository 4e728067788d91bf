package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"aic/internal/project"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB — ограничение для тестового корпуса
)

// inlineSeeds покрывают конструкции, которых может не быть в testdata
var inlineSeeds = []string{
	"",
	"0",
	"let x = 1;",
	"var y: i64; y = 2; y",
	"-(1)",
	"fn f(a: i32, b: i32) -> i32 { return a / b; }\nf(1, 0)",
	"fn g() -> void { return; }\ng();",
	"if 1 { 2 } else if 3 { 4 } else { 5 }",
	"let s = \"text\"; 0",
	"1 $ 2",
}

func addCorpusSeeds(f *testing.F) {
	addTestdataSeeds(f)
	for _, src := range inlineSeeds {
		f.Add([]byte(src))
	}
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все исходники
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() {
			return nil
		}
		if filepath.Ext(path) != project.SourceExt {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
