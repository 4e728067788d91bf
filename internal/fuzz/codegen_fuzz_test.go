package fuzztests

import (
	"context"
	"errors"
	"testing"
	"time"

	"aic/internal/backend/vm"
	"aic/internal/codegen"
)

const runTimeout = 2 * time.Second

// FuzzCodegenVM lowers every program that parses cleanly and runs it on
// the VM. Lowering may reject a program with *codegen.Error, but whatever
// it accepts must verify.
func FuzzCodegenVM(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		p := parseInput(clampInput(input))
		if !p.res.OK() || p.bag.HasErrors() {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
		defer cancel()

		mod := vm.New()
		err := codegen.Generate(ctx, p.builder, p.res.Program, mod, codegen.Options{})
		if err != nil {
			var cgErr *codegen.Error
			if !errors.As(err, &cgErr) {
				t.Fatalf("codegen returned %T: %v", err, err)
			}
			return
		}
		if err := mod.Verify(); err != nil {
			t.Fatalf("accepted program does not verify: %v\ninput: %q\n%s", err, truncateForLog(input, 200), mod.String())
		}
		// ошибки VM (деление на ноль, глубина) допустимы, паники нет
		_, _ = vm.NewVM(mod, vm.Options{MaxDepth: 64}).Run(ctx, codegen.DefaultEntry)
	})
}
