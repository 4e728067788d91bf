package fuzztests

import (
	"context"
	"testing"
	"time"

	"aic/internal/ast"
	"aic/internal/diag"
	"aic/internal/parser"
	"aic/internal/source"
	"aic/internal/testkit"
)

// parseTimeout is the maximum time allowed for parsing a single input.
// If parsing takes longer, it indicates a potential infinite loop.
const parseTimeout = 5 * time.Second

type parsed struct {
	file    *source.File
	builder *ast.Builder
	res     parser.Result
	bag     *diag.Bag
}

func parseInput(input []byte) parsed {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("fuzz.aic", input))
	bag := diag.NewBag(128)
	builder := ast.NewBuilder(ast.Hints{})
	res := parser.ParseFile(file, builder, parser.Options{
		Reporter:  diag.BagReporter{Bag: bag},
		MaxErrors: 128,
	})
	return parsed{file: file, builder: builder, res: res, bag: bag}
}

func FuzzParserBuildsAST(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		p := parseInput(clampInput(input))
		if !p.res.OK() || p.bag.HasErrors() {
			return
		}
		if err := testkit.CheckSpanInvariants(p.builder, p.res.Program, p.file); err != nil {
			t.Fatalf("span invariants: %v\ninput: %q", err, truncateForLog(input, 200))
		}
	})
}

// FuzzParserNoHang tests that the parser doesn't hang on any input.
// It uses a timeout to detect infinite loops in error recovery.
func FuzzParserNoHang(f *testing.F) {
	addCorpusSeeds(f)

	f.Add([]byte("let x = 1\nlet y = 2;"))               // missing semicolon
	f.Add([]byte("fn f() -> i32 { x + y\nlet z = 3; }")) // expression without semicolon
	f.Add([]byte("{ let x = 1 }"))                       // stray block
	f.Add([]byte("if if if { } else { }"))               // nested garbage conditions
	f.Add([]byte("fn f(a: i32, , b) -> { }"))            // broken parameter list
	f.Add([]byte("((((((((1"))                           // unclosed parens
	f.Add([]byte("f(1, 2,"))                             // unterminated call

	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		ctx, cancel := context.WithTimeout(context.Background(), parseTimeout)
		defer cancel()

		done := make(chan struct{})
		go func() {
			defer close(done)
			_ = parseInput(input)
		}()

		select {
		case <-done:
		case <-ctx.Done():
			t.Fatalf("parser hang detected: parsing took longer than %v\ninput (%d bytes): %q",
				parseTimeout, len(input), truncateForLog(input, 200))
		}
	})
}

// truncateForLog truncates input for logging purposes
func truncateForLog(input []byte, maxLen int) []byte {
	if len(input) <= maxLen {
		return input
	}
	return append(input[:maxLen:maxLen], []byte("...")...)
}
