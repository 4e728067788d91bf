package fuzztests

import (
	"testing"

	"aic/internal/diag"
	"aic/internal/lexer"
	"aic/internal/source"
	"aic/internal/token"
)

const maxFuzzInput = 1 << 16 // 64 KiB

func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		return append([]byte(nil), input[:maxFuzzInput]...)
	}
	return append([]byte(nil), input...)
}

func FuzzLexerTokens(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.aic", input))

		bag := diag.NewBag(64)
		lx := lexer.New(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
		var prevEnd uint32
		for n := 0; ; n++ {
			tok := lx.Next()
			if tok.Kind == token.EOF {
				break
			}
			if tok.Span.Start < prevEnd || tok.Span.End < tok.Span.Start {
				t.Fatalf("token %d span %v goes backwards (prev end %d)", n, tok.Span, prevEnd)
			}
			prevEnd = tok.Span.End
			// каждый токен съедает хотя бы байт
			if n > len(input) {
				t.Fatalf("lexer produced more tokens than input bytes")
			}
		}
	})
}
