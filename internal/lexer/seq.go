package lexer

import (
	"iter"

	"aic/internal/source"
	"aic/internal/token"
)

// All returns the token sequence of file, ending with EOF.
// Every iteration scans the file from the start, so the sequence can be
// ranged over any number of times.
func All(file *source.File, opts Options) iter.Seq[token.Token] {
	return func(yield func(token.Token) bool) {
		lx := New(file, opts)
		for {
			tok := lx.Next()
			if !yield(tok) || tok.Kind == token.EOF {
				return
			}
		}
	}
}

// Collect drains a fresh lexer over file into a slice (EOF included).
func Collect(file *source.File, opts Options) []token.Token {
	var out []token.Token
	for tok := range All(file, opts) {
		out = append(out, tok)
	}
	return out
}
