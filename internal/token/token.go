package token

import (
	"aic/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

// IsLiteral reports whether the token is an integer or boolean literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, KwTrue, KwFalse:
		return true
	default:
		return false
	}
}

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool {
	return t.Kind >= KwFn && t.Kind <= KwFalse
}

// IsPunctOrOp reports whether the token is punctuation or an operator.
func (t Token) IsPunctOrOp() bool {
	return t.Kind >= Plus && t.Kind <= Arrow
}

// IsStmtStart reports whether the token can begin a statement. The parser
// resynchronizes on these after an error.
func (t Token) IsStmtStart() bool {
	switch t.Kind {
	case KwFn, KwLet, KwVar, KwIf, KwReturn:
		return true
	default:
		return false
	}
}
