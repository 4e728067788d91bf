package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid marks input the lexer could not recognize.
	Invalid Kind = iota
	EOF

	Ident
	IntLit

	KwFn     // fn
	KwLet    // let
	KwVar    // var
	KwIf     // if
	KwElse   // else
	KwReturn // return
	KwTrue   // true
	KwFalse  // false

	Plus   // +
	Minus  // -
	Star   // *
	Slash  // /
	Assign // =
	EqEq   // ==
	Bang   // !
	BangEq // !=
	Lt     // <
	LtEq   // <=
	Gt     // >
	GtEq   // >=
	AndAnd // &&
	OrOr   // ||

	LParen    // (
	RParen    // )
	LBrace    // {
	RBrace    // }
	Comma     // ,
	Colon     // :
	Semicolon // ;
	Arrow     // ->
)

var kindNames = [...]string{
	Invalid:   "invalid",
	EOF:       "EOF",
	Ident:     "identifier",
	IntLit:    "integer literal",
	KwFn:      "fn",
	KwLet:     "let",
	KwVar:     "var",
	KwIf:      "if",
	KwElse:    "else",
	KwReturn:  "return",
	KwTrue:    "true",
	KwFalse:   "false",
	Plus:      "+",
	Minus:     "-",
	Star:      "*",
	Slash:     "/",
	Assign:    "=",
	EqEq:      "==",
	Bang:      "!",
	BangEq:    "!=",
	Lt:        "<",
	LtEq:      "<=",
	Gt:        ">",
	GtEq:      ">=",
	AndAnd:    "&&",
	OrOr:      "||",
	LParen:    "(",
	RParen:    ")",
	LBrace:    "{",
	RBrace:    "}",
	Comma:     ",",
	Colon:     ":",
	Semicolon: ";",
	Arrow:     "->",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}
