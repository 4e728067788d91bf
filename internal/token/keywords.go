package token

var keywords = map[string]Kind{
	"fn":     KwFn,
	"let":    KwLet,
	"var":    KwVar,
	"if":     KwIf,
	"else":   KwElse,
	"return": KwReturn,
	"true":   KwTrue,
	"false":  KwFalse,
}

// LookupKeyword reports the keyword kind for an identifier-shaped lexeme.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
