package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Лексические
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedBlockComment Code = 1002
	LexBadNumber                Code = 1003

	// Синтаксические
	SynInfo             Code = 2000
	SynUnexpectedToken  Code = 2001
	SynUnclosedParen    Code = 2002
	SynUnclosedBrace    Code = 2003
	SynExpectSemicolon  Code = 2004
	SynExpectIdentifier Code = 2005
	SynExpectType       Code = 2006
	SynExpectExpression Code = 2007
	SynExpectColon      Code = 2008
	SynExpectArrow      Code = 2009
	SynExpectBlock      Code = 2010
	SynFnNotAllowed     Code = 2011
	SynLetNeedsInit     Code = 2012
	SynVarNeedsType     Code = 2013
	SynBadAssignTarget  Code = 2014
	SynCallTarget       Code = 2015

	// Семантические: имена и типы
	SemaInfo                Code = 3000
	SemaDuplicateBinding    Code = 3001
	SemaUnboundName         Code = 3002
	SemaTypeMismatch        Code = 3003
	SemaUnsupportedType     Code = 3004
	SemaImmutableAssignment Code = 3005
	SemaArityMismatch       Code = 3006
	SemaMissingReturn       Code = 3007
	SemaIntOutOfRange       Code = 3008
	SemaEntrypointConflict  Code = 3009

	// Ввод-вывод
	IOLoadFileError Code = 4001

	// Бэкенд
	BackendVerifyFailed Code = 5001
	BackendEmitFailed   Code = 5002

	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

var codeDescription = map[Code]string{
	UnknownCode:                 "Unknown error",
	LexInfo:                     "Lexical information",
	LexUnknownChar:              "Unknown character",
	LexUnterminatedBlockComment: "Unterminated block comment",
	LexBadNumber:                "Bad number literal",

	SynInfo:             "Syntax information",
	SynUnexpectedToken:  "Unexpected token",
	SynUnclosedParen:    "Unclosed parenthesis",
	SynUnclosedBrace:    "Unclosed brace",
	SynExpectSemicolon:  "Expected semicolon",
	SynExpectIdentifier: "Expected identifier",
	SynExpectType:       "Expected type",
	SynExpectExpression: "Expected expression",
	SynExpectColon:      "Expected colon",
	SynExpectArrow:      "Expected '->' and a return type",
	SynExpectBlock:      "Expected block",
	SynFnNotAllowed:     "Function declaration is only allowed at top level",
	SynLetNeedsInit:     "let binding requires an initializer",
	SynVarNeedsType:     "var without initializer requires a type",
	SynBadAssignTarget:  "Invalid assignment target",
	SynCallTarget:       "Only named functions can be called",

	SemaInfo:                "Semantic information",
	SemaDuplicateBinding:    "Duplicate binding",
	SemaUnboundName:         "Unbound name",
	SemaTypeMismatch:        "Type mismatch",
	SemaUnsupportedType:     "Unsupported type",
	SemaImmutableAssignment: "Assignment to immutable binding",
	SemaArityMismatch:       "Wrong number of arguments",
	SemaMissingReturn:       "Missing return in function",
	SemaIntOutOfRange:       "Integer literal out of range",
	SemaEntrypointConflict:  "Conflicts with the implicit entry point",

	IOLoadFileError: "I/O load file error",

	BackendVerifyFailed: "IR verification failed",
	BackendEmitFailed:   "Object emission failed",

	ObsInfo:    "Observability information",
	ObsTimings: "Pipeline timings",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("BCK%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
