package codegen

import (
	"errors"
	"fmt"

	"aic/internal/diag"
	"aic/internal/source"
	"aic/internal/symbols"
)

// Error is a lowering failure tied to a source location.
type Error struct {
	Code  diag.Code
	Span  source.Span
	Msg   string
	Notes []diag.Note
	Err   error // underlying cause, may be nil
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code.ID(), e.Msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Diagnostic converts the error into a bag entry.
func (e *Error) Diagnostic() diag.Diagnostic {
	d := diag.NewError(e.Code, e.Span, e.Msg)
	for _, n := range e.Notes {
		d = d.WithNote(n.Span, n.Msg)
	}
	return d
}

func errorf(code diag.Code, span source.Span, format string, args ...any) *Error {
	return &Error{Code: code, Span: span, Msg: fmt.Sprintf(format, args...)}
}

// fromSymbols maps scope errors to their diagnostic codes.
func fromSymbols(err error, span source.Span) *Error {
	e := &Error{Code: diag.UnknownCode, Span: span, Msg: err.Error(), Err: err}
	var dup *symbols.DuplicateBindingError
	switch {
	case errors.As(err, &dup):
		e.Code = diag.SemaDuplicateBinding
		if !dup.Previous.Empty() {
			e.Notes = append(e.Notes, diag.Note{Span: dup.Previous, Msg: "previous declaration is here"})
		}
	case errors.Is(err, symbols.ErrUnboundName):
		e.Code = diag.SemaUnboundName
	}
	return e
}
