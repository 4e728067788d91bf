package symbols

import (
	"errors"
	"fmt"

	"aic/internal/source"
)

var (
	ErrDuplicateBinding = errors.New("duplicate binding")
	ErrUnboundName      = errors.New("unbound name")
)

// DuplicateBindingError is returned by Declare when the innermost scope
// already holds the name.
type DuplicateBindingError struct {
	Name     string
	Span     source.Span
	Previous source.Span
}

func (e *DuplicateBindingError) Error() string {
	return fmt.Sprintf("duplicate binding '%s' in the same scope", e.Name)
}

func (e *DuplicateBindingError) Is(target error) bool {
	return target == ErrDuplicateBinding
}

type UnboundNameError struct {
	Name string
}

func (e *UnboundNameError) Error() string {
	return fmt.Sprintf("unbound name '%s'", e.Name)
}

func (e *UnboundNameError) Is(target error) bool {
	return target == ErrUnboundName
}
