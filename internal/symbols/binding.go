package symbols

import (
	"aic/internal/ir"
	"aic/internal/source"
)

// Binding is a named stack slot.
type Binding struct {
	Name    string
	Slot    ir.Value
	Type    ir.Type // type of the value stored in Slot
	Mutable bool
	Span    source.Span
}
