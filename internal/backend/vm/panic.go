package vm

import "fmt"

// PanicCode identifies the type of VM panic.
type PanicCode int

// Stable panic codes - do not change values.
const (
	PanicDivisionByZero   PanicCode = 2001 // VM2001: integer division by zero
	PanicStackOverflow    PanicCode = 2002 // VM2002: call depth limit exceeded
	PanicMissingEntry     PanicCode = 2003 // VM2003: entry function not found
	PanicFellOffBlock     PanicCode = 2004 // VM2004: block without terminator
	PanicUninitializedUse PanicCode = 2005 // VM2005: load from a slot never stored to
	PanicCancelled        PanicCode = 2006 // VM2006: context cancelled
)

// String returns the code as "VM2001" format.
func (c PanicCode) String() string {
	return fmt.Sprintf("VM%d", c)
}

// VMError represents a runtime panic in the VM.
type VMError struct {
	Code      PanicCode
	Message   string
	Backtrace []string // function names, innermost first
}

// Error implements the error interface.
func (p *VMError) Error() string {
	return fmt.Sprintf("panic %s: %s", p.Code, p.Message)
}
