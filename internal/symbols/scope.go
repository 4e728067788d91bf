package symbols

// ScopeKind enumerates supported scope categories.
type ScopeKind uint8

const (
	ScopeInvalid  ScopeKind = iota
	ScopeModule             // top-level statements of the implicit entry point
	ScopeFunction           // parameters and body of a function
	ScopeBlock              // branch of an if
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeModule:
		return "module"
	case ScopeFunction:
		return "function"
	case ScopeBlock:
		return "block"
	default:
		return "invalid"
	}
}

type scope struct {
	kind  ScopeKind
	names map[string]Binding
}
