package symbols

// Env is an ordered stack of scopes, innermost last.
type Env struct {
	scopes []scope
}

// Snapshot is a saved scope stack, see Save.
type Snapshot struct {
	scopes []scope
}

func NewEnv() *Env {
	return &Env{}
}

func (e *Env) Push(kind ScopeKind) {
	e.scopes = append(e.scopes, scope{kind: kind, names: make(map[string]Binding)})
}

// Pop discards the innermost scope. Popping an empty stack panics.
func (e *Env) Pop() {
	if len(e.scopes) == 0 {
		panic("symbols: Pop on empty environment")
	}
	e.scopes[len(e.scopes)-1] = scope{}
	e.scopes = e.scopes[:len(e.scopes)-1]
}

func (e *Env) Depth() int {
	return len(e.scopes)
}

// Kind returns the kind of the innermost scope.
func (e *Env) Kind() ScopeKind {
	if len(e.scopes) == 0 {
		return ScopeInvalid
	}
	return e.scopes[len(e.scopes)-1].kind
}

// Declare adds b to the innermost scope. Only that scope is checked for
// duplicates; names in outer scopes are shadowed.
func (e *Env) Declare(b Binding) error {
	if len(e.scopes) == 0 {
		e.Push(ScopeModule)
	}
	top := e.scopes[len(e.scopes)-1].names
	if prev, ok := top[b.Name]; ok {
		return &DuplicateBindingError{Name: b.Name, Span: b.Span, Previous: prev.Span}
	}
	top[b.Name] = b
	return nil
}

// Resolve looks name up from the innermost scope outwards.
func (e *Env) Resolve(name string) (Binding, error) {
	if b, ok := e.Lookup(name); ok {
		return b, nil
	}
	return Binding{}, &UnboundNameError{Name: name}
}

func (e *Env) Lookup(name string) (Binding, bool) {
	for i := len(e.scopes) - 1; i >= 0; i-- {
		if b, ok := e.scopes[i].names[name]; ok {
			return b, true
		}
	}
	return Binding{}, false
}

// Save detaches the current stack and leaves the environment empty, so a
// nested function body cannot see the enclosing bindings.
func (e *Env) Save() Snapshot {
	s := Snapshot{scopes: e.scopes}
	e.scopes = nil
	return s
}

// Restore reinstates a stack returned by Save.
func (e *Env) Restore(s Snapshot) {
	e.scopes = s.scopes
}
