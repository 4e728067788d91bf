package ir

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnsupported is returned by backends for operations they cannot perform.
var ErrUnsupported = errors.New("unsupported by backend")

// VerifyError describes one structural problem in a unit.
type VerifyError struct {
	Func  string
	Block string // empty for function-level problems
	Msg   string
}

func (e *VerifyError) Error() string {
	var sb strings.Builder
	sb.WriteString("verify: @" + e.Func)
	if e.Block != "" {
		sb.WriteString(", block %" + e.Block)
	}
	sb.WriteString(": " + e.Msg)
	return sb.String()
}

// Problems accumulates verification errors in discovery order.
type Problems struct {
	list []*VerifyError
}

func (p *Problems) Addf(fn, block, format string, args ...any) {
	p.list = append(p.list, &VerifyError{Func: fn, Block: block, Msg: fmt.Sprintf(format, args...)})
}

func (p *Problems) Len() int { return len(p.list) }

// All returns the recorded problems.
func (p *Problems) All() []*VerifyError { return p.list }

// Err joins every problem; errors.As finds the first *VerifyError.
func (p *Problems) Err() error {
	if len(p.list) == 0 {
		return nil
	}
	errs := make([]error, len(p.list))
	for i, e := range p.list {
		errs[i] = e
	}
	return errors.Join(errs...)
}

// Labels hands out unique names within one function: "then", "then.1", ...
type Labels struct {
	used map[string]int
}

func (l *Labels) Unique(hint string) string {
	if hint == "" {
		hint = "bb"
	}
	if l.used == nil {
		l.used = make(map[string]int)
	}
	n, seen := l.used[hint]
	l.used[hint] = n + 1
	if !seen {
		return hint
	}
	name := fmt.Sprintf("%s.%d", hint, n)
	// "a.1" может совпасть с ранее выданной явной меткой
	for {
		if _, taken := l.used[name]; !taken {
			l.used[name] = 1
			return name
		}
		n++
		l.used[hint] = n + 1
		name = fmt.Sprintf("%s.%d", hint, n)
	}
}
