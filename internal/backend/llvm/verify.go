package llvm

import (
	"fmt"

	llir "github.com/llir/llvm/ir"
	lltypes "github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"aic/internal/ir"
)

// Verify checks the module before it is printed or compiled: every
// function has a body, every block ends in a terminator, returns match
// the signature, branch conditions are i1, stores and loads match their
// slot and calls match the callee.
func (m *Module) Verify() error {
	var p ir.Problems
	for _, e := range m.problems.All() {
		p.Addf(e.Func, e.Block, "%s", e.Msg)
	}
	for _, f := range m.mod.Funcs {
		verifyFunc(&p, f)
	}
	return p.Err()
}

func verifyFunc(p *ir.Problems, f *llir.Func) {
	name := f.Name()
	if len(f.Blocks) == 0 {
		p.Addf(name, "", "function has no blocks")
		return
	}
	owned := make(map[value.Value]bool, len(f.Blocks))
	for _, b := range f.Blocks {
		owned[b] = true
	}
	for _, b := range f.Blocks {
		label := b.LocalName
		for _, inst := range b.Insts {
			if msg := checkInst(inst); msg != "" {
				p.Addf(name, label, "%s", msg)
			}
		}
		if b.Term == nil {
			p.Addf(name, label, "block does not end in a terminator")
			continue
		}
		for _, msg := range checkTerm(f, b.Term, owned) {
			p.Addf(name, label, "%s", msg)
		}
	}
}

func checkInst(inst llir.Instruction) string {
	switch inst := inst.(type) {
	case *llir.InstAdd:
		return checkPair("add", inst.X, inst.Y)
	case *llir.InstSub:
		return checkPair("sub", inst.X, inst.Y)
	case *llir.InstMul:
		return checkPair("mul", inst.X, inst.Y)
	case *llir.InstSDiv:
		return checkPair("sdiv", inst.X, inst.Y)
	case *llir.InstAnd:
		return checkPair("and", inst.X, inst.Y)
	case *llir.InstOr:
		return checkPair("or", inst.X, inst.Y)
	case *llir.InstXor:
		return checkPair("xor", inst.X, inst.Y)
	case *llir.InstICmp:
		return checkPair("icmp", inst.X, inst.Y)
	case *llir.InstStore:
		slot, ok := inst.Dst.(*llir.InstAlloca)
		if !ok {
			return "store to a value that is not a stack slot"
		}
		if !inst.Src.Type().Equal(slot.ElemType) {
			return fmt.Sprintf("store %s into %s slot", inst.Src.Type(), slot.ElemType)
		}
	case *llir.InstLoad:
		slot, ok := inst.Src.(*llir.InstAlloca)
		if !ok {
			return "load from a value that is not a stack slot"
		}
		if !inst.ElemType.Equal(slot.ElemType) {
			return fmt.Sprintf("load %s from %s slot", inst.ElemType, slot.ElemType)
		}
	case *llir.InstCall:
		callee, ok := inst.Callee.(*llir.Func)
		if !ok {
			return "indirect call"
		}
		if len(inst.Args) != len(callee.Params) {
			return fmt.Sprintf("call @%s with %d arguments, expected %d", callee.Name(), len(inst.Args), len(callee.Params))
		}
		for i, a := range inst.Args {
			if want := callee.Params[i].Type(); !a.Type().Equal(want) {
				return fmt.Sprintf("call @%s argument %d is %s, expected %s", callee.Name(), i, a.Type(), want)
			}
		}
	}
	return ""
}

func checkPair(op string, x, y value.Value) string {
	if !x.Type().Equal(y.Type()) {
		return fmt.Sprintf("%s operands %s and %s", op, x.Type(), y.Type())
	}
	return ""
}

func checkTerm(f *llir.Func, term llir.Terminator, owned map[value.Value]bool) []string {
	var msgs []string
	target := func(t value.Value) {
		if !owned[t] {
			msgs = append(msgs, "branch to a block outside the function")
		}
	}
	switch term := term.(type) {
	case *llir.TermBr:
		target(term.Target)
	case *llir.TermCondBr:
		if !term.Cond.Type().Equal(lltypes.I1) {
			msgs = append(msgs, fmt.Sprintf("conditional branch on %s, expected i1", term.Cond.Type()))
		}
		target(term.TargetTrue)
		target(term.TargetFalse)
	case *llir.TermRet:
		ret := f.Sig.RetType
		switch {
		case term.X == nil && !ret.Equal(lltypes.Void):
			msgs = append(msgs, fmt.Sprintf("ret void in function returning %s", ret))
		case term.X != nil && !term.X.Type().Equal(ret):
			msgs = append(msgs, fmt.Sprintf("ret %s in function returning %s", term.X.Type(), ret))
		}
	}
	return msgs
}
