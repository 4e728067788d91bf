package vm

import "aic/internal/ir"

// Verify applies the structural rules shared with the LLVM backend.
// Problems recorded while building (emission after a terminator, foreign
// operands) are reported first.
func (m *Module) Verify() error {
	var p ir.Problems
	for _, e := range m.problems.All() {
		p.Addf(e.Func, e.Block, "%s", e.Msg)
	}
	for _, f := range m.funcs {
		verifyFunc(&p, f)
	}
	return p.Err()
}

func verifyFunc(p *ir.Problems, f *Function) {
	if len(f.Blocks) == 0 {
		p.Addf(f.name, "", "function has no blocks")
		return
	}
	owned := make(map[*Block]bool, len(f.Blocks))
	for _, b := range f.Blocks {
		owned[b] = true
	}
	for _, b := range f.Blocks {
		for _, in := range b.Instrs {
			verifyInstr(p, f, b, in)
		}
		if b.Term == nil {
			p.Addf(f.name, b.label, "block does not end in a terminator")
			continue
		}
		verifyTerm(p, f, b, owned)
	}
}

func verifyInstr(p *ir.Problems, f *Function, b *Block, in *Instr) {
	switch in.Op {
	case OpBinary:
		l, r := in.Args[0].typ, in.Args[1].typ
		if l != r || !l.IsInt() {
			p.Addf(f.name, b.label, "%s operands %s and %s", in.Bin, l, r)
		}
	case OpUnary:
		if !in.Args[0].typ.IsInt() {
			p.Addf(f.name, b.label, "%s operand %s", in.Un, in.Args[0].typ)
		}
	case OpCompare:
		l, r := in.Args[0].typ, in.Args[1].typ
		if l != r || !l.IsInt() {
			p.Addf(f.name, b.label, "icmp %s operands %s and %s", in.Pred, l, r)
		}
	case OpCall:
		params := in.Callee.params
		if len(in.Args) != len(params) {
			p.Addf(f.name, b.label, "call @%s with %d arguments, expected %d", in.Callee.name, len(in.Args), len(params))
			return
		}
		for i, a := range in.Args {
			if a.typ != params[i] {
				p.Addf(f.name, b.label, "call @%s argument %d is %s, expected %s", in.Callee.name, i, a.typ, params[i])
			}
		}
	case OpStore:
		v, slot := in.Args[0], in.Args[1]
		if slot.typ != ir.Ptr {
			p.Addf(f.name, b.label, "store to non-slot %s", slot.typ)
		} else if v.typ != slot.elem {
			p.Addf(f.name, b.label, "store %s into %s slot", v.typ, slot.elem)
		}
	case OpLoad:
		slot := in.Args[0]
		if slot.typ != ir.Ptr {
			p.Addf(f.name, b.label, "load from non-slot %s", slot.typ)
		} else if in.Type != slot.elem {
			p.Addf(f.name, b.label, "load %s from %s slot", in.Type, slot.elem)
		}
	}
}

func verifyTerm(p *ir.Problems, f *Function, b *Block, owned map[*Block]bool) {
	in := b.Term
	for _, t := range in.Targets {
		if t == nil || !owned[t] {
			p.Addf(f.name, b.label, "branch to a block outside the function")
		}
	}
	switch in.Op {
	case OpCondBr:
		if in.Args[0].typ != ir.I1 {
			p.Addf(f.name, b.label, "conditional branch on %s, expected i1", in.Args[0].typ)
		}
	case OpRet:
		switch {
		case len(in.Args) == 0 && f.result != ir.Void:
			p.Addf(f.name, b.label, "ret void in function returning %s", f.result)
		case len(in.Args) == 1 && in.Args[0].typ != f.result:
			p.Addf(f.name, b.label, "ret %s in function returning %s", in.Args[0].typ, f.result)
		}
	}
}
