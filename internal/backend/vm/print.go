package vm

import (
	"fmt"
	"strings"

	"aic/internal/ir"
)

// String prints the unit in an LLVM-like listing.
func (m *Module) String() string {
	var sb strings.Builder
	for i, f := range m.funcs {
		if i > 0 {
			sb.WriteByte('\n')
		}
		writeFunc(&sb, f)
	}
	return sb.String()
}

func writeFunc(sb *strings.Builder, f *Function) {
	params := make([]string, len(f.params))
	for i, t := range f.params {
		params[i] = fmt.Sprintf("%s %%arg%d", t, i)
	}
	fmt.Fprintf(sb, "define %s @%s(%s) {\n", f.result, f.name, strings.Join(params, ", "))
	for i, b := range f.Blocks {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(b.label + ":\n")
		for _, in := range b.Instrs {
			sb.WriteString("  " + formatInstr(in) + "\n")
		}
		if b.Term != nil {
			sb.WriteString("  " + formatInstr(b.Term) + "\n")
		}
	}
	sb.WriteString("}\n")
}

func operand(v *Value) string {
	switch v.kind {
	case valueConst:
		if v.typ == ir.I1 {
			if v.konst != 0 {
				return "true"
			}
			return "false"
		}
		return fmt.Sprintf("%d", v.konst)
	case valueParam:
		return fmt.Sprintf("%%arg%d", v.index)
	default:
		return "%" + v.name
	}
}

func typed(v *Value) string {
	return v.typ.String() + " " + operand(v)
}

func formatInstr(in *Instr) string {
	var rhs string
	switch in.Op {
	case OpBinary:
		rhs = fmt.Sprintf("%s %s, %s", in.Bin, typed(in.Args[0]), operand(in.Args[1]))
	case OpUnary:
		rhs = fmt.Sprintf("%s %s", in.Un, typed(in.Args[0]))
	case OpCompare:
		rhs = fmt.Sprintf("icmp %s %s, %s", in.Pred, typed(in.Args[0]), operand(in.Args[1]))
	case OpCall:
		args := make([]string, len(in.Args))
		for i, a := range in.Args {
			args[i] = typed(a)
		}
		rhs = fmt.Sprintf("call %s @%s(%s)", in.Callee.result, in.Callee.name, strings.Join(args, ", "))
	case OpAlloca:
		rhs = "alloca " + in.Type.String()
	case OpStore:
		rhs = fmt.Sprintf("store %s, ptr %s", typed(in.Args[0]), operand(in.Args[1]))
	case OpLoad:
		rhs = fmt.Sprintf("load %s, ptr %s", in.Type, operand(in.Args[0]))
	case OpCondBr:
		rhs = fmt.Sprintf("br i1 %s, label %%%s, label %%%s", operand(in.Args[0]), label(in.Targets[0]), label(in.Targets[1]))
	case OpBr:
		rhs = "br label %" + label(in.Targets[0])
	case OpRet:
		if len(in.Args) == 0 {
			rhs = "ret void"
		} else {
			rhs = "ret " + typed(in.Args[0])
		}
	}
	if in.Result != nil {
		return "%" + in.Result.name + " = " + rhs
	}
	return rhs
}

func label(b *Block) string {
	if b == nil {
		return "<nil>"
	}
	return b.label
}
