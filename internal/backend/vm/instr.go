package vm

import "aic/internal/ir"

type Op uint8

const (
	OpBinary Op = iota
	OpUnary
	OpCompare
	OpCall
	OpAlloca
	OpStore
	OpLoad
	OpCondBr
	OpBr
	OpRet
)

var opNames = [...]string{
	OpBinary:  "binary",
	OpUnary:   "unary",
	OpCompare: "icmp",
	OpCall:    "call",
	OpAlloca:  "alloca",
	OpStore:   "store",
	OpLoad:    "load",
	OpCondBr:  "br",
	OpBr:      "br",
	OpRet:     "ret",
}

func (op Op) String() string {
	if int(op) < len(opNames) {
		return opNames[op]
	}
	return "op(?)"
}

// IsTerminator reports br/condbr/ret.
func (op Op) IsTerminator() bool {
	return op == OpCondBr || op == OpBr || op == OpRet
}

// Instr is one recorded instruction.
type Instr struct {
	Op      Op
	Result  *Value
	Args    []*Value
	Bin     ir.BinaryOp
	Un      ir.UnaryOp
	Pred    ir.Predicate
	Callee  *Function
	Targets []*Block
	Type    ir.Type // alloca element type, load result type
	Slot    int     // alloca frame slot index
}
