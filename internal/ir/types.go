package ir

// Type is a first-class IR type.
type Type uint8

const (
	Void Type = iota
	I1
	I32
	I64
	// Ptr is the type of a stack slot returned by BuildAlloca.
	Ptr
)

func (t Type) String() string {
	switch t {
	case Void:
		return "void"
	case I1:
		return "i1"
	case I32:
		return "i32"
	case I64:
		return "i64"
	case Ptr:
		return "ptr"
	default:
		return "type(?)"
	}
}

// Bits returns the integer width, 0 for non-integers.
func (t Type) Bits() int {
	switch t {
	case I1:
		return 1
	case I32:
		return 32
	case I64:
		return 64
	default:
		return 0
	}
}

func (t Type) IsInt() bool {
	return t.Bits() > 0
}

type BinaryOp uint8

const (
	Add BinaryOp = iota
	Sub
	Mul
	SDiv
	And
	Or
	Xor
)

var binaryOpNames = [...]string{
	Add:  "add",
	Sub:  "sub",
	Mul:  "mul",
	SDiv: "sdiv",
	And:  "and",
	Or:   "or",
	Xor:  "xor",
}

func (op BinaryOp) String() string {
	if int(op) < len(binaryOpNames) {
		return binaryOpNames[op]
	}
	return "binop(?)"
}

type UnaryOp uint8

const (
	// Neg is two's-complement negation of an integer.
	Neg UnaryOp = iota
	// Not flips every bit; on i1 it is logical negation.
	Not
)

func (op UnaryOp) String() string {
	if op == Not {
		return "not"
	}
	return "neg"
}

// Predicate is a signed integer comparison.
type Predicate uint8

const (
	EQ Predicate = iota
	NE
	SLT
	SLE
	SGT
	SGE
)

var predicateNames = [...]string{
	EQ:  "eq",
	NE:  "ne",
	SLT: "slt",
	SLE: "sle",
	SGT: "sgt",
	SGE: "sge",
}

func (p Predicate) String() string {
	if int(p) < len(predicateNames) {
		return predicateNames[p]
	}
	return "pred(?)"
}
