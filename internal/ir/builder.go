package ir

import "context"

// Value is an SSA value produced by a Builder.
type Value interface {
	Type() Type
}

// Func is a function handle.
type Func interface {
	Name() string
	ParamTypes() []Type
	Result() Type
}

// Block is a basic block handle.
type Block interface {
	Label() string
	Func() Func
	// Terminated reports whether the block already ends in br/condbr/ret.
	Terminated() bool
}

// Builder materializes functions, blocks and instructions.
//
// Instructions are appended at the insertion point set by PositionAt.
// Emitting into a terminated block is a misuse reported by Verify.
type Builder interface {
	// CreateFunction declares a function; names are unique within a unit.
	CreateFunction(name string, params []Type, result Type) (Func, error)
	Param(fn Func, i int) Value

	// AppendBlock adds a block at the end of fn. The label is a hint;
	// backends make it unique within the function.
	AppendBlock(fn Func, label string) Block
	// RemoveBlock deletes a block that has no predecessors.
	RemoveBlock(b Block)
	PositionAt(b Block)
	// InsertBlock returns the current insertion block, nil before PositionAt.
	InsertBlock() Block

	ConstInt(t Type, v int64) Value
	BuildBinary(op BinaryOp, lhs, rhs Value) Value
	BuildUnary(op UnaryOp, v Value) Value
	BuildCompare(pred Predicate, lhs, rhs Value) Value
	// BuildCall returns nil for void callees.
	BuildCall(fn Func, args []Value) Value

	BuildAlloca(t Type, name string) Value
	BuildStore(v, slot Value)
	BuildLoad(t Type, slot Value) Value

	BuildCondBr(cond Value, then, els Block)
	BuildBr(target Block)
	// BuildRet returns from the current function; v is nil for void.
	BuildRet(v Value)

	// Verify checks the structural rules of the unit.
	Verify() error
	// String prints the unit as text.
	String() string
	// EmitObject writes a native object file to path.
	EmitObject(ctx context.Context, path string) error
}
