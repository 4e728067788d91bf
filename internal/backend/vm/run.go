package vm

import (
	"context"
	"fmt"

	"aic/internal/ir"
)

// DefaultMaxDepth bounds recursion of interpreted calls.
const DefaultMaxDepth = 1024

// cancellation is checked every this many executed blocks
const cancelCheckEvery = 1 << 10

type Options struct {
	MaxDepth int
}

// VM interprets a recorded Module.
type VM struct {
	mod   *Module
	opts  Options
	depth int
	steps uint64
}

func NewVM(m *Module, opts Options) *VM {
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	return &VM{mod: m, opts: opts}
}

// Run executes entry with default options and returns its result.
func (m *Module) Run(ctx context.Context, entry string) (int64, error) {
	return NewVM(m, Options{}).Run(ctx, entry)
}

// Run executes entry with the given arguments. A void entry yields 0.
func (vm *VM) Run(ctx context.Context, entry string, args ...int64) (int64, error) {
	fn, ok := vm.mod.Lookup(entry)
	if !ok {
		return 0, &VMError{Code: PanicMissingEntry, Message: fmt.Sprintf("function @%s not found", entry)}
	}
	if len(args) != len(fn.params) {
		return 0, &VMError{Code: PanicMissingEntry, Message: fmt.Sprintf("@%s takes %d arguments, got %d", entry, len(fn.params), len(args))}
	}
	wrapped := make([]int64, len(args))
	for i, a := range args {
		wrapped[i] = wrap(fn.params[i], a)
	}
	res, vmErr := vm.call(ctx, fn, wrapped)
	if vmErr != nil {
		return 0, vmErr
	}
	return res, nil
}

// ExitCode converts a main result into a process status byte,
// keeping the low 8 bits the way the OS does. So -(1) exits with 255,
// not 1 as the upstream scenario for negative results states.
func ExitCode(result int64) uint8 {
	return uint8(result & 0xff) //nolint:gosec // truncation is the point
}

func (vm *VM) call(ctx context.Context, fn *Function, args []int64) (int64, *VMError) {
	var (
		res   int64
		vmErr *VMError
	)
	if vm.depth >= vm.opts.MaxDepth {
		vmErr = &VMError{Code: PanicStackOverflow, Message: fmt.Sprintf("call depth exceeds %d", vm.opts.MaxDepth)}
	} else {
		vm.depth++
		res, vmErr = vm.exec(ctx, NewFrame(fn, args))
		vm.depth--
	}
	if vmErr != nil {
		vmErr.Backtrace = append(vmErr.Backtrace, fn.name)
	}
	return res, vmErr
}

func (vm *VM) exec(ctx context.Context, fr *Frame) (int64, *VMError) {
	fn := fr.Func
	if len(fn.Blocks) == 0 {
		return 0, &VMError{Code: PanicFellOffBlock, Message: fmt.Sprintf("@%s has no body", fn.name)}
	}
	fr.Block = fn.Blocks[0]
	for {
		vm.steps++
		if vm.steps%cancelCheckEvery == 0 && ctx.Err() != nil {
			return 0, &VMError{Code: PanicCancelled, Message: ctx.Err().Error()}
		}
		b := fr.Block
		for _, in := range b.Instrs {
			if vmErr := vm.step(ctx, fr, in); vmErr != nil {
				return 0, vmErr
			}
		}
		t := b.Term
		if t == nil {
			return 0, &VMError{Code: PanicFellOffBlock, Message: fmt.Sprintf("block %%%s has no terminator", b.label)}
		}
		switch t.Op {
		case OpBr:
			fr.Block = t.Targets[0]
		case OpCondBr:
			if fr.get(t.Args[0]) != 0 {
				fr.Block = t.Targets[0]
			} else {
				fr.Block = t.Targets[1]
			}
		case OpRet:
			if len(t.Args) == 0 {
				return 0, nil
			}
			return fr.get(t.Args[0]), nil
		}
		if fr.Block == nil {
			return 0, &VMError{Code: PanicFellOffBlock, Message: fmt.Sprintf("branch from %%%s to a missing block", b.label)}
		}
	}
}

func (vm *VM) step(ctx context.Context, fr *Frame, in *Instr) *VMError {
	switch in.Op {
	case OpBinary:
		a, b := fr.get(in.Args[0]), fr.get(in.Args[1])
		x, vmErr := binary(in.Bin, a, b)
		if vmErr != nil {
			return vmErr
		}
		fr.set(in.Result, x)
	case OpUnary:
		a := fr.get(in.Args[0])
		if in.Un == ir.Neg {
			fr.set(in.Result, -a)
		} else {
			fr.set(in.Result, ^a)
		}
	case OpCompare:
		t := in.Args[0].typ
		a, b := signed(t, fr.get(in.Args[0])), signed(t, fr.get(in.Args[1]))
		fr.set(in.Result, boolInt(compare(in.Pred, a, b)))
	case OpCall:
		args := make([]int64, len(in.Args))
		for i, a := range in.Args {
			args[i] = fr.get(a)
		}
		res, vmErr := vm.call(ctx, in.Callee, args)
		if vmErr != nil {
			return vmErr
		}
		fr.set(in.Result, res)
	case OpAlloca:
		fr.set(in.Result, int64(in.Slot))
		fr.init[in.Slot] = false
	case OpStore:
		slot := fr.get(in.Args[1])
		fr.slots[slot] = fr.get(in.Args[0])
		fr.init[slot] = true
	case OpLoad:
		slot := fr.get(in.Args[0])
		if !fr.init[slot] {
			return &VMError{Code: PanicUninitializedUse, Message: fmt.Sprintf("load from uninitialized slot in %%%s", fr.Block.label)}
		}
		fr.set(in.Result, fr.slots[slot])
	}
	return nil
}

func binary(op ir.BinaryOp, a, b int64) (int64, *VMError) {
	switch op {
	case ir.Add:
		return a + b, nil
	case ir.Sub:
		return a - b, nil
	case ir.Mul:
		return a * b, nil
	case ir.SDiv:
		if b == 0 {
			return 0, &VMError{Code: PanicDivisionByZero, Message: "integer division by zero"}
		}
		return a / b, nil
	case ir.And:
		return a & b, nil
	case ir.Or:
		return a | b, nil
	case ir.Xor:
		return a ^ b, nil
	}
	return 0, &VMError{Code: PanicFellOffBlock, Message: "unknown binary op " + op.String()}
}

func compare(p ir.Predicate, a, b int64) bool {
	switch p {
	case ir.EQ:
		return a == b
	case ir.NE:
		return a != b
	case ir.SLT:
		return a < b
	case ir.SLE:
		return a <= b
	case ir.SGT:
		return a > b
	default:
		return a >= b
	}
}

// wrap truncates v to the width of t, two's complement.
func wrap(t ir.Type, v int64) int64 {
	switch t {
	case ir.I1:
		return v & 1
	case ir.I32:
		return int64(int32(v)) //nolint:gosec // wrap-around is the semantics
	default:
		return v
	}
}

// signed reads an i1 the way icmp does: 1 is -1.
func signed(t ir.Type, v int64) int64 {
	if t == ir.I1 {
		return -v
	}
	return v
}

func boolInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
