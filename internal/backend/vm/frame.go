package vm

// Frame represents a function activation record on the call stack.
type Frame struct {
	Func  *Function
	Block *Block
	args  []int64
	regs  []int64
	slots []int64
	init  []bool // slot has been stored to
}

// NewFrame creates a new frame for executing fn with the given arguments.
func NewFrame(fn *Function, args []int64) *Frame {
	return &Frame{
		Func:  fn,
		args:  args,
		regs:  make([]int64, fn.regs),
		slots: make([]int64, fn.slots),
		init:  make([]bool, fn.slots),
	}
}

func (f *Frame) get(v *Value) int64 {
	switch v.kind {
	case valueConst:
		return v.konst
	case valueParam:
		return f.args[v.index]
	default:
		return f.regs[v.index]
	}
}

func (f *Frame) set(v *Value, x int64) {
	if v != nil {
		f.regs[v.index] = wrap(v.typ, x)
	}
}
