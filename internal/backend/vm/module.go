package vm

import (
	"context"
	"fmt"

	"aic/internal/ir"
)

type valueKind uint8

const (
	valueConst valueKind = iota
	valueParam
	valueReg
)

// Value is a constant, a parameter or the result of an instruction.
type Value struct {
	kind  valueKind
	typ   ir.Type
	konst int64
	index int     // parameter index or register number
	name  string  // printable register name, empty for numbered ones
	elem  ir.Type // slot element type for alloca results
}

func (v *Value) Type() ir.Type { return v.typ }

// Function is a recorded function.
type Function struct {
	name    string
	params  []ir.Type
	result  ir.Type
	Blocks  []*Block
	args    []*Value
	regs    int
	slots   int
	labels  ir.Labels
	numbers int
}

func (f *Function) Name() string          { return f.name }
func (f *Function) ParamTypes() []ir.Type { return f.params }
func (f *Function) Result() ir.Type       { return f.result }

// Block is a recorded basic block. Term is nil until a terminator is built.
type Block struct {
	label  string
	fn     *Function
	Instrs []*Instr
	Term   *Instr
}

func (b *Block) Label() string    { return b.label }
func (b *Block) Func() ir.Func    { return b.fn }
func (b *Block) Terminated() bool { return b.Term != nil }

// Module records one compilation unit and implements ir.Builder.
type Module struct {
	funcs    []*Function
	byName   map[string]*Function
	cur      *Block
	problems ir.Problems
}

var _ ir.Builder = (*Module)(nil)

func New() *Module {
	return &Module{byName: make(map[string]*Function)}
}

// Functions returns the recorded functions in creation order.
func (m *Module) Functions() []*Function {
	return m.funcs
}

// Lookup finds a function by name.
func (m *Module) Lookup(name string) (*Function, bool) {
	f, ok := m.byName[name]
	return f, ok
}

func (m *Module) CreateFunction(name string, params []ir.Type, result ir.Type) (ir.Func, error) {
	if _, exists := m.byName[name]; exists {
		return nil, fmt.Errorf("function @%s already defined", name)
	}
	f := &Function{name: name, params: append([]ir.Type(nil), params...), result: result}
	for i, t := range params {
		f.args = append(f.args, &Value{kind: valueParam, typ: t, index: i})
	}
	m.funcs = append(m.funcs, f)
	m.byName[name] = f
	return f, nil
}

func (m *Module) Param(fn ir.Func, i int) ir.Value {
	f := m.function(fn)
	if f == nil || i < 0 || i >= len(f.args) {
		m.problems.Addf(fnName(fn), "", "parameter %d out of range", i)
		return m.poison(ir.I32)
	}
	return f.args[i]
}

func (m *Module) AppendBlock(fn ir.Func, label string) ir.Block {
	f := m.function(fn)
	if f == nil {
		m.problems.Addf(fnName(fn), "", "append block to a foreign function")
		return nil
	}
	b := &Block{label: f.labels.Unique(label), fn: f}
	f.Blocks = append(f.Blocks, b)
	return b
}

func (m *Module) RemoveBlock(blk ir.Block) {
	b, ok := blk.(*Block)
	if !ok || b == nil {
		return
	}
	f := b.fn
	for i, other := range f.Blocks {
		if other == b {
			f.Blocks = append(f.Blocks[:i], f.Blocks[i+1:]...)
			break
		}
	}
	if m.cur == b {
		m.cur = nil
	}
}

func (m *Module) PositionAt(blk ir.Block) {
	b, _ := blk.(*Block)
	m.cur = b
}

func (m *Module) InsertBlock() ir.Block {
	if m.cur == nil {
		return nil
	}
	return m.cur
}

func (m *Module) ConstInt(t ir.Type, v int64) ir.Value {
	return &Value{kind: valueConst, typ: t, konst: wrap(t, v)}
}

func (m *Module) BuildBinary(op ir.BinaryOp, lhs, rhs ir.Value) ir.Value {
	l, r := m.value(lhs), m.value(rhs)
	return m.emit(&Instr{Op: OpBinary, Bin: op, Args: []*Value{l, r}}, l.typ, "")
}

func (m *Module) BuildUnary(op ir.UnaryOp, v ir.Value) ir.Value {
	x := m.value(v)
	return m.emit(&Instr{Op: OpUnary, Un: op, Args: []*Value{x}}, x.typ, "")
}

func (m *Module) BuildCompare(pred ir.Predicate, lhs, rhs ir.Value) ir.Value {
	l, r := m.value(lhs), m.value(rhs)
	return m.emit(&Instr{Op: OpCompare, Pred: pred, Args: []*Value{l, r}}, ir.I1, "")
}

func (m *Module) BuildCall(fn ir.Func, args []ir.Value) ir.Value {
	callee := m.function(fn)
	if callee == nil {
		m.problems.Addf(m.curFunc(), m.curLabel(), "call to unknown function @%s", fnName(fn))
		return m.poison(ir.I32)
	}
	vals := make([]*Value, len(args))
	for i, a := range args {
		vals[i] = m.value(a)
	}
	res := m.emit(&Instr{Op: OpCall, Callee: callee, Args: vals}, callee.result, "")
	if callee.result == ir.Void {
		return nil
	}
	return res
}

func (m *Module) BuildAlloca(t ir.Type, name string) ir.Value {
	in := &Instr{Op: OpAlloca, Type: t}
	v := m.emit(in, ir.Ptr, name)
	if vv, ok := v.(*Value); ok {
		vv.elem = t
		if f := m.curFunction(); f != nil {
			in.Slot = f.slots
			f.slots++
		}
	}
	return v
}

func (m *Module) BuildStore(v, slot ir.Value) {
	m.emit(&Instr{Op: OpStore, Args: []*Value{m.value(v), m.value(slot)}}, ir.Void, "")
}

func (m *Module) BuildLoad(t ir.Type, slot ir.Value) ir.Value {
	return m.emit(&Instr{Op: OpLoad, Type: t, Args: []*Value{m.value(slot)}}, t, "")
}

func (m *Module) BuildCondBr(cond ir.Value, then, els ir.Block) {
	m.terminate(&Instr{Op: OpCondBr, Args: []*Value{m.value(cond)}, Targets: []*Block{m.block(then), m.block(els)}})
}

func (m *Module) BuildBr(target ir.Block) {
	m.terminate(&Instr{Op: OpBr, Targets: []*Block{m.block(target)}})
}

func (m *Module) BuildRet(v ir.Value) {
	in := &Instr{Op: OpRet}
	if v != nil {
		in.Args = []*Value{m.value(v)}
	}
	m.terminate(in)
}

// EmitObject is not available: the VM has no native code generator.
func (m *Module) EmitObject(context.Context, string) error {
	return fmt.Errorf("vm backend cannot emit object files: %w", ir.ErrUnsupported)
}

func (m *Module) emit(in *Instr, typ ir.Type, name string) ir.Value {
	b := m.cur
	if b == nil {
		m.problems.Addf("?", "", "%s emitted without an insertion point", in.Op)
		return m.poison(typ)
	}
	if b.Term != nil {
		m.problems.Addf(b.fn.name, b.label, "%s emitted after terminator", in.Op)
		return m.poison(typ)
	}
	if typ != ir.Void {
		f := b.fn
		res := &Value{kind: valueReg, typ: typ, index: f.regs}
		f.regs++
		if name != "" {
			res.name = f.labels.Unique(name)
		} else {
			res.name = fmt.Sprintf("%d", f.numbers)
			f.numbers++
		}
		in.Result = res
	}
	b.Instrs = append(b.Instrs, in)
	if in.Result == nil {
		return nil
	}
	return in.Result
}

func (m *Module) terminate(in *Instr) {
	b := m.cur
	if b == nil {
		m.problems.Addf("?", "", "%s emitted without an insertion point", in.Op)
		return
	}
	if b.Term != nil {
		m.problems.Addf(b.fn.name, b.label, "second terminator %s", in.Op)
		return
	}
	b.Term = in
}

func (m *Module) value(v ir.Value) *Value {
	if vv, ok := v.(*Value); ok && vv != nil {
		return vv
	}
	m.problems.Addf(m.curFunc(), m.curLabel(), "operand is not a vm value")
	return m.poison(ir.I32).(*Value)
}

func (m *Module) block(b ir.Block) *Block {
	bb, ok := b.(*Block)
	if !ok || bb == nil {
		m.problems.Addf(m.curFunc(), m.curLabel(), "branch target is not a vm block")
		return nil
	}
	return bb
}

func (m *Module) function(fn ir.Func) *Function {
	f, ok := fn.(*Function)
	if !ok || f == nil || m.byName[f.name] != f {
		return nil
	}
	return f
}

func (m *Module) poison(t ir.Type) ir.Value {
	return &Value{kind: valueConst, typ: t}
}

func (m *Module) curFunction() *Function {
	if m.cur == nil {
		return nil
	}
	return m.cur.fn
}

func (m *Module) curFunc() string {
	if m.cur == nil {
		return "?"
	}
	return m.cur.fn.name
}

func (m *Module) curLabel() string {
	if m.cur == nil {
		return ""
	}
	return m.cur.label
}

func fnName(fn ir.Func) string {
	if fn == nil {
		return "<nil>"
	}
	return fn.Name()
}
