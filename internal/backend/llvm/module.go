package llvm

import (
	"fmt"
	"io"
	"slices"

	llir "github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/value"

	"aic/internal/ir"
)

// Value wraps an llir value with its aic type.
type Value struct {
	v    value.Value
	typ  ir.Type
	elem ir.Type // slot element type for allocas
}

func (v *Value) Type() ir.Type { return v.typ }

// LLValue exposes the underlying llir value.
func (v *Value) LLValue() value.Value { return v.v }

type Function struct {
	f      *llir.Func
	params []ir.Type
	result ir.Type
	labels ir.Labels
	args   []*Value
}

func (f *Function) Name() string          { return f.f.Name() }
func (f *Function) ParamTypes() []ir.Type { return f.params }
func (f *Function) Result() ir.Type       { return f.result }

type Block struct {
	b     *llir.Block
	fn    *Function
	label string
}

func (b *Block) Label() string    { return b.label }
func (b *Block) Func() ir.Func    { return b.fn }
func (b *Block) Terminated() bool { return b.b.Term != nil }

// Options configures object emission.
type Options struct {
	Clang string // default "clang"
	LLC   string // default "llc"
	// CommandLog receives every external command before it runs.
	CommandLog io.Writer
}

// Module is an llir module being built through ir.Builder.
type Module struct {
	mod      *llir.Module
	opts     Options
	byName   map[string]*Function
	cur      *Block
	problems ir.Problems
}

var _ ir.Builder = (*Module)(nil)

func New(opts Options) *Module {
	if opts.Clang == "" {
		opts.Clang = "clang"
	}
	if opts.LLC == "" {
		opts.LLC = "llc"
	}
	// target triple не задаём: clang подставит хостовый
	return &Module{mod: llir.NewModule(), opts: opts, byName: make(map[string]*Function)}
}

// LLModule exposes the underlying llir module.
func (m *Module) LLModule() *llir.Module { return m.mod }

func (m *Module) CreateFunction(name string, params []ir.Type, result ir.Type) (ir.Func, error) {
	if _, exists := m.byName[name]; exists {
		return nil, fmt.Errorf("function @%s already defined", name)
	}
	llParams := make([]*llir.Param, len(params))
	for i, t := range params {
		llParams[i] = llir.NewParam("", llvmType(t))
	}
	fn := &Function{
		f:      m.mod.NewFunc(name, llvmType(result), llParams...),
		params: append([]ir.Type(nil), params...),
		result: result,
	}
	for i, p := range llParams {
		fn.args = append(fn.args, &Value{v: p, typ: params[i]})
	}
	m.byName[name] = fn
	return fn, nil
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
	name := f.labels.Unique(label)
	return &Block{b: f.f.NewBlock(name), fn: f, label: name}
}

func (m *Module) RemoveBlock(blk ir.Block) {
	b, ok := blk.(*Block)
	if !ok || b == nil {
		return
	}
	f := b.fn.f
	if i := slices.Index(f.Blocks, b.b); i >= 0 {
		f.Blocks = slices.Delete(f.Blocks, i, i+1)
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
	if t == ir.I1 {
		return &Value{v: constant.NewBool(v&1 != 0), typ: ir.I1}
	}
	return &Value{v: constant.NewInt(intType(t), v), typ: t}
}

func (m *Module) BuildBinary(op ir.BinaryOp, lhs, rhs ir.Value) ir.Value {
	l, r := m.value(lhs), m.value(rhs)
	b := m.insertion(op.String())
	if b == nil {
		return m.poison(l.typ)
	}
	var inst value.Value
	switch op {
	case ir.Add:
		inst = b.NewAdd(l.v, r.v)
	case ir.Sub:
		inst = b.NewSub(l.v, r.v)
	case ir.Mul:
		inst = b.NewMul(l.v, r.v)
	case ir.SDiv:
		inst = b.NewSDiv(l.v, r.v)
	case ir.And:
		inst = b.NewAnd(l.v, r.v)
	case ir.Or:
		inst = b.NewOr(l.v, r.v)
	default:
		inst = b.NewXor(l.v, r.v)
	}
	return &Value{v: inst, typ: l.typ}
}

// BuildUnary lowers neg to "sub 0, x" and not to "xor x, -1".
func (m *Module) BuildUnary(op ir.UnaryOp, v ir.Value) ir.Value {
	x := m.value(v)
	b := m.insertion(op.String())
	if b == nil {
		return m.poison(x.typ)
	}
	if op == ir.Neg {
		zero := m.ConstInt(x.typ, 0).(*Value)
		return &Value{v: b.NewSub(zero.v, x.v), typ: x.typ}
	}
	ones := m.ConstInt(x.typ, -1).(*Value)
	return &Value{v: b.NewXor(x.v, ones.v), typ: x.typ}
}

var predicates = [...]enum.IPred{
	ir.EQ:  enum.IPredEQ,
	ir.NE:  enum.IPredNE,
	ir.SLT: enum.IPredSLT,
	ir.SLE: enum.IPredSLE,
	ir.SGT: enum.IPredSGT,
	ir.SGE: enum.IPredSGE,
}

func (m *Module) BuildCompare(pred ir.Predicate, lhs, rhs ir.Value) ir.Value {
	l, r := m.value(lhs), m.value(rhs)
	b := m.insertion("icmp")
	if b == nil {
		return m.poison(ir.I1)
	}
	return &Value{v: b.NewICmp(predicates[pred], l.v, r.v), typ: ir.I1}
}

func (m *Module) BuildCall(fn ir.Func, args []ir.Value) ir.Value {
	callee := m.function(fn)
	if callee == nil {
		m.problems.Addf(m.curFunc(), m.curLabel(), "call to unknown function @%s", fnName(fn))
		return m.poison(ir.I32)
	}
	vals := make([]value.Value, len(args))
	for i, a := range args {
		vals[i] = m.value(a).v
	}
	b := m.insertion("call")
	if b == nil {
		return m.poison(callee.result)
	}
	call := b.NewCall(callee.f, vals...)
	if callee.result == ir.Void {
		return nil
	}
	return &Value{v: call, typ: callee.result}
}

func (m *Module) BuildAlloca(t ir.Type, name string) ir.Value {
	b := m.insertion("alloca")
	if b == nil {
		return m.poison(ir.Ptr)
	}
	inst := b.NewAlloca(llvmType(t))
	if name != "" {
		inst.SetName(m.cur.fn.labels.Unique(name))
	}
	return &Value{v: inst, typ: ir.Ptr, elem: t}
}

func (m *Module) BuildStore(v, slot ir.Value) {
	src, dst := m.value(v), m.value(slot)
	if b := m.insertion("store"); b != nil {
		b.NewStore(src.v, dst.v)
	}
}

func (m *Module) BuildLoad(t ir.Type, slot ir.Value) ir.Value {
	src := m.value(slot)
	b := m.insertion("load")
	if b == nil {
		return m.poison(t)
	}
	return &Value{v: b.NewLoad(llvmType(t), src.v), typ: t}
}

func (m *Module) BuildCondBr(cond ir.Value, then, els ir.Block) {
	c := m.value(cond)
	t, f := m.block(then), m.block(els)
	if b := m.insertion("br"); b != nil && t != nil && f != nil {
		b.NewCondBr(c.v, t.b, f.b)
	}
}

func (m *Module) BuildBr(target ir.Block) {
	t := m.block(target)
	if b := m.insertion("br"); b != nil && t != nil {
		b.NewBr(t.b)
	}
}

func (m *Module) BuildRet(v ir.Value) {
	var x value.Value
	if v != nil {
		x = m.value(v).v
	}
	if b := m.insertion("ret"); b != nil {
		b.NewRet(x)
	}
}

// String prints the module as textual LLVM IR.
func (m *Module) String() string {
	return m.mod.String()
}

// insertion returns the llir block to append to, recording misuse.
func (m *Module) insertion(what string) *llir.Block {
	if m.cur == nil {
		m.problems.Addf("?", "", "%s emitted without an insertion point", what)
		return nil
	}
	if m.cur.b.Term != nil {
		m.problems.Addf(m.cur.fn.Name(), m.cur.label, "%s emitted after terminator", what)
		return nil
	}
	return m.cur.b
}

func (m *Module) value(v ir.Value) *Value {
	if vv, ok := v.(*Value); ok && vv != nil {
		return vv
	}
	m.problems.Addf(m.curFunc(), m.curLabel(), "operand is not an llvm value")
	return m.poison(ir.I32).(*Value)
}

func (m *Module) block(b ir.Block) *Block {
	bb, ok := b.(*Block)
	if !ok || bb == nil {
		m.problems.Addf(m.curFunc(), m.curLabel(), "branch target is not an llvm block")
		return nil
	}
	return bb
}

func (m *Module) function(fn ir.Func) *Function {
	f, ok := fn.(*Function)
	if !ok || f == nil || m.byName[f.Name()] != f {
		return nil
	}
	return f
}

func (m *Module) poison(t ir.Type) ir.Value {
	if t == ir.Void || t == ir.Ptr {
		t = ir.I32
	}
	return m.ConstInt(t, 0)
}

func (m *Module) curFunc() string {
	if m.cur == nil {
		return "?"
	}
	return m.cur.fn.Name()
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
