package minp

import (
	"fmt"
	"math"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

type ValueLookup struct {
	vals map[string]value.Value
}

func NewValueLookup() *ValueLookup {
	return &ValueLookup{
		vals: make(map[string]value.Value),
	}
}

func (l *ValueLookup) Get(id string) (value.Value, error) {
	if val, ok := l.vals[id]; ok {
		return val, nil
	}

	return nil, newError(InternalInconsistency, 0, "undefined builtin: %s", id)
}

func (l *ValueLookup) Set(id string, val value.Value) {
	l.vals[id] = val
}

type IR interface {
	fmt.Stringer
}

// LLVMIRBuilder lowers a tree into the current block. Every value is a double;
// the integer/float distinction of the evaluator does not survive lowering.
type LLVMIRBuilder struct {
	mod    *ir.Module
	block  *ir.Block
	values *ValueLookup
}

func NewLLVMIRBuilder() *LLVMIRBuilder {
	builder := &LLVMIRBuilder{
		mod:    ir.NewModule(),
		values: NewValueLookup(),
	}

	defineBuiltins(builder)
	return builder
}

func double(f float64) *constant.Float {
	return constant.NewFloat(types.Double, f)
}

// function defines `double @eval()` returning the value of root.
func (b *LLVMIRBuilder) function(root Node) (*ir.Func, error) {
	f := b.mod.NewFunc("eval", types.Double)

	prevBlock := b.block
	b.block = f.NewBlock("")
	defer func() {
		b.block = prevBlock
	}()

	v, err := Walk[value.Value](root, b)
	if err != nil {
		return nil, err
	}

	b.block.NewRet(v)
	b.values.Set("eval", f)

	return f, nil
}

// entrypoint defines `i32 @main()` printing the result of eval.
func (b *LLVMIRBuilder) entrypoint(eval *ir.Func) error {
	printFn, err := b.values.Get("print")
	if err != nil {
		return err
	}

	f := b.mod.NewFunc("main", types.I32)
	block := f.NewBlock("")

	result := block.NewCall(eval)
	block.NewCall(printFn, result)
	block.NewRet(constant.NewInt(types.I32, 0))

	return nil
}

func (b *LLVMIRBuilder) call(name string, args ...value.Value) (value.Value, error) {
	f, err := b.values.Get(name)
	if err != nil {
		return nil, err
	}

	return b.block.NewCall(f, args...), nil
}

// divide emits a / d, yielding +Inf when d is zero.
func (b *LLVMIRBuilder) divide(a, d value.Value) value.Value {
	q := b.block.NewFDiv(a, d)
	isZero := b.block.NewFCmp(enum.FPredOEQ, d, double(0))

	return b.block.NewSelect(isZero, double(math.Inf(1)), q)
}

// modulo emits the floor-division modulo: frem, then moved onto the sign of d.
func (b *LLVMIRBuilder) modulo(a, d value.Value) value.Value {
	r := b.block.NewFRem(a, d)
	nonZero := b.block.NewFCmp(enum.FPredONE, r, double(0))
	rNeg := b.block.NewFCmp(enum.FPredOLT, r, double(0))
	dNeg := b.block.NewFCmp(enum.FPredOLT, d, double(0))
	adjust := b.block.NewAnd(nonZero, b.block.NewXor(rNeg, dNeg))

	return b.block.NewSelect(adjust, b.block.NewFAdd(r, d), r)
}

func (b *LLVMIRBuilder) VisitNumber(n *NumberLit) (value.Value, error) {
	return double(n.Value.Float64()), nil
}

func (b *LLVMIRBuilder) VisitBinary(n *BinaryExpr) (value.Value, error) {
	v1, err := Walk[value.Value](n.Op1, b)
	if err != nil {
		return nil, err
	}

	v2, err := Walk[value.Value](n.Op2, b)
	if err != nil {
		return nil, err
	}

	switch n.Operation {
	case BinaryAddition:
		return b.block.NewFAdd(v1, v2), nil
	case BinarySubtraction:
		return b.block.NewFSub(v1, v2), nil
	case BinaryMultiplication:
		return b.block.NewFMul(v1, v2), nil
	case BinaryDivision:
		return b.divide(v1, v2), nil
	case BinaryPower:
		return b.call("pow", v1, v2)
	case BinaryModulo:
		return b.modulo(v1, v2), nil
	default:
		return nil, newError(InternalInconsistency, n.Loc.Offset, "unexpected binary operation %q", n.Operation)
	}
}

func (b *LLVMIRBuilder) VisitUnary(n *UnaryExpr) (value.Value, error) {
	v, err := Walk[value.Value](n.Operand, b)
	if err != nil {
		return nil, err
	}

	switch n.Operation {
	case UnaryPositive:
		return v, nil
	case UnaryNegative:
		return b.block.NewFNeg(v), nil
	default:
		return nil, newError(InternalInconsistency, n.Loc.Offset, "unexpected unary operation %q", n.Operation)
	}
}

func (b *LLVMIRBuilder) VisitTrig(n *TrigExpr) (value.Value, error) {
	v, err := Walk[value.Value](n.Arg, b)
	if err != nil {
		return nil, err
	}

	rad := b.block.NewFMul(v, double(radiansPerDegree))

	switch n.Func {
	case TrigSin, TrigCos, TrigTan:
		return b.call(string(n.Func), rad)
	case TrigCot:
		t, err := b.call("tan", rad)
		if err != nil {
			return nil, err
		}
		return b.divide(double(1), t), nil
	default:
		return nil, newError(InternalInconsistency, n.Loc.Offset, "unexpected function %q", n.Func)
	}
}

type LLVMGenerator struct {
	ast Node
}

func NewLLVMGenerator(ast Node) *LLVMGenerator {
	return &LLVMGenerator{
		ast: ast,
	}
}

func (g LLVMGenerator) Do() (IR, error) {
	builder := NewLLVMIRBuilder()

	eval, err := builder.function(g.ast)
	if err != nil {
		return nil, err
	}

	if err := builder.entrypoint(eval); err != nil {
		return nil, err
	}

	return builder.mod, nil
}
