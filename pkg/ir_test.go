package minp

import (
	"testing"

	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueLookup(t *testing.T) {
	vals := NewValueLookup()

	val1 := constant.NewFloat(types.Double, 1)
	val2 := constant.NewFloat(types.Double, 2)

	vals.Set("id1", val1)
	vals.Set("id2", val2)

	got, err := vals.Get("id1")
	require.NoError(t, err)
	assert.Equal(t, val1, got)

	got, err = vals.Get("id2")
	require.NoError(t, err)
	assert.Equal(t, val2, got)

	_, err = vals.Get("id3")
	assert.ErrorIs(t, err, ErrInternalInconsistency)
}

func TestBuiltins(t *testing.T) {
	b := NewLLVMIRBuilder()

	for _, name := range []string{"sin", "cos", "tan", "pow", "print"} {
		_, err := b.values.Get(name)
		assert.NoError(t, err, name)
	}
}

func TestEmitIR(t *testing.T) {
	cases := []struct {
		data     string
		contains []string
	}{
		{
			"1 + 2",
			[]string{"define double @eval()", "fadd double", "define i32 @main()", "call void @print("},
		},
		{
			"(4 - 1) * 2",
			[]string{"fsub double", "fmul double"},
		},
		{
			"1 / 0",
			[]string{"fdiv double", "fcmp oeq double", "select i1"},
		},
		{
			"2 ^ 3",
			[]string{"declare double @pow(double", "call double @pow(double"},
		},
		{
			"-5 % 3",
			[]string{"fneg double", "frem double", "xor i1", "and i1"},
		},
		{
			"sin(90) + cot(45)",
			[]string{"call double @sin(double", "call double @tan(double"},
		},
		{
			"+7",
			[]string{"ret double"},
		},
	}

	calc := NewCalculator(nil)
	for _, c := range cases {
		got, err := calc.EmitIR(c.data)
		require.NoError(t, err, c.data)

		for _, s := range c.contains {
			assert.Contains(t, got, s, c.data)
		}
	}
}

func TestEmitIREmpty(t *testing.T) {
	got, err := NewCalculator(nil).EmitIR("  ")
	assert.NoError(t, err)
	assert.Empty(t, got)
}

func TestEmitIRErrors(t *testing.T) {
	_, err := NewCalculator(nil).EmitIR("sin 1")
	assert.ErrorIs(t, err, ErrUnexpectedToken)

	_, err = NewLLVMGenerator(&UnaryExpr{Operation: "~", Operand: &NumberLit{Value: Int(1)}}).Do()
	assert.ErrorIs(t, err, ErrInternalInconsistency)
}
