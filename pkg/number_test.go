package minp

import (
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intFromString(s string) Number {
	i, ok := new(big.Int).SetString(s, 10)
	if !ok {
		panic("invalid integer " + s)
	}

	return BigInt(i)
}

func TestNumberString(t *testing.T) {
	cases := []struct {
		n      Number
		expect string
	}{
		{Int(0), "0"},
		{Int(-12), "-12"},
		{Int(math.MaxInt64), "9223372036854775807"},
		{intFromString("-123456789012345678901234567890"), "-123456789012345678901234567890"},
		{Float(3), "3.0"},
		{Float(0), "0.0"},
		{Float(math.Copysign(0, -1)), "-0.0"},
		{Float(0.5), "0.5"},
		{Float(-2.25), "-2.25"},
		{Float(0.30000000000000004), "0.30000000000000004"},
		{Float(1e15), "1000000000000000.0"},
		{Float(1e16), "1e+16"},
		{Float(1.5e20), "1.5e+20"},
		{Float(0.0001), "0.0001"},
		{Float(0.00001), "1e-05"},
		{Float(6.123233995736766e-17), "6.123233995736766e-17"},
		{Float(math.Inf(1)), "inf"},
		{Float(math.Inf(-1)), "-inf"},
		{Float(math.NaN()), "nan"},
	}

	for _, c := range cases {
		assert.Equal(t, c.expect, c.n.String())
	}
}

func TestNumberPromotion(t *testing.T) {
	cases := []struct {
		name   string
		got    Number
		expect Number
	}{
		{"int add", Int(2).Add(Int(3)), Int(5)},
		{"mixed add", Int(2).Add(Float(0.5)), Float(2.5)},
		{"add overflow", Int(math.MaxInt64).Add(Int(1)), intFromString("9223372036854775808")},
		{"sub overflow", Int(math.MinInt64).Sub(Int(1)), intFromString("-9223372036854775809")},
		{"back to small", intFromString("9223372036854775808").Sub(Int(1)), Int(math.MaxInt64)},
		{"int sub", Int(2).Sub(Int(5)), Int(-3)},
		{"int mul", Int(-4).Mul(Int(5)), Int(-20)},
		{"mul overflow", Int(math.MinInt64).Mul(Int(-1)), intFromString("9223372036854775808")},
		{"big mul", intFromString("100000000000000000000").Mul(Int(3)), intFromString("300000000000000000000")},
		{"big mixed mul", intFromString("100000000000000000000").Mul(Float(0.5)), Float(5e19)},
		{"exact div", Int(9).Div(Int(3)), Int(3)},
		{"exact big div", intFromString("100000000000000000005").Div(Int(7)), intFromString("14285714285714285715")},
		{"float exact div", Float(4.5).Div(Float(1.5)), Int(3)},
		{"inexact div", Int(1).Div(Int(4)), Float(0.25)},
		{"inexact big div", intFromString("100000000000000000000").Div(Int(3)), Float(1e20 / 3)},
		{"div by zero", Int(-3).Div(Int(0)), Float(math.Inf(1))},
		{"div by negative zero", Float(1).Div(Float(math.Copysign(0, -1))), Float(math.Inf(1))},
		{"integral float div", Float(1e20).Div(Int(1)), intFromString("100000000000000000000")},
		{"neg", Int(5).Neg(), Int(-5)},
		{"neg float", Float(5).Neg(), Float(-5)},
		{"neg min", Int(math.MinInt64).Neg(), intFromString("9223372036854775808")},
		{"neg big", intFromString("9223372036854775808").Neg(), Int(math.MinInt64)},
	}

	for _, c := range cases {
		assert.Equal(t, c.expect, c.got, c.name)
	}
}

func TestNumberPow(t *testing.T) {
	cases := []struct {
		name   string
		a, b   Number
		expect Number
	}{
		{"int", Int(3), Int(4), Int(81)},
		{"zero to zero", Int(0), Int(0), Int(1)},
		{"zero", Int(0), Int(5), Int(0)},
		{"negative base", Int(-2), Int(3), Int(-8)},
		{"beyond int64", Int(2), Int(64), intFromString("18446744073709551616")},
		{"big base", intFromString("10000000000000000000"), Int(2), intFromString("100000000000000000000000000000000000000")},
		{"negative exponent", Int(4), Int(-2), Float(0.0625)},
		{"float", Float(2.25), Float(0.5), Float(1.5)},
		{"one to huge", Int(1), intFromString("100000000000000000000"), Int(1)},
		{"minus one to huge odd", Int(-1), intFromString("100000000000000000001"), Int(-1)},
		{"minus one to huge even", Int(-1), intFromString("100000000000000000000"), Int(1)},
	}

	for _, c := range cases {
		got, ok := c.a.Pow(c.b)
		assert.True(t, ok, c.name)
		assert.Equal(t, c.expect, got, c.name)
	}

	_, ok := Int(2).Pow(Int(maxPowBits + 1))
	assert.False(t, ok)

	_, ok = Int(2).Pow(intFromString("100000000000000000000"))
	assert.False(t, ok)
}

func TestNumberEqual(t *testing.T) {
	assert.True(t, Int(3).Equal(Int(3)))
	assert.False(t, Int(3).Equal(Float(3)))
	assert.True(t, intFromString("9223372036854775808").Equal(Int(math.MaxInt64).Add(Int(1))))
	assert.True(t, Float(math.NaN()).Equal(Float(math.NaN())))
	assert.False(t, Float(0).Equal(Float(math.Copysign(0, -1))))
}

func TestNumberFloat64(t *testing.T) {
	assert.Equal(t, 1e20, intFromString("100000000000000000000").Float64())

	huge, ok := Int(10).Pow(Int(400))
	require.True(t, ok)
	assert.True(t, math.IsInf(huge.Float64(), 1))
	assert.True(t, math.IsInf(huge.Neg().Float64(), -1))
}

func TestNumberMod(t *testing.T) {
	cases := []struct {
		a, b   Number
		expect Number
	}{
		{Int(7), Int(3), Int(1)},
		{Int(-7), Int(3), Int(2)},
		{Int(7), Int(-3), Int(-2)},
		{Int(-7), Int(-3), Int(-1)},
		{Int(math.MinInt64), Int(-1), Int(0)},
		{intFromString("-100000000000000000000"), Int(7), Int(5)},
		{intFromString("100000000000000000000"), Int(-7), Int(-5)},
		{intFromString("100000000000000000000"), intFromString("30000000000000000000"), intFromString("10000000000000000000")},
		{Float(7.5), Int(2), Float(1.5)},
		{Float(-7.5), Int(2), Float(0.5)},
		{Int(6), Float(-3), Float(math.Copysign(0, -1))},
		{Int(-5), Float(math.Inf(1)), Float(math.Inf(1))},
		{Int(5), Float(math.Inf(1)), Float(5)},
	}

	for _, c := range cases {
		got, ok := c.a.Mod(c.b)
		assert.True(t, ok)
		assert.Equal(t, c.expect, got, "%v %% %v", c.a, c.b)
	}

	_, ok := Int(1).Mod(Int(0))
	assert.False(t, ok)

	_, ok = Float(1).Mod(Float(0))
	assert.False(t, ok)
}
