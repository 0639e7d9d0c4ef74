package minp

import (
	"math"
	"math/big"
	"strconv"
	"strings"
)

type NumberKind int

const (
	NumberInt NumberKind = iota
	NumberFloat
)

// maxPowBits bounds the size of an exact integer power.
const maxPowBits = 1 << 22

// Number is the value domain of the evaluator. It is either an exact integer of
// any size or a floating-point value; every operation decides which one its
// result is.
type Number struct {
	kind NumberKind
	i    int64
	big  *big.Int // only set when the integer does not fit in i
	f    float64
}

func Int(i int64) Number {
	return Number{kind: NumberInt, i: i}
}

// BigInt returns an integer Number holding a copy of b.
func BigInt(b *big.Int) Number {
	if b.IsInt64() {
		return Int(b.Int64())
	}

	return Number{kind: NumberInt, big: new(big.Int).Set(b)}
}

func Float(f float64) Number {
	return Number{kind: NumberFloat, f: f}
}

// integral returns f as an exact integer when it is finite and has no fractional part.
func integral(f float64) Number {
	if math.IsInf(f, 0) || math.IsNaN(f) || f != math.Trunc(f) {
		return Float(f)
	}

	if f >= math.MinInt64 && f < math.MaxInt64 {
		return Int(int64(f))
	}

	i, _ := big.NewFloat(f).Int(nil)
	return BigInt(i)
}

func (n Number) Kind() NumberKind {
	return n.kind
}

func (n Number) IsInt() bool {
	return n.kind == NumberInt
}

// BigInt returns a copy of the integer value. It is only meaningful when IsInt is true.
func (n Number) BigInt() *big.Int {
	return new(big.Int).Set(n.bigInt())
}

// bigInt returns the integer value without copying; callers must not modify it.
func (n Number) bigInt() *big.Int {
	if n.big != nil {
		return n.big
	}

	return big.NewInt(n.i)
}

// Float64 returns the nearest float64. Integers too large for it become ±Inf.
func (n Number) Float64() float64 {
	switch {
	case n.kind == NumberFloat:
		return n.f
	case n.big != nil:
		f, _ := new(big.Float).SetInt(n.big).Float64()
		return f
	default:
		return float64(n.i)
	}
}

func (n Number) IsZero() bool {
	if n.kind == NumberInt {
		return n.big == nil && n.i == 0
	}

	return n.f == 0
}

// Sign returns -1, 0 or +1. NaN has sign 0.
func (n Number) Sign() int {
	switch {
	case n.big != nil:
		return n.big.Sign()
	case n.kind == NumberInt && n.i > 0, n.kind == NumberFloat && n.f > 0:
		return 1
	case n.kind == NumberInt && n.i < 0, n.kind == NumberFloat && n.f < 0:
		return -1
	default:
		return 0
	}
}

// Equal reports whether n and m have the same kind and value. Unlike ==, NaN
// equals NaN and 0.0 differs from -0.0.
func (n Number) Equal(m Number) bool {
	if n.kind != m.kind {
		return false
	}

	if n.kind == NumberInt {
		if n.big == nil && m.big == nil {
			return n.i == m.i
		}
		return n.bigInt().Cmp(m.bigInt()) == 0
	}

	if math.IsNaN(n.f) || math.IsNaN(m.f) {
		return math.IsNaN(n.f) && math.IsNaN(m.f)
	}

	return n.f == m.f && math.Signbit(n.f) == math.Signbit(m.f)
}

func (n Number) small() bool {
	return n.kind == NumberInt && n.big == nil
}

func (n Number) Add(m Number) Number {
	if n.small() && m.small() {
		s := n.i + m.i
		if (s > n.i) == (m.i > 0) {
			return Int(s)
		}
	}

	if n.IsInt() && m.IsInt() {
		return BigInt(new(big.Int).Add(n.bigInt(), m.bigInt()))
	}

	return Float(n.Float64() + m.Float64())
}

func (n Number) Sub(m Number) Number {
	if n.small() && m.small() {
		d := n.i - m.i
		if (d < n.i) == (m.i > 0) {
			return Int(d)
		}
	}

	if n.IsInt() && m.IsInt() {
		return BigInt(new(big.Int).Sub(n.bigInt(), m.bigInt()))
	}

	return Float(n.Float64() - m.Float64())
}

func (n Number) Mul(m Number) Number {
	if n.small() && m.small() {
		if p, ok := mulInt(n.i, m.i); ok {
			return Int(p)
		}
	}

	if n.IsInt() && m.IsInt() {
		return BigInt(new(big.Int).Mul(n.bigInt(), m.bigInt()))
	}

	return Float(n.Float64() * m.Float64())
}

// Div returns the real quotient. A zero divisor yields +Inf regardless of the dividend.
func (n Number) Div(m Number) Number {
	if m.IsZero() {
		return Float(math.Inf(1))
	}

	if n.IsInt() && m.IsInt() {
		q, r := new(big.Int).QuoRem(n.bigInt(), m.bigInt(), new(big.Int))
		if r.Sign() == 0 {
			return BigInt(q)
		}

		f, _ := new(big.Rat).SetFrac(n.bigInt(), m.bigInt()).Float64()
		return Float(f)
	}

	return integral(n.Float64() / m.Float64())
}

// Pow returns n raised to m. An integer raised to a non-negative integer is exact;
// ok is false when that result would exceed maxPowBits. Zero raised to a negative
// power is +Inf here; the evaluator reports it before calling Pow.
func (n Number) Pow(m Number) (Number, bool) {
	if n.IsInt() && m.IsInt() && m.Sign() >= 0 {
		return powInt(n.bigInt(), m.bigInt())
	}

	return Float(math.Pow(n.Float64(), m.Float64())), true
}

// Mod returns the floor-division modulo, whose sign follows the divisor. The bool
// is false when the divisor is zero.
func (n Number) Mod(m Number) (Number, bool) {
	if m.IsZero() {
		return Number{}, false
	}

	if n.small() && m.small() {
		r := n.i % m.i
		if r != 0 && (r < 0) != (m.i < 0) {
			r += m.i
		}

		return Int(r), true
	}

	if n.IsInt() && m.IsInt() {
		// big.Int.Mod is Euclidean: 0 <= r < |m|
		r := new(big.Int).Mod(n.bigInt(), m.bigInt())
		if r.Sign() != 0 && m.Sign() < 0 {
			r.Add(r, m.bigInt())
		}

		return BigInt(r), true
	}

	a, b := n.Float64(), m.Float64()
	r := math.Mod(a, b)
	if r == 0 {
		r = math.Copysign(0, b)
	} else if (r < 0) != (b < 0) {
		r += b
	}

	return Float(r), true
}

func (n Number) Neg() Number {
	switch {
	case n.kind == NumberFloat:
		return Float(-n.f)
	case n.small() && n.i != math.MinInt64:
		return Int(-n.i)
	default:
		return BigInt(new(big.Int).Neg(n.bigInt()))
	}
}

func (n Number) String() string {
	switch {
	case n.kind == NumberFloat:
		return formatFloat(n.f)
	case n.big != nil:
		return n.big.String()
	default:
		return strconv.FormatInt(n.i, 10)
	}
}

// formatFloat prints the shortest representation that round-trips, always
// distinguishable from an integer.
func formatFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case math.IsNaN(f):
		return "nan"
	case f == 0:
		if math.Signbit(f) {
			return "-0.0"
		}
		return "0.0"
	}

	e := strconv.FormatFloat(f, 'e', -1, 64)
	if exp, err := strconv.Atoi(e[strings.IndexByte(e, 'e')+1:]); err == nil && (exp < -4 || exp >= 16) {
		return e
	}

	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}

	return s
}

func mulInt(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}

	p := a * b
	if p/b != a || (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
		return 0, false
	}

	return p, true
}

func powInt(base, exp *big.Int) (Number, bool) {
	// |base| <= 1 never grows
	if base.CmpAbs(big.NewInt(1)) <= 0 {
		switch {
		case base.Sign() == 0 && exp.Sign() == 0:
			return Int(1), true
		case base.Sign() == 0:
			return Int(0), true
		case base.Sign() < 0 && exp.Bit(0) == 1:
			return Int(-1), true
		default:
			return Int(1), true
		}
	}

	if !exp.IsInt64() || exp.Int64() > maxPowBits || int64(base.BitLen()-1)*exp.Int64() > maxPowBits {
		return Number{}, false
	}

	return BigInt(new(big.Int).Exp(base, exp, nil)), true
}
