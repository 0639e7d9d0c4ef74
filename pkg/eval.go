package minp

import "math"

// radiansPerDegree is the float64 quotient of the float64 π, not the exact constant.
var radiansPerDegree = func() float64 {
	pi := math.Pi
	return pi / 180
}()

// Evaluator computes the value of a tree. It holds no state and may be shared.
type Evaluator struct{}

func NewEvaluator() *Evaluator {
	return &Evaluator{}
}

func (e *Evaluator) Eval(n Node) (Number, error) {
	return Walk[Number](n, e)
}

func (e *Evaluator) VisitNumber(n *NumberLit) (Number, error) {
	return n.Value, nil
}

func (e *Evaluator) VisitBinary(n *BinaryExpr) (Number, error) {
	lhs, err := e.Eval(n.Op1)
	if err != nil {
		return Number{}, err
	}

	rhs, err := e.Eval(n.Op2)
	if err != nil {
		return Number{}, err
	}

	switch n.Operation {
	case BinaryAddition:
		return lhs.Add(rhs), nil
	case BinarySubtraction:
		return lhs.Sub(rhs), nil
	case BinaryMultiplication:
		return lhs.Mul(rhs), nil
	case BinaryDivision:
		return lhs.Div(rhs), nil
	case BinaryPower:
		if lhs.IsZero() && rhs.Sign() < 0 {
			return Number{}, newError(ZeroToNegativePower, n.Loc.Offset, "zero cannot be raised to a negative power")
		}

		r, ok := lhs.Pow(rhs)
		if !ok {
			return Number{}, newError(Overflow, n.Loc.Offset, "integer power too large")
		}
		return r, nil
	case BinaryModulo:
		r, ok := lhs.Mod(rhs)
		if !ok {
			return Number{}, newError(ModuloByZero, n.Loc.Offset, "modulo by zero")
		}
		return r, nil
	default:
		return Number{}, newError(InternalInconsistency, n.Loc.Offset, "unexpected binary operation %q", n.Operation)
	}
}

func (e *Evaluator) VisitUnary(n *UnaryExpr) (Number, error) {
	v, err := e.Eval(n.Operand)
	if err != nil {
		return Number{}, err
	}

	switch n.Operation {
	case UnaryPositive:
		return v, nil
	case UnaryNegative:
		return v.Neg(), nil
	default:
		return Number{}, newError(InternalInconsistency, n.Loc.Offset, "unexpected unary operation %q", n.Operation)
	}
}

func (e *Evaluator) VisitTrig(n *TrigExpr) (Number, error) {
	v, err := e.Eval(n.Arg)
	if err != nil {
		return Number{}, err
	}

	deg := v.Float64()
	if math.IsInf(deg, 0) {
		return Number{}, newError(MathDomain, n.Loc.Offset, "math domain error: %s of an infinite angle", n.Func)
	}

	rad := deg * radiansPerDegree

	switch n.Func {
	case TrigSin:
		return Float(math.Sin(rad)), nil
	case TrigCos:
		return Float(math.Cos(rad)), nil
	case TrigTan:
		return Float(math.Tan(rad)), nil
	case TrigCot:
		t := math.Tan(rad)
		if t == 0 {
			return Float(math.Inf(1)), nil
		}
		return Float(1 / t), nil
	default:
		return Number{}, newError(InternalInconsistency, n.Loc.Offset, "unexpected function %q", n.Func)
	}
}
