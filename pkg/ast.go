package minp

import "fmt"

// Node is one node of an expression tree. The set of implementations is closed;
// use Walk with a Visitor to dispatch on it.
type Node interface {
	fmt.Stringer
	Location() Location
	node()
}

type NumberLit struct {
	Value Number
	Loc   Location
}

type BinaryOp string

const (
	BinaryAddition       BinaryOp = "+"
	BinarySubtraction    BinaryOp = "-"
	BinaryMultiplication BinaryOp = "*"
	BinaryDivision       BinaryOp = "/"
	BinaryPower          BinaryOp = "^"
	BinaryModulo         BinaryOp = "%"
)

type BinaryExpr struct {
	Operation BinaryOp
	Op1       Node
	Op2       Node
	Loc       Location
}

type UnaryOp string

const (
	UnaryPositive UnaryOp = "+"
	UnaryNegative UnaryOp = "-"
)

type UnaryExpr struct {
	Operation UnaryOp
	Operand   Node
	Loc       Location
}

type TrigFunc string

const (
	TrigSin TrigFunc = "sin"
	TrigCos TrigFunc = "cos"
	TrigTan TrigFunc = "tan"
	TrigCot TrigFunc = "cot"
)

type TrigExpr struct {
	Func TrigFunc
	Arg  Node
	Loc  Location
}

func (*NumberLit) node()  {}
func (*BinaryExpr) node() {}
func (*UnaryExpr) node()  {}
func (*TrigExpr) node()   {}

func (n *NumberLit) Location() Location  { return n.Loc }
func (n *BinaryExpr) Location() Location { return n.Loc }
func (n *UnaryExpr) Location() Location  { return n.Loc }
func (n *TrigExpr) Location() Location   { return n.Loc }

func (n *NumberLit) String() string {
	return n.Value.String()
}

func (n *BinaryExpr) String() string {
	if n.Operation == BinaryPower {
		return fmt.Sprintf("(%s)%s(%s)", n.Op1, n.Operation, n.Op2)
	}

	return fmt.Sprintf("(%s %s %s)", n.Op1, n.Operation, n.Op2)
}

func (n *UnaryExpr) String() string {
	return fmt.Sprintf("(%s%s)", n.Operation, n.Operand)
}

func (n *TrigExpr) String() string {
	return fmt.Sprintf("%s(%s)", n.Func, n.Arg)
}

// Visitor is implemented by every backend that consumes a tree. Adding a node kind
// adds a method here, so a backend that misses it no longer compiles.
type Visitor[T any] interface {
	VisitNumber(n *NumberLit) (T, error)
	VisitBinary(n *BinaryExpr) (T, error)
	VisitUnary(n *UnaryExpr) (T, error)
	VisitTrig(n *TrigExpr) (T, error)
}

func Walk[T any](n Node, v Visitor[T]) (T, error) {
	switch e := n.(type) {
	case *NumberLit:
		return v.VisitNumber(e)
	case *BinaryExpr:
		return v.VisitBinary(e)
	case *UnaryExpr:
		return v.VisitUnary(e)
	case *TrigExpr:
		return v.VisitTrig(e)
	}

	var zero T
	return zero, newError(InternalInconsistency, 0, "unsupported node %T", n)
}
