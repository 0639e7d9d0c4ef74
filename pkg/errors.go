package minp

import (
	"fmt"
	"strconv"
)

// Location is a position within the input, counted in runes from the start.
type Location struct {
	Offset int
}

func (l Location) Column() int {
	return l.Offset + 1
}

func (l Location) String() string {
	return "column " + strconv.Itoa(l.Column())
}

type ErrorKind int

const (
	MalformedNumber ErrorKind = iota + 1
	UnrecognizedCharacter
	UnknownIdentifier
	UnexpectedToken
	TrailingInput
	NestingTooDeep
	ModuloByZero
	ZeroToNegativePower
	Overflow
	MathDomain
	InternalInconsistency
)

var errorKindNames = map[ErrorKind]string{
	MalformedNumber:       "malformed number",
	UnrecognizedCharacter: "unrecognized character",
	UnknownIdentifier:     "unknown identifier",
	UnexpectedToken:       "unexpected token",
	TrailingInput:         "trailing input",
	NestingTooDeep:        "nesting too deep",
	ModuloByZero:          "modulo by zero",
	ZeroToNegativePower:   "zero to negative power",
	Overflow:              "overflow",
	MathDomain:            "math domain",
	InternalInconsistency: "internal inconsistency",
}

func (k ErrorKind) String() string {
	if name, ok := errorKindNames[k]; ok {
		return name
	}

	return "ErrorKind(" + strconv.Itoa(int(k)) + ")"
}

// Error is returned by every stage of the pipeline.
type Error struct {
	Kind ErrorKind
	Loc  Location
	Msg  string
}

func newError(kind ErrorKind, offset int, format string, args ...interface{}) *Error {
	return &Error{
		Kind: kind,
		Loc:  Location{Offset: offset},
		Msg:  fmt.Sprintf(format, args...),
	}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s at %s", e.Msg, e.Loc)
}

// Pos returns the rune offset of the input that caused the error.
func (e *Error) Pos() int {
	return e.Loc.Offset
}

// Is reports whether target is an *Error of the same kind, so the sentinels below
// can be matched with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

var (
	ErrMalformedNumber       = &Error{Kind: MalformedNumber, Msg: "invalid number"}
	ErrUnrecognizedCharacter = &Error{Kind: UnrecognizedCharacter, Msg: "invalid expression"}
	ErrUnknownIdentifier     = &Error{Kind: UnknownIdentifier, Msg: "invalid expression"}
	ErrUnexpectedToken       = &Error{Kind: UnexpectedToken, Msg: "invalid expression"}
	ErrTrailingInput         = &Error{Kind: TrailingInput, Msg: "invalid expression"}
	ErrNestingTooDeep        = &Error{Kind: NestingTooDeep, Msg: "invalid expression"}
	ErrModuloByZero          = &Error{Kind: ModuloByZero, Msg: "modulo by zero"}
	ErrZeroToNegativePower   = &Error{Kind: ZeroToNegativePower, Msg: "zero cannot be raised to a negative power"}
	ErrOverflow              = &Error{Kind: Overflow, Msg: "result too large"}
	ErrMathDomain            = &Error{Kind: MathDomain, Msg: "math domain error"}
	ErrInternalInconsistency = &Error{Kind: InternalInconsistency, Msg: "internal inconsistency"}
)
