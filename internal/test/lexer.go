package test

import (
	"math/rand"
	"strings"
)

const validTokens = "sin;cos;tan;cot;(;);+;-;*;/;^;%;0;7;42;123456789;3.14159;.5;10.;0.000001;\t;\n"

// GetRandomTokens returns size lexically valid tokens separated by spaces. The
// result is not necessarily a grammatical expression.
func GetRandomTokens(size int) string {
	return GetRandomTokensWithSep(size, " ")
}

func GetRandomTokensWithSep(size int, sep string) string {
	valid := strings.Split(validTokens, ";")

	var toks []string
	for len(toks) < size {
		toks = append(toks, valid[rand.Intn(len(valid))])
	}

	return strings.Join(toks, sep)
}

// GetRandomExpression returns a grammatical expression with the given number of
// binary operators.
func GetRandomExpression(operators int) string {
	operands := []string{"1", "2", "3.5", ".25", "(4-1)", "sin(30)", "cos(60)", "-2", "--7"}
	ops := []string{"+", "-", "*", "/", "^", "%"}

	var expr strings.Builder
	expr.WriteString(operands[rand.Intn(len(operands))])
	for i := 0; i < operators; i++ {
		expr.WriteString(" ")
		expr.WriteString(ops[rand.Intn(len(ops))])
		expr.WriteString(" ")
		expr.WriteString(operands[rand.Intn(len(operands))])
	}

	return expr.String()
}
