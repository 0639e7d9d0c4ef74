package minp

import (
	"io"
	"log/slog"
	"strings"
)

// Calculator runs the lexer, parser and a backend over one expression at a time.
// Calls are independent of each other.
type Calculator struct {
	logger *slog.Logger
}

func NewCalculator(logger *slog.Logger) *Calculator {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Calculator{
		logger: logger,
	}
}

// Evaluate returns the value of expr. ok is false, with a nil error, when expr
// contains no tokens at all.
func (c *Calculator) Evaluate(expr string) (Number, bool, error) {
	return c.EvaluateReader(strings.NewReader(expr))
}

func (c *Calculator) EvaluateReader(reader io.Reader) (Number, bool, error) {
	root, err := c.parse(NewLexer(reader))
	if err != nil || root == nil {
		return Number{}, false, err
	}

	v, err := NewEvaluator().Eval(root)
	if err != nil {
		c.logger.Debug("evaluation failed", "ast", root.String(), "err", err)
		return Number{}, false, err
	}

	c.logger.Debug("evaluated expression", "ast", root.String(), "result", v.String())
	return v, true, nil
}

// Parse returns the tree of expr, or nil for empty input.
func (c *Calculator) Parse(expr string) (Node, error) {
	return c.parse(NewLexerFromString(expr))
}

// EmitIR lowers expr to a textual LLVM IR module. Empty input yields an empty string.
func (c *Calculator) EmitIR(expr string) (string, error) {
	root, err := c.parse(NewLexerFromString(expr))
	if err != nil || root == nil {
		return "", err
	}

	mod, err := NewLLVMGenerator(root).Do()
	if err != nil {
		return "", err
	}

	return mod.String(), nil
}

func (c *Calculator) parse(lexer *Lexer) (Node, error) {
	root, err := NewParser(lexer).Parse()
	if err != nil {
		c.logger.Debug("parsing failed", "err", err)
		return nil, err
	}

	if root == nil {
		c.logger.Debug("nothing to evaluate")
		return nil, nil
	}

	c.logger.Debug("parsed expression", "ast", root.String())
	return root, nil
}
