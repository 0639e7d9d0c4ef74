// Package repl implements the interactive loop around the calculator: one line
// in, one result or error out.
package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	minp "go.minp.dev/pkg"
)

const clearScreen = "\x1b[H\x1b[2J"

// Evaluator is the part of minp.Calculator the loop needs.
type Evaluator interface {
	Evaluate(expr string) (minp.Number, bool, error)
}

// LineReader returns one line per call without the trailing newline, and io.EOF
// when the input is exhausted. *term.Terminal satisfies it.
type LineReader interface {
	ReadLine() (string, error)
}

type scannerReader struct {
	scanner *bufio.Scanner
}

// NewScannerReader reads lines from a non-interactive input. A trailing "\r" is
// dropped from each line.
func NewScannerReader(r io.Reader) LineReader {
	return &scannerReader{scanner: bufio.NewScanner(r)}
}

func (s *scannerReader) ReadLine() (string, error) {
	if s.scanner.Scan() {
		return s.scanner.Text(), nil
	}

	if err := s.scanner.Err(); err != nil {
		return "", err
	}

	return "", io.EOF
}

type REPL struct {
	calc   Evaluator
	out    io.Writer
	logger *slog.Logger

	errColor    *color.Color
	resultColor *color.Color
}

func New(calc Evaluator, out io.Writer, noColor bool, logger *slog.Logger) *REPL {
	r := &REPL{
		calc:        calc,
		out:         out,
		logger:      logger,
		errColor:    color.New(color.FgRed),
		resultColor: color.New(color.Bold),
	}

	if noColor {
		r.errColor.DisableColor()
		r.resultColor.DisableColor()
	} else {
		r.errColor.EnableColor()
		r.resultColor.EnableColor()
	}

	return r
}

// Run reads lines until an exit command, the end of the input or the
// cancellation of ctx. A failing expression never stops the loop.
func (r *REPL) Run(ctx context.Context, in LineReader) error {
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		line, err := in.ReadLine()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return errors.Wrap(err, "reading input")
		}

		switch strings.TrimSpace(line) {
		case "exit", "quit", "close":
			return nil
		case "clear", "cls":
			fmt.Fprint(r.out, clearScreen)
			continue
		}

		r.Eval(line)
	}
}

// Eval evaluates one line and prints its outcome. Empty lines print nothing.
func (r *REPL) Eval(line string) {
	v, ok, err := r.calc.Evaluate(line)
	if err != nil {
		r.logger.Debug("expression failed", "input", line, "err", err)
		r.errColor.Fprintln(r.out, err.Error())
		return
	}

	if ok {
		r.resultColor.Fprintln(r.out, v.String())
	}
}
