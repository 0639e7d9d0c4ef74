package repl

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	minp "go.minp.dev/pkg"
)

func newTestREPL(out io.Writer) *REPL {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(minp.NewCalculator(logger), out, true, logger)
}

func TestRun(t *testing.T) {
	cases := []struct {
		input  string
		expect string
	}{
		{
			"1 + 2\n(1+2)*3\n",
			"3\n9\n",
		},
		{
			"7/2\n\n1/0\n",
			"3.5\ninf\n",
		},
		{
			"(1+2*3\n2^3*2\n",
			"invalid expression: expected ')', got end of input at column 7\n16\n",
		},
		{
			"1..5\nx\n5 % 0\n",
			"invalid number at column 3\n" +
				"invalid expression: unknown identifier \"x\" at column 1\n" +
				"modulo by zero at column 3\n",
		},
		{
			"4\nexit\n5\n",
			"4\n",
		},
		{
			"  quit  \n5\n",
			"",
		},
		{
			"close\n",
			"",
		},
		{
			"1\ncls\n2\nclear\n",
			"1\n" + clearScreen + "2\n" + clearScreen,
		},
		{
			"sin(90)\ncos(0) + 1",
			"1.0\n2.0\n",
		},
		{
			"1 + 1\r\n2^64\r\nquit\r\n3\r\n",
			"2\n18446744073709551616\n",
		},
		{
			strings.Repeat("-", 5000) + "1\n0^-1\n2\n",
			"invalid expression: nested deeper than 1000 levels at column 1001\n" +
				"zero cannot be raised to a negative power at column 2\n" +
				"2\n",
		},
	}

	for _, c := range cases {
		var out bytes.Buffer
		r := newTestREPL(&out)

		err := r.Run(context.Background(), NewScannerReader(strings.NewReader(c.input)))
		require.NoError(t, err, c.input)

		assert.Equal(t, c.expect, out.String(), c.input)
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	err := newTestREPL(&out).Run(ctx, NewScannerReader(strings.NewReader("1\n")))
	require.NoError(t, err)

	assert.Empty(t, out.String())
}

type failingReader struct{}

func (failingReader) ReadLine() (string, error) {
	return "", errors.New("broken pipe")
}

func TestRunReadError(t *testing.T) {
	var out bytes.Buffer
	err := newTestREPL(&out).Run(context.Background(), failingReader{})

	assert.ErrorContains(t, err, "reading input: broken pipe")
}

func TestColor(t *testing.T) {
	var out bytes.Buffer
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	r := New(minp.NewCalculator(logger), &out, false, logger)

	r.Eval("1 +")
	assert.Contains(t, out.String(), "\x1b[31m")
	assert.Contains(t, out.String(), "got end of input at column 4")
}
