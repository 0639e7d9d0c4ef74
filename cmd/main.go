package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/urfave/cli/v2"
	"go.minp.dev/internal/config"
	"go.minp.dev/internal/logging"
	"go.minp.dev/internal/repl"
	"go.minp.dev/pkg"
	"golang.org/x/term"
)

// flag names
const (
	configFlagName   = "config"
	promptFlagName   = "prompt"
	noColorFlagName  = "no-color"
	logLevelFlagName = "log-level"
	logFileFlagName  = "log-file"
	emitLLVMFlagName = "emit-llvm"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:      "minp",
		Usage:     "evaluate arithmetic expressions",
		ArgsUsage: "[--] [expression...]",
		Description: "minp evaluates each expression given as an argument, or reads one expression per line " +
			"from standard input. Trigonometric functions take degrees. Put -- before an expression " +
			"that starts with a sign, as in: minp -- -5%3",
		Flags: []cli.Flag{
			&cli.PathFlag{
				Name:    configFlagName,
				EnvVars: []string{"MINP_CONFIG"},
				Usage:   "YAML configuration file",
			},
			&cli.StringFlag{
				Name:  promptFlagName,
				Usage: "interactive prompt",
			},
			&cli.BoolFlag{
				Name:    noColorFlagName,
				EnvVars: []string{"NO_COLOR"},
				Usage:   "disable colored output",
			},
			&cli.StringFlag{
				Name:  logLevelFlagName,
				Usage: "one of debug, info, warn, error",
			},
			&cli.PathFlag{
				Name:  logFileFlagName,
				Usage: "also write JSON logs to this file",
			},
			&cli.BoolFlag{
				Name:  emitLLVMFlagName,
				Usage: "print LLVM IR for the expressions instead of evaluating them",
			},
		},
		Action: run,
	}
}

func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg := config.Default()
	if c.IsSet(configFlagName) {
		var err error
		if cfg, err = config.Load(c.Path(configFlagName)); err != nil {
			return nil, err
		}
	}

	if c.IsSet(promptFlagName) {
		cfg.Prompt = c.String(promptFlagName)
	}
	if c.IsSet(noColorFlagName) {
		cfg.NoColor = c.Bool(noColorFlagName)
	}
	if c.IsSet(logLevelFlagName) {
		cfg.LogLevel = c.String(logLevelFlagName)
	}
	if c.IsSet(logFileFlagName) {
		cfg.LogFile = c.Path(logFileFlagName)
	}

	return cfg, nil
}

func run(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	level, err := cfg.Level()
	if err != nil {
		return err
	}

	logger, err := logging.Open(os.Stderr, cfg.LogFile, level)
	if err != nil {
		return err
	}
	defer logger.Close()

	calc := minp.NewCalculator(logger.Logger)

	if c.NArg() > 0 {
		return evaluateArgs(c.App.Writer, c.App.ErrWriter, calc, c.Args().Slice(), c.Bool(emitLLVMFlagName))
	}

	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		// An interrupt is noticed once the pending read returns.
		ctx, stop := signal.NotifyContext(c.Context, os.Interrupt)
		defer stop()

		r := repl.New(calc, os.Stdout, cfg.NoColor, logger.Logger)
		return r.Run(ctx, repl.NewScannerReader(os.Stdin))
	}

	// Raw mode turns off SIGINT. ReadLine returns io.EOF for Ctrl-C, and for Ctrl-D
	// on an empty line.
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return err
	}
	defer term.Restore(fd, oldState)

	t := term.NewTerminal(struct {
		io.Reader
		io.Writer
	}{os.Stdin, os.Stdout}, cfg.Prompt)

	return repl.New(calc, t, cfg.NoColor, logger.Logger).Run(c.Context, t)
}

func evaluateArgs(out, errOut io.Writer, calc *minp.Calculator, exprs []string, emitLLVM bool) error {
	for _, expr := range exprs {
		if emitLLVM {
			ir, err := calc.EmitIR(expr)
			if err != nil {
				printError(errOut, expr, err)
				return cli.Exit("", 1)
			}

			fmt.Fprint(out, ir)
			continue
		}

		v, ok, err := calc.Evaluate(expr)
		if err != nil {
			printError(errOut, expr, err)
			return cli.Exit("", 1)
		}

		if ok {
			fmt.Fprintln(out, v)
		}
	}

	return nil
}

// printError shows the message and points at the offending column.
func printError(w io.Writer, expr string, err error) {
	var e *minp.Error
	if !errors.As(err, &e) {
		fmt.Fprintln(w, err)
		return
	}

	fmt.Fprintln(w, e.Msg, "at", e.Loc)
	fmt.Fprintln(w, "  "+expr)
	fmt.Fprintln(w, "  "+strings.Repeat(" ", e.Loc.Offset)+"^")
}
