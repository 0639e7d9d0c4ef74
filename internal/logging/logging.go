// Package logging builds the structured logger shared by the executable and
// the calculator.
package logging

import (
	"io"
	"log/slog"
	"os"

	"github.com/pkg/errors"
	slogmulti "github.com/samber/slog-multi"
)

// Logger writes text records to console and, when file is not nil, JSON records
// to file. Both honour level.
type Logger struct {
	*slog.Logger
	level *slog.LevelVar
	file  io.Closer
}

func New(console io.Writer, file io.WriteCloser, level slog.Level) *Logger {
	levelVar := new(slog.LevelVar)
	levelVar.Set(level)

	opts := &slog.HandlerOptions{Level: levelVar}
	handlers := []slog.Handler{
		slog.NewTextHandler(console, opts),
	}
	if file != nil {
		handlers = append(handlers, slog.NewJSONHandler(file, opts))
	}

	return &Logger{
		Logger: slog.New(slogmulti.Fanout(handlers...)),
		level:  levelVar,
		file:   file,
	}
}

// Open is New with the log file opened for appending at path. An empty path
// disables the file output.
func Open(console io.Writer, path string, level slog.Level) (*Logger, error) {
	if path == "" {
		return New(console, nil, level), nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, errors.Wrap(err, "opening log file")
	}

	return New(console, f, level), nil
}

func (l *Logger) SetLevel(level slog.Level) {
	l.level.Set(level)
}

func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}

	return l.file.Close()
}
