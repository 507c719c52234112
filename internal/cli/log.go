// Package cli implements the featuremap command-line interface.
//
// # Commands
//
// The main commands are:
//   - render: Write a map as SVG, HTML, DOT, PNG, PDF or a map file
//   - explore: Browse a map in the terminal
//   - validate: Check a map file and print what it contains
//   - init: Write the built-in map to a file as a starting point
//
// Every command reads featuremap.yaml (or --config) and FEATUREMAP_*
// environment variables first; flags override both.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
// The explorer owns the terminal, so while it runs logs are dropped or sent to
// the file named by --log-file.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/featuremap/pkg/errors"
)

// newLogger creates a logger writing to w at the given level.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// redirectLogs points l at the file at path, or discards output when path is
// empty, until the returned restore func is called.
func redirectLogs(l *log.Logger, prev io.Writer, path string) (restore func(), err error) {
	if path == "" {
		l.SetOutput(io.Discard)
		return func() { l.SetOutput(prev) }, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "open log file %s", path)
	}
	l.SetOutput(f)
	return func() {
		l.SetOutput(prev)
		f.Close()
	}, nil
}

// progress logs completion of an operation with its elapsed duration.
// It is meant for sequential use by a single goroutine.
type progress struct {
	logger *log.Logger
	start  time.Time
}

// newProgress starts timing an operation.
func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// donef logs the formatted message along with the elapsed time since progress
// was created, rounded to the nearest millisecond.
// Example output: "Rendered map.svg (12ms)"
func (p *progress) donef(format string, args ...any) {
	p.logger.Infof("%s (%s)", fmt.Sprintf(format, args...), time.Since(p.start).Round(time.Millisecond))
}

// ctxKey is the type for context keys used in this package.
type ctxKey int

// loggerKey is the context key for storing a logger.
const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
// The logger can be retrieved later with loggerFromContext.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx, or log.Default() when none
// is attached.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
