package canvas

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled returns false so callers skip message formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// newNopLogger creates a logger that silently discards all output.
func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the package default logger. Accessed atomically so that
// SetLogger can be called while a feed goroutine is logging.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the default logger for canvas and its sub-packages.
// By default canvas produces no log output. Viewers created afterwards use
// this logger unless WithLogger overrides it.
//
// Pass nil to restore the silent default.
//
// Log levels used by canvas:
//   - [slog.LevelDebug]: camera changes, gesture classification
//   - [slog.LevelInfo]: markers placed, comments anchored, pins created
//   - [slog.LevelWarn]: annotations skipped
//   - [slog.LevelError]: pin construction failures
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current default logger.
// The collab package calls this to share one logger configuration.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
