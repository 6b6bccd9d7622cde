// Package objclog is a small leveled logger for the pipeline's
// verbose/trace output. It exists so Rewrite never touches a
// package-level verbose flag the way peac's vprintf does — every
// caller supplies its own *Logger instead.
package objclog

import (
	"fmt"
	"io"
	"log"
)

// Logger writes verbose progress messages to an underlying writer when
// enabled, and is silent (but never nil-panics) otherwise.
type Logger struct {
	enabled bool
	l       *log.Logger
}

// New returns a Logger writing to w. Pass enabled=false to get a
// no-op logger without a nil check at every call site.
func New(w io.Writer, enabled bool) *Logger {
	return &Logger{enabled: enabled, l: log.New(w, "", 0)}
}

// Discard is a Logger that drops everything, for callers with no
// verbose output configured.
func Discard() *Logger { return New(io.Discard, false) }

// Verbosef logs a formatted verbose message when the logger is enabled.
func (lg *Logger) Verbosef(format string, args ...interface{}) {
	if lg == nil || !lg.enabled {
		return
	}
	lg.l.Output(2, fmt.Sprintf(format, args...))
}

// Enabled reports whether verbose output is on.
func (lg *Logger) Enabled() bool { return lg != nil && lg.enabled }
