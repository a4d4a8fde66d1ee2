package debuglog

import (
	"io"
	"log/slog"
	"sync/atomic"
)

// Debug flag bits. The host sets these as a single word; each bit
// enables one category of output.
const (
	FlagStats         int32 = 1 << 0
	FlagCollectable   int32 = 1 << 1
	FlagUncollectable int32 = 1 << 2
)

// FlagMask covers every defined bit. Unknown bits are preserved but
// never consulted.
const FlagMask = FlagStats | FlagCollectable | FlagUncollectable

// Logger wraps a slog.Logger with the flag word.
type Logger struct {
	flags atomic.Int32
	log   *slog.Logger
}

func New(w io.Writer) *Logger {
	return &Logger{
		log: slog.New(slog.NewTextHandler(w, nil)),
	}
}

// SetFlags replaces the whole flag word.
func (l *Logger) SetFlags(f int32) {
	l.flags.Store(f)
}

// Flags returns the current flag word.
func (l *Logger) Flags() int32 {
	return l.flags.Load()
}

// Enabled reports whether any bit in mask is set.
func (l *Logger) Enabled(mask int32) bool {
	return l.flags.Load()&mask != 0
}

// Log emits msg when a bit in mask is enabled.
func (l *Logger) Log(mask int32, msg string, args ...any) {
	if !l.Enabled(mask) {
		return
	}
	l.log.Info(msg, args...)
}

// Always emits msg regardless of flags. Used for explicitly requested
// diagnostics like the state dump.
func (l *Logger) Always(msg string, args ...any) {
	l.log.Info(msg, args...)
}
