// Package logger holds the zerolog logger shared by every emojiart package.
// Until Init is called the logger discards everything, so library code and
// tests stay silent.
package logger

import (
	"io"
	"os"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

var current atomic.Pointer[zerolog.Logger]

func init() {
	nop := zerolog.Nop()
	current.Store(&nop)
}

// Init configures the shared logger. Pretty output uses the zerolog console
// writer, otherwise records are written as JSON lines.
func Init(w io.Writer, level string, pretty bool) {
	if w == nil {
		w = os.Stderr
	}
	if pretty {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339, NoColor: true}
	}
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.TimeFieldFormat = time.RFC3339
	l := zerolog.New(w).Level(lvl).With().
		Timestamp().
		Str("service", "emojiart").
		Logger()
	current.Store(&l)
}

// Set replaces the shared logger. Passing nil restores the silent default.
func Set(l *zerolog.Logger) {
	if l == nil {
		nop := zerolog.Nop()
		l = &nop
	}
	current.Store(l)
}

// Get returns the shared logger.
func Get() *zerolog.Logger {
	return current.Load()
}

// With returns a child logger tagged with the given component name.
func With(component string) zerolog.Logger {
	return current.Load().With().Str("component", component).Logger()
}
