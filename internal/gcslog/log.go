// Package gcslog wraps zerolog with helpers for three field conventions: a
// "component" naming the subsystem, an "epoch" giving a search depth, and a
// "recursion" nesting depth. The solver itself tags its events with
// "component" only.
package gcslog

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Logger is a thin facade over zerolog.Logger so call sites never import
// zerolog directly.
type Logger struct {
	z zerolog.Logger
}

// New builds a Logger writing to w in zerolog's console format when pretty
// is true (for interactive CLI use), or newline-delimited JSON otherwise
// (for piping into log aggregation).
func New(w io.Writer, pretty bool) Logger {
	if pretty {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	z := zerolog.New(w).With().Timestamp().Logger()
	return Logger{z: z}
}

// Default returns a pretty logger writing to stderr, the default for
// cmd/gcsctl when --log-format is not set to json.
func Default() Logger { return New(os.Stderr, true) }

// Component returns a child logger tagging every event with the given
// subsystem name.
func (l Logger) Component(name string) Logger {
	return Logger{z: l.z.With().Str("component", name).Logger()}
}

// WithEpoch returns a child logger tagging every event with the current
// search depth.
func (l Logger) WithEpoch(epoch int) Logger {
	return Logger{z: l.z.With().Int("epoch", epoch).Logger()}
}

// WithRecursion returns a child logger tagging every event with a nesting
// depth.
func (l Logger) WithRecursion(depth int) Logger {
	return Logger{z: l.z.With().Int("recursion", depth).Logger()}
}

func (l Logger) Debug() *zerolog.Event { return l.z.Debug() }
func (l Logger) Info() *zerolog.Event  { return l.z.Info() }
func (l Logger) Warn() *zerolog.Event  { return l.z.Warn() }
func (l Logger) Error() *zerolog.Event { return l.z.Error() }

// SetGlobalLevel adjusts the minimum level every Logger built from this
// package logs at.
func SetGlobalLevel(level string) error {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return err
	}
	zerolog.SetGlobalLevel(lvl)
	return nil
}
