package ctxlog

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

/*
console.go

Shipped sink implementations. The console sink delegates to zerolog: the
facade only decides and formats, the severity-aware console transport is an
external library consumed as a black box. WriterSink is the trivial adapter
for plain io.Writer destinations (test fakes, pipes, os.Stdout).
*/

// ConsoleSink writes formatted lines through a zerolog console writer,
// mapping facade levels to zerolog levels so the terminal output keeps
// zerolog's level coloring and layout.
type ConsoleSink struct {
	zl zerolog.Logger
}

// NewConsoleSink creates a console sink writing to w (os.Stderr when nil).
func NewConsoleSink(w io.Writer) *ConsoleSink {
	if w == nil {
		w = os.Stderr
	}
	cw := zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly}
	return &ConsoleSink{
		zl: zerolog.New(cw).With().Timestamp().Logger(),
	}
}

// Write implements Sink. The line already carries the canonical
// "LEVEL|Class|Message" layout (or whatever the per-sink formatter built);
// zerolog contributes timestamping and terminal rendering.
func (s *ConsoleSink) Write(level LogLevel, line string) {
	s.zl.WithLevel(zerologLevel(level)).Msg(line)
}

// zerologLevel maps a facade level onto the zerolog scale. VERBOSE has no
// direct counterpart and lands on trace.
func zerologLevel(level LogLevel) zerolog.Level {
	switch level {
	case LVL_VERBOSE:
		return zerolog.TraceLevel
	case LVL_DEBUG:
		return zerolog.DebugLevel
	case LVL_INFO:
		return zerolog.InfoLevel
	case LVL_WARNING:
		return zerolog.WarnLevel
	case LVL_ERROR:
		return zerolog.ErrorLevel
	default:
		return zerolog.ErrorLevel
	}
}

// WriterSink adapts any io.Writer into a Sink. Each line is terminated with
// a newline. Write errors are deliberately swallowed: delivery is
// fire-and-forget and a failing destination must not disturb the caller.
type WriterSink struct {
	out io.Writer
}

// NewWriterSink wraps w (io.Discard when nil).
func NewWriterSink(w io.Writer) *WriterSink {
	if w == nil {
		w = io.Discard
	}
	return &WriterSink{out: w}
}

// Write implements Sink.
func (s *WriterSink) Write(_ LogLevel, line string) {
	s.out.Write([]byte(line + "\n"))
}
