package ctxlog

import "strings"

/*
writer.go

io.Writer adapter over the facade so it can be plugged into code that expects
a writer (the standard log package, fmt.Fprintf, command output capture).
The semantics are:
 - Writer(level, class) returns a writer emitting untagged messages
 - WriterC(level, ctx, class) returns a writer emitting tagged messages

This allows patterns like:

	fmt.Fprintf(log.Writer(ctxlog.LVL_WARNING, "Disk"), "disk low: %d%%", percent)

But remember that fmt is not thread-safe!
*/

// LevelWriter forwards written bytes as log messages at a fixed level, class
// and optional context tag.
type LevelWriter struct {
	facade *Facade
	class  string
	level  LogLevel
	ctx    LogContext
	tagged bool
}

// Writer returns an io.Writer emitting untagged messages at the given level.
func (f *Facade) Writer(level LogLevel, class string) *LevelWriter {
	return &LevelWriter{facade: f, class: class, level: normLevel(level)}
}

// WriterC returns an io.Writer emitting context-tagged messages at the given
// level.
func (f *Facade) WriterC(level LogLevel, ctx LogContext, class string) *LevelWriter {
	return &LevelWriter{facade: f, class: class, level: normLevel(level), ctx: ctx, tagged: true}
}

// Write implements io.Writer. One trailing newline is stripped (writers like
// the standard log package always terminate lines) and the rest is submitted
// as a single message. Delivery is fire-and-forget: the returned count is
// always len(p) with no error, even when the facade is stopped.
func (w *LevelWriter) Write(p []byte) (n int, err error) {
	if len(p) == 0 {
		return 0, nil
	}
	msg := strings.TrimSuffix(string(p), "\n")
	if w.tagged {
		w.facade.LogC(w.level, w.ctx, w.class, msg)
	} else {
		w.facade.Log(w.level, w.class, msg)
	}
	return len(p), nil
}
