package ctxlog

import (
	"errors"
	"io"
	"os"
	"time"
)

const (
	// Error messages used across facade operations (used for testing).
	_ERROR_MESSAGE_FACADE_STARTED  = "facade is allready started"
	_ERROR_MESSAGE_FACADE_INACTIVE = "facade is not active"
	_ERROR_MESSAGE_CHANNEL_IS_NIL  = "facade channel is nil"
)

// InitAndStart creates a facade with default parameters and starts its queue
// processing goroutine.
//   - buffsize: channel messages buffer capacity ([DEFAULT_MSG_BUFF] is used for
//     non-positive values)
//   - sinks: initial delivery destinations (console, test fakes, etc.)
//
// Preferred usage example:
//
//	func main() {
//	    log := ctxlog.InitAndStart(-1, ctxlog.NewConsoleSink(os.Stderr))
//	    defer log.StopAndWait()
//	    ...
//	}
func InitAndStart(buffsize int, sinks ...Sink) (f *Facade) {
	f = Init(sinks...)
	f.Start(buffsize)
	return
}

// Short form of Init creates a facade with the provided sinks, the
// most-verbose default threshold and [os.Stderr] as fallback for internal
// errors (can be changed later with Set methods).
//
// The returned facade is in stopped state and must be started by Start() to
// proceed log messages.
func Init(sinks ...Sink) *Facade {
	return InitWithParams(DEFAULT_LOG_LEVEL, os.Stderr, sinks...)
}

// InitWithParams constructs a facade instance with explicit initial settings.
//
// The returned facade is in stopped state and must be started by Start() to
// proceed log messages. The context filter starts in black-list mode with
// both lists empty, so everything above the threshold passes.
func InitWithParams(level LogLevel, fallback io.Writer, sinks ...Sink) *Facade {
	f := new(Facade)
	f.state = _STATE_STOPPED
	f.sinks = sinkList{}
	f.filter = newContextFilter()
	f.recorder = newAssertionRecorder(f)
	f.SetMinLevel(level)
	f.SetFallback(fallback)
	f.AddSinks(sinks...)
	return f
}

// Filter returns the context filter owned by this facade. The filter lives as
// long as the facade and is safe to mutate from any goroutine.
func (f *Facade) Filter() *ContextFilter {
	return f.filter
}

// Asserts returns the assertion recorder owned by this facade.
func (f *Facade) Asserts() *AssertionRecorder {
	return f.recorder
}

// SetFallback sets the fallback writer used to report internal errors,
// io.Discard is used instead of nil to silently drop fallback messages.
//
// The operation is protected by mutex for thread safety.
func (f *Facade) SetFallback(w io.Writer) *Facade {
	f.sync.fbckMtx.Lock()
	defer f.sync.fbckMtx.Unlock()
	if w != nil {
		f.fallbck = w
	} else {
		f.fallbck = io.Discard
	}
	return f
}

// SetMetrics attaches optional delivery counters. Nil disables counting.
func (f *Facade) SetMetrics(m *Metrics) *Facade {
	f.metrics = m
	return f
}

// SetFileSink injects the file sink collaborator used by SetPersistToFile.
// Replacing the sink while persistence is enabled is not supported; disable
// persistence first.
func (f *Facade) SetFileSink(fs FileSink) *Facade {
	f.sync.prstMtx.Lock()
	defer f.sync.prstMtx.Unlock()
	if !f.persist {
		f.filesink = fs
	}
	return f
}

/////////////////////////////////////////////////////////////////////////////////////////

// Log emits an untagged message: it is gated by the global threshold only and
// always passes the context filter (an untagged call has no basis for
// exclusion). The message is formatted as "LEVEL|Class|Message" and forwarded
// to the configured sinks.
//
// The threshold check short-circuits before any formatting work is done.
func (f *Facade) Log(level LogLevel, class, msg string) {
	f.submit(level, class, msg, false, 0)
}

// LogC emits a message tagged with a context. On top of the global threshold
// the context filter verdict is consulted: if it says drop, filter-aware
// sinks are silently skipped. All level-specific helpers route through the
// same decision path as this function, so the threshold-then-filter ordering
// is applied uniformly.
func (f *Facade) LogC(level LogLevel, ctx LogContext, class, msg string) {
	f.submit(level, class, msg, true, ctx)
}

// submit is the single authoritative decision path behind every Log* entry
// point: threshold first, then the filter verdict, then formatting, then the
// queue.
func (f *Facade) submit(level LogLevel, class, msg string, tagged bool, ctx LogContext) {
	level = normLevel(level)
	if level < f.MinLevel() {
		// Dropped before any formatting: building the line for a message
		// nobody will see is wasted work on a hot path.
		f.metrics.countDropped(level, _DROP_THRESHOLD)
		return
	}
	pass := true
	if tagged {
		pass = f.filter.Decide(ctx)
		if !pass {
			f.metrics.countDropped(level, _DROP_FILTER)
		}
	}
	m := logMessage{
		class:  class,
		text:   msg,
		line:   LevelName(level) + FIELD_DELIMITER + class + FIELD_DELIMITER + msg,
		level:  level,
		tagged: tagged,
		pass:   pass,
	}
	if err := f.pushMessage(&m); err != nil {
		f.handleInternalError(err.Error())
	}
}

// Attempts to enqueue a logMessage into the facade's channel. Catches any
// panics (including writing to the closed channel) and converts them to
// errors.
func (f *Facade) pushMessage(msg *logMessage) (err error) {
	f.sync.statMtx.RLock()
	defer func() {
		if r := recover(); r != nil {
			err = errors.New("panic" + panicDesc(r))
		}
		f.sync.statMtx.RUnlock()
	}()
	if !f.IsActive() {
		return errors.New(_ERROR_MESSAGE_FACADE_INACTIVE)
	}
	if f.channel == nil {
		return errors.New(_ERROR_MESSAGE_CHANNEL_IS_NIL)
	}
	// will panic if channel is closed (with recover and setting error)
	msg.pushed = time.Now()
	f.channel <- *msg
	return nil
}

/////////////////////////////////////////////////////////////////////////////////////////
/*
Convenience level-specific helpers. These are thin wrappers around Log/LogC
that provide inline hints in editors and documentation tools. All of them
route through submit, never around it.
*/

// Verbose logs an untagged message at VERBOSE level.
func (f *Facade) Verbose(class, msg string) { f.Log(LVL_VERBOSE, class, msg) }

// Debug logs an untagged message at DEBUG level.
func (f *Facade) Debug(class, msg string) { f.Log(LVL_DEBUG, class, msg) }

// Info logs an untagged message at INFO level.
func (f *Facade) Info(class, msg string) { f.Log(LVL_INFO, class, msg) }

// Warning logs an untagged message at WARNING level.
func (f *Facade) Warning(class, msg string) { f.Log(LVL_WARNING, class, msg) }

// Error logs an untagged message at ERROR level.
func (f *Facade) Error(class, msg string) { f.Log(LVL_ERROR, class, msg) }

// Err logs an error value at ERROR level. Semantically equivalent to calling
// Error(class, e.Error()) but clearer at call sites when you already have an
// error object.
func (f *Facade) Err(class string, e error) { f.Log(LVL_ERROR, class, e.Error()) }

// VerboseC logs a context-tagged message at VERBOSE level.
func (f *Facade) VerboseC(ctx LogContext, class, msg string) { f.LogC(LVL_VERBOSE, ctx, class, msg) }

// DebugC logs a context-tagged message at DEBUG level.
func (f *Facade) DebugC(ctx LogContext, class, msg string) { f.LogC(LVL_DEBUG, ctx, class, msg) }

// InfoC logs a context-tagged message at INFO level.
func (f *Facade) InfoC(ctx LogContext, class, msg string) { f.LogC(LVL_INFO, ctx, class, msg) }

// WarningC logs a context-tagged message at WARNING level.
func (f *Facade) WarningC(ctx LogContext, class, msg string) { f.LogC(LVL_WARNING, ctx, class, msg) }

// ErrorC logs a context-tagged message at ERROR level.
func (f *Facade) ErrorC(ctx LogContext, class, msg string) { f.LogC(LVL_ERROR, ctx, class, msg) }
