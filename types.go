package ctxlog

import (
	"io"
	"sync"
	"sync/atomic"
	"time"
)

/*
types.go

Defines the central data structures of the facade:
 - Sink and Formatter: the collaborator interfaces messages are delivered to
 - sinkContext / sinkList: per-sink delivery settings
 - logMessage: internal representation of queued items
 - Facade: the state object that coordinates the threshold, the context
   filter, sink management and the background dispatch goroutine.
*/

// Sink is a downstream destination for formatted log lines. Write may be
// synchronous or queued internally; the facade never observes completion and
// treats delivery as fire-and-forget.
type Sink interface {
	Write(level LogLevel, line string)
}

// Formatter is a per-sink hook invoked just before a message reaches that
// sink. It receives the structured pieces of the call and returns the final
// line; returning ok=false drops the message for this sink only. This is the
// same gating concept as the context filter, applied at the sink boundary.
type Formatter interface {
	Format(level LogLevel, class, msg string) (line string, ok bool)
}

// sinkContext holds delivery settings for a specific sink.
type sinkContext struct {
	formatter Formatter // optional per-sink formatter/filter hook
	minlevel  LogLevel  // minimal level accepted by this sink
	filtered  bool      // whether the context filter gates this sink
	enabled   bool      // whether this sink is enabled for writes
}

// sinkList maps attached sinks to their per-sink settings.
type sinkList map[Sink]*sinkContext

// logMessage is the unit enqueued into the dispatch channel.
type logMessage struct {
	pushed time.Time // timestamp when the message was queued
	class  string    // origin class/module tag supplied by the caller
	text   string    // raw message text
	line   string    // canonical "LEVEL|Class|Message" rendering
	level  LogLevel
	tagged bool // whether a context was attached to the call
	pass   bool // context filter verdict captured at submit time
}

// Facade is the public entry point: it composes the level threshold, the
// context filter, the assertion recorder and an injected sink collection.
// One instance is expected to live for the whole process; it is created once,
// never destroyed, only mutated.
type Facade struct {
	sync struct {
		statMtx sync.RWMutex   // guards state and channel checks
		fbckMtx sync.RWMutex   // guards access to the fallback writer
		snksMtx sync.RWMutex   // guards the sinks map
		prstMtx sync.Mutex     // guards the persistence toggle and its side effects
		waitEnd sync.WaitGroup // tracks the background goroutine lifecycle
	}
	sinks    sinkList
	filter   *ContextFilter
	recorder *AssertionRecorder
	filesink FileSink  // attached/detached by SetPersistToFile
	metrics  *Metrics  // optional delivery counters, nil disables
	fallbck  io.Writer // fallback writer used to report internal errors
	channel  chan logMessage
	level    atomic.Int32 // global threshold, single-word visibility
	state    fcdState
	persist  bool // whether the file sink is currently attached
}
