package ctxlog

import (
	"runtime"
	"strconv"
	"sync"

	"github.com/pkg/errors"
)

/*
assert.go

The assertion recorder: a flag pair that controls whether assertion failures
demand process termination or are captured for later inspection by tests.

The recorder never terminates the process itself. Instead OnAssertionFailure
returns ErrAssertionAbort when the composed policy demands an abort and the
composition root decides what to do with it. This keeps tests able to inject
RecordPolicy without touching process-wide state.

Both flags (recording enabled, recorded) share one mutex: a lost update
between "set" and "check-and-clear" would break the exactly-once guarantee
test harnesses rely on.
*/

// ErrAssertionAbort is returned by OnAssertionFailure when the active policy
// demands process termination. The failure is already logged by the time this
// error is returned.
var ErrAssertionAbort = errors.New("assertion failure demands abort")

// FailurePolicy decides what a non-recorded assertion failure leads to.
// Selected at composition time, so tests and production wire different
// policies instead of flipping process-wide flags.
type FailurePolicy interface {
	FailureAborts() bool
}

// RecordPolicy never demands an abort. The default for non-interactive
// deployments: a logging subsystem must not be the reason a process dies.
type RecordPolicy struct{}

func (RecordPolicy) FailureAborts() bool { return false }

// AbortPolicy demands an abort, but only when built for interactive
// debugging. With Interactive false it degrades to RecordPolicy behavior:
// fail open in production, fail loud in development.
type AbortPolicy struct {
	Interactive bool
}

func (p AbortPolicy) FailureAborts() bool { return p.Interactive }

// AssertionRecorder tracks assertion failures for one facade. Obtain it via
// Facade.Asserts().
type AssertionRecorder struct {
	mtx       sync.Mutex
	facade    *Facade
	policy    FailurePolicy
	recording bool
	recorded  bool
}

func newAssertionRecorder(f *Facade) *AssertionRecorder {
	return &AssertionRecorder{
		facade: f,
		policy: AbortPolicy{Interactive: false},
	}
}

// SetPolicy replaces the failure policy. Nil restores the non-interactive
// default.
func (ar *AssertionRecorder) SetPolicy(policy FailurePolicy) *AssertionRecorder {
	ar.mtx.Lock()
	defer ar.mtx.Unlock()
	if policy == nil {
		policy = AbortPolicy{Interactive: false}
	}
	ar.policy = policy
	return ar
}

// SetRecordingEnabled configures whether failures are captured in the
// one-shot recorded flag (true) or handed to the failure policy (false).
func (ar *AssertionRecorder) SetRecordingEnabled(enabled bool) *AssertionRecorder {
	ar.mtx.Lock()
	defer ar.mtx.Unlock()
	ar.recording = enabled
	return ar
}

// RecordedAndClear atomically reads and resets the recorded flag. Two calls
// in a row with no intervening failure return true at most once: each
// recorded failure is observed exactly once, without races between the
// writer and the checker.
func (ar *AssertionRecorder) RecordedAndClear() bool {
	ar.mtx.Lock()
	defer ar.mtx.Unlock()
	was := ar.recorded
	ar.recorded = false
	return was
}

// OnAssertionFailure reports a failed assertion. The failure and the captured
// call stack are always logged at error level first, unconditionally of the
// recording mode. Then, when recording is enabled the one-shot recorded flag
// is set and nil is returned; otherwise the policy decides and
// ErrAssertionAbort is returned when it demands termination.
//
// The call itself never fails: a missing or partial stack is logged as-is.
func (ar *AssertionRecorder) OnAssertionFailure(where, message string, stack []string) error {
	// Log before any branching so the failure is visible even when the
	// process is about to be taken down by the caller.
	ar.facade.Log(LVL_ERROR, where, "assertion failed: "+message)
	for _, frame := range stack {
		ar.facade.Log(LVL_ERROR, where, "  at "+frame)
	}

	ar.mtx.Lock()
	defer ar.mtx.Unlock()
	if ar.recording {
		ar.recorded = true
		return nil
	}
	if ar.policy.FailureAborts() {
		return ErrAssertionAbort
	}
	return nil
}

// CaptureStack collects the call stack of the caller as "file:line func"
// strings, skipping the given number of frames above CaptureStack itself.
// Capture problems never propagate: on any failure the frames collected so
// far are returned, possibly none.
func CaptureStack(skip int) (frames []string) {
	defer func() {
		// A broken stack must not break the assertion report.
		_ = recover()
	}()
	pc := make([]uintptr, 64)
	n := runtime.Callers(skip+2, pc)
	if n == 0 {
		return nil
	}
	iter := runtime.CallersFrames(pc[:n])
	for {
		frame, more := iter.Next()
		frames = append(frames, frame.File+":"+strconv.Itoa(frame.Line)+" "+frame.Function)
		if !more {
			break
		}
	}
	return frames
}
