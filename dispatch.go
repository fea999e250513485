package ctxlog

import "errors"

/*
dispatch.go

The asynchronous delivery loop: a buffered channel drained by one background
goroutine that fans each queued message out to the attached sinks. The caller
side of the facade never blocks on sink IO, it only enqueues.

Responsible for:
 - the Start/Stop/Wait lifecycle of the processing goroutine
 - per-sink delivery decisions (enabled, min level, filter verdict, formatter)
 - disabling a sink whose Write panics so one broken sink cannot take the
   loop down repeatedly
 - error reporting to the fallback writer
*/

// Start launches the background goroutine that processes queued messages.
// If the facade is already active an error is returned. The channel is
// created with the provided buffsize (DEFAULT_MSG_BUFF for non-positive).
//
// The started goroutine runs procced() and is tracked by the internal wait
// group so callers can Wait() for graceful shutdown.
func (f *Facade) Start(buffsize int) error {
	f.sync.statMtx.Lock()
	defer f.sync.statMtx.Unlock()
	if f.IsActive() {
		return errors.New(_ERROR_MESSAGE_FACADE_STARTED)
	}
	if buffsize <= 0 {
		buffsize = DEFAULT_MSG_BUFF
	}
	f.channel = make(chan logMessage, buffsize)
	f.sync.waitEnd.Add(1)
	go func() {
		defer f.sync.waitEnd.Done()
		f.procced()
	}()
	f.state = _STATE_ACTIVE
	return nil
}

// Stop initiates shutdown. It sets the stopping state and closes the channel;
// no new messages will be queued. The processor goroutine exits once the
// channel drains, so nothing already queued is lost.
//
// Wait() should be called before program exit to prevent the loss of last
// queued messages.
func (f *Facade) Stop() {
	f.sync.statMtx.Lock()
	defer f.sync.statMtx.Unlock()
	if f.IsActive() {
		f.state = _STATE_STOPPING
		close(f.channel)
	}
}

// Wait blocks until the background queue goroutine has finished.
func (f *Facade) Wait() {
	f.sync.waitEnd.Wait()
}

// A convenience to Stop() and then Wait() for completion. Useful if the
// facade has to be stopped just before program exit.
func (f *Facade) StopAndWait() {
	f.Stop()
	f.Wait()
}

// True if the facade is in active state (i.e. ready to proceed log messages).
func (f *Facade) IsActive() bool {
	return f.state == _STATE_ACTIVE
}

func (f *Facade) setState(newstate fcdState) {
	f.sync.statMtx.Lock()
	defer f.sync.statMtx.Unlock()
	f.state = normState(newstate)
}

// procced is the background message processing loop. It reads messages from
// the channel until the channel is closed and fans each one out to the
// attached sinks.
//
// The function recovers panics to ensure the background goroutine doesn't die
// silently; recover triggers a fallback write and the state is moved to
// stopped before returning.
func (f *Facade) procced() {
	defer func() {
		if r := recover(); r != nil {
			f.handleInternalError("panic proceeding log" + panicDesc(r))
		}
		f.setState(_STATE_STOPPED)
	}()
	for {
		msg, opened := <-f.channel
		if !opened {
			break
		}
		f.deliverToSinks(&msg)
	}
}

// deliverToSinks walks the sinks map and attempts to deliver the message to
// each eligible sink. A sink is skipped when it is disabled, when the message
// level is below the sink's minimal level, when the captured filter verdict
// says drop and the sink is filter-aware, or when the sink's formatter
// declines the message. If a write panics the sink is disabled to avoid
// repeated panics.
func (f *Facade) deliverToSinks(msg *logMessage) {
	// Full lock, not RLock: a panicking sink is disabled in place.
	f.sync.snksMtx.Lock()
	defer f.sync.snksMtx.Unlock()
	delivered := false
	for sink, settings := range f.sinks {
		if sink == nil || settings == nil || !settings.enabled {
			continue
		}
		if msg.level < settings.minlevel {
			continue
		}
		if msg.tagged && !msg.pass && settings.filtered {
			continue
		}
		wrote, panicked, err := f.writeToSink(sink, settings, msg)
		if panicked {
			// got panic writing, disable sink for further writes
			settings.enabled = false
		}
		if err != nil {
			f.handleInternalError(err.Error())
		}
		if wrote {
			delivered = true
		}
	}
	if delivered {
		f.metrics.countDelivered(msg.level)
	}
}

// writeToSink renders the final line for a single sink and writes it. It
// reports whether the line actually reached the sink, whether the write
// panicked and any conversion error. The deferred recover sets panicked and
// converts the panic into an error.
func (f *Facade) writeToSink(sink Sink, settings *sinkContext, msg *logMessage) (wrote, panicked bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			wrote = false
			panicked = true
			err = errors.New("panic writing log to sink" + panicDesc(r))
		}
	}()
	line := msg.line
	if settings.formatter != nil {
		formatted, ok := settings.formatter.Format(msg.level, msg.class, msg.text)
		if !ok {
			// declined by the per-sink hook, not an error
			return false, false, nil
		}
		line = formatted
	}
	sink.Write(msg.level, line)
	wrote = true
	return
}

// handleInternalError writes a human-readable error message to the fallback
// writer. A read lock is used since we only need consistent access to fallbck.
func (f *Facade) handleInternalError(errormsg string) {
	f.sync.fbckMtx.RLock()
	defer f.sync.fbckMtx.RUnlock()
	if f.fallbck != nil {
		f.fallbck.Write([]byte(errormsg + "\n"))
	}
}
