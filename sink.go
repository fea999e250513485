package ctxlog


/*
sink.go

Sink management on the facade. Sinks are kept in a map with a per-sink
settings context (minimal level, enable flag, formatter hook and the
filter-aware flag). Sinks are expected to be configured once at process start
and mutated only through toggles afterwards, but every operation here is safe
to call at any time.
*/

// AddSinks attaches one or more sinks to the facade and creates a default
// settings context for each: enabled, filter-aware, no minimal level, no
// formatter. Nil sinks are ignored.
//
// The operation is protected by mutex for thread safety.
//
// Changes are applied immediately (any previously queued messages will be
// directed to the updated set of sinks).
func (f *Facade) AddSinks(sinks ...Sink) *Facade {
	f.operateSinks(sinks, func(m *sinkList, k Sink) {
		(*m)[k] = &sinkContext{
			enabled:  true,
			filtered: true,
			minlevel: LVL_VERBOSE,
		}
	})
	return f
}

// RemoveSinks detaches the provided sinks from the facade. No errors if there
// is no such sink attached.
//
// The operation is protected by mutex for thread safety.
func (f *Facade) RemoveSinks(sinks ...Sink) *Facade {
	f.operateSinks(sinks, func(m *sinkList, k Sink) { delete(*m, k) })
	return f
}

// ClearSinks detaches all sinks from the facade.
func (f *Facade) ClearSinks() *Facade {
	keys := make([]Sink, 0, len(f.sinks))
	for k := range f.sinks {
		keys = append(keys, k)
	}
	f.RemoveSinks(keys...)
	return f
}

// Helper that applies the operation for each non-nil sink from the provided
// slice. The operation is performed with the sinks mutex held.
func (f *Facade) operateSinks(slice []Sink, operation func(m *sinkList, k Sink)) {
	if len(slice) == 0 {
		return
	}
	f.sync.snksMtx.Lock()
	defer f.sync.snksMtx.Unlock()
	for _, sink := range slice {
		if sink != nil {
			operation(&f.sinks, sink)
		}
	}
}

// IsSinkAttached returns whether the specified sink is attached to the facade.
func (f *Facade) IsSinkAttached(sink Sink) bool {
	f.sync.snksMtx.RLock()
	defer f.sync.snksMtx.RUnlock()
	return f.sinks[sink] != nil
}

// IsSinkEnabled returns whether a sink is enabled for writes (false if the
// sink is not attached at all).
func (f *Facade) IsSinkEnabled(sink Sink) bool {
	f.sync.snksMtx.RLock()
	defer f.sync.snksMtx.RUnlock()
	c := f.sinks[sink]
	if c != nil {
		return c.enabled
	}
	return false
}

// The next set of functions change per-sink settings by delegating to
// changeSinkSettings which takes a closure and runs it while holding the
// sinks mutex.

// SetSinkEnabled toggles a sink without detaching it, keeping its settings.
func (f *Facade) SetSinkEnabled(sink Sink, enabled bool) *Facade {
	return f.changeSinkSettings(sink, func(c *sinkContext) {
		c.enabled = enabled
	})
}

// SetSinkFormatter assigns the formatter hook invoked per message before it
// reaches the specified sink. Nil removes the hook.
func (f *Facade) SetSinkFormatter(sink Sink, formatter Formatter) *Facade {
	return f.changeSinkSettings(sink, func(c *sinkContext) {
		c.formatter = formatter
	})
}

// SetSinkMinLevel sets the minimal level to deliver to the specified sink.
// Used in addition to the facade's global threshold.
func (f *Facade) SetSinkMinLevel(sink Sink, minlevel LogLevel) *Facade {
	return f.changeSinkSettings(sink, func(c *sinkContext) {
		c.minlevel = normLevel(minlevel)
	})
}

// SetSinkFiltered controls whether the context filter gates the specified
// sink. New sinks start filter-aware; a persistence sink that must keep
// everything regardless of the interactive filter state turns this off.
func (f *Facade) SetSinkFiltered(sink Sink, filtered bool) *Facade {
	return f.changeSinkSettings(sink, func(c *sinkContext) {
		c.filtered = filtered
	})
}

// Safely modifies the settings context with a given function for the given
// sink (if it is attached).
func (f *Facade) changeSinkSettings(sink Sink, op func(*sinkContext)) *Facade {
	f.sync.snksMtx.Lock()
	defer f.sync.snksMtx.Unlock()
	if f.sinks[sink] != nil {
		op(f.sinks[sink])
	}
	return f
}
