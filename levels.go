package ctxlog

import "strings"

/*
levels.go

The level registry: ordinal <-> canonical name mapping, case-insensitive
parsing and the global severity threshold. The threshold is a single atomic
word with last-writer-wins visibility, no lock is taken on the hot path.
*/

// Ordinal returns the fixed numeric rank of a level. The ordering is total
// and never changes: VERBOSE(0) < DEBUG(1) < INFO(2) < WARNING(3) < ERROR(4).
func Ordinal(level LogLevel) int {
	return int(level)
}

// LevelName returns the canonical uppercase name of a level ("VERBOSE" ...
// "ERROR"). Values outside the closed set yield a descriptive placeholder
// string instead of failing.
func LevelName(level LogLevel) string {
	if level < _LVL_MAX_for_checks_only {
		return LevelNames[level]
	}
	return unknownLevelDesc(level)
}

// ParseLevel matches a level name case-insensitively against the canonical
// names. An unrecognized name yields LVL_ERROR, the most restrictive level:
// broken configuration must under-log, never crash or over-log.
func ParseLevel(name string) LogLevel {
	upper := strings.ToUpper(strings.TrimSpace(name))
	for level, canonical := range LevelNames {
		if upper == canonical {
			return LogLevel(level)
		}
	}
	return LVL_ERROR
}

// levelFromPreference maps a persisted preference integer (0..4) to a level.
// Anything out of range maps to the most-verbose level so a corrupted
// preference store cannot silence logging.
func levelFromPreference(raw int) LogLevel {
	if raw >= 0 && raw < int(_LVL_MAX_for_checks_only) {
		return LogLevel(raw)
	}
	return LVL_VERBOSE
}

// SetMinLevel sets the global minimal level for the facade. Messages below
// this level are ignored by every sink. Plain atomic store, last writer wins.
func (f *Facade) SetMinLevel(minlevel LogLevel) *Facade {
	f.level.Store(int32(normLevel(minlevel)))
	return f
}

// MinLevel returns the current global threshold.
func (f *Facade) MinLevel() LogLevel {
	return LogLevel(f.level.Load())
}

// ApplyLevelFromPreference applies a persisted preference integer (0..4) as
// the global threshold, falling back to most-verbose for values outside the
// range. Intended to be called once at startup with whatever the preference
// store returned.
func (f *Facade) ApplyLevelFromPreference(raw int) *Facade {
	return f.SetMinLevel(levelFromPreference(raw))
}
