// A leveled logging facade with runtime-mutable context filtering. Messages
// are tagged with a numeric context (subsystem id) and pass through a
// black-list/white-list decision before reaching console-like sinks, plus a
// global severity threshold gating all sinks.
package ctxlog

import "strconv"

/*
common.go

Shared enums, defaults and tiny helpers used across the package:
 - basetype and typed aliases for byte-sized enums
 - LogLevel constants with canonical names and parse/name helpers support maps
 - filter mode constants
 - norm* clamp helpers that keep enum values inside their valid range
*/

// basetype is the underlying byte-sized representation used for enums.
type basetype byte

// Strongly-typed aliases over basetype for clarity and type-safety.
type LogLevel basetype
type FilterMode basetype
type fcdState basetype

// LogContext is an opaque tag identifying the logical subsystem that emits a
// message (networking, auth, ...). The package fixes no enumeration: callers
// define their own context space and contexts are compared by equality only.
type LogContext basetype

const (
	LVL_VERBOSE LogLevel = iota
	LVL_DEBUG
	LVL_INFO
	LVL_WARNING
	LVL_ERROR
	_LVL_MAX_for_checks_only
)

const (
	// No context filtering, everything passes.
	FILTER_NONE FilterMode = iota
	// Pass all contexts except the black-listed ones (opt-out, the default).
	FILTER_BLACKLIST
	// Pass only the white-listed contexts (opt-in, for focused debugging).
	FILTER_WHITELIST
	_FILTER_MAX_for_checks_only
)

const (
	_STATE_UNKNOWN fcdState = iota
	_STATE_ACTIVE
	_STATE_STOPPING
	_STATE_STOPPED
	_STATE_MAX_for_checks_only
)

const (
	// Most-verbose default: a logging facade should under-filter, not
	// under-report, until told otherwise.
	DEFAULT_LOG_LEVEL = LVL_VERBOSE
	DEFAULT_MSG_BUFF  = 32
)

// Canonical field separator of the formatted line "LEVEL|Class|Message".
const FIELD_DELIMITER = "|"

type LevelMap [_LVL_MAX_for_checks_only]string

// Canonical level names, uppercase, stable across releases (they are part of
// the formatted output and of persisted log files).
var LevelNames = &LevelMap{
	"VERBOSE", //LVL_VERBOSE
	"DEBUG",   //LVL_DEBUG
	"INFO",    //LVL_INFO
	"WARNING", //LVL_WARNING
	"ERROR",   //LVL_ERROR
}

func normLevel(level LogLevel) LogLevel {
	return norm_byte(level, _LVL_MAX_for_checks_only, LVL_ERROR)
}

func normMode(mode FilterMode) FilterMode {
	return norm_byte(mode, _FILTER_MAX_for_checks_only, FILTER_BLACKLIST)
}

func normState(state fcdState) fcdState {
	return norm_byte(state, _STATE_MAX_for_checks_only, _STATE_UNKNOWN)
}

func norm_byte[T ~byte](val, overlimit, def T) T {
	if val < overlimit {
		return val
	} else {
		return def
	}
}

const _ERROR_UNKNOWN_PANIC_TEXT = "[no panic description]"

// panicDesc renders a recovered panic value for fallback reporting. Error and
// string panics are quoted, anything else collapses to a fixed placeholder.
func panicDesc(r any) string {
	switch v := r.(type) {
	case error:
		return " `" + v.Error() + "`"
	case string:
		return " `" + v + "`"
	default:
		return " " + _ERROR_UNKNOWN_PANIC_TEXT
	}
}

// unknownLevelDesc is the placeholder returned by LevelName for values outside
// the closed level set. Lookup never fails, it degrades to a description.
func unknownLevelDesc(level LogLevel) string {
	return "unknown level " + strconv.Itoa(int(level))
}
