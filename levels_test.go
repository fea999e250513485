package ctxlog

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Ordinal_TotalOrdering(t *testing.T) {
	assert.Equal(t, 0, Ordinal(LVL_VERBOSE))
	assert.Equal(t, 4, Ordinal(LVL_ERROR))
	for level := LVL_DEBUG; level < _LVL_MAX_for_checks_only; level++ {
		assert.Greater(t, Ordinal(level), Ordinal(level-1))
	}
}

func Test_LevelName_Canonical(t *testing.T) {
	assert.Equal(t, "VERBOSE", LevelName(LVL_VERBOSE))
	assert.Equal(t, "DEBUG", LevelName(LVL_DEBUG))
	assert.Equal(t, "INFO", LevelName(LVL_INFO))
	assert.Equal(t, "WARNING", LevelName(LVL_WARNING))
	assert.Equal(t, "ERROR", LevelName(LVL_ERROR))
}

func Test_LevelName_OutOfRange(t *testing.T) {
	for _, level := range []LogLevel{_LVL_MAX_for_checks_only, 9, 42, 255} {
		t.Run(strconv.Itoa(int(level)), func(t *testing.T) {
			assert.Equal(t, "unknown level "+strconv.Itoa(int(level)), LevelName(level))
		})
	}
}

func Test_ParseLevel_RoundTrip(t *testing.T) {
	for level := LogLevel(0); level < _LVL_MAX_for_checks_only; level++ {
		assert.Equal(t, level, ParseLevel(LevelName(level)), "round trip failed on "+LevelName(level))
	}
}

func Test_ParseLevel(t *testing.T) {
	tests := []struct {
		name  string
		input string
		wants LogLevel
	}{
		{"exact", "INFO", LVL_INFO},
		{"lowercase", "warning", LVL_WARNING},
		{"mixed_case", "VeRbOsE", LVL_VERBOSE},
		{"spaces_around", "  debug \t", LVL_DEBUG},
		{"unknown_defaults_to_error", "chatty", LVL_ERROR},
		{"empty_defaults_to_error", "", LVL_ERROR},
		{"short_name_not_canonical", "WARN", LVL_ERROR},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wants, ParseLevel(tt.input))
		})
	}
}

func Test_Facade_MinLevel(t *testing.T) {
	f := Init()
	t.Run("default_most_verbose", func(t *testing.T) {
		assert.Equal(t, LVL_VERBOSE, f.MinLevel())
	})
	t.Run("set_get", func(t *testing.T) {
		for level := LogLevel(0); level < _LVL_MAX_for_checks_only; level++ {
			fres := f.SetMinLevel(level)
			assert.Equal(t, f, fres, "result is another facade")
			assert.Equal(t, level, f.MinLevel())
		}
	})
	t.Run("invalid_clamps_to_error", func(t *testing.T) {
		f.SetMinLevel(LogLevel(200))
		assert.Equal(t, LVL_ERROR, f.MinLevel())
	})
}

func Test_Facade_ApplyLevelFromPreference(t *testing.T) {
	tests := []struct {
		name  string
		raw   int
		wants LogLevel
	}{
		{"verbose", 0, LVL_VERBOSE},
		{"debug", 1, LVL_DEBUG},
		{"info", 2, LVL_INFO},
		{"warning", 3, LVL_WARNING},
		{"error", 4, LVL_ERROR},
		{"negative_maps_to_most_verbose", -1, LVL_VERBOSE},
		{"too_big_maps_to_most_verbose", 5, LVL_VERBOSE},
		{"garbage_maps_to_most_verbose", 100500, LVL_VERBOSE},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := Init().ApplyLevelFromPreference(tt.raw)
			assert.Equal(t, tt.wants, f.MinLevel())
		})
	}
}
