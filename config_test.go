package ctxlog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePrefsFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ctxlog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func Test_LoadPreferences_Defaults(t *testing.T) {
	t.Run("empty_path", func(t *testing.T) {
		prefs, err := LoadPreferences("")
		require.NoError(t, err)
		assert.Equal(t, int(LVL_VERBOSE), prefs.Level)
		assert.False(t, prefs.Persist)
		assert.Equal(t, "blacklist", prefs.Mode)
		assert.Equal(t, DEFAULT_LOG_FILE, prefs.LogFile)
	})
	t.Run("missing_file_is_not_an_error", func(t *testing.T) {
		prefs, err := LoadPreferences("/no/such/file.yaml")
		require.NoError(t, err)
		assert.Equal(t, int(LVL_VERBOSE), prefs.Level)
	})
}

func Test_LoadPreferences_File(t *testing.T) {
	path := writePrefsFile(t, `
level: 3
persist: true
mode: whitelist
whitelist: [1, 2]
blacklist: [9]
log_file: /tmp/ctxlog-test/app.log
max_size_mb: 1
`)
	prefs, err := LoadPreferences(path)
	require.NoError(t, err)
	assert.Equal(t, 3, prefs.Level)
	assert.True(t, prefs.Persist)
	assert.Equal(t, "whitelist", prefs.Mode)
	assert.Equal(t, []int{1, 2}, prefs.Whitelist)
	assert.Equal(t, []int{9}, prefs.Blacklist)
	assert.Equal(t, "/tmp/ctxlog-test/app.log", prefs.LogFile)
	assert.Equal(t, 1, prefs.MaxSizeMB)
}

func Test_LoadPreferences_EnvOverridesFile(t *testing.T) {
	path := writePrefsFile(t, "level: 1\n")
	t.Setenv("CTXLOG_LEVEL", "4")
	t.Setenv("CTXLOG_MODE", "whitelist")
	prefs, err := LoadPreferences(path)
	require.NoError(t, err)
	assert.Equal(t, 4, prefs.Level)
	assert.Equal(t, "whitelist", prefs.Mode)
}

func Test_LoadPreferences_BrokenYAML(t *testing.T) {
	path := writePrefsFile(t, "level: [unclosed\n")
	_, err := LoadPreferences(path)
	assert.Error(t, err)
}

func Test_Preferences_Apply(t *testing.T) {
	f := Init()
	prefs := &Preferences{
		Level:     3,
		Mode:      "whitelist",
		Whitelist: []int{1, 2},
		Blacklist: []int{9},
	}
	prefs.Apply(f)

	assert.Equal(t, LVL_WARNING, f.MinLevel())
	assert.Equal(t, FILTER_WHITELIST, f.Filter().Mode())
	assert.ElementsMatch(t, []LogContext{1, 2}, f.Filter().WhitelistedContexts())
	assert.ElementsMatch(t, []LogContext{9}, f.Filter().BlacklistedContexts())
}

func Test_Preferences_ApplyPersist(t *testing.T) {
	logpath := filepath.Join(t.TempDir(), "applied.log")
	f, _, _ := startFacade(t, LVL_VERBOSE)
	prefs := &Preferences{Level: 0, Persist: true, Mode: "blacklist", LogFile: logpath}
	prefs.Apply(f)

	f.Info("Class", "persisted by preferences")
	f.StopAndWait()

	contents, ok := f.CurrentLogFileContents()
	assert.True(t, ok)
	assert.Contains(t, contents, "INFO|Class|persisted by preferences")
}
