package ctxlog

import (
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

/*
config.go

Startup preferences, loaded in layers: built-in defaults, then an optional
YAML file, then environment variables (highest priority, CTXLOG_ prefix).
Loading is the only place in the package that may return an error to the
caller — it runs once at composition time, not on the logging path.
*/

// EnvPrefix is the prefix of environment variables overriding preferences
// (CTXLOG_LEVEL=3, CTXLOG_PERSIST=true, ...).
const EnvPrefix = "CTXLOG_"

// Preferences is the persisted configuration surface of the facade. The
// level is kept as a raw integer 0..4 exactly as preference stores persist
// it; out-of-range values map to most-verbose on Apply.
type Preferences struct {
	Level      int    `koanf:"level"`
	Persist    bool   `koanf:"persist"`
	Mode       string `koanf:"mode"` // "blacklist" (default) or "whitelist"
	Blacklist  []int  `koanf:"blacklist"`
	Whitelist  []int  `koanf:"whitelist"`
	LogFile    string `koanf:"log_file"`
	MaxSizeMB  int    `koanf:"max_size_mb"`
	MaxBackups int    `koanf:"max_backups"`
	MaxAgeDays int    `koanf:"max_age_days"`
}

func defaultPreferences() *Preferences {
	return &Preferences{
		Level:      int(LVL_VERBOSE),
		Persist:    false,
		Mode:       "blacklist",
		LogFile:    DEFAULT_LOG_FILE,
		MaxSizeMB:  DEFAULT_MAX_SIZE_MB,
		MaxBackups: DEFAULT_MAX_BACKUPS,
		MaxAgeDays: DEFAULT_MAX_AGE_DAYS,
	}
}

// LoadPreferences loads preferences from the given YAML file path layered
// between defaults and CTXLOG_* environment overrides. A missing or empty
// path is not an error, the file layer is simply skipped.
func LoadPreferences(path string) (*Preferences, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultPreferences(), "koanf"), nil); err != nil {
		return nil, errors.Wrap(err, "load default preferences")
	}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, errors.Wrapf(err, "load preferences file %s", path)
			}
		}
	}

	// CTXLOG_MAX_SIZE_MB -> max_size_mb
	envProvider := env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, errors.Wrap(err, "load environment preferences")
	}

	prefs := &Preferences{}
	if err := k.Unmarshal("", prefs); err != nil {
		return nil, errors.Wrap(err, "unmarshal preferences")
	}
	return prefs, nil
}

// Apply wires the loaded preferences into a facade through its public
// operations only: threshold from the raw level integer, filter lists and
// mode, then persistence last so the file sink sees the final filter state.
func (p *Preferences) Apply(f *Facade) *Facade {
	f.ApplyLevelFromPreference(p.Level)

	filter := f.Filter()
	for _, ctx := range p.Blacklist {
		filter.AddToBlacklist(LogContext(ctx))
	}
	for _, ctx := range p.Whitelist {
		filter.AddToWhitelist(LogContext(ctx))
	}
	if strings.EqualFold(p.Mode, "whitelist") {
		filter.ActivateWhiteList()
	} else {
		filter.ActivateBlackList()
	}

	if p.Persist {
		f.SetFileSink(NewRotatingFileSink(p.LogFile, p.MaxSizeMB, p.MaxBackups, p.MaxAgeDays))
		f.SetPersistToFile(true)
	}
	return f
}
