package ctxlog

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"gopkg.in/natefinch/lumberjack.v2"
)

/*
filesink.go

File persistence: the FileSink collaborator interface, a rotating
implementation backed by lumberjack, and the facade-side toggle that attaches
or detaches the sink as an atomic observable unit.
*/

const (
	DEFAULT_LOG_FILE     = "log/ctxlog.log"
	DEFAULT_MAX_SIZE_MB  = 10
	DEFAULT_MAX_BACKUPS  = 5
	DEFAULT_MAX_AGE_DAYS = 28
)

// FileSink is a sink with a persistence lifecycle: it can be attached and
// detached at runtime and can enumerate the files it has produced so far
// (active file first, rotated backups after). Rotation interval and
// retention policy are owned entirely by the implementation.
type FileSink interface {
	Sink
	Attach() error
	Detach() error
	PersistedFilePaths() []string
}

// RotatingFileSink persists formatted lines to a size-rotated log file via
// lumberjack. The zero value is not usable, create instances with
// NewRotatingFileSink.
type RotatingFileSink struct {
	mtx        sync.Mutex
	lj         *lumberjack.Logger
	path       string
	maxSizeMB  int
	maxBackups int
	maxAgeDays int
	attached   bool
}

// NewRotatingFileSink prepares a rotating file sink for the given path.
// Non-positive limits fall back to the package defaults. Nothing is created
// on disk until Attach.
func NewRotatingFileSink(path string, maxSizeMB, maxBackups, maxAgeDays int) *RotatingFileSink {
	if path == "" {
		path = DEFAULT_LOG_FILE
	}
	if maxSizeMB <= 0 {
		maxSizeMB = DEFAULT_MAX_SIZE_MB
	}
	if maxBackups <= 0 {
		maxBackups = DEFAULT_MAX_BACKUPS
	}
	if maxAgeDays <= 0 {
		maxAgeDays = DEFAULT_MAX_AGE_DAYS
	}
	return &RotatingFileSink{
		path:       path,
		maxSizeMB:  maxSizeMB,
		maxBackups: maxBackups,
		maxAgeDays: maxAgeDays,
	}
}

// Attach makes the sink ready to persist writes, creating the log directory
// if needed. Attaching an already attached sink is a no-op.
func (s *RotatingFileSink) Attach() error {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	if s.attached {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return errors.Wrap(err, "create log directory")
	}
	s.lj = &lumberjack.Logger{
		Filename:   s.path,
		MaxSize:    s.maxSizeMB,
		MaxBackups: s.maxBackups,
		MaxAge:     s.maxAgeDays,
	}
	s.attached = true
	return nil
}

// Detach closes the underlying file. Writes arriving while detached are
// silently dropped. Detaching an already detached sink is a no-op.
func (s *RotatingFileSink) Detach() error {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	if !s.attached {
		return nil
	}
	s.attached = false
	lj := s.lj
	s.lj = nil
	if err := lj.Close(); err != nil {
		return errors.Wrap(err, "close log file")
	}
	return nil
}

// Write implements Sink. Write errors are swallowed: persistence is
// best-effort and must never disturb the logging caller.
func (s *RotatingFileSink) Write(_ LogLevel, line string) {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	if !s.attached {
		return
	}
	s.lj.Write([]byte(line + "\n"))
}

// PersistedFilePaths implements FileSink: the active file first (when it
// exists on disk), then the rotated backups in name order. Works whether or
// not the sink is currently attached, so a purge after Detach still sees
// everything.
func (s *RotatingFileSink) PersistedFilePaths() []string {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	paths := []string{}
	if _, err := os.Stat(s.path); err == nil {
		paths = append(paths, s.path)
	}
	// lumberjack backups live next to the active file as name-timestamp.ext
	ext := filepath.Ext(s.path)
	base := strings.TrimSuffix(filepath.Base(s.path), ext)
	backups, err := filepath.Glob(filepath.Join(filepath.Dir(s.path), base+"-*"+ext))
	if err == nil {
		sort.Strings(backups)
		paths = append(paths, backups...)
	}
	return paths
}

/////////////////////////////////////////////////////////////////////////////////////////

// SetPersistToFile toggles file persistence. Enabling attaches the file sink
// exactly once (idempotent) as a non-filter-aware sink, so persisted files
// keep everything above the threshold regardless of the interactive filter
// state. Disabling detaches the sink AND DELETES all previously persisted
// files — a destructive, irreversible action.
//
// The whole transition including its side effects runs under one guard, so
// concurrent toggles cannot leave the sink attached-but-purged or
// double-attached. Internal failures are reported to the fallback writer,
// never returned to the caller.
func (f *Facade) SetPersistToFile(enable bool) *Facade {
	f.sync.prstMtx.Lock()
	defer f.sync.prstMtx.Unlock()
	if enable == f.persist {
		return f
	}
	if enable {
		if f.filesink == nil {
			f.filesink = NewRotatingFileSink(DEFAULT_LOG_FILE, 0, 0, 0)
		}
		if err := f.filesink.Attach(); err != nil {
			f.handleInternalError("error attaching file sink: " + err.Error())
			return f
		}
		f.AddSinks(f.filesink)
		f.SetSinkFiltered(f.filesink, false)
		f.persist = true
	} else {
		f.RemoveSinks(f.filesink)
		paths := f.filesink.PersistedFilePaths()
		if err := f.filesink.Detach(); err != nil {
			f.handleInternalError("error detaching file sink: " + err.Error())
		}
		f.purgePersistedFiles(paths)
		f.persist = false
	}
	return f
}

// purgePersistedFiles removes the given files, reporting (not returning)
// per-file problems.
func (f *Facade) purgePersistedFiles(paths []string) {
	for _, path := range paths {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			f.handleInternalError(errors.Wrap(err, "purge persisted log file").Error())
		}
	}
}

// CurrentLogFilePath returns the path of the active persisted log file.
// Yields ok=false when persistence is off or no file exists yet; this is a
// normal answer, not an error.
func (f *Facade) CurrentLogFilePath() (string, bool) {
	f.sync.prstMtx.Lock()
	defer f.sync.prstMtx.Unlock()
	if !f.persist || f.filesink == nil {
		return "", false
	}
	paths := f.filesink.PersistedFilePaths()
	if len(paths) == 0 {
		return "", false
	}
	return paths[0], true
}

// CurrentLogFileContents returns the contents of the active persisted log
// file. Yields ok=false when persistence is off, no file exists yet or the
// file cannot be read; never an error.
//
// Note that delivery is asynchronous: a just-logged message reaches the file
// only after the background goroutine has processed it (StopAndWait drains
// the queue).
func (f *Facade) CurrentLogFileContents() (string, bool) {
	path, ok := f.CurrentLogFilePath()
	if !ok {
		return "", false
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}
	return string(data), true
}
