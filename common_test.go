package ctxlog

/*
Shared test doubles. FakeSink and FakeWriter are inspected only after
StopAndWait so no extra locking is needed: WaitGroup.Wait orders the worker's
writes before the test's reads.
*/

const testlogstr = "Test log АБВ こんにちは, 世界`'é\"\\\x5A\n\tи други глупости!"
const panicStr = "panic generated in sink"

// FakeSink records every delivered line together with its level.
type FakeSink struct {
	lines  []string
	levels []LogLevel
}

func (s *FakeSink) Write(level LogLevel, line string) {
	s.levels = append(s.levels, level)
	s.lines = append(s.lines, line)
}

func (s *FakeSink) Clear() {
	s.lines = s.lines[:0]
	s.levels = s.levels[:0]
}

// PanicSink panics on every write (exercises the disable-on-panic path).
type PanicSink struct{}

func (p *PanicSink) Write(LogLevel, string) { panic(panicStr) }

// FakeWriter is an io.Writer collecting everything written to it. Used as
// the fallback writer in most tests.
type FakeWriter struct {
	buffer []byte
}

func (f *FakeWriter) Write(b []byte) (int, error) {
	f.buffer = append(f.buffer, b...)
	return len(b), nil
}
func (f *FakeWriter) String() string { return string(f.buffer) }
func (f *FakeWriter) Clear()         { f.buffer = f.buffer[:0] }
