package ctxlog

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Parallel_LoggingAndFilterMutation(t *testing.T) {
	const (
		_GOROUTINES_ = 64  // Number of simultaneous logging goroutines
		_DATACOUNT_  = 200 // Number of messages every goroutine has to log
	)
	out := &FakeSink{}
	ferr := &FakeWriter{}
	f := InitWithParams(LVL_VERBOSE, ferr, out)
	// buffer for all expected messages to prevent locks
	assert.NoError(t, f.Start(_GOROUTINES_*_DATACOUNT_))

	var wg sync.WaitGroup
	hold := make(chan struct{})
	for i := 0; i < _GOROUTINES_; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-hold // start all together
			for j := 0; j < _DATACOUNT_; j++ {
				if i%2 == 0 {
					f.InfoC(LogContext(j%8), "Worker", "tagged")
				} else {
					f.Info("Worker", "plain")
				}
			}
		}(i)
	}
	// One goroutine keeps mutating the filter while the others log: lists,
	// modes and decisions must stay internally consistent under the shared
	// guard, whatever the interleaving.
	wg.Add(1)
	go func() {
		defer wg.Done()
		<-hold
		for i := 0; i < 200; i++ {
			f.Filter().ActivateWhiteList()
			f.Filter().AddToBlacklist(3)
			f.Filter().FilterToSingleContext(5)
			f.Filter().ActivateBlackList()
			f.Filter().Reset()
		}
	}()
	close(hold)
	wg.Wait()
	f.StopAndWait()

	assert.Empty(t, ferr.buffer, "unexpected fallback errors writes")
	// Tagged deliveries depend on the interleaving, but untagged messages
	// always pass: their count is exact.
	plain := 0
	for _, line := range out.lines {
		if strings.HasSuffix(line, "|plain") {
			plain++
		}
	}
	assert.Equal(t, _GOROUTINES_/2*_DATACOUNT_, plain, "untagged messages must never be filtered")
}

func Test_Parallel_ThresholdWrites(t *testing.T) {
	// last-writer-wins visibility on the threshold word: hammering it from
	// many goroutines must leave a valid level and lose no updates to tearing
	f := Init()
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				f.SetMinLevel(LogLevel(i % int(_LVL_MAX_for_checks_only)))
			}
		}(i)
	}
	wg.Wait()
	assert.Less(t, f.MinLevel(), _LVL_MAX_for_checks_only)
}
