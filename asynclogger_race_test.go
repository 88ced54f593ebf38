package asynclogger

import (
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitWithTimeout(wg *sync.WaitGroup, timeout time.Duration) bool {
	ch := make(chan struct{})
	go func() {
		wg.Wait()
		close(ch)
	}()
	select {
	case <-ch:
		return true
	case <-time.After(timeout):
		return false
	}
}

// TestRaceCloseWhileLogging closes the logger while producers are still
// submitting. Every accepted line must reach the file; the rest are dropped.
func TestRaceCloseWhileLogging(t *testing.T) {
	config, _ := testConfig(t)
	logger, err := NewAsyncLogger(config)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for p := 0; p < 8; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				logger.Info(fmt.Sprintf("p%d m%d", p, i))
			}
		}(p)
	}

	time.Sleep(time.Millisecond)
	require.NoError(t, logger.Close())
	require.True(t, waitWithTimeout(&wg, 10*time.Second), "producers blocked after Close")

	stats := logger.Stats()
	assert.Equal(t, uint64(8*500), stats.Accepted+stats.Dropped)
	assert.Equal(t, stats.Accepted, stats.Written)
	assert.Len(t, readLines(t, config.Path), int(stats.Written))
}

// TestRaceWaitUntilDrainedWithConcurrentProducers checks that waiters are
// always released, even while other goroutines keep submitting.
func TestRaceWaitUntilDrainedWithConcurrentProducers(t *testing.T) {
	config, _ := testConfig(t)
	logger, err := NewAsyncLogger(config)
	require.NoError(t, err)

	var producers sync.WaitGroup
	for p := 0; p < 4; p++ {
		producers.Add(1)
		go func() {
			defer producers.Done()
			for i := 0; i < 300; i++ {
				logger.Warn("busy")
			}
		}()
	}

	var waiters sync.WaitGroup
	for w := 0; w < 4; w++ {
		waiters.Add(1)
		go func() {
			defer waiters.Done()
			for i := 0; i < 10; i++ {
				logger.WaitUntilDrained()
			}
		}()
	}

	require.True(t, waitWithTimeout(&producers, 10*time.Second), "producers did not finish")
	logger.WaitUntilDrained()
	require.True(t, waitWithTimeout(&waiters, 10*time.Second), "a waiter was never released")

	assert.Len(t, readLines(t, config.Path), 4*300)
	require.NoError(t, logger.Close())
}

// TestRaceConcurrentClose calls Close from several goroutines at once.
func TestRaceConcurrentClose(t *testing.T) {
	config, _ := testConfig(t)
	logger, err := NewAsyncLogger(config)
	require.NoError(t, err)

	for i := 0; i < 100; i++ {
		logger.Info("before close")
	}

	var wg sync.WaitGroup
	errs := make([]error, 5)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = logger.Close()
		}(i)
	}
	require.True(t, waitWithTimeout(&wg, 10*time.Second))

	for _, err := range errs {
		assert.NoError(t, err)
	}
	assert.Len(t, readLines(t, config.Path), 100)
}

func TestRaceLevelChangesWhileLogging(t *testing.T) {
	config, _ := testConfig(t)
	logger, err := NewAsyncLogger(config)
	require.NoError(t, err)
	defer logger.Close()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			logger.Error("always kept")
			logger.Info("maybe kept")
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			logger.SetLogLevel(LogLevel(i % 3))
			_ = logger.State()
			_ = logger.Stats()
		}
	}()
	require.True(t, waitWithTimeout(&wg, 10*time.Second))
	logger.WaitUntilDrained()

	lines := readLines(t, filepath.Clean(config.Path))
	assert.GreaterOrEqual(t, len(lines), 1000)
	assert.LessOrEqual(t, len(lines), 2000)
}

// TestRaceStatsNeverShowMoreWrittenThanAccepted reads Stats continuously while
// producers submit and the worker writes.
func TestRaceStatsNeverShowMoreWrittenThanAccepted(t *testing.T) {
	config, _ := testConfig(t)
	logger, err := NewAsyncLogger(config)
	require.NoError(t, err)

	stop := make(chan struct{})
	violations := make(chan Stats, 1)
	var reader sync.WaitGroup
	reader.Add(1)
	go func() {
		defer reader.Done()
		for {
			select {
			case <-stop:
				return
			default:
			}
			if s := logger.Stats(); s.Written+s.WriteFailures > s.Accepted {
				select {
				case violations <- s:
				default:
				}
				return
			}
		}
	}()

	var wg sync.WaitGroup
	for p := 0; p < 4; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for i := 0; i < 1000; i++ {
				logger.Infof("p%d m%d", p, i)
			}
		}(p)
	}
	require.True(t, waitWithTimeout(&wg, 10*time.Second))
	logger.WaitUntilDrained()
	close(stop)
	reader.Wait()

	select {
	case s := <-violations:
		t.Fatalf("stats showed more lines handled than accepted: %+v", s)
	default:
	}

	require.NoError(t, logger.Close())
	stats := logger.Stats()
	assert.Equal(t, uint64(4*1000), stats.Accepted)
	assert.Equal(t, stats.Accepted, stats.Written)
}
