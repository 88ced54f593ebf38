package asynclogger

import (
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
)

type Logger struct {
	level           atomic.Int32
	timestampFormat string
	sink            Sink
	queue           *queue
	diag            *diagnostics
	closed          atomic.Bool
	done            chan struct{}
	config          LoggerConfig
	now             func() time.Time

	written       atomic.Uint64
	dropped       atomic.Uint64
	writeFailures atomic.Uint64
}

type Stats struct {
	Accepted      uint64
	Written       uint64
	Dropped       uint64
	WriteFailures uint64
	Pending       int
}

func NewAsyncLogger(config LoggerConfig) (*Logger, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	config.applyDefaults()

	logger := &Logger{
		timestampFormat: config.TimestampFormat,
		queue:           newQueue(),
		diag:            newDiagnostics(config),
		done:            make(chan struct{}),
		config:          config,
		now:             time.Now,
	}
	logger.level.Store(int32(config.LogLevel))

	if config.Output != nil {
		logger.sink = NewWriterSink(config.Output)
	} else {
		sink, err := OpenFileSink(config.Path, config.SyncOnFlush)
		if err != nil {
			logger.diag.handleErrorNow(err)
		} else {
			logger.sink = sink
		}
	}

	go logger.worker()

	return logger, nil
}

func Open(path string) (*Logger, error) {
	config := DefaultConfig()
	config.Path = path
	return NewAsyncLogger(config)
}

func (l *Logger) worker() {
	defer close(l.done)

	for {
		line, ok := l.queue.pop()
		if !ok {
			return
		}
		l.writeLine(line)
		l.queue.done()
	}
}

func (l *Logger) writeLine(line string) {
	if l.sink == nil {
		l.dropped.Add(1)
		return
	}

	err := l.sink.Append(line)
	if err == nil {
		err = l.sink.Flush()
	}
	if err != nil {
		l.writeFailures.Add(1)
		l.diag.handleError(errors.WithMessage(err, "log write error"))
		l.diag.fallback(line)
		return
	}
	l.written.Add(1)
}

func (l *Logger) log(level LogLevel, message string) {
	if l.sink == nil {
		l.dropped.Add(1)
		return
	}

	if l.closed.Load() {
		l.reject(message)
		return
	}

	if known(level) && level < LogLevel(l.level.Load()) {
		return
	}

	line := formatLine(l.now(), l.timestampFormat, level, message)
	if !l.queue.push(line) {
		l.reject(message)
	}
}

func (l *Logger) reject(message string) {
	l.dropped.Add(1)
	l.diag.handleError(errors.Wrapf(ErrLoggerClosed, "dropped message %q", message))
}

func known(level LogLevel) bool {
	return level >= INFO && level <= ERROR
}

func (l *Logger) Log(level LogLevel, message string) {
	l.log(level, message)
}

// WaitUntilDrained blocks until every line accepted so far has been written
// and flushed. Lines submitted concurrently with the wait may or may not be
// covered.
func (l *Logger) WaitUntilDrained() {
	l.queue.waitDrained()
}

// Close stops admission, waits for the worker to write everything already
// accepted, then closes the sink. Only the first call does any work.
func (l *Logger) Close() error {
	if !l.closed.CompareAndSwap(false, true) {
		return nil
	}

	l.queue.requestShutdown()
	<-l.done

	if l.sink == nil {
		return nil
	}
	return l.sink.Close()
}

func (l *Logger) IsClosed() bool {
	return l.closed.Load()
}

func (l *Logger) Config() LoggerConfig {
	return l.config
}

func (l *Logger) State() WorkerState {
	return l.queue.state()
}

func (l *Logger) SetLogLevel(level LogLevel) {
	l.level.Store(int32(level))
}

func (l *Logger) GetLogLevel() LogLevel {
	return LogLevel(l.level.Load())
}

// Stats returns the logger's counters. Written and WriteFailures are read
// before Accepted, so a snapshot never shows more lines handled than admitted.
func (l *Logger) Stats() Stats {
	written := l.written.Load()
	failures := l.writeFailures.Load()
	return Stats{
		Accepted:      l.queue.acceptedCount(),
		Written:       written,
		Dropped:       l.dropped.Load(),
		WriteFailures: failures,
		Pending:       l.queue.len(),
	}
}
