// Package asynclogger provides ordered, durable logging that never blocks
// callers on I/O.
//
// Overview:
// Any number of goroutines submit leveled messages. Each message is formatted
// at submission time and appended to an unbounded in-memory queue. A single
// worker goroutine per Logger takes lines off the queue in order, appends
// each one to the destination file and flushes before taking the next.
//
// Key Features:
// - Three levels (INFO, WARN, ERROR) with a minimum-level filter
// - One line per message: "2006-01-02 15:04:05 [LEVEL] message"
// - Total write order equals the order in which submissions took the queue lock
// - WaitUntilDrained to block until everything submitted so far is on disk
// - Close drains every accepted message before the file is closed
// - Failures are reported through a diagnostic channel, never to callers
//
// Getting Started:
//
//	package main
//
//	import (
//	    "github.com/gourdian25/asynclogger"
//	)
//
//	func main() {
//	    logger, err := asynclogger.Open("app.log")
//	    if err != nil {
//	        panic(err)
//	    }
//	    defer logger.Close()
//
//	    logger.Info("Program started")
//	    logger.Warn("Low memory")
//	}
//
// Configuration:
//
// Programmatic configuration:
//
//	config := asynclogger.DefaultConfig()
//	config.Path = "logs/app.log"
//	config.LogLevel = asynclogger.WARN
//	config.SyncOnFlush = true
//	logger, err := asynclogger.NewAsyncLogger(config)
//
// JSON configuration:
//
//	logger, err := asynclogger.WithConfig(`{
//	    "path": "logs/app.log",
//	    "log_level": "warn",
//	    "max_diagnostic_rate": 5
//	}`)
//
// Configuration files (.json, .yaml, .yml):
//
//	config, err := asynclogger.LoadConfigFile("logger.yaml")
//
// Log Levels:
//
// Labels are INFO, WARN and ERROR. WARNING is accepted as an alias when
// parsing and as a constant, but is always written as WARN. A value outside
// the three levels is written with the label UNKNOWN and is never filtered.
//
// Draining and Shutdown:
//
//	logger.Info("step 1")
//	logger.Error("boom")
//	logger.WaitUntilDrained() // both lines are written and flushed
//
// Close stops admission, waits until the worker has written every accepted
// line, then closes the file. Messages logged after Close has begun are
// dropped and reported as ErrLoggerClosed.
//
// Error Handling:
//
// Nothing is returned to a caller of Log. Failures go to ErrorHandler if set,
// otherwise to FallbackWriter (os.Stderr by default):
//
//	config.ErrorHandler = func(err error) {
//	    if errors.Is(err, asynclogger.ErrWriteFailure) {
//	        metrics.Inc("log_write_failures")
//	    }
//	}
//
// If the destination cannot be opened the Logger is still returned, the
// failure is reported once as ErrSinkUnavailable and every Log call becomes a
// no-op. A failed append is reported as ErrWriteFailure, the line is dropped
// and the worker continues with the next one. MaxDiagnosticRate caps how many
// reports per second reach the diagnostic channel.
//
// Best Practices:
// 1. Always defer logger.Close()
// 2. Do not race submissions against WaitUntilDrained if you need every one
// of your own lines on disk when it returns
// 3. The queue is unbounded; a slow disk under heavy load grows memory
package asynclogger
