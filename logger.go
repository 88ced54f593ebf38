package asynclogger

import "fmt"

// Info submits an INFO line. It returns as soon as the line is queued; the
// write happens later on the worker goroutine.
//
// Example:
//
//	logger.Info("worker ", id, " ready")
//	logger.WaitUntilDrained() // the line is now on disk
func (l *Logger) Info(v ...interface{}) {
	l.log(INFO, fmt.Sprint(v...))
}

// Warn submits a WARN line. Lines below the current level are discarded
// before they are formatted.
func (l *Logger) Warn(v ...interface{}) {
	l.log(WARN, fmt.Sprint(v...))
}

// Error submits an ERROR line. After Close it is dropped and reported as
// ErrLoggerClosed instead.
//
// Example:
//
//	defer logger.Close()
//	logger.Error("replica ", name, " lagging")
func (l *Logger) Error(v ...interface{}) {
	l.log(ERROR, fmt.Sprint(v...))
}

// Infof is Info with fmt.Sprintf formatting.
func (l *Logger) Infof(format string, v ...interface{}) {
	l.log(INFO, fmt.Sprintf(format, v...))
}

// Warnf is Warn with fmt.Sprintf formatting. The message is formatted on the
// caller's goroutine, so arguments may be reused once it returns.
//
// Example:
//
//	logger.Warnf("queue at %d lines", logger.Stats().Pending)
func (l *Logger) Warnf(format string, v ...interface{}) {
	l.log(WARN, fmt.Sprintf(format, v...))
}

// Errorf is Error with fmt.Sprintf formatting.
func (l *Logger) Errorf(format string, v ...interface{}) {
	l.log(ERROR, fmt.Sprintf(format, v...))
}
