package asynclogger

import "github.com/pkg/errors"

// Errors reported through the diagnostic channel. None of them is ever
// returned to a caller of Log; use errors.Is to match them inside an
// ErrorHandler.
var (
	// ErrSinkUnavailable is reported once when the destination cannot be
	// opened. All later Log calls on that Logger are no-ops.
	ErrSinkUnavailable = errors.New("log sink unavailable")

	// ErrWriteFailure is reported when appending or flushing one line fails.
	// The line is dropped and the worker moves on.
	ErrWriteFailure = errors.New("log write failure")

	// ErrLoggerClosed is reported when Log is called after Close has begun.
	ErrLoggerClosed = errors.New("logger closed")

	// ErrInvalidConfig is returned by NewAsyncLogger and the config loaders.
	ErrInvalidConfig = errors.New("invalid config")
)
