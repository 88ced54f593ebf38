package asynclogger

import (
	"bufio"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// Sink is the durable destination behind a Logger.
//
// Append and Flush are only ever called from the Logger's worker goroutine,
// one line at a time and in queue order. Close is called once, after the
// worker has terminated.
type Sink interface {
	Append(line string) error
	Flush() error
	Close() error
}

// FileSink appends lines to a file opened in append mode. It is not safe for
// concurrent use; a Logger only touches it from its worker goroutine.
type FileSink struct {
	path        string
	file        *os.File
	w           *bufio.Writer
	syncOnFlush bool
}

// OpenFileSink opens path for appending, creating the file and any missing
// parent directories. Existing content is never truncated.
//
// Parameters:
//   - path: Destination file
//   - syncOnFlush: fsync the file on every Flush in addition to draining the
//     write buffer
//
// Returns:
//   - *FileSink: Open sink
//   - error: Wrapped ErrSinkUnavailable if the file cannot be opened
func OpenFileSink(path string, syncOnFlush bool) (*FileSink, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, errors.Wrapf(ErrSinkUnavailable, "create log directory %s: %v", dir, err)
		}
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, errors.Wrapf(ErrSinkUnavailable, "open log file: %v", err)
	}

	return &FileSink{
		path:        path,
		file:        file,
		w:           bufio.NewWriter(file),
		syncOnFlush: syncOnFlush,
	}, nil
}

// Path returns the file the sink appends to.
func (s *FileSink) Path() string {
	return s.path
}

func (s *FileSink) Append(line string) error {
	if s.file == nil {
		return errors.Wrap(ErrWriteFailure, "log file not open")
	}
	if _, err := s.w.WriteString(line); err != nil {
		return s.writeFailed("append to", err)
	}
	if err := s.w.WriteByte('\n'); err != nil {
		return s.writeFailed("append to", err)
	}
	return nil
}

func (s *FileSink) Flush() error {
	if s.file == nil {
		return errors.Wrap(ErrWriteFailure, "log file not open")
	}
	if err := s.w.Flush(); err != nil {
		return s.writeFailed("flush", err)
	}
	if s.syncOnFlush {
		if err := s.file.Sync(); err != nil {
			return errors.Wrapf(ErrWriteFailure, "sync %s: %v", s.path, err)
		}
	}
	return nil
}

// writeFailed drops whatever the buffer holds. bufio keeps a write error
// forever, so without the reset one failure would fail every later line.
func (s *FileSink) writeFailed(op string, err error) error {
	s.w.Reset(s.file)
	return errors.Wrapf(ErrWriteFailure, "%s %s: %v", op, s.path, err)
}

// Close flushes anything still buffered and closes the file.
func (s *FileSink) Close() error {
	if s.file == nil {
		return nil
	}

	flushErr := s.Flush()
	closeErr := s.file.Close()
	s.file = nil

	if closeErr != nil {
		return errors.Wrapf(closeErr, "close %s", s.path)
	}
	return flushErr
}
