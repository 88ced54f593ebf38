package asynclogger

import (
	"io"

	"github.com/pkg/errors"
)

// WriterSink is a Sink over any io.Writer. Each Append issues a single Write
// of the line and its newline, so there is nothing left to flush unless the
// writer buffers on its own.
type WriterSink struct {
	w   io.Writer
	buf []byte
}

func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w, buf: make([]byte, 0, 256)}
}

func (s *WriterSink) Append(line string) error {
	s.buf = append(s.buf[:0], line...)
	s.buf = append(s.buf, '\n')
	if _, err := s.w.Write(s.buf); err != nil {
		return errors.Wrapf(ErrWriteFailure, "write: %v", err)
	}
	return nil
}

// Flush forwards to the writer when it exposes Flush() error, as
// *bufio.Writer does.
func (s *WriterSink) Flush() error {
	if f, ok := s.w.(interface{ Flush() error }); ok {
		if err := f.Flush(); err != nil {
			return errors.Wrapf(ErrWriteFailure, "flush: %v", err)
		}
	}
	return nil
}

// Close flushes the writer but leaves it open; the caller that handed it
// over still owns it.
func (s *WriterSink) Close() error {
	return s.Flush()
}
