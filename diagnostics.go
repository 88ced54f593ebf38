package asynclogger

import (
	"fmt"
	"io"
	"sync/atomic"

	"github.com/pkg/errors"
	"golang.org/x/time/rate"
)

// diagnostics is the channel through which the Logger reports its own
// failures. It never writes to the Logger's sink.
type diagnostics struct {
	errorHandler   func(error)
	fallbackWriter io.Writer
	limiter        *rate.Limiter
	suppressed     atomic.Uint64
}

func newDiagnostics(config LoggerConfig) *diagnostics {
	d := &diagnostics{errorHandler: config.ErrorHandler}

	if config.EnableFallback {
		d.fallbackWriter = config.FallbackWriter
	}

	if config.MaxDiagnosticRate > 0 {
		burst := int(config.MaxDiagnosticRate)
		if burst < 1 {
			burst = 1
		}
		d.limiter = rate.NewLimiter(rate.Limit(config.MaxDiagnosticRate), burst)
	}
	return d
}

func (d *diagnostics) handleError(err error) {
	if d.limiter != nil && !d.limiter.Allow() {
		d.suppressed.Add(1)
		return
	}

	if n := d.suppressed.Swap(0); n > 0 {
		d.report(errors.Errorf("%d diagnostic reports suppressed by rate limit", n))
	}
	d.report(err)
}

// handleErrorNow bypasses the limiter. Used for reports that happen at most
// once per Logger.
func (d *diagnostics) handleErrorNow(err error) {
	d.report(err)
}

func (d *diagnostics) report(err error) {
	if d.errorHandler != nil {
		d.errorHandler(err)
	} else if d.fallbackWriter != nil {
		fmt.Fprintf(d.fallbackWriter, "LOGGER ERROR: %v\n", err)
	}
}

// fallback echoes a line that could not be written, as long as a fallback
// writer is configured.
func (d *diagnostics) fallback(line string) {
	if d.fallbackWriter != nil {
		fmt.Fprintf(d.fallbackWriter, "FALLBACK LOG: %s\n", line)
	}
}
