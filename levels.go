package asynclogger

import (
	"strings"

	"github.com/pkg/errors"
)

// LogLevel is the severity attached to a submitted line. A Logger drops
// lines whose level is below its threshold before they reach the queue.
type LogLevel int32

// Ordered from least to most severe.
const (
	INFO LogLevel = iota
	WARN
	ERROR
)

// WARNING is an alias for WARN. It is written out with the WARN label.
const WARNING = WARN

// String converts a LogLevel to the label used in the persisted line.
//
// Returns:
//   - string: "INFO", "WARN", "ERROR", or "UNKNOWN" for any other value
func (l LogLevel) String() string {
	switch l {
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLogLevel reads a level name, ignoring case and surrounding space.
// "warning" is accepted and maps to WARN, the label that is written out.
//
// Example:
//
//	level, err := ParseLogLevel(os.Getenv("LOG_LEVEL"))
//	if err != nil {
//	    return err
//	}
//	logger.SetLogLevel(level)
func ParseLogLevel(level string) (LogLevel, error) {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "INFO":
		return INFO, nil
	case "WARN", "WARNING":
		return WARN, nil
	case "ERROR":
		return ERROR, nil
	default:
		return INFO, errors.Errorf("invalid log level: %s", level)
	}
}

// MarshalText renders the level label so config files carry "warn" rather
// than a number.
func (l LogLevel) MarshalText() ([]byte, error) {
	return []byte(strings.ToLower(l.String())), nil
}

// UnmarshalText accepts the labels understood by ParseLogLevel.
func (l *LogLevel) UnmarshalText(text []byte) error {
	parsed, err := ParseLogLevel(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}
