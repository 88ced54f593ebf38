package asynclogger

import (
	"strings"
	"time"
)

// DefaultTimestampFormat is the layout of the timestamp that prefixes every
// persisted line: local time, second precision.
const DefaultTimestampFormat = "2006-01-02 15:04:05"

// FormatLine builds a log line from its capture time, level and text.
//
// Format:
//
//	2006-01-02 15:04:05 [LEVEL] message
//
// The returned line carries no trailing newline; sinks terminate lines.
func FormatLine(ts time.Time, level LogLevel, message string) string {
	return formatLine(ts, DefaultTimestampFormat, level, message)
}

func formatLine(ts time.Time, layout string, level LogLevel, message string) string {
	label := level.String()

	var builder strings.Builder
	builder.Grow(len(layout) + len(label) + len(message) + 4)

	builder.WriteString(ts.Local().Format(layout))
	builder.WriteString(" [")
	builder.WriteString(label)
	builder.WriteString("] ")
	builder.WriteString(message)

	return builder.String()
}
