package asynclogger

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

var (
	defaultPath              = "app.log"
	defaultLogLevel          = INFO
	defaultEnableFallback    = true
	defaultSyncOnFlush       = false
	defaultMaxDiagnosticRate = 0.0
	defaultTimestampFormat   = DefaultTimestampFormat
	defaultFallbackWriter    = io.Writer(os.Stderr)
)

// LoggerConfig defines the configuration parameters for an async logger.
//
// This struct allows configuration of:
// - Destination file
// - Minimum log level to record
// - Timestamp layout
// - Durability of each flush
// - Where the logger reports its own failures
//
// Fields:
//   - Path: Destination file, opened in append mode (default "app.log")
//   - TimestampFormat: Go time layout (default "2006-01-02 15:04:05")
//   - LogLevel: Minimum level of logs to record (default INFO)
//   - SyncOnFlush: fsync after every line instead of only draining buffers
//   - EnableFallback: Write diagnostics and undeliverable lines to FallbackWriter
//   - MaxDiagnosticRate: Diagnostic reports per second, 0 disables the limit
//   - Output: Write to this writer instead of opening Path
//   - FallbackWriter: Diagnostic channel (default os.Stderr)
//   - ErrorHandler: Receives every diagnostic instead of FallbackWriter
//
// Example:
//
//	config := LoggerConfig{
//	    Path:              "logs/app.log",
//	    LogLevel:          WARN,
//	    SyncOnFlush:       true,
//	    MaxDiagnosticRate: 10,
//	}
type LoggerConfig struct {
	Path              string      `json:"path" yaml:"path"`
	TimestampFormat   string      `json:"timestamp_format" yaml:"timestamp_format"`
	LogLevel          LogLevel    `json:"log_level" yaml:"log_level"`
	SyncOnFlush       bool        `json:"sync_on_flush" yaml:"sync_on_flush"`
	EnableFallback    bool        `json:"enable_fallback" yaml:"enable_fallback"`
	MaxDiagnosticRate float64     `json:"max_diagnostic_rate" yaml:"max_diagnostic_rate"`
	Output            io.Writer   `json:"-" yaml:"-"`
	FallbackWriter    io.Writer   `json:"-" yaml:"-"`
	ErrorHandler      func(error) `json:"-" yaml:"-"`
}

// DefaultConfig returns the configuration used by Open.
func DefaultConfig() LoggerConfig {
	return LoggerConfig{
		Path:              defaultPath,
		TimestampFormat:   defaultTimestampFormat,
		LogLevel:          defaultLogLevel,
		SyncOnFlush:       defaultSyncOnFlush,
		EnableFallback:    defaultEnableFallback,
		MaxDiagnosticRate: defaultMaxDiagnosticRate,
		FallbackWriter:    defaultFallbackWriter,
	}
}

// Validate checks the configuration for values that cannot be defaulted.
//
// Returns:
//   - error: Wrapped ErrInvalidConfig describing the first problem found
func (lc *LoggerConfig) Validate() error {
	if lc.Output == nil && strings.TrimSpace(lc.Path) == "" {
		return errors.Wrap(ErrInvalidConfig, "path is required when no output writer is set")
	}
	if lc.MaxDiagnosticRate < 0 {
		return errors.Wrap(ErrInvalidConfig, "max_diagnostic_rate cannot be negative")
	}
	switch lc.LogLevel {
	case INFO, WARN, ERROR:
	default:
		return errors.Wrapf(ErrInvalidConfig, "unsupported log level %d", lc.LogLevel)
	}
	return nil
}

func (lc *LoggerConfig) applyDefaults() {
	lc.Path = strings.TrimSpace(lc.Path)
	if lc.TimestampFormat == "" {
		lc.TimestampFormat = defaultTimestampFormat
	}
	if lc.EnableFallback && lc.FallbackWriter == nil {
		lc.FallbackWriter = defaultFallbackWriter
	}
}

// WithConfig creates a logger from a JSON configuration string. Fields left
// out of the JSON keep their DefaultConfig values.
//
// Example:
//
//	logger, err := WithConfig(`{"path": "logs/app.log", "log_level": "warn"}`)
func WithConfig(jsonConfig string) (*Logger, error) {
	config := DefaultConfig()
	if err := json.Unmarshal([]byte(jsonConfig), &config); err != nil {
		return nil, errors.Wrapf(ErrInvalidConfig, "parse json config: %v", err)
	}
	return NewAsyncLogger(config)
}

// LoadConfigFile reads a configuration file on top of DefaultConfig. The
// decoder is picked from the extension: .json, .yaml or .yml.
func LoadConfigFile(path string) (LoggerConfig, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return config, errors.Wrapf(err, "read config %s", path)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.Unmarshal(data, &config)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &config)
	default:
		return config, errors.Wrapf(ErrInvalidConfig, "unsupported config extension %q", filepath.Ext(path))
	}
	if err != nil {
		return config, errors.Wrapf(ErrInvalidConfig, "parse %s: %v", path, err)
	}

	if err := config.Validate(); err != nil {
		return config, err
	}
	return config, nil
}
