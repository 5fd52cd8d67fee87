// Package logging builds the charmbracelet/log loggers used by every host.
package logging

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/zero/internal/config"
)

// Options configures a logger.
type Options struct {
	Level  string    // debug, info, warn, error, fatal; empty means info
	File   string    // Append to this file instead of Output
	Prefix string    // Shown before every message
	Output io.Writer // Defaults to stderr
}

// FromConfig returns Options for the [log] section of the configuration.
func FromConfig(c config.LogConfig, prefix string) Options {
	return Options{
		Level:  c.Level,
		File:   config.ExpandPath(c.File),
		Prefix: prefix,
	}
}

// New creates a timestamped logger. The returned closer releases the log
// file, if one was opened.
func New(opts Options) (*log.Logger, io.Closer, error) {
	level := log.InfoLevel
	if opts.Level != "" {
		l, err := log.ParseLevel(opts.Level)
		if err != nil {
			return nil, nil, fmt.Errorf("logging: %w", err)
		}
		level = l
	}

	var out io.Writer = os.Stderr
	if opts.Output != nil {
		out = opts.Output
	}

	var closer io.Closer = nopCloser{}
	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			return nil, nil, fmt.Errorf("logging: cannot create log directory: %w", err)
		}
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("logging: cannot open log file: %w", err)
		}
		out = f
		closer = f
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          opts.Prefix,
		Level:           level,
	})
	return logger, closer, nil
}

// Discard returns a logger that writes nothing, for hosts that own the
// terminal and have no log file.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}

// Error logs "<method>() failed" with err, followed by one debug line per
// wrapped cause.
func Error(logger *log.Logger, method string, err error) {
	if err == nil {
		return
	}
	logger.Error(method+"() failed", "err", err)
	for cause := errors.Unwrap(err); cause != nil; cause = errors.Unwrap(cause) {
		logger.Debug("  caused by", "err", cause)
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
