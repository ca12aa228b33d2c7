// Package logger provides process-wide logging for Mission Control.
// Messages go through a shared logrus logger. Warnings and errors are
// always written; info is written at the configured level and debug
// output appears only in verbose mode (--verbose).
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Fields is a set of structured log fields.
type Fields = logrus.Fields

var (
	mu        sync.RWMutex
	verbose   bool
	baseLevel = logrus.WarnLevel
	log       = newLogger(os.Stderr)
	rotator   *lumberjack.Logger
)

func newLogger(w io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(logrus.WarnLevel)
	l.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp:       true,
		DisableLevelTruncation: true,
		DisableQuote:           true,
	})
	return l
}

// SetVerbose enables or disables debug logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
	applyLevel()
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetLevel sets the level used outside verbose mode ("info", "warn", ...).
func SetLevel(level string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("parse log level: %w", err)
	}
	mu.Lock()
	defer mu.Unlock()
	baseLevel = lvl
	applyLevel()
	return nil
}

// applyLevel must be called with mu held.
func applyLevel() {
	if verbose {
		log.SetLevel(logrus.DebugLevel)
		return
	}
	log.SetLevel(baseLevel)
}

// SetOutput sets the output writer for logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	log.SetOutput(w)
}

// SetJSON switches between the plain text and JSON formatters.
func SetJSON(enabled bool) {
	mu.Lock()
	defer mu.Unlock()
	if enabled {
		log.SetFormatter(&logrus.JSONFormatter{})
		return
	}
	log.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp:       true,
		DisableLevelTruncation: true,
		DisableQuote:           true,
	})
}

// SetFile tees log output to a size-rotated file alongside stderr.
// An empty path stops writing to the file.
func SetFile(path string) {
	mu.Lock()
	defer mu.Unlock()
	if rotator != nil {
		_ = rotator.Close()
		rotator = nil
	}
	if path == "" {
		log.SetOutput(os.Stderr)
		return
	}
	rotator = &lumberjack.Logger{
		Filename:   path,
		MaxSize:    50, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}
	log.SetOutput(io.MultiWriter(os.Stderr, rotator))
}

// Close flushes and closes the log file, if any.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if rotator == nil {
		return nil
	}
	err := rotator.Close()
	rotator = nil
	log.SetOutput(os.Stderr)
	return err
}

// WithFields returns an entry carrying structured fields.
func WithFields(fields Fields) *logrus.Entry {
	mu.RLock()
	defer mu.RUnlock()
	return log.WithFields(fields)
}

// Debug logs a message in verbose mode only.
func Debug(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	log.Debugf(format, args...)
}

// Section logs a section header in verbose mode only.
func Section(name string) {
	mu.RLock()
	defer mu.RUnlock()
	log.Debugf("=== %s ===", name)
}

// Info logs an informational message.
func Info(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	log.Infof(format, args...)
}

// Warn logs a warning.
func Warn(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	log.Warnf(format, args...)
}

// Error logs an error.
func Error(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	log.Errorf(format, args...)
}
