package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Level represents a logging level
type Level int

const (
	// LevelDebug is the most verbose logging level
	LevelDebug Level = iota
	// LevelInfo logs informational messages
	LevelInfo
	// LevelWarn logs warnings
	LevelWarn
	// LevelError logs errors
	LevelError
	// LevelNone disables all logging
	LevelNone
)

// String returns string representation of log level
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	case LevelNone:
		return "NONE"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel parses a string into a Level
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	case "none":
		return LevelNone
	default:
		return LevelInfo
	}
}

// Format selects how log lines are written
type Format int

const (
	// FormatText writes "timestamp [LEVEL] [prefix] message" lines
	FormatText Format = iota
	// FormatJSON writes one JSON object per line, for log collectors
	FormatJSON
)

// ParseFormat parses "text" or "json"; anything else is text
func ParseFormat(s string) Format {
	if strings.EqualFold(strings.TrimSpace(s), "json") {
		return FormatJSON
	}
	return FormatText
}

// Options configures a Logger
type Options struct {
	Level    Level
	Format   Format
	Instance string
	// Path is a log file opened in append mode. Empty means Output.
	Path string
	// Output is used when Path is empty; nil means stderr.
	Output io.Writer
}

// Logger provides levelled logging to a file or stream
type Logger struct {
	mu       *sync.Mutex
	level    Level
	format   Format
	instance string
	prefix   string
	out      io.Writer
	file     *os.File
	disabled bool
}

var (
	globalLogger *Logger
	once         sync.Once
)

// Init initializes the global logger
func Init(opts Options) error {
	var err error
	once.Do(func() {
		globalLogger, err = New(opts, "")
	})
	return err
}

// New creates a new Logger instance
func New(opts Options, prefix string) (*Logger, error) {
	l := &Logger{
		mu:       &sync.Mutex{},
		level:    opts.Level,
		format:   opts.Format,
		instance: opts.Instance,
		prefix:   prefix,
	}

	if opts.Level == LevelNone {
		l.out = io.Discard
		l.disabled = true
		return l, nil
	}

	if opts.Path == "" {
		l.out = opts.Output
		if l.out == nil {
			l.out = os.Stderr
		}
		return l, nil
	}

	if err := os.MkdirAll(filepath.Dir(opts.Path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	file, err := os.OpenFile(opts.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	l.file = file
	l.out = file

	return l, nil
}

// Global returns the global logger instance
func Global() *Logger {
	if globalLogger == nil {
		// Uninitialized: discard everything
		globalLogger = &Logger{
			mu:       &sync.Mutex{},
			level:    LevelNone,
			out:      io.Discard,
			disabled: true,
		}
	}
	return globalLogger
}

// WithPrefix creates a new logger with an additional prefix.
// The child shares the parent's output and lock.
func (l *Logger) WithPrefix(prefix string) *Logger {
	l.mu.Lock()
	defer l.mu.Unlock()

	newPrefix := prefix
	if l.prefix != "" {
		newPrefix = l.prefix + ":" + prefix
	}

	return &Logger{
		mu:       l.mu,
		level:    l.level,
		format:   l.format,
		instance: l.instance,
		prefix:   newPrefix,
		out:      l.out,
		file:     l.file,
		disabled: l.disabled,
	}
}

// SetLevel sets the logging level
func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

// GetLevel returns the current logging level
func (l *Logger) GetLevel() Level {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.level
}

type jsonEntry struct {
	Timestamp string `json:"timestamp"`
	Level     string `json:"level"`
	Instance  string `json:"instance,omitempty"`
	Prefix    string `json:"prefix,omitempty"`
	Message   string `json:"message"`
}

func (l *Logger) log(level Level, format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.disabled || level < l.level {
		return
	}

	now := time.Now()
	msg := fmt.Sprintf(format, args...)

	if l.format == FormatJSON {
		line, err := json.Marshal(jsonEntry{
			Timestamp: now.UTC().Format(time.RFC3339),
			Level:     strings.ToLower(level.String()),
			Instance:  l.instance,
			Prefix:    l.prefix,
			Message:   msg,
		})
		if err != nil {
			return
		}
		l.out.Write(append(line, '\n'))
		return
	}

	prefix := l.prefix
	if prefix != "" {
		prefix = "[" + prefix + "] "
	}
	fmt.Fprintf(l.out, "%s [%s] %s%s\n", now.Format("2006-01-02 15:04:05.000"), level.String(), prefix, msg)
}

// Debug logs a debug message
func (l *Logger) Debug(format string, args ...interface{}) {
	l.log(LevelDebug, format, args...)
}

// Info logs an informational message
func (l *Logger) Info(format string, args ...interface{}) {
	l.log(LevelInfo, format, args...)
}

// Warn logs a warning message
func (l *Logger) Warn(format string, args ...interface{}) {
	l.log(LevelWarn, format, args...)
}

// Error logs an error message
func (l *Logger) Error(format string, args ...interface{}) {
	l.log(LevelError, format, args...)
}

// Close closes the underlying file, if any
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file != nil {
		err := l.file.Close()
		l.file = nil
		l.disabled = true
		return err
	}
	return nil
}

// Global logging functions for convenience

// Debug logs a debug message using the global logger
func Debug(format string, args ...interface{}) {
	Global().Debug(format, args...)
}

// Info logs an informational message using the global logger
func Info(format string, args ...interface{}) {
	Global().Info(format, args...)
}

// Warn logs a warning message using the global logger
func Warn(format string, args ...interface{}) {
	Global().Warn(format, args...)
}

// Error logs an error message using the global logger
func Error(format string, args ...interface{}) {
	Global().Error(format, args...)
}
