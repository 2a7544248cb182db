package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Level represents log severity
type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
)

func (l Level) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	default:
		return "INFO"
	}
}

// ParseLevel converts a string to a Level, defaulting to INFO
func ParseLevel(s string) Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return DEBUG
	case "WARN":
		return WARN
	case "ERROR":
		return ERROR
	default:
		return INFO
	}
}

// Field is a key-value pair attached to a log entry
type Field struct {
	Key   string
	Value interface{}
}

// F is a shorthand for creating a Field
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// Options configures the logger
type Options struct {
	Level    Level
	FilePath string // empty disables file output
	MaxSize  int64  // bytes before the file is rolled to <path>.old
	Console  bool   // also write to stderr
}

// DefaultOptions returns the standard configuration: INFO level, file
// output under ~/.taskflow/logs, console off so it never interferes
// with the TUI.
func DefaultOptions() Options {
	home, _ := os.UserHomeDir()
	path := ""
	if home != "" {
		path = filepath.Join(home, ".taskflow", "logs", "taskflow.log")
	}
	return Options{
		Level:    INFO,
		FilePath: path,
		MaxSize:  10 * 1024 * 1024,
	}
}

// Logger writes leveled, field-structured entries
type Logger struct {
	opts Options
	mu   sync.Mutex
	file *os.File
	out  []io.Writer
}

var (
	global *Logger
	once   sync.Once
)

// Init sets up the package-level logger. Subsequent calls are no-ops.
func Init(opts Options) error {
	var err error
	once.Do(func() {
		global, err = New(opts)
	})
	return err
}

// New creates a logger with the given options
func New(opts Options) (*Logger, error) {
	l := &Logger{opts: opts}
	if opts.FilePath != "" {
		if err := os.MkdirAll(filepath.Dir(opts.FilePath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		if err := l.openFile(); err != nil {
			return nil, err
		}
	}
	if opts.Console {
		l.out = append(l.out, os.Stderr)
	}
	return l, nil
}

func (l *Logger) openFile() error {
	f, err := os.OpenFile(l.opts.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	l.file = f
	l.out = append([]io.Writer{f}, l.out...)
	return nil
}

// rollIfNeeded moves an oversized log file aside. Caller holds l.mu.
func (l *Logger) rollIfNeeded() {
	if l.file == nil || l.opts.MaxSize <= 0 {
		return
	}
	info, err := l.file.Stat()
	if err != nil || info.Size() < l.opts.MaxSize {
		return
	}
	l.file.Close()
	_ = os.Rename(l.opts.FilePath, l.opts.FilePath+".old")
	l.out = nil
	if l.opts.Console {
		l.out = append(l.out, os.Stderr)
	}
	_ = l.openFile()
}

func (l *Logger) log(level Level, msg string, fields []Field) {
	if level < l.opts.Level {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.rollIfNeeded()

	var b strings.Builder
	b.WriteString(time.Now().Format("2006-01-02 15:04:05.000"))
	b.WriteString(" " + level.String() + " " + msg)
	for _, f := range fields {
		fmt.Fprintf(&b, " %s=%v", f.Key, f.Value)
	}
	b.WriteByte('\n')

	for _, w := range l.out {
		_, _ = io.WriteString(w, b.String())
	}
}

// Debug logs at DEBUG level
func (l *Logger) Debug(msg string, fields ...Field) { l.log(DEBUG, msg, fields) }

// Info logs at INFO level
func (l *Logger) Info(msg string, fields ...Field) { l.log(INFO, msg, fields) }

// Warn logs at WARN level
func (l *Logger) Warn(msg string, fields ...Field) { l.log(WARN, msg, fields) }

// Error logs at ERROR level
func (l *Logger) Error(msg string, fields ...Field) { l.log(ERROR, msg, fields) }

// Close flushes and closes the log file
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

// Package-level helpers delegating to the global logger. Safe to call
// before Init; entries are dropped.

func Debug(msg string, fields ...Field) {
	if global != nil {
		global.Debug(msg, fields...)
	}
}

func Info(msg string, fields ...Field) {
	if global != nil {
		global.Info(msg, fields...)
	}
}

func Warn(msg string, fields ...Field) {
	if global != nil {
		global.Warn(msg, fields...)
	}
}

func Error(msg string, fields ...Field) {
	if global != nil {
		global.Error(msg, fields...)
	}
}

// Close closes the global logger
func Close() error {
	if global != nil {
		return global.Close()
	}
	return nil
}
