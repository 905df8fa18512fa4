// Package logger is the logging surface shared by pidash packages. Widgets,
// the registry and the demo feed take a Logger rather than writing to the
// log package directly, so tests can capture what they report and the CLI
// decides once, at startup, where messages go.
package logger

import (
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
)

// DebugEnv enables debug output when set to any non-empty value.
const DebugEnv = "PIDASH_DEBUG"

// Level is the severity of a message.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	}
	return fmt.Sprintf("level(%d)", int(l))
}

// Logger takes printf-style messages at four levels.
type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

// DebugEnabled reports whether PIDASH_DEBUG is set. Dropped readings and
// widget lifecycle events are only worth printing when it is.
func DebugEnabled() bool {
	return os.Getenv(DebugEnv) != ""
}

// envLogger writes through the standard log package. Debug lines are
// gated on PIDASH_DEBUG, checked per call so the variable can be flipped
// without rebuilding loggers.
type envLogger struct {
	prefix string
}

// NewEnvLogger returns the logger the CLI installs. prefix tags every line,
// e.g. "[pidash]".
func NewEnvLogger(prefix string) Logger {
	if prefix != "" {
		prefix += " "
	}
	return &envLogger{prefix: prefix}
}

func (l *envLogger) emit(lv Level, format string, args []any) {
	tag := ""
	switch lv {
	case LevelWarn:
		tag = "WARN: "
	case LevelError:
		tag = "ERROR: "
	}
	log.Print(l.prefix + tag + fmt.Sprintf(format, args...))
}

func (l *envLogger) Debug(format string, args ...any) {
	if DebugEnabled() {
		l.emit(LevelDebug, format, args)
	}
}

func (l *envLogger) Info(format string, args ...any)  { l.emit(LevelInfo, format, args) }
func (l *envLogger) Warn(format string, args ...any)  { l.emit(LevelWarn, format, args) }
func (l *envLogger) Error(format string, args ...any) { l.emit(LevelError, format, args) }

type noop struct{}

// Noop discards everything. It is the fallback when a component is built
// without a logger.
func Noop() Logger { return noop{} }

func (noop) Debug(string, ...any) {}
func (noop) Info(string, ...any)  {}
func (noop) Warn(string, ...any)  {}
func (noop) Error(string, ...any) {}

// Entry is one captured message.
type Entry struct {
	Level   Level
	Message string
}

// BufferLogger keeps every message in memory so tests can assert on what a
// widget or the feed reported. Safe for concurrent writers; read Entries
// once they are done.
type BufferLogger struct {
	mu      sync.Mutex
	Entries []Entry
}

func NewBufferLogger() *BufferLogger {
	return &BufferLogger{}
}

func (l *BufferLogger) add(lv Level, format string, args []any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Entries = append(l.Entries, Entry{Level: lv, Message: fmt.Sprintf(format, args...)})
}

func (l *BufferLogger) Debug(format string, args ...any) { l.add(LevelDebug, format, args) }
func (l *BufferLogger) Info(format string, args ...any)  { l.add(LevelInfo, format, args) }
func (l *BufferLogger) Warn(format string, args ...any)  { l.add(LevelWarn, format, args) }
func (l *BufferLogger) Error(format string, args ...any) { l.add(LevelError, format, args) }

// HasLevel reports whether anything was logged at lv.
func (l *BufferLogger) HasLevel(lv Level) bool {
	return l.Contains(lv, "")
}

// Contains reports whether a message at lv contains substr.
func (l *BufferLogger) Contains(lv Level, substr string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, e := range l.Entries {
		if e.Level == lv && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}

var (
	defaultMu     sync.RWMutex
	defaultLogger = NewEnvLogger("")
)

// Default returns the process-wide logger.
func Default() Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

// SetDefault replaces the process-wide logger. The root command calls it
// before any subcommand runs.
func SetDefault(l Logger) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultLogger = l
}
