package logger

import (
	"io"
	"log"
	"os"
	"strings"
	"sync/atomic"

	"github.com/fatih/color"
)

// Level orders log messages by severity.
type Level int32

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// ParseLevel maps a config string to a Level, defaulting to LevelInfo.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

// Logger defines the dogcenter logging contract.
// Implementations should support standard log levels and be safe for concurrent use.
type Logger interface {
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	Debug(msg string, args ...any)
}

var (
	debugTag = color.New(color.FgCyan)
	infoTag  = color.New(color.FgGreen)
	warnTag  = color.New(color.FgYellow)
	errorTag = color.New(color.FgRed, color.Bold)
)

// StdLogger wraps Go's standard logger and drops messages below its level.
type StdLogger struct {
	logger *log.Logger
	level  atomic.Int32
}

// NewStdLogger creates a StdLogger writing to stdout at LevelInfo.
func NewStdLogger() *StdLogger {
	return New(os.Stdout, LevelInfo)
}

// New creates a StdLogger writing to w with the given threshold.
func New(w io.Writer, level Level) *StdLogger {
	l := &StdLogger{
		logger: log.New(w, "", log.LstdFlags),
	}
	l.level.Store(int32(level))
	return l
}

// SetLevel changes the threshold. Safe to call while logging.
func (l *StdLogger) SetLevel(level Level) {
	l.level.Store(int32(level))
}

func (l *StdLogger) enabled(level Level) bool {
	return Level(l.level.Load()) <= level
}

// printf colours only the level tag so that args are never run through
// the colour formatter.
func (l *StdLogger) printf(tag *color.Color, label, msg string, args ...any) {
	l.logger.Printf(tag.Sprint(label)+" "+msg, args...)
}

func (l *StdLogger) Info(msg string, args ...any) {
	if l.enabled(LevelInfo) {
		l.printf(infoTag, "[INFO]", msg, args...)
	}
}

func (l *StdLogger) Warn(msg string, args ...any) {
	if l.enabled(LevelWarn) {
		l.printf(warnTag, "[WARN]", msg, args...)
	}
}

func (l *StdLogger) Error(msg string, args ...any) {
	if l.enabled(LevelError) {
		l.printf(errorTag, "[ERROR]", msg, args...)
	}
}

func (l *StdLogger) Debug(msg string, args ...any) {
	if l.enabled(LevelDebug) {
		l.printf(debugTag, "[DEBUG]", msg, args...)
	}
}

// Discard is a Logger that drops everything; handy in tests.
var Discard Logger = New(io.Discard, LevelError+1)

// Default provides a global default logger instance using Go's standard logger.
var Default Logger = NewStdLogger()
