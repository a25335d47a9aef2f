package utils

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"
)

// Level orders log severities; messages below the logger's level are dropped.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// ParseLevel maps a LOG_LEVEL value to a Level. Unknown values fall back to info.
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

// Logger provides structured, leveled logging throughout the application.
type Logger struct {
	out   *log.Logger
	err   *log.Logger
	level Level
	color bool
	scope string
}

// NewLogger creates a new Logger writing to stdout/stderr at info level.
// Colors are disabled when NO_COLOR is set.
func NewLogger() *Logger {
	return newLogger(os.Stdout, os.Stderr, LevelInfo, os.Getenv("NO_COLOR") == "")
}

// NewLoggerTo writes every level to w without colors. Tests use it to capture output.
func NewLoggerTo(w io.Writer, level Level) *Logger {
	return newLogger(w, w, level, false)
}

func newLogger(out, errOut io.Writer, level Level, color bool) *Logger {
	return &Logger{
		out:   log.New(out, "", 0),
		err:   log.New(errOut, "", 0),
		level: level,
		color: color,
	}
}

// SetLevel changes the minimum level that is written.
func (l *Logger) SetLevel(level Level) { l.level = level }

// With returns a logger that prefixes every message with [scope].
func (l *Logger) With(scope string) *Logger {
	c := *l
	if c.scope != "" {
		scope = c.scope + "/" + scope
	}
	c.scope = scope
	return &c
}

func (l *Logger) timestamp() string {
	return time.Now().Format("2006-01-02 15:04:05")
}

func (l *Logger) Debug(format string, args ...any) {
	l.write(LevelDebug, l.out, "DEBUG", "36", format, args...)
}

func (l *Logger) Info(format string, args ...any) {
	l.write(LevelInfo, l.out, "INFO ", "32", format, args...)
}

func (l *Logger) Warn(format string, args ...any) {
	l.write(LevelWarn, l.out, "WARN ", "33", format, args...)
}

func (l *Logger) Error(format string, args ...any) {
	l.write(LevelError, l.err, "ERROR", "31", format, args...)
}

func (l *Logger) write(level Level, dst *log.Logger, tag, color, format string, args ...any) {
	if level < l.level {
		return
	}
	if l.color {
		tag = "\033[" + color + "m" + tag + "\033[0m"
	}
	msg := fmt.Sprintf(format, args...)
	if l.scope != "" {
		msg = "[" + l.scope + "] " + msg
	}
	dst.Printf("[%s] %s %s\n", l.timestamp(), tag, msg)
}
