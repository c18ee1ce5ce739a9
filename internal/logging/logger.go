package logging

import (
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
)

type Level int

const (
	DebugLevel Level = iota
	InfoLevel
	WarnLevel
	ErrorLevel
)

func parseLevel(level string) Level {
	switch strings.ToLower(level) {
	case "debug":
		return DebugLevel
	case "info":
		return InfoLevel
	case "warn", "warning":
		return WarnLevel
	case "error":
		return ErrorLevel
	default:
		return InfoLevel
	}
}

func levelToString(level Level) string {
	switch level {
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarnLevel:
		return "WARN"
	case ErrorLevel:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// TextLogger is a plain leveled logger writing human-readable lines to
// stderr. Fields added via WithField are appended as key=value pairs.
type TextLogger struct {
	logger *log.Logger
	level  Level
	fields string
	mu     sync.RWMutex
}

// NewTextLogger creates a text logger with the given prefix and level name.
func NewTextLogger(prefix, level string) *TextLogger {
	return &TextLogger{
		logger: log.New(os.Stderr, prefix, log.LstdFlags|log.Lmicroseconds),
		level:  parseLevel(level),
	}
}

func (l *TextLogger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

func (l *TextLogger) GetLevel() Level {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.level
}

func (l *TextLogger) shouldLog(level Level) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return level >= l.level
}

func (l *TextLogger) log(level Level, format string, args ...interface{}) {
	if !l.shouldLog(level) {
		return
	}
	msg := fmt.Sprintf(format, args...)
	if l.fields != "" {
		msg += " " + l.fields
	}
	l.logger.Printf("[%s] %s", levelToString(level), msg)
}

func (l *TextLogger) Debug(format string, args ...interface{}) { l.log(DebugLevel, format, args...) }
func (l *TextLogger) Info(format string, args ...interface{})  { l.log(InfoLevel, format, args...) }
func (l *TextLogger) Warn(format string, args ...interface{})  { l.log(WarnLevel, format, args...) }
func (l *TextLogger) Error(format string, args ...interface{}) { l.log(ErrorLevel, format, args...) }

func (l *TextLogger) Fatal(format string, args ...interface{}) {
	l.logger.Fatalf("[FATAL] "+format, args...)
}

// WithField returns a logger that appends key=value to every line.
func (l *TextLogger) WithField(key string, value interface{}) Logger {
	return l.WithFields(map[string]interface{}{key: value})
}

// WithFields returns a logger that appends all given pairs to every line.
func (l *TextLogger) WithFields(fields map[string]interface{}) Logger {
	parts := make([]string, 0, len(fields))
	for k, v := range fields {
		parts = append(parts, fmt.Sprintf("%s=%v", k, v))
	}
	joined := strings.Join(parts, " ")
	if l.fields != "" {
		joined = l.fields + " " + joined
	}
	return &TextLogger{
		logger: l.logger,
		level:  l.GetLevel(),
		fields: joined,
	}
}
