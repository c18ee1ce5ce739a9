package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// StructuredLogger writes one JSON object per line, suitable for log
// aggregation. Field sets are immutable; WithField derives a child logger.
type StructuredLogger struct {
	level   Level
	service string
	version string
	mu      sync.RWMutex
	out     io.Writer
	encMu   *sync.Mutex
	fields  map[string]interface{}
}

// logEntry is the wire shape of one structured log line.
type logEntry struct {
	Timestamp string                 `json:"timestamp"`
	Level     string                 `json:"level"`
	Service   string                 `json:"service"`
	Version   string                 `json:"version,omitempty"`
	Message   string                 `json:"message"`
	Fields    map[string]interface{} `json:"fields,omitempty"`
}

// NewStructuredLogger creates a JSON logger writing to stderr.
func NewStructuredLogger(service, version, level string) *StructuredLogger {
	return &StructuredLogger{
		level:   parseLevel(level),
		service: service,
		version: version,
		out:     os.Stderr,
		encMu:   &sync.Mutex{},
		fields:  make(map[string]interface{}),
	}
}

func (l *StructuredLogger) derive(extra map[string]interface{}) *StructuredLogger {
	child := &StructuredLogger{
		level:   l.GetLevel(),
		service: l.service,
		version: l.version,
		out:     l.out,
		encMu:   l.encMu,
		fields:  make(map[string]interface{}, len(l.fields)+len(extra)),
	}
	l.mu.RLock()
	for k, v := range l.fields {
		child.fields[k] = v
	}
	l.mu.RUnlock()
	for k, v := range extra {
		child.fields[k] = v
	}
	return child
}

// WithField returns a logger carrying an additional field.
func (l *StructuredLogger) WithField(key string, value interface{}) Logger {
	return l.derive(map[string]interface{}{key: value})
}

// WithFields returns a logger carrying additional fields.
func (l *StructuredLogger) WithFields(fields map[string]interface{}) Logger {
	return l.derive(fields)
}

func (l *StructuredLogger) log(level Level, format string, args ...interface{}) {
	if !l.shouldLog(level) {
		return
	}

	entry := logEntry{
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
		Level:     levelToString(level),
		Service:   l.service,
		Version:   l.version,
		Message:   fmt.Sprintf(format, args...),
	}

	l.mu.RLock()
	if len(l.fields) > 0 {
		entry.Fields = make(map[string]interface{}, len(l.fields))
		for k, v := range l.fields {
			entry.Fields[k] = v
		}
	}
	l.mu.RUnlock()

	data, err := json.Marshal(entry)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[%s] %s: %s (json encoding failed: %v)\n",
			entry.Timestamp, entry.Level, entry.Message, err)
		return
	}

	l.encMu.Lock()
	_, _ = l.out.Write(append(data, '\n'))
	l.encMu.Unlock()
}

func (l *StructuredLogger) Debug(format string, args ...interface{}) {
	l.log(DebugLevel, format, args...)
}

func (l *StructuredLogger) Info(format string, args ...interface{}) {
	l.log(InfoLevel, format, args...)
}

func (l *StructuredLogger) Warn(format string, args ...interface{}) {
	l.log(WarnLevel, format, args...)
}

func (l *StructuredLogger) Error(format string, args ...interface{}) {
	l.log(ErrorLevel, format, args...)
}

// Fatal logs at error level and exits.
func (l *StructuredLogger) Fatal(format string, args ...interface{}) {
	l.log(ErrorLevel, format, args...)
	os.Exit(1)
}

func (l *StructuredLogger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

func (l *StructuredLogger) GetLevel() Level {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.level
}

func (l *StructuredLogger) shouldLog(level Level) bool {
	return level >= l.GetLevel()
}

// SetOutput redirects log output; used by tests.
func (l *StructuredLogger) SetOutput(w io.Writer) {
	l.encMu.Lock()
	defer l.encMu.Unlock()
	l.out = w
}
