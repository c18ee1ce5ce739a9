package logging

// Logger is the common interface for the engine's loggers.
type Logger interface {
	Debug(format string, args ...interface{})
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
	Fatal(format string, args ...interface{})

	WithField(key string, value interface{}) Logger
	WithFields(fields map[string]interface{}) Logger

	SetLevel(level Level)
	GetLevel() Level
}

// Ensure both implementations satisfy the interface.
var (
	_ Logger = (*TextLogger)(nil)
	_ Logger = (*StructuredLogger)(nil)
)
