package logging

import "strings"

// LogFormat selects the output encoding.
type LogFormat string

const (
	FormatJSON LogFormat = "json"
	FormatText LogFormat = "text"
)

// Config carries the settings a logger is built from.
type Config struct {
	Level   string
	Format  LogFormat
	Service string
	Version string
	Prefix  string
}

// NewFromConfig builds a logger from config. JSON is the default format; an
// unrecognized format falls back to JSON rather than failing startup.
func NewFromConfig(cfg *Config) Logger {
	if cfg == nil {
		return NewStructuredLogger("goban-engine", "", "info")
	}
	switch LogFormat(strings.ToLower(string(cfg.Format))) {
	case FormatText:
		return NewTextLogger(cfg.Prefix, cfg.Level)
	default:
		return NewStructuredLogger(cfg.Service, cfg.Version, cfg.Level)
	}
}
