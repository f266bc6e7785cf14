package logging

import (
	"log"
	"os"
)

const (
	// TraceLevel indicates a log message's level of criticality
	TraceLevel = iota
	// DebugLevel indicates a log message's level of criticality
	DebugLevel
	// InfoLevel indicates a log message's level of criticality
	InfoLevel
	// WarnLevel indicates a log message's level of criticality
	WarnLevel
	// ErrorLevel indicates a log message's level of criticality
	ErrorLevel
)

// LogLevelToString translates a log level enum to a string representation
func LogLevelToString(level int) string {
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
		return "TRACE"
	}
}

// Logger filters log messages below a configured criticality level
type Logger struct {
	level int
	out   *log.Logger
}

// NewLogger instantiates a Logger which discards messages below the given level
func NewLogger(level int) *Logger {
	return &Logger{level: level, out: log.New(os.Stderr, "", log.LstdFlags)}
}

// SetLevel adjusts the criticality level below which messages are discarded
func (l *Logger) SetLevel(level int) {
	l.level = level
}

// Logf formats and emits a message at the given level
func (l *Logger) Logf(level int, format string, args ...interface{}) {
	if level < l.level {
		return
	}
	l.out.Printf(LogLevelToString(level)+" "+format, args...)
}
