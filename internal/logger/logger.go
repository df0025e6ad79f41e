package logger

import (
	"sync"
)

// Log levels used across the application.
const (
	DebugLevel = "debug"
	InfoLevel  = "info"
	WarnLevel  = "warn"
	ErrorLevel = "error"
)

// Output formats.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

var (
	globalLogger *Logger
	once         sync.Once
)

// Get returns the process logger writing console lines at the given level.
// The first call (Get or GetWithFormat) initializes it; later calls return the
// same instance.
func Get(level string) *Logger {
	return GetWithFormat(level, FormatConsole)
}

// GetWithFormat is Get with an explicit encoder, FormatJSON for production.
func GetWithFormat(level, format string) *Logger {
	once.Do(func() {
		globalLogger = newZapLogger(level, format)
	})
	return globalLogger
}
