package logger

import (
	"strings"
	"sync"

	"go.uber.org/zap"
)

// Log levels accepted in configs/config.yml (log.level).
const (
	DebugLevel = "debug"
	InfoLevel  = "info"
	WarnLevel  = "warn"
	ErrorLevel = "error"
)

var (
	// globalLogger holds the singleton logger instance.
	globalLogger *Logger
	once         sync.Once
)

// Get returns the process logger. The first call decides the level;
// later calls return the same instance regardless of level.
func Get(level string) *Logger {
	once.Do(func() {
		globalLogger = newZapLogger(strings.ToLower(strings.TrimSpace(level)))
	})
	return globalLogger
}

// Nop returns a logger that discards everything. Used by tests and by
// components constructed without a logger.
func Nop() *Logger {
	return &Logger{SugaredLogger: zap.NewNop().Sugar()}
}

// OrNop returns l, or a discarding logger when l is nil.
func OrNop(l *Logger) *Logger {
	if l == nil {
		return Nop()
	}
	return l
}
