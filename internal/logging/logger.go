package logging

import (
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// Logger is the global logger instance. It writes to stderr at info level
// until Init is called, so library code can log before the CLI configures it.
var Logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	TimeFormat:      time.Kitchen,
	Level:           log.InfoLevel,
})

// Init replaces the global logger. debug lowers the level to debug.
func Init(w io.Writer, debug bool) {
	level := log.InfoLevel
	if debug {
		level = log.DebugLevel
	}
	Logger = log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Level:           level,
		Prefix:          "phrasegraph",
	})
}

// Info logs an info message
func Info(msg string, keyvals ...interface{}) {
	Logger.Info(msg, keyvals...)
}

// Debug logs a debug message
func Debug(msg string, keyvals ...interface{}) {
	Logger.Debug(msg, keyvals...)
}

// Warn logs a warning message
func Warn(msg string, keyvals ...interface{}) {
	Logger.Warn(msg, keyvals...)
}

// WithPrefix returns a child logger with a prefix
func WithPrefix(prefix string) *log.Logger {
	return Logger.WithPrefix(prefix)
}
