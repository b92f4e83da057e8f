package uartconsole

import (
	"io"
	"log/slog"
	"os"
	"sync"
)

// Component tags log records with the subsystem that produced them.
type Component string

// Log components used by this package.
const (
	ComponentConsole Component = "console"
	ComponentGuard   Component = "guard"
	ComponentHooks   Component = "hooks"
)

var (
	logMu    sync.RWMutex
	logLevel = new(slog.LevelVar)
	logger   = newDefaultLogger(os.Stderr, false)
)

func newDefaultLogger(w io.Writer, json bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: logLevel}
	if json {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func init() {
	// Quiet by default; callers opt in to diagnostics.
	logLevel.Set(slog.LevelWarn)
}

// SetLogger replaces the package logger. Passing nil restores the default
// text logger on stderr.
func SetLogger(l *slog.Logger) {
	logMu.Lock()
	defer logMu.Unlock()
	if l == nil {
		l = newDefaultLogger(os.Stderr, false)
	}
	logger = l
}

// SetLogLevel adjusts the minimum level of the default logger.
func SetLogLevel(level slog.Level) {
	logLevel.Set(level)
}

// SetLogFormat selects the default logger's output encoding, "text" or
// "json". Unknown values fall back to text.
func SetLogFormat(format string) {
	logMu.Lock()
	defer logMu.Unlock()
	logger = newDefaultLogger(os.Stderr, format == "json")
}

func logWith(comp Component) *slog.Logger {
	logMu.RLock()
	defer logMu.RUnlock()
	return logger.With(slog.String("component", string(comp)))
}

func logDebug(comp Component, msg string, args ...any) {
	logWith(comp).Debug(msg, args...)
}

func logError(comp Component, msg string, args ...any) {
	logWith(comp).Error(msg, args...)
}
