// Package logger provides a minimal slog-based logging wrapper.
//
// The chat TUI owns stdout, so the default sink is a file under the config
// directory. Logging is best-effort: a failure to open the log file disables
// logging rather than aborting startup.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Config describes logger settings.
type Config struct {
	Enabled bool
	Level   string // "debug", "info", "warn", "error"
	File    string // path relative to the config dir unless absolute
}

var (
	mu      sync.RWMutex
	base    *slog.Logger
	logFile *os.File
)

func init() {
	base = slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Init initializes the logger with the provided config.
func Init(cfg Config, configDir string) error {
	mu.Lock()
	defer mu.Unlock()

	if !cfg.Enabled {
		base = slog.New(slog.NewTextHandler(io.Discard, nil))
		return nil
	}

	path := cfg.File
	if path == "" {
		path = "personachat.log"
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(configDir, path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("logger: create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("logger: open log file: %w", err)
	}

	if logFile != nil {
		logFile.Close()
	}
	logFile = f
	base = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{
		Level: parseLevel(cfg.Level),
	}))
	return nil
}

// Close flushes and closes the log file, if any.
func Close() {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
	base = slog.New(slog.NewTextHandler(io.Discard, nil))
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func logger() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base
}

// Debug logs at debug level.
func Debug(msg string, args ...any) { logger().Debug(msg, args...) }

// Info logs at info level.
func Info(msg string, args ...any) { logger().Info(msg, args...) }

// Warn logs at warn level.
func Warn(msg string, args ...any) { logger().Warn(msg, args...) }

// Error logs at error level.
func Error(msg string, args ...any) { logger().Error(msg, args...) }
