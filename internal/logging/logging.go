// Package logging builds the application logger. The TUI owns the terminal,
// so records go to a size-rotated file.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/jask/deskboard/internal/config"
)

// Logger wraps the slog logger together with the rotating file behind it.
type Logger struct {
	*slog.Logger
	RunID string
	out   io.Closer
}

// New opens the log file described by cfg and tags every record with a
// fresh run id.
func New(cfg config.LogConfig) (*Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir log dir: %w", err)
	}
	file := &lumberjack.Logger{
		Filename:   cfg.Path,
		MaxSize:    cfg.MaxSizeMB, // megabytes
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays, // days
		Compress:   true,
	}
	return newLogger(file, file, level), nil
}

// NewWriter logs to w without rotation; used by tests and the CLI.
func NewWriter(w io.Writer, level slog.Level) *Logger {
	return newLogger(w, nil, level)
}

func newLogger(w io.Writer, closer io.Closer, level slog.Level) *Logger {
	runID := uuid.NewString()
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return &Logger{
		Logger: slog.New(h).With("run", runID),
		RunID:  runID,
		out:    closer,
	}
}

// Close flushes and closes the log file, if any.
func (l *Logger) Close() error {
	if l.out == nil {
		return nil
	}
	return l.out.Close()
}

func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}
