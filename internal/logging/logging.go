package logging

import (
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/lumberjack"
)

// Logger is the global slog instance for the application
var Logger *slog.Logger

// Options controls where and how much the application logs
type Options struct {
	// Dir receives lista.log; defaults to ~/.lista/logs
	Dir        string
	Level      string
	MaxSizeMB  int
	MaxBackups int
}

// Init initializes the logging system, writing logs to <dir>/lista.log.
// Uses text format for human readability; the file is rotated by size.
func Init(opts Options) (io.Closer, error) {
	dir := opts.Dir
	if dir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(homeDir, ".lista", "logs")
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	rotator := &lumberjack.Logger{
		Filename:   filepath.Join(dir, "lista.log"),
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxBackups,
	}

	handler := slog.NewTextHandler(rotator, &slog.HandlerOptions{
		Level: ParseLevel(opts.Level),
	})

	Logger = slog.New(handler)
	slog.SetDefault(Logger)

	// Redirect standard log package output to the same file
	log.SetOutput(rotator)
	log.SetFlags(log.LstdFlags)

	return rotator, nil
}

// Discard routes all logging to nowhere. Used by tests and --quiet runs
// that never initialize a log file.
func Discard() {
	Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	slog.SetDefault(Logger)
}

// ParseLevel maps a config string to a slog level, defaulting to info
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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
