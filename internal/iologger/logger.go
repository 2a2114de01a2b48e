// Package iologger provides slog-based logging initialization and configuration.
package iologger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/vgarchive/vgdb/pkg/config"
)

// LogFile is the name of the log file inside the log directory.
const LogFile = "vgdb.log"

// Init initializes the global slog logger with the given configuration.
// Creates log file in logDir if destination is "file".
// If append is true, appends to existing log file; otherwise creates fresh file.
func Init(logDir string, cfg config.LogConfig, append bool) error {
	// Determine output destination
	var writer io.Writer

	switch cfg.Destination {
	case "stdout":
		writer = os.Stdout
	case "file":
		logPath := filepath.Join(logDir, LogFile)
		var file *os.File
		var err error

		if append {
			// Append to existing log file
			file, err = os.OpenFile(
				logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644,
			)
		} else {
			// Create fresh log file
			file, err = os.Create(logPath)
		}

		if err != nil {
			return CreateLogFileError(logPath, err)
		}
		writer = file
	default:
		writer = os.Stderr
	}

	// Set as default logger
	slog.SetDefault(slog.New(newHandler(writer, cfg)))
	return nil
}

func newHandler(w io.Writer, cfg config.LogConfig) slog.Handler {
	// Parse log level
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Level)}

	// Create handler based on format
	switch cfg.Format {
	case "text", "tint":
		return slog.NewTextHandler(w, opts)
	default:
		// JSON for any unrecognized format
		return slog.NewJSONHandler(w, opts)
	}
}

// parseLevel converts string level to slog.Level.
func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
