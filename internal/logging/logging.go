// Package logging configures the process-wide slog logger.
package logging

import (
	"log/slog"
	"os"
	"strings"
)

// Setup installs a text handler on stderr at the given level name.
// Unknown level names fall back to info. Logs go to stderr so they never
// interfere with the terminal UI or piped command output.
func Setup(level string) {
	opts := &slog.HandlerOptions{
		Level: parseLevel(level),
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, opts)))
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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
