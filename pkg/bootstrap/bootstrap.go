// Package bootstrap holds process start-up helpers shared by service entry points.
package bootstrap

import (
	"io"
	"log/slog"
	"strings"

	"github.com/abgdnv/scentshop/pkg/logger"
)

// NewLogger creates a JSON slog.Logger writing to w at the specified level.
// Records carry request and trace identifiers found in the context.
func NewLogger(level string, w io.Writer) *slog.Logger {
	logLevel := toLevel(level)
	loggerOpts := &slog.HandlerOptions{
		AddSource: logLevel == slog.LevelDebug,
		Level:     logLevel,
	}
	logHandler := slog.NewJSONHandler(w, loggerOpts)
	return slog.New(logger.NewContextHandler(logHandler))
}

// toLevel converts a string representation of a log level to slog.Level.
func toLevel(level string) slog.Level {
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
