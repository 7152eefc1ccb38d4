package infrastructure

import (
	"log/slog"
	"strings"
)

// Log levels in the order used by LOG_LEVEL. The slog built-ins are kept for
// error, warn, info and debug; http, verbose and silly sit between them.
const (
	LevelError   = slog.LevelError
	LevelWarn    = slog.LevelWarn
	LevelInfo    = slog.LevelInfo
	LevelHTTP    = slog.Level(-1)
	LevelVerbose = slog.Level(-2)
	LevelDebug   = slog.LevelDebug
	LevelSilly   = slog.Level(-8)
)

var levelNames = map[slog.Level]string{
	LevelError:   "error",
	LevelWarn:    "warn",
	LevelInfo:    "info",
	LevelHTTP:    "http",
	LevelVerbose: "verbose",
	LevelDebug:   "debug",
	LevelSilly:   "silly",
}

// parseLogLevel converts a LOG_LEVEL value to a slog.Level. Unknown names map to info.
func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "error":
		return LevelError
	case "warn", "warning":
		return LevelWarn
	case "info":
		return LevelInfo
	case "http":
		return LevelHTTP
	case "verbose":
		return LevelVerbose
	case "debug":
		return LevelDebug
	case "silly":
		return LevelSilly
	default:
		return LevelInfo
	}
}

// levelName returns the lowercase name of l, falling back to slog's own
// rendering for levels outside the named set.
func levelName(l slog.Level) string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return strings.ToLower(l.String())
}
