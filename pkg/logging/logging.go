// Package logging configures colored structured logging with tint.
//
// Usage:
//
//	logging.Setup("info")                       // stderr, level by name
//	logging.SetupWriter(w, slog.LevelDebug)     // explicit writer and level
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// Setup configures colored logging on stderr at the named level
// (debug, info, warn, error; anything else means info).
func Setup(level string) {
	SetupWriter(os.Stderr, ParseLevel(level))
}

// SetupWriter configures colored logging to w at the given level.
func SetupWriter(w io.Writer, level slog.Level) {
	slog.SetDefault(slog.New(
		tint.NewHandler(w, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		}),
	))
}

// ParseLevel maps a level name to a slog.Level.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(name) {
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
