package ports

import (
	"fmt"
	"strings"
)

// LogLevel is the minimum severity a Logger prints.
type LogLevel int

const (
	// LevelDebug covers per-stage detail: ffmpeg command lines, skipped
	// debug snapshots, probe fallbacks.
	LevelDebug LogLevel = iota
	// LevelInfo covers per-file batch progress.
	LevelInfo
	// LevelWarn covers problems that do not fail a file.
	LevelWarn
	// LevelError covers failed files.
	LevelError
	// LevelQuiet prints nothing.
	LevelQuiet
)

var levelNames = [...]string{"debug", "info", "warn", "error", "quiet"}

func (l LogLevel) String() string {
	if l < 0 || int(l) >= len(levelNames) {
		return "unknown"
	}
	return levelNames[l]
}

// ParseLogLevel parses a level name, ignoring case and surrounding space.
// An empty name is LevelInfo.
func ParseLogLevel(s string) (LogLevel, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return LevelInfo, nil
	}
	for i, name := range levelNames {
		if s == name {
			return LogLevel(i), nil
		}
	}
	return LevelInfo, fmt.Errorf("log level must be one of %s, got %q", strings.Join(levelNames[:], ", "), s)
}

// Logger prints translated messages. msg is a message key passed to the
// translation catalog with args as format arguments.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})

	// WithComponent returns a Logger that prefixes every message with
	// [component].
	WithComponent(component string) Logger
}
