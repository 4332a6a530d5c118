package mocks

import (
	"fmt"
	"strings"
	"sync"

	"github.com/user/vidmask/pkg/ports"
)

// Logger records formatted messages per level.
type Logger struct {
	mu     *sync.Mutex
	prefix string
	Lines  *[]LogLine
}

// LogLine is one recorded message.
type LogLine struct {
	Level   ports.LogLevel
	Message string
}

// NewLogger creates a recording Logger.
func NewLogger() *Logger {
	return &Logger{mu: &sync.Mutex{}, Lines: &[]LogLine{}}
}

func (m *Logger) record(level ports.LogLevel, msg string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	*m.Lines = append(*m.Lines, LogLine{Level: level, Message: m.prefix + fmt.Sprintf(msg, args...)})
}

func (m *Logger) Debug(msg string, args ...interface{}) { m.record(ports.LevelDebug, msg, args...) }
func (m *Logger) Info(msg string, args ...interface{})  { m.record(ports.LevelInfo, msg, args...) }
func (m *Logger) Warn(msg string, args ...interface{})  { m.record(ports.LevelWarn, msg, args...) }
func (m *Logger) Error(msg string, args ...interface{}) { m.record(ports.LevelError, msg, args...) }

func (m *Logger) WithComponent(component string) ports.Logger {
	return &Logger{mu: m.mu, prefix: "[" + component + "] ", Lines: m.Lines}
}

// Messages returns the recorded messages at level.
func (m *Logger) Messages(level ports.LogLevel) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []string
	for _, l := range *m.Lines {
		if l.Level == level {
			out = append(out, l.Message)
		}
	}
	return out
}

// Contains reports whether any message at level contains substr.
func (m *Logger) Contains(level ports.LogLevel, substr string) bool {
	for _, msg := range m.Messages(level) {
		if strings.Contains(msg, substr) {
			return true
		}
	}
	return false
}

var _ ports.Logger = (*Logger)(nil)
