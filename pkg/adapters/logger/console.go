// Package logger provides the console and discarding loggers.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/ideamans/go-l10n"
	"github.com/mattn/go-isatty"

	"github.com/user/vidmask/pkg/ports"
)

const (
	ansiReset = "\033[0m"
	ansiCyan  = "\033[36m"
)

var levelColors = map[ports.LogLevel]string{
	ports.LevelDebug: "\033[90m",
	ports.LevelWarn:  "\033[33m",
	ports.LevelError: "\033[31m",
}

// console is the destination shared by a logger and everything derived
// from it with WithComponent.
type console struct {
	mu     sync.Mutex
	out    io.Writer // debug, info
	errOut io.Writer // warn, error
	color  bool
}

// ConsoleLogger translates messages with go-l10n and prints one line per
// message. Lines from concurrent jobs never interleave.
type ConsoleLogger struct {
	level     ports.LogLevel
	component string
	dst       *console
}

// NewConsole logs to stdout and stderr, colored when stdout is a terminal.
func NewConsole(level ports.LogLevel) *ConsoleLogger {
	fd := os.Stdout.Fd()
	return &ConsoleLogger{
		level: level,
		dst: &console{
			out:    os.Stdout,
			errOut: os.Stderr,
			color:  isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd),
		},
	}
}

// NewWriter logs uncolored lines, debug and info to out, warn and error to
// errOut.
func NewWriter(level ports.LogLevel, out, errOut io.Writer) *ConsoleLogger {
	return &ConsoleLogger{
		level: level,
		dst:   &console{out: out, errOut: errOut},
	}
}

func (l *ConsoleLogger) Debug(msg string, args ...interface{}) { l.print(ports.LevelDebug, msg, args) }
func (l *ConsoleLogger) Info(msg string, args ...interface{})  { l.print(ports.LevelInfo, msg, args) }
func (l *ConsoleLogger) Warn(msg string, args ...interface{})  { l.print(ports.LevelWarn, msg, args) }
func (l *ConsoleLogger) Error(msg string, args ...interface{}) { l.print(ports.LevelError, msg, args) }

// WithComponent returns a logger that prefixes lines with [component].
func (l *ConsoleLogger) WithComponent(component string) ports.Logger {
	return &ConsoleLogger{level: l.level, component: component, dst: l.dst}
}

func (l *ConsoleLogger) print(level ports.LogLevel, msg string, args []interface{}) {
	if level < l.level {
		return
	}

	line := l10n.F(msg, args...)
	color := l.dst.color
	if l.component != "" {
		if color {
			line = fmt.Sprintf("%s[%s]%s %s", ansiCyan, l.component, ansiReset, line)
		} else {
			line = fmt.Sprintf("[%s] %s", l.component, line)
		}
	}
	if c, ok := levelColors[level]; ok && color {
		line = c + line + ansiReset
	}

	w := l.dst.out
	if level >= ports.LevelWarn {
		w = l.dst.errOut
	}

	l.dst.mu.Lock()
	defer l.dst.mu.Unlock()
	fmt.Fprintln(w, line)
}

var _ ports.Logger = (*ConsoleLogger)(nil)
