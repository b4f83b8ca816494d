// Package logger provides leveled console logging for rrdir runs.
//
// Messages are prefixed with [HH:MM:SS] timestamps and filtered by level
// (trace, debug, info, warn, error). Level names are colored when writing to
// a terminal. ConsoleLogger satisfies walker.Logger, so a walk's debug traces
// flow through the same sink as the command's own messages.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"golang.org/x/term" //nolint:depguard // Required for TTY detection
)

// Log levels in increasing severity.
const (
	levelTrace int = iota
	levelDebug
	levelInfo
	levelWarn
	levelError
)

// Logger is the logging surface the command uses.
type Logger interface {
	LogTrace(message string)
	LogDebug(message string)
	LogInfo(message string)
	LogWarn(message string)
	LogError(message string)
	LogWalkStart(root, mode string)
	LogWalkSummary(entries, failures int, elapsed time.Duration)
}

// ConsoleLogger writes timestamped messages to a writer. It is safe for
// concurrent use, which WalkAsync relies on.
type ConsoleLogger struct {
	writer      io.Writer
	level       int
	mutex       sync.Mutex
	colorOutput bool
}

// NewConsoleLogger creates a ConsoleLogger that writes to writer.
// A nil writer discards everything. Unknown or empty levels mean "info".
// Color is enabled when writer is a file attached to a terminal and
// NO_COLOR is unset.
func NewConsoleLogger(writer io.Writer, logLevel string) *ConsoleLogger {
	return &ConsoleLogger{
		writer:      writer,
		level:       logLevelToInt(NormalizeLogLevel(logLevel)),
		colorOutput: isTerminal(writer),
	}
}

// NormalizeLogLevel lowercases and validates a level name, returning
// "info" for anything unrecognized.
func NormalizeLogLevel(level string) string {
	normalized := strings.ToLower(strings.TrimSpace(level))

	switch normalized {
	case "trace", "debug", "info", "warn", "error":
		return normalized
	default:
		return "info"
	}
}

// LogDebug logs a debug-level message.
func (cl *ConsoleLogger) LogDebug(message string) {
	cl.logWithLevel(levelDebug, "DEBUG", message)
}

// LogError logs an error-level message.
func (cl *ConsoleLogger) LogError(message string) {
	cl.logWithLevel(levelError, "ERROR", message)
}

// LogInfo logs an info-level message.
func (cl *ConsoleLogger) LogInfo(message string) {
	cl.logWithLevel(levelInfo, "INFO", message)
}

// LogTrace logs a trace-level message (most verbose).
func (cl *ConsoleLogger) LogTrace(message string) {
	cl.logWithLevel(levelTrace, "TRACE", message)
}

// LogWalkStart announces a walk at info level.
// Format: "[HH:MM:SS] Walking <root> (<mode>)"
func (cl *ConsoleLogger) LogWalkStart(root, mode string) {
	if cl.colorOutput {
		root = paint(color.Bold, root)
	}

	cl.logPlain(levelInfo, fmt.Sprintf("Walking %s (%s)", root, mode))
}

// LogWalkSummary reports totals at info level, or warn level when some
// entries failed.
// Format: "[HH:MM:SS] Done: <n> entries, <m> errors in <elapsed>"
func (cl *ConsoleLogger) LogWalkSummary(entries, failures int, elapsed time.Duration) {
	level := levelInfo
	failed := fmt.Sprintf("%d errors", failures)

	if failures > 0 {
		level = levelWarn
		if cl.colorOutput {
			failed = paint(color.FgRed, failed)
		}
	}

	cl.logPlain(level, fmt.Sprintf("Done: %d entries, %s in %s",
		entries, failed, elapsed.Round(time.Millisecond)))
}

// LogWarn logs a warning-level message.
func (cl *ConsoleLogger) LogWarn(message string) {
	cl.logWithLevel(levelWarn, "WARN", message)
}

// formatWithColor formats a log line with the level name colored.
func (cl *ConsoleLogger) formatWithColor(ts, label, message string) string {
	var coloredLabel string

	switch label {
	case "TRACE":
		coloredLabel = paint(color.FgHiBlack, label)
	case "DEBUG":
		coloredLabel = paint(color.FgCyan, label)
	case "INFO":
		coloredLabel = paint(color.FgBlue, label)
	case "WARN":
		coloredLabel = paint(color.FgYellow, label)
	case "ERROR":
		coloredLabel = paint(color.FgRed, label)
	default:
		coloredLabel = label
	}

	return fmt.Sprintf("[%s] [%s] %s\n", ts, coloredLabel, message)
}

// logPlain writes a line without a level label.
func (cl *ConsoleLogger) logPlain(level int, message string) {
	if cl.writer == nil || level < cl.level {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	_, _ = fmt.Fprintf(cl.writer, "[%s] %s\n", timestamp(), message)
}

func (cl *ConsoleLogger) logWithLevel(level int, label, message string) {
	if cl.writer == nil || level < cl.level {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	ts := timestamp()

	var formatted string
	if cl.colorOutput {
		formatted = cl.formatWithColor(ts, label, message)
	} else {
		formatted = fmt.Sprintf("[%s] [%s] %s\n", ts, label, message)
	}

	_, _ = io.WriteString(cl.writer, formatted)
}

// NoOpLogger discards all messages.
type NoOpLogger struct{}

// NewNoOpLogger creates a NoOpLogger instance.
func NewNoOpLogger() *NoOpLogger {
	return &NoOpLogger{}
}

func (n *NoOpLogger) LogDebug(string)                        {}
func (n *NoOpLogger) LogError(string)                        {}
func (n *NoOpLogger) LogInfo(string)                         {}
func (n *NoOpLogger) LogTrace(string)                        {}
func (n *NoOpLogger) LogWalkStart(string, string)            {}
func (n *NoOpLogger) LogWalkSummary(int, int, time.Duration) {}
func (n *NoOpLogger) LogWarn(string)                         {}

// isTerminal reports whether w is a file attached to a terminal.
// color.NoColor only describes stdout, so the descriptor is checked directly.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok || f == nil {
		return false
	}

	if _, set := os.LookupEnv("NO_COLOR"); set {
		return false
	}

	return term.IsTerminal(int(f.Fd())) //nolint:gosec // File descriptors fit in int
}

// paint colors s regardless of color.NoColor; callers decide via colorOutput.
func paint(attr color.Attribute, s string) string {
	c := color.New(attr)
	c.EnableColor()

	return c.Sprint(s)
}

func logLevelToInt(level string) int {
	switch level {
	case "trace":
		return levelTrace
	case "debug":
		return levelDebug
	case "warn":
		return levelWarn
	case "error":
		return levelError
	default:
		return levelInfo
	}
}

func timestamp() string {
	return time.Now().Format("15:04:05")
}

var (
	_ Logger = (*ConsoleLogger)(nil)
	_ Logger = (*NoOpLogger)(nil)
)
