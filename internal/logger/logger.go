// Package logger holds the process-wide logger for the argtags command.
// Levels come from the --log-level flag, then ARGTAGS_LOG_LEVEL, then info.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// EnvLevel names the environment variable consulted when no level flag is set
const EnvLevel = "ARGTAGS_LOG_LEVEL"

// Logger is the global logger instance.
var Logger = newLogger(os.Stderr, log.InfoLevel)

var (
	output  io.Writer = os.Stderr
	logFile *os.File // opened by the last Configure call, if any
)

func newLogger(w io.Writer, level log.Level) *log.Logger {
	l := log.New(w)
	l.SetTimeFormat("")
	l.SetLevel(level)
	return l
}

// Configure sets the level and destination of Logger. An empty logLevel
// falls back to the environment; an empty path keeps stderr.
func Configure(logLevel, path string) error {
	level := logLevel
	if level == "" {
		level = os.Getenv(EnvLevel)
	}

	Close()
	var w io.Writer = os.Stderr
	if path != "" {
		file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return err
		}
		logFile = file
		w = file
	}

	output = w
	Logger = newLogger(w, ParseLevel(level))
	return nil
}

// Output returns the destination Logger writes to.
func Output() io.Writer {
	return output
}

// Close releases the log file opened by Configure.
func Close() {
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
		output = os.Stderr
	}
}

// ParseLevel maps a level name to a log.Level, defaulting to info.
func ParseLevel(level string) log.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return log.DebugLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	case "fatal":
		return log.FatalLevel
	default:
		return log.InfoLevel
	}
}

// Debug logs a debug message with optional key-value pairs.
func Debug(msg interface{}, keyvals ...interface{}) {
	Logger.Debug(msg, keyvals...)
}

// Info logs an info message with optional key-value pairs.
func Info(msg interface{}, keyvals ...interface{}) {
	Logger.Info(msg, keyvals...)
}

// Warn logs a warning message with optional key-value pairs.
func Warn(msg interface{}, keyvals ...interface{}) {
	Logger.Warn(msg, keyvals...)
}

// Error logs an error message with optional key-value pairs.
func Error(msg interface{}, keyvals ...interface{}) {
	Logger.Error(msg, keyvals...)
}

// NewStyledLogger returns a component logger that writes where Logger
// writes, at Logger's level, with the given prefix.
func NewStyledLogger(prefix string, w io.Writer) *log.Logger {
	styles := log.DefaultStyles()

	styles.Levels[log.DebugLevel] = levelStyle("DEBUG", "240")
	styles.Levels[log.InfoLevel] = levelStyle("INFO", "33")
	styles.Levels[log.WarnLevel] = levelStyle("WARN", "214")
	styles.Levels[log.ErrorLevel] = levelStyle("ERROR", "196")

	styles.Keys["line"] = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	styles.Keys["kind"] = lipgloss.NewStyle().Foreground(lipgloss.Color("99"))
	styles.Keys["tag"] = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	styles.Keys["err"] = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	styles.Values["err"] = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))

	component := log.NewWithOptions(w, log.Options{
		Prefix: prefix + " ",
	})
	component.SetStyles(styles)
	component.SetLevel(Logger.GetLevel())
	return component
}

func levelStyle(label, background string) lipgloss.Style {
	return lipgloss.NewStyle().
		SetString(label).
		Padding(0, 1, 0, 1).
		Background(lipgloss.Color(background)).
		Foreground(lipgloss.Color("15"))
}
