package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// LogLevel selects how much the file logger records.
type LogLevel int

// Levels, in increasing verbosity.
const (
	LogLevelOff LogLevel = iota
	LogLevelError
	LogLevelDebug
)

// ParseLogLevel maps a config or environment string to a level. Unknown
// strings fall back to error, the shipped default.
func ParseLogLevel(s string) LogLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "off", "none":
		return LogLevelOff
	case "debug":
		return LogLevelDebug
	default:
		return LogLevelError
	}
}

// String returns the level name as it appears in config files and log
// lines.
func (l LogLevel) String() string {
	switch l {
	case LogLevelOff:
		return "off"
	case LogLevelDebug:
		return "debug"
	default:
		return "error"
	}
}

// Logger appends timestamped lines to a file under the apncat home
// directory. The terminal stays reserved for command output; anything
// diagnostic (table builds, catalog writes, bulk-import progress) goes
// here instead.
type Logger struct {
	mu    sync.Mutex
	level LogLevel
	file  *os.File
}

// NewLogger opens path for appending, creating its directory if needed.
// A leading ~/ expands to the user's home directory. Level off or an
// empty path yields a logger that never touches the filesystem.
func NewLogger(level LogLevel, path string) (*Logger, error) {
	if level == LogLevelOff || path == "" {
		return &Logger{level: LogLevelOff}, nil
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(home, path[2:])
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, err
	}
	// #nosec G304 -- the log path comes from the validated config
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, err
	}

	return &Logger{level: level, file: f}, nil
}

// Close releases the log file.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

// Debug records a debug-level line.
func (l *Logger) Debug(format string, args ...any) {
	l.write(LogLevelDebug, format, args...)
}

// Error records an error-level line.
func (l *Logger) Error(format string, args ...any) {
	l.write(LogLevelError, format, args...)
}

func (l *Logger) write(level LogLevel, format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil || level > l.level {
		return
	}

	stamp := time.Now().Format("2006-01-02 15:04:05.000")
	msg := fmt.Sprintf(format, args...)
	_, _ = fmt.Fprintf(l.file, "%s [%s] %s\n", stamp, strings.ToUpper(level.String()), msg)
}

// NullLogger returns a logger that discards everything, used when the
// configured log file cannot be opened.
func NullLogger() *Logger {
	return &Logger{level: LogLevelOff}
}
