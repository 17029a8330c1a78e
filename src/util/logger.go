package util

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"di-quality/src/config"
)

// LogLevel represents logging level
type LogLevel int

const (
	LogLevelDebug LogLevel = iota
	LogLevelInfo
	LogLevelWarn
	LogLevelError
)

// Logger provides level-gated logging in text or JSON-lines form.
// It is safe for use by concurrent project workers.
type Logger struct {
	mu               sync.Mutex
	level            LogLevel
	output           io.Writer
	json             bool
	includeTimestamp bool
	includeCaller    bool
}

// NewLogger creates a new logger from config
func NewLogger(cfg config.LoggingConfig) *Logger {
	output := io.Writer(os.Stderr)
	if cfg.File != "" {
		if f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644); err == nil {
			output = f
		}
	}
	return NewLoggerTo(output, cfg)
}

// NewLoggerTo creates a logger writing to w, ignoring cfg.File
func NewLoggerTo(w io.Writer, cfg config.LoggingConfig) *Logger {
	return &Logger{
		level:            ParseLevel(cfg.Level),
		output:           w,
		json:             strings.EqualFold(cfg.Format, "json"),
		includeTimestamp: cfg.IncludeTimestamp,
		includeCaller:    cfg.IncludeCaller,
	}
}

// ParseLevel maps a level name to a LogLevel, defaulting to info
func ParseLevel(name string) LogLevel {
	switch strings.ToLower(name) {
	case "debug":
		return LogLevelDebug
	case "warn", "warning":
		return LogLevelWarn
	case "error":
		return LogLevelError
	default:
		return LogLevelInfo
	}
}

func (lv LogLevel) String() string {
	switch lv {
	case LogLevelDebug:
		return "debug"
	case LogLevelWarn:
		return "warn"
	case LogLevelError:
		return "error"
	default:
		return "info"
	}
}

// Debug logs a debug message
func (l *Logger) Debug(msg string, args ...any) {
	l.log(LogLevelDebug, msg, args...)
}

// Info logs an info message
func (l *Logger) Info(msg string, args ...any) {
	l.log(LogLevelInfo, msg, args...)
}

// Warn logs a warning message
func (l *Logger) Warn(msg string, args ...any) {
	l.log(LogLevelWarn, msg, args...)
}

// Error logs an error message
func (l *Logger) Error(msg string, args ...any) {
	l.log(LogLevelError, msg, args...)
}

// GetLevel returns the current log level as a string
func (l *Logger) GetLevel() string {
	return l.level.String()
}

func (l *Logger) log(level LogLevel, msg string, args ...any) {
	if level < l.level {
		return
	}
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}

	var caller string
	if l.includeCaller {
		// log <- Logger.Debug <- package Debug <- call site
		if _, file, line, ok := runtime.Caller(3); ok {
			caller = fmt.Sprintf("%s:%d", filepath.Base(file), line)
		}
	}

	var line string
	if l.json {
		entry := map[string]string{"level": level.String(), "msg": msg}
		if l.includeTimestamp {
			entry["time"] = time.Now().UTC().Format(time.RFC3339)
		}
		if caller != "" {
			entry["caller"] = caller
		}
		data, _ := json.Marshal(entry)
		line = string(data)
	} else {
		var prefix string
		if l.includeTimestamp {
			prefix = time.Now().Format("2006-01-02 15:04:05") + " "
		}
		prefix += "[" + strings.ToUpper(level.String()) + "] "
		if caller != "" {
			prefix += caller + " "
		}
		line = prefix + msg
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.output, line)
}

// DefaultLogger is the package-level default logger
var DefaultLogger = NewLogger(config.LoggingConfig{
	Level:            "info",
	IncludeTimestamp: true,
})

// SetDefaultLogger updates the default logger with new configuration
func SetDefaultLogger(cfg config.LoggingConfig) {
	DefaultLogger = NewLogger(cfg)
}

// Debug logs using the default logger
func Debug(msg string, args ...any) {
	DefaultLogger.Debug(msg, args...)
}

// Info logs using the default logger
func Info(msg string, args ...any) {
	DefaultLogger.Info(msg, args...)
}

// Warn logs using the default logger
func Warn(msg string, args ...any) {
	DefaultLogger.Warn(msg, args...)
}

// Error logs using the default logger
func Error(msg string, args ...any) {
	DefaultLogger.Error(msg, args...)
}
