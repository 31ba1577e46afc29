package app

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// LogLevel represents the severity level of a log message.
type LogLevel int32

const (
	// LogLevelDebug is for detailed debugging information.
	LogLevelDebug LogLevel = iota
	// LogLevelInfo is for general informational messages.
	LogLevelInfo
	// LogLevelWarn is for warning messages.
	LogLevelWarn
	// LogLevelError is for error messages.
	LogLevelError
)

var levelNames = [...]string{"DEBUG", "INFO", "WARN", "ERROR"}

// String returns the string representation of the log level.
func (l LogLevel) String() string {
	if l < 0 || int(l) >= len(levelNames) {
		return "UNKNOWN"
	}
	return levelNames[l]
}

// ParseLogLevel maps a logging.level setting to a LogLevel. Names that
// config.Validate rejects fall back to info.
func ParseLogLevel(s string) LogLevel {
	switch strings.ToLower(s) {
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

// sink is the output shared by a logger and every logger derived from it.
type sink struct {
	mu     sync.Mutex
	out    io.Writer
	prefix string
	level  atomic.Int32
	now    func() time.Time
}

type field struct {
	key   string
	value any
}

// Logger writes one line per message: timestamp, level, prefix, message,
// then key=value fields sorted by key.
//
// Loggers returned by WithField and WithComponent share their parent's
// output and level, so SetLevel on the root applies to all of them.
type Logger struct {
	sink   *sink
	fields []field
}

// LoggerConfig configures the logger.
type LoggerConfig struct {
	// Level is the minimum log level to output.
	Level LogLevel
	// Output is where logs are written. Defaults to os.Stderr.
	Output io.Writer
	// Prefix is prepended to all log messages.
	Prefix string
}

// DefaultLoggerConfig returns the default logger configuration.
func DefaultLoggerConfig() LoggerConfig {
	return LoggerConfig{
		Level:  LogLevelInfo,
		Output: os.Stderr,
		Prefix: "imepad",
	}
}

// NewLogger creates a new logger with the given configuration.
func NewLogger(cfg LoggerConfig) *Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	s := &sink{out: out, prefix: cfg.Prefix, now: time.Now}
	s.level.Store(int32(cfg.Level))
	return &Logger{sink: s}
}

// NullLogger discards all output. SetLevel has no effect on it.
var NullLogger = &Logger{}

// WithField returns a logger that adds key=value to every line. A field
// with the same key replaces the inherited one.
func (l *Logger) WithField(key string, value any) *Logger {
	i := sort.Search(len(l.fields), func(i int) bool { return l.fields[i].key >= key })

	fields := make([]field, 0, len(l.fields)+1)
	fields = append(fields, l.fields[:i]...)
	fields = append(fields, field{key: key, value: value})
	if i < len(l.fields) && l.fields[i].key == key {
		i++
	}
	fields = append(fields, l.fields[i:]...)

	return &Logger{sink: l.sink, fields: fields}
}

// WithComponent returns a new logger with the component field set.
func (l *Logger) WithComponent(component string) *Logger {
	return l.WithField("component", component)
}

// SetLevel sets the minimum log level.
func (l *Logger) SetLevel(level LogLevel) {
	if l.sink == nil {
		return
	}
	l.sink.level.Store(int32(level))
}

// Debug logs a debug message.
func (l *Logger) Debug(msg string, args ...any) {
	l.log(LogLevelDebug, msg, args)
}

// Info logs an info message.
func (l *Logger) Info(msg string, args ...any) {
	l.log(LogLevelInfo, msg, args)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string, args ...any) {
	l.log(LogLevelWarn, msg, args)
}

// Error logs an error message.
func (l *Logger) Error(msg string, args ...any) {
	l.log(LogLevelError, msg, args)
}

func (l *Logger) log(level LogLevel, msg string, args []any) {
	s := l.sink
	if s == nil || level < LogLevel(s.level.Load()) {
		return
	}
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}

	var sb strings.Builder
	sb.WriteString(s.now().Format("2006-01-02T15:04:05.000"))
	sb.WriteString(" [")
	sb.WriteString(level.String())
	sb.WriteString("] ")
	if s.prefix != "" {
		sb.WriteString(s.prefix)
		sb.WriteString(": ")
	}
	sb.WriteString(msg)
	for _, f := range l.fields {
		sb.WriteByte(' ')
		sb.WriteString(f.key)
		sb.WriteByte('=')
		sb.WriteString(formatValue(f.value))
	}
	sb.WriteByte('\n')

	s.mu.Lock()
	defer s.mu.Unlock()
	_, _ = io.WriteString(s.out, sb.String())
}

// formatValue quotes values that would break key=value parsing.
func formatValue(v any) string {
	str := fmt.Sprint(v)
	needsQuote := str == "" || strings.ContainsFunc(str, func(r rune) bool {
		return r <= ' ' || r == '"' || r == '=' || r == 0x7f
	})
	if needsQuote {
		return strconv.Quote(str)
	}
	return str
}

// logComponentError logs an error with component context.
func (app *Application) logComponentError(component string, err error) {
	if err != nil {
		app.logger.WithComponent(component).Error("error: %v", err)
	}
}
