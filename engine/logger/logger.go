package logger

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	log "github.com/sirupsen/logrus"
)

// Level filters messages process-wide. Higher levels are more verbose.
type Level int

const (
	LevelNone Level = iota
	LevelError
	LevelWarn
	LevelInfo
	LevelDbg
)

func (l Level) String() string {
	switch l {
	case LevelNone:
		return "none"
	case LevelError:
		return "error"
	case LevelWarn:
		return "warn"
	case LevelInfo:
		return "info"
	case LevelDbg:
		return "dbg"
	default:
		return "unknown"
	}
}

// ParseLevel accepts the names printed by Level.String.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none", "off":
		return LevelNone, nil
	case "error":
		return LevelError, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "info":
		return LevelInfo, nil
	case "dbg", "debug":
		return LevelDbg, nil
	}
	return LevelNone, fmt.Errorf("logger: unknown level %q", s)
}

// Fields carries structured key/value pairs along with a message.
type Fields = log.Fields

// Logger receives every message that passes the level filter.
type Logger interface {
	Log(level Level, msg string, fields Fields)
}

var (
	mu      sync.RWMutex
	level   = LevelDbg
	loggers []Logger

	// console is the fallback sink used while no logger is registered.
	console = newConsole()
)

func newConsole() *log.Logger {
	l := log.New()
	l.Out = os.Stderr
	l.Formatter = &log.TextFormatter{DisableTimestamp: true}
	l.Level = log.TraceLevel
	return l
}

// SetLevel sets the process-wide level filter.
func SetLevel(l Level) {
	mu.Lock()
	level = l
	mu.Unlock()
}

// GetLevel returns the process-wide level filter.
func GetLevel() Level {
	mu.RLock()
	defer mu.RUnlock()
	return level
}

// AddLogger registers l. Once at least one logger is registered the console
// fallback goes quiet.
func AddLogger(l Logger) {
	if l == nil {
		return
	}
	mu.Lock()
	loggers = append(loggers, l)
	mu.Unlock()
}

// ClearLoggers removes every registered logger.
func ClearLoggers() {
	mu.Lock()
	loggers = nil
	mu.Unlock()
}

// NumLoggers returns the number of registered loggers.
func NumLoggers() int {
	mu.RLock()
	defer mu.RUnlock()
	return len(loggers)
}

func Dbg(format string, args ...any)   { emit(LevelDbg, nil, format, args) }
func Info(format string, args ...any)  { emit(LevelInfo, nil, format, args) }
func Warn(format string, args ...any)  { emit(LevelWarn, nil, format, args) }
func Error(format string, args ...any) { emit(LevelError, nil, format, args) }

// Entry is a set of fields waiting for a message.
type Entry struct {
	fields Fields
}

// With starts a structured message.
func With(fields Fields) Entry { return Entry{fields: fields} }

func (e Entry) Dbg(format string, args ...any)   { emit(LevelDbg, e.fields, format, args) }
func (e Entry) Info(format string, args ...any)  { emit(LevelInfo, e.fields, format, args) }
func (e Entry) Warn(format string, args ...any)  { emit(LevelWarn, e.fields, format, args) }
func (e Entry) Error(format string, args ...any) { emit(LevelError, e.fields, format, args) }

func emit(l Level, fields Fields, format string, args []any) {
	mu.RLock()
	if l > level || l == LevelNone {
		mu.RUnlock()
		return
	}
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	msg = strings.TrimRight(msg, "\n")
	if len(loggers) == 0 {
		mu.RUnlock()
		writeLogrus(console, l, msg, fields)
		return
	}
	// copy so a logger may call AddLogger without deadlocking
	ls := make([]Logger, len(loggers))
	copy(ls, loggers)
	mu.RUnlock()
	for _, lg := range ls {
		lg.Log(l, msg, fields)
	}
}

func writeLogrus(l *log.Logger, lvl Level, msg string, fields Fields) {
	var e *log.Entry
	if len(fields) > 0 {
		e = l.WithFields(fields)
	} else {
		e = log.NewEntry(l)
	}
	e.Log(toLogrus(lvl), msg)
}

func toLogrus(l Level) log.Level {
	switch l {
	case LevelError:
		return log.ErrorLevel
	case LevelWarn:
		return log.WarnLevel
	case LevelInfo:
		return log.InfoLevel
	default:
		return log.DebugLevel
	}
}

// LogrusLogger forwards messages into an existing logrus instance, e.g. one
// configured with a JSON formatter or extra hooks.
type LogrusLogger struct {
	L *log.Logger
}

func NewLogrusLogger(l *log.Logger) *LogrusLogger { return &LogrusLogger{L: l} }

func (g *LogrusLogger) Log(level Level, msg string, fields Fields) {
	writeLogrus(g.L, level, msg, fields)
}

// FormatFields renders fields as sorted "k=v" pairs, for loggers that
// write plain text.
func FormatFields(fields Fields) string {
	if len(fields) == 0 {
		return ""
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%s=%v", k, fields[k])
	}
	return b.String()
}
