package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"strings"
)

// Logger es la interfaz de logging que reciben los componentes
type Logger interface {
	Info(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Debug(msg string, fields map[string]interface{})
}

// Level define el nivel mínimo que se escribe
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// ParseLevel convierte un string ("debug", "info", ...) a Level; por defecto info
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// StdLogger escribe con el paquete log estándar en formato key=value
type StdLogger struct {
	out   *log.Logger
	level Level
}

// New crea un StdLogger que escribe en stderr
func New(level Level) *StdLogger {
	return NewWithWriter(os.Stderr, level)
}

// NewWithWriter crea un StdLogger sobre cualquier writer
func NewWithWriter(w io.Writer, level Level) *StdLogger {
	return &StdLogger{
		out:   log.New(w, "", log.LstdFlags),
		level: level,
	}
}

func (l *StdLogger) Debug(msg string, fields map[string]interface{}) {
	l.write(LevelDebug, "DEBUG", msg, fields)
}

func (l *StdLogger) Info(msg string, fields map[string]interface{}) {
	l.write(LevelInfo, "INFO", msg, fields)
}

func (l *StdLogger) Warn(msg string, fields map[string]interface{}) {
	l.write(LevelWarn, "WARN", msg, fields)
}

func (l *StdLogger) Error(msg string, fields map[string]interface{}) {
	l.write(LevelError, "ERROR", msg, fields)
}

func (l *StdLogger) write(level Level, tag, msg string, fields map[string]interface{}) {
	if level < l.level {
		return
	}

	var b strings.Builder
	b.WriteString(tag)
	b.WriteString(" ")
	b.WriteString(msg)

	// Orden estable para que las líneas sean comparables
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, fields[k])
	}

	l.out.Println(b.String())
}

// NoOpLogger descarta todo
type NoOpLogger struct{}

func (NoOpLogger) Info(msg string, fields map[string]interface{})  {}
func (NoOpLogger) Error(msg string, fields map[string]interface{}) {}
func (NoOpLogger) Warn(msg string, fields map[string]interface{})  {}
func (NoOpLogger) Debug(msg string, fields map[string]interface{}) {}

// OrNoOp devuelve l, o un NoOpLogger si l es nil
func OrNoOp(l Logger) Logger {
	if l == nil {
		return NoOpLogger{}
	}
	return l
}
