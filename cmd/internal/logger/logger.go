package logger

import (
	"io"
	"os"
	"strings"

	"github.com/gookit/slog"
	"github.com/gookit/slog/handler"
)

// Options configure the process logger.
type Options struct {
	// Level is one of debug, info, warn, error. Empty or unknown means info.
	Level string
	// Service is written as service_name on every structured line.
	Service string
	// Output defaults to stdout.
	Output io.Writer
}

// Fields are top-level keys of a structured log line.
type Fields map[string]any

const redacted = "[redacted]"

// Keys whose values never reach a log line, whatever the caller passes.
var secretKeys = map[string]bool{
	"password":      true,
	"token":         true,
	"access_token":  true,
	"backend_token": true,
	"cookie":        true,
	"secret":        true,
}

var (
	// Log is the process-wide logger. It works at info level before Init runs.
	Log     = New(Options{})
	service string
)

// Init replaces the process logger. Call it once at startup, before serving.
func Init(opts Options) {
	Log = New(opts)
	service = opts.Service
}

// New builds a gookit/slog logger emitting one JSON object per line.
func New(opts Options) *slog.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	h := handler.NewIOWriterHandler(out, levelsUpTo(opts.Level))
	h.SetFormatter(slog.NewJSONFormatter(func(f *slog.JSONFormatter) {
		f.Fields = []string{
			slog.FieldKeyDatetime,
			slog.FieldKeyLevel,
			slog.FieldKeyMessage,
		}
		f.Aliases = slog.StringMap{
			slog.FieldKeyDatetime: "datetime",
			slog.FieldKeyLevel:    "level",
			slog.FieldKeyMessage:  "message",
		}
		f.TimeFormat = "2006-01-02T15:04:05"
	}))
	return slog.NewWithHandlers(h)
}

// levelsUpTo lists the levels at least as severe as name.
func levelsUpTo(name string) slog.Levels {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = "info"
	}
	limit := slog.LevelByName(name)

	var levels slog.Levels
	for _, lv := range slog.AllLevels {
		if lv <= limit {
			levels = append(levels, lv)
		}
	}
	return levels
}

// scrub copies fields for one line: secrets masked, service name added.
func scrub(fields Fields) slog.M {
	out := make(slog.M, len(fields)+1)
	for k, v := range fields {
		if secretKeys[strings.ToLower(k)] {
			v = redacted
		}
		out[k] = v
	}
	if _, ok := out["service_name"]; !ok && service != "" {
		out["service_name"] = service
	}
	return out
}

func logWithFields(level slog.Level, msg string, fields Fields) {
	Log.WithFields(scrub(fields)).Log(level, msg)
}

// InfoWithFields logs msg with request_id, span_id and other structured fields.
func InfoWithFields(msg string, fields Fields) { logWithFields(slog.InfoLevel, msg, fields) }

func DebugWithFields(msg string, fields Fields) { logWithFields(slog.DebugLevel, msg, fields) }

func WarnWithFields(msg string, fields Fields) { logWithFields(slog.WarnLevel, msg, fields) }

func ErrorWithFields(msg string, fields Fields) { logWithFields(slog.ErrorLevel, msg, fields) }
