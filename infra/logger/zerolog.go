package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Options controls the output destination, format and verbosity of a
// ZerologLogger.
type Options struct {
	// Level is the minimum severity emitted: debug, info, warn or error.
	// Empty or unknown values fall back to info.
	Level string
	// Console switches to human-readable console output instead of JSON.
	Console bool
	// Out receives the log stream; nil means os.Stdout.
	Out io.Writer
}

// ZerologLogger implements Logger using rs/zerolog.
type ZerologLogger struct {
	log zerolog.Logger
}

// NewZerologLogger creates a ZerologLogger with default options, using the
// APP_ENV environment variable to pick the output format. Used where no
// configuration has been loaded yet.
func NewZerologLogger(component string) Logger {
	env := strings.ToLower(os.Getenv("APP_ENV"))
	return NewZerologLoggerWith(component, Options{Console: env == "dev"})
}

// NewZerologLoggerWith creates a ZerologLogger from explicit options. All
// logs include the provided component field.
func NewZerologLoggerWith(component string, opts Options) Logger {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	level := zerolog.InfoLevel
	if parsed, err := zerolog.ParseLevel(strings.ToLower(opts.Level)); err == nil && opts.Level != "" {
		level = parsed
	}
	if opts.Console {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}
	z := zerolog.New(out).Level(level).With().Timestamp().Str("component", component).Logger()
	return &ZerologLogger{log: z}
}

func (l *ZerologLogger) Debugf(format string, args ...any) {
	l.log.Debug().Msgf(format, args...)
}

func (l *ZerologLogger) Debugw(msg string, fields map[string]any) {
	ev := l.log.Debug()
	for k, v := range fields {
		ev = ev.Interface(k, v)
	}
	ev.Msg(msg)
}

func (l *ZerologLogger) Infof(format string, args ...any) {
	l.log.Info().Msgf(format, args...)
}

func (l *ZerologLogger) Warnf(format string, args ...any) {
	l.log.Warn().Msgf(format, args...)
}

func (l *ZerologLogger) Errorf(format string, args ...any) {
	l.log.Error().Msgf(format, args...)
}
