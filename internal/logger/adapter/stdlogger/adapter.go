// Package stdlogger adapts the global zerolog logger to printf style logger
// interfaces, e.g. the writer of gorm's logger.
package stdlogger

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger forwards printf style calls to zerolog.
type Logger struct {
	component string
}

// New returns a Logger tagging every entry with component.
func New(component string) *Logger {
	return &Logger{component: component}
}

func (l *Logger) event(level zerolog.Level) *zerolog.Event {
	return log.WithLevel(level).Str("component", l.component)
}

// Printf implements gorm.io/gorm/logger.Writer.
// gorm prefixes its messages with the severity, which is mapped back to a level.
func (l *Logger) Printf(format string, args ...any) {
	msg := strings.TrimSpace(fmt.Sprintf(format, args...))

	level := zerolog.DebugLevel

	switch {
	case strings.Contains(msg, "[error]"):
		level = zerolog.ErrorLevel
	case strings.Contains(msg, "[warn]"), strings.Contains(msg, "SLOW SQL"):
		level = zerolog.WarnLevel
	case strings.Contains(msg, "[info]"):
		level = zerolog.InfoLevel
	}

	l.event(level).Msg(msg)
}

// Debugf logs at debug level.
func (l *Logger) Debugf(format string, args ...any) {
	l.event(zerolog.DebugLevel).Msgf(format, args...)
}

// Infof logs at info level.
func (l *Logger) Infof(format string, args ...any) {
	l.event(zerolog.InfoLevel).Msgf(format, args...)
}

// Warningf logs at warn level.
func (l *Logger) Warningf(format string, args ...any) {
	l.event(zerolog.WarnLevel).Msgf(format, args...)
}

// Errorf logs at error level.
func (l *Logger) Errorf(format string, args ...any) {
	l.event(zerolog.ErrorLevel).Msgf(format, args...)
}
