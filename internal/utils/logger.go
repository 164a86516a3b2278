package utils

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

var (
	DebugMode      bool
	CurrentLevel   LogLevel = LevelInfo
	ShowRaylibInfo bool
	ShowDebugUI    bool
)

func (l LogLevel) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	}
	return "UNKNOWN"
}

func (l LogLevel) zerologLevel() zerolog.Level {
	switch l {
	case LevelDebug:
		return zerolog.DebugLevel
	case LevelInfo:
		return zerolog.InfoLevel
	case LevelWarn:
		return zerolog.WarnLevel
	case LevelError:
		return zerolog.ErrorLevel
	}
	return zerolog.NoLevel
}

// InitLogger replaces the global zerolog logger with a console writer on w
// (stderr when nil). Colours are disabled when noColor is set.
func InitLogger(w io.Writer, level LogLevel, noColor bool) {
	if w == nil {
		w = os.Stderr
	}
	CurrentLevel = level
	DebugMode = level <= LevelDebug

	console := zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly, NoColor: noColor}
	log.Logger = zerolog.New(console).With().Timestamp().Logger().Level(level.zerologLevel())
}

// Module returns a sub-logger tagged with module=name. Call it after
// InitLogger so the sub-logger picks up the configured writer.
func Module(name string) zerolog.Logger {
	return log.With().Str("module", name).Logger()
}

func logMessage(level LogLevel, format string, v ...interface{}) {
	if level < CurrentLevel {
		return
	}
	log.WithLevel(level.zerologLevel()).Msgf(format, v...)
}

func Info(format string, v ...interface{})  { logMessage(LevelInfo, format, v...) }
func Debug(format string, v ...interface{}) { logMessage(LevelDebug, format, v...) }
func Warn(format string, v ...interface{})  { logMessage(LevelWarn, format, v...) }
func Error(format string, v ...interface{}) { logMessage(LevelError, format, v...) }

func RaylibLogCallback(level int, text string) {
	raylog := log.With().Str("module", "raylib").Logger()
	switch level {
	case 1, 2: // LOG_TRACE, LOG_DEBUG
		if CurrentLevel <= LevelDebug {
			raylog.Debug().Msg(text)
		}
	case 3: // LOG_INFO
		if ShowRaylibInfo || CurrentLevel <= LevelDebug {
			raylog.Info().Msg(text)
		}
	case 4: // LOG_WARNING
		raylog.Warn().Msg(text)
	case 5, 6: // LOG_ERROR, LOG_FATAL
		raylog.Error().Msg(text)
	}
}
