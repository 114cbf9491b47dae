// Package logger builds the structured loggers the binaries log through.
// Library packages never touch this; they take an optional *zap.Logger.
package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// New builds a logger writing colored console entries to stdout and, when
// logFile is non-empty, plain entries to a size-rotated file as well.
// Unknown level strings fall back to info.
func New(level, logFile string) *zap.Logger {
	lvl := parseLevel(level)

	cores := []zapcore.Core{
		zapcore.NewCore(newEncoder(true), zapcore.AddSync(os.Stdout), lvl),
	}

	if logFile != "" {
		file := &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    50, // MB
			MaxBackups: 3,
			MaxAge:     7, // days
			Compress:   true,
			LocalTime:  true, // Use local time in rotated filenames
		}
		cores = append(cores, zapcore.NewCore(newEncoder(false), zapcore.AddSync(file), lvl))
	}

	return zap.New(zapcore.NewTee(cores...), zap.AddCaller())
}

// newEncoder builds the console encoder; color and short timestamps for the
// terminal, plain levels and full timestamps for files.
func newEncoder(color bool) zapcore.Encoder {
	levelEnc := zapcore.CapitalLevelEncoder
	timeEnc := zapcore.ISO8601TimeEncoder
	if color {
		levelEnc = zapcore.CapitalColorLevelEncoder
		timeEnc = zapcore.TimeEncoderOfLayout("15:04:05")
	}
	return zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		TimeKey:          "time",
		LevelKey:         "level",
		MessageKey:       "msg",
		CallerKey:        "caller",
		EncodeTime:       timeEnc,
		EncodeLevel:      levelEnc,
		EncodeCaller:     zapcore.ShortCallerEncoder,
		ConsoleSeparator: " ",
	})
}

// parseLevel converts a string level to zapcore.Level.
func parseLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
