package logger

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger provides leveled logging (info/warning/error) to files and stdout/stderr.
type Logger struct {
	sugar *zap.SugaredLogger
}

// Options configures where and what the logger writes.
type Options struct {
	Directory string
	Level     string
	Console   bool
}

// New creates a Logger and ensures the log directory exists.
func New(opts Options) (*Logger, error) {
	level, err := zapcore.ParseLevel(opts.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", opts.Level, err)
	}

	if err := os.MkdirAll(opts.Directory, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	encoder := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	cores := []zapcore.Core{
		zapcore.NewCore(encoder, fileSink(opts.Directory, "info.log"), exactly(zapcore.InfoLevel, level)),
		zapcore.NewCore(encoder, fileSink(opts.Directory, "warning.log"), exactly(zapcore.WarnLevel, level)),
		zapcore.NewCore(encoder, fileSink(opts.Directory, "error.log"), atLeast(zapcore.ErrorLevel, level)),
	}

	if opts.Console {
		console := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
		cores = append(cores,
			zapcore.NewCore(console, zapcore.Lock(os.Stdout), levelRange(level, zapcore.WarnLevel)),
			zapcore.NewCore(console, zapcore.Lock(os.Stderr), atLeast(zapcore.ErrorLevel, level)),
		)
	}

	core := zapcore.NewTee(cores...)
	return &Logger{sugar: zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1)).Sugar()}, nil
}

// NewNop returns a Logger that discards everything.
func NewNop() *Logger {
	return &Logger{sugar: zap.NewNop().Sugar()}
}

// FromZap wraps an existing zap logger.
func FromZap(l *zap.Logger) *Logger {
	return &Logger{sugar: l.WithOptions(zap.AddCallerSkip(1)).Sugar()}
}

func fileSink(dir, name string) zapcore.WriteSyncer {
	return zapcore.AddSync(&lumberjack.Logger{
		Filename:   filepath.Join(dir, name),
		MaxSize:    50,
		MaxBackups: 3,
		Compress:   true,
	})
}

func exactly(target, min zapcore.Level) zap.LevelEnablerFunc {
	return func(l zapcore.Level) bool { return l == target && l >= min }
}

func atLeast(target, min zapcore.Level) zap.LevelEnablerFunc {
	return func(l zapcore.Level) bool { return l >= target && l >= min }
}

func levelRange(min, max zapcore.Level) zap.LevelEnablerFunc {
	return func(l zapcore.Level) bool { return l >= min && l <= max }
}

// With returns a child logger carrying the given key/value pairs.
func (l *Logger) With(keysAndValues ...interface{}) *Logger {
	return &Logger{sugar: l.sugar.With(keysAndValues...)}
}

// Info writes a formatted info-level log entry.
func (l *Logger) Info(format string, v ...interface{}) {
	l.sugar.Infof(format, v...)
}

// Warning writes a formatted warning-level log entry.
func (l *Logger) Warning(format string, v ...interface{}) {
	l.sugar.Warnf(format, v...)
}

// Error writes a formatted error-level log entry.
func (l *Logger) Error(format string, v ...interface{}) {
	l.sugar.Errorf(format, v...)
}

// Sync flushes buffered entries.
func (l *Logger) Sync() error {
	return l.sugar.Sync()
}
