package logger

import (
	"os"

	"go.uber.org/zap"
)

type Logger struct {
	sugar *zap.SugaredLogger
}

// New builds a zap production logger at the given level; unknown levels fall back to info.
func New(level string) *Logger {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		lvl = zap.NewAtomicLevelAt(zap.InfoLevel)
	}

	config := zap.NewProductionConfig()
	config.Level = lvl
	z, err := config.Build(zap.AddCaller(), zap.AddCallerSkip(1))
	if err != nil {
		return NewNop()
	}

	return &Logger{sugar: z.Sugar()}
}

// NewNop returns a logger that discards everything.
func NewNop() *Logger {
	return &Logger{sugar: zap.NewNop().Sugar()}
}

func (l *Logger) Debug(msg string, args ...interface{}) {
	l.writer().Debugf(msg, args...)
}

func (l *Logger) Info(msg string, args ...interface{}) {
	l.writer().Infof(msg, args...)
}

func (l *Logger) Warn(msg string, args ...interface{}) {
	l.writer().Warnf(msg, args...)
}

func (l *Logger) Error(msg string, args ...interface{}) {
	l.writer().Errorf(msg, args...)
}

func (l *Logger) Fatal(msg string, args ...interface{}) {
	l.writer().Errorf(msg, args...)
	l.Sync()
	os.Exit(1)
}

// With returns a child logger carrying the key/value pairs on every entry.
func (l *Logger) With(keysAndValues ...interface{}) *Logger {
	return &Logger{sugar: l.writer().With(keysAndValues...)}
}

func (l *Logger) Sync() {
	_ = l.writer().Sync()
}

func (l *Logger) writer() *zap.SugaredLogger {
	if l == nil || l.sugar == nil {
		return zap.NewNop().Sugar()
	}
	return l.sugar
}
