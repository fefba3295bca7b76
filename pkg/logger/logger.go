package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var globalLogger = &Logger{SugaredLogger: zap.NewNop().Sugar()}

// Logger wraps zap.SugaredLogger.
type Logger struct {
	*zap.SugaredLogger
}

// Init initializes the global logger. env "production" selects the JSON
// encoder; anything else gets the colored development console.
func Init(level string, env string) error {
	var config zap.Config

	if env == "production" {
		config = zap.NewProductionConfig()
	} else {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		zapLevel = zapcore.InfoLevel
	}
	config.Level = zap.NewAtomicLevelAt(zapLevel)

	logger, err := config.Build(
		zap.AddCallerSkip(1),
		zap.AddStacktrace(zapcore.ErrorLevel),
	)
	if err != nil {
		return err
	}

	globalLogger = &Logger{SugaredLogger: logger.Sugar()}
	return nil
}

// Get returns the global logger. It is a no-op logger until Init is called.
func Get() *Logger {
	return globalLogger
}

// With creates a child logger with additional fields.
func (l *Logger) With(args ...interface{}) *Logger {
	return &Logger{SugaredLogger: l.SugaredLogger.With(args...)}
}

// Convenience functions that use the global logger
func Debugw(msg string, kv ...interface{})       { Get().Debugw(msg, kv...) }
func Info(args ...interface{})                   { Get().Info(args...) }
func Infof(template string, args ...interface{}) { Get().Infof(template, args...) }
func Infow(msg string, kv ...interface{})        { Get().Infow(msg, kv...) }
func Warnw(msg string, kv ...interface{})        { Get().Warnw(msg, kv...) }
func Errorw(msg string, kv ...interface{})       { Get().Errorw(msg, kv...) }
func Fatalf(template string, args ...interface{}) {
	Get().Fatalf(template, args...)
}

// Sync flushes any buffered log entries.
func Sync() error {
	return globalLogger.Sync()
}
