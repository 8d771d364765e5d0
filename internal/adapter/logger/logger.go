package logger

import (
	"go.uber.org/zap"
)

type Logger interface {
	Info(action, message string, details map[string]interface{})
	Debug(action, message string, details map[string]interface{})
	Error(action, message string, details map[string]interface{}, err error)
	Sync() error
}

type zapLogger struct {
	l *zap.Logger
}

// New builds a production JSON logger tagged with the service name.
func New(service string) Logger {
	zl, err := zap.NewProduction()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	return &zapLogger{l: zl.With(zap.String("service", service))}
}

// NewNop returns a logger that discards everything. For tests.
func NewNop() Logger {
	return &zapLogger{l: zap.NewNop()}
}

func (z *zapLogger) Info(action, message string, details map[string]interface{}) {
	z.l.Info(message, fields(action, details)...)
}

func (z *zapLogger) Debug(action, message string, details map[string]interface{}) {
	z.l.Debug(message, fields(action, details)...)
}

func (z *zapLogger) Error(action, message string, details map[string]interface{}, err error) {
	fs := fields(action, details)
	if err != nil {
		fs = append(fs, zap.Error(err))
	}
	z.l.Error(message, fs...)
}

func (z *zapLogger) Sync() error {
	return z.l.Sync()
}

func fields(action string, details map[string]interface{}) []zap.Field {
	fs := make([]zap.Field, 0, len(details)+1)
	fs = append(fs, zap.String("action", action))
	for k, v := range details {
		fs = append(fs, zap.Any(k, v))
	}
	return fs
}
