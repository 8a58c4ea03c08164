//go:build !tinygo

package hal

import "go.uber.org/zap"

// zapLogger adapts a *zap.SugaredLogger to the Logger capability
// interface so the kernel can trace mode entry/exit and preemption
// through structured logging on hosted builds.
type zapLogger struct {
	sugar *zap.SugaredLogger
}

// NewZapLogger builds a production zap logger (console-encoded, info
// level) wrapped as a Logger. The returned sync func flushes buffered
// log entries and should be deferred by the caller.
func NewZapLogger() (Logger, func() error, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig.TimeKey = "ts"

	logger, err := cfg.Build()
	if err != nil {
		return nil, func() error { return nil }, err
	}
	return &zapLogger{sugar: logger.Sugar()}, logger.Sync, nil
}

func (l *zapLogger) WriteLineString(s string) {
	l.sugar.Info(s)
}

func (l *zapLogger) WriteLineBytes(b []byte) {
	l.sugar.Info(string(b))
}
