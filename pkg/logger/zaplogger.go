package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type ZapLogger struct {
	log *zap.SugaredLogger
}

var zapLogger *ZapLogger

// NewLogger builds the process-wide logger. Production logs structured
// JSON; anything else gets the colored console output used during
// development. The ledger runs single-binary, so one global is enough.
func NewLogger(env string) (*ZapLogger, error) {
	var config zap.Config
	if env == "production" {
		config = zap.NewProductionConfig()
		config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	logger, err := config.Build(zap.AddCallerSkip(2))
	if err != nil {
		return nil, err
	}

	zapLogger = &ZapLogger{log: logger.Named("credit-ledger").Sugar()}
	return zapLogger, nil
}

func GetLogger() *ZapLogger {
	if zapLogger == nil {
		panic("logger not initialized")
	}
	return zapLogger
}

func (l *ZapLogger) Info(msg string, values ...any) {
	l.log.Infow(msg, values...)
}

func (l *ZapLogger) Warn(msg string, values ...any) {
	l.log.Warnw(msg, values...)
}

func (l *ZapLogger) Error(msg string, values ...any) {
	l.log.Errorw(msg, values...)
}

func (l *ZapLogger) Debug(msg string, values ...any) {
	l.log.Debugw(msg, values...)
}

func (l *ZapLogger) Panic(msg string, values ...any) {
	l.log.Panicw(msg, values...)
}

func (l *ZapLogger) Fatal(err error, values ...any) {
	l.log.Fatalw(err.Error(), values...)
}

func (l *ZapLogger) Printf(format string, args ...any) {
	l.log.Infof(format, args...)
}
