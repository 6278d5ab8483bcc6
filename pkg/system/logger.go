package system

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/shreebharatraj/contact-mailer/pkg/config"
)

// NewLogger builds the process logger: production JSON by default,
// development console output when debug is set. When logCfg.File is set,
// error level entries are additionally written to a size-rotated file.
// The returned closer flushes and closes the file sink.
func NewLogger(debug bool, logCfg config.Logging) (*zap.Logger, func() error, error) {
	cfg := zap.NewProductionConfig()
	if debug {
		cfg = zap.NewDevelopmentConfig()
	}
	// Disable automatic stacktraces for non-fatal levels to avoid noisy traces in WARN/INFO logs
	cfg.DisableStacktrace = true
	cfg.EncoderConfig.EncodeTime = func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString(t.UTC().Format(time.RFC3339))
	}
	cfg.EncoderConfig.TimeKey = "ts"

	logger, err := cfg.Build()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	if logCfg.File == "" {
		return logger, func() error { return nil }, nil
	}

	rotator := &lumberjack.Logger{
		Filename:   logCfg.File,
		MaxSize:    logCfg.MaxSizeMB,
		MaxBackups: logCfg.MaxBackups,
	}
	fileCore := newErrorFileCore(zapcore.AddSync(rotator))
	logger = logger.WithOptions(zap.WrapCore(func(core zapcore.Core) zapcore.Core {
		return zapcore.NewTee(core, fileCore)
	}))

	closer := func() error {
		_ = logger.Sync()
		return rotator.Close()
	}
	return logger, closer, nil
}

// newErrorFileCore always encodes JSON, whatever the console encoder is.
func newErrorFileCore(ws zapcore.WriteSyncer) zapcore.Core {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "ts"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	return zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), ws, zapcore.ErrorLevel)
}
