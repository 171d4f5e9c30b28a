package logger

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger per concern. Sebelum InitLoggers dipanggil semuanya no-op,
// jadi package lain tetap aman melakukan logging di dalam test.
var (
	ErrorLogger   = zap.NewNop()
	AuditLogger   = zap.NewNop()
	RequestLogger = zap.NewNop()
	SystemLogger  = zap.NewNop()
)

func newLogger(dir, name string, level zapcore.Level) (*zap.Logger, error) {
	ws := zapcore.Lock(os.Stdout)
	if dir != "" {
		file, err := os.OpenFile(filepath.Join(dir, name), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, err
		}
		ws = zapcore.AddSync(file)
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "timestamp"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		ws,
		level,
	)
	return zap.New(core).With(zap.String("logger", name)), nil
}

// InitLoggers membuat semua logger. dir kosong berarti tulis ke stdout,
// selain itu setiap logger punya file sendiri di dalam dir.
func InitLoggers(dir string) error {
	if dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create log directory: %w", err)
		}
	}

	loggers := []struct {
		target **zap.Logger
		file   string
		level  zapcore.Level
	}{
		{&ErrorLogger, "errors.log", zapcore.ErrorLevel},
		{&AuditLogger, "audit.log", zapcore.InfoLevel},
		{&RequestLogger, "request.log", zapcore.InfoLevel},
		{&SystemLogger, "system.log", zapcore.InfoLevel},
	}
	for _, l := range loggers {
		lg, err := newLogger(dir, l.file, l.level)
		if err != nil {
			return fmt.Errorf("cannot create %s logger: %w", l.file, err)
		}
		*l.target = lg
	}
	return nil
}

func SyncLoggers() {
	_ = ErrorLogger.Sync()
	_ = AuditLogger.Sync()
	_ = RequestLogger.Sync()
	_ = SystemLogger.Sync()
}
