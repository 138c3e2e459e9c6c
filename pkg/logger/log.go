package logger

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const logFile = "./logs/app.log"

// NewLogger пишет в stdout и в файл ./logs/app.log.
// Уровень берётся из LOG_LEVEL (debug по умолчанию).
func NewLogger() *zap.Logger {
	level := zap.NewAtomicLevelAt(zap.DebugLevel)
	if raw := os.Getenv("LOG_LEVEL"); raw != "" {
		if parsed, err := zapcore.ParseLevel(raw); err == nil {
			level.SetLevel(parsed)
		}
	}

	outputs := []string{"stdout"}
	if err := os.MkdirAll(filepath.Dir(logFile), 0o755); err == nil {
		outputs = append(outputs, logFile)
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	dualConfig := zap.Config{
		Encoding:         "console",
		Level:            level,
		OutputPaths:      outputs,
		ErrorOutputPaths: []string{"stderr"},
		EncoderConfig:    encoderConfig,
	}

	dualLogger, err := dualConfig.Build()
	if err != nil {
		panic(err)
	}

	return dualLogger
}
