// Package logging builds the application's zap loggers.
package logging

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/abhisek/siaga/internal/config"
)

// Sink selects where log output goes.
type Sink int

const (
	// SinkStderr writes human-readable lines to stderr.
	SinkStderr Sink = iota

	// SinkFile writes JSON lines to a rotating file. Used while the TUI owns
	// the terminal.
	SinkFile
)

// New builds a logger for cfg. The returned close function flushes and
// releases the sink.
func New(cfg config.LogConfig, sink Sink) (*zap.Logger, func() error, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("log level: %w", err)
	}

	switch sink {
	case SinkFile:
		path := cfg.File
		if path == "" {
			if path, err = config.DefaultLogPath(); err != nil {
				return nil, nil, err
			}
		}
		if err := config.EnsureDir(path); err != nil {
			return nil, nil, fmt.Errorf("create log dir: %w", err)
		}
		w := &lumberjack.Logger{
			Filename:   path,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   true,
		}
		logger := build(zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()), w, level)
		return logger, closer(logger, w), nil

	default:
		enc := zap.NewDevelopmentEncoderConfig()
		enc.EncodeLevel = zapcore.CapitalColorLevelEncoder
		logger := build(zapcore.NewConsoleEncoder(enc), os.Stderr, level)
		return logger, closer(logger, nil), nil
	}
}

// NewWriter builds a JSON logger over w. Tests use it to capture output.
func NewWriter(w io.Writer, level zapcore.Level) *zap.Logger {
	return build(zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()), w, level)
}

func build(enc zapcore.Encoder, w io.Writer, level zapcore.Level) *zap.Logger {
	core := zapcore.NewCore(enc, zapcore.AddSync(w), level)
	return zap.New(core, zap.AddCaller()).Named("siaga")
}

func closer(logger *zap.Logger, c io.Closer) func() error {
	return func() error {
		// Sync on stderr fails with EINVAL on some terminals; ignore it.
		_ = logger.Sync()
		if c != nil {
			return c.Close()
		}
		return nil
	}
}
