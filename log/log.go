// Package log builds the zap loggers used by the command line tools.
// Library packages never build loggers, they accept *zap.Logger via options.
package log

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// where logs go by default.
var logWriter io.Writer = os.Stderr

const (
	ConsoleEncoding = "console"
	JSONEncoding    = "json"
)

// Config of the process logger.
type Config struct {
	Level    string `mapstructure:"level"`
	Encoding string `mapstructure:"encoding"`
}

func DefaultConfig() Config {
	return Config{
		Level:    zapcore.InfoLevel.String(),
		Encoding: ConsoleEncoding,
	}
}

// Encoder returns a zap encoder by name.
func Encoder(encoding string) (zapcore.Encoder, error) {
	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	switch encoding {
	case ConsoleEncoding, "":
		return zapcore.NewConsoleEncoder(cfg), nil
	case JSONEncoding:
		return zapcore.NewJSONEncoder(cfg), nil
	}
	return nil, fmt.Errorf("unknown log encoding %q", encoding)
}

// New creates the process logger from config.
func New(cfg Config) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.Set(cfg.Level); err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}
	encoder, err := Encoder(cfg.Encoding)
	if err != nil {
		return nil, err
	}
	return NewWithLevel(zap.NewAtomicLevelAt(level), encoder), nil
}

// NewWithLevel creates a logger writing to the default writer with a fixed
// level and a set of optional hooks.
func NewWithLevel(
	level zap.AtomicLevel,
	encoder zapcore.Encoder,
	hooks ...func(zapcore.Entry) error,
) *zap.Logger {
	core := zapcore.NewCore(encoder, zapcore.AddSync(logWriter), level)
	return zap.New(zapcore.RegisterHooks(core, hooks...))
}

type ShortStringer interface {
	ShortString() string
}

// ZShortStringer is a zap field for values that have a short form,
// such as digests.
func ZShortStringer(name string, val ShortStringer) zap.Field {
	return zap.String(name, val.ShortString())
}
