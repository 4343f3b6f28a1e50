// Package logging builds the zap loggers used by the RMS tools.
package logging

import (
	"os"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"rms/internal/config"
)

// defaultEncConfig stores default zapcore.EncoderConfig for logging package.
var defaultEncConfig = zapcore.EncoderConfig{
	TimeKey:        "ts",
	LevelKey:       "level",
	NameKey:        "logger",
	CallerKey:      "caller",
	MessageKey:     "msg",
	StacktraceKey:  "stacktrace",
	LineEnding:     zapcore.DefaultLineEnding,
	EncodeLevel:    zapcore.CapitalLevelEncoder,
	EncodeTime:     zapcore.ISO8601TimeEncoder,
	EncodeDuration: zapcore.StringDurationEncoder,
	EncodeCaller:   zapcore.ShortCallerEncoder,
}

// New returns a sugared logger writing to stderr as configured.
func New(c config.LoggingConfig) (*zap.SugaredLogger, error) {
	return NewWithSyncer(c, zapcore.Lock(os.Stderr))
}

// NewWithSyncer is like New but writes to the given syncer.
func NewWithSyncer(c config.LoggingConfig, syncer zapcore.WriteSyncer) (*zap.SugaredLogger, error) {
	var lvl zapcore.Level
	if err := lvl.Set(c.Level); err != nil {
		return nil, errors.Wrapf(err, "invalid logging level %q", c.Level)
	}

	var encoder zapcore.Encoder
	switch c.Output {
	case config.OutputConsole:
		encoder = zapcore.NewConsoleEncoder(defaultEncConfig)
	case config.OutputJSON:
		encoder = zapcore.NewJSONEncoder(defaultEncConfig)
	default:
		return nil, errors.Errorf("%s is not a valid logger output", c.Output)
	}

	core := zapcore.NewCore(encoder, syncer, zap.NewAtomicLevelAt(lvl))

	return zap.New(core, zap.AddCaller()).Sugar(), nil
}
