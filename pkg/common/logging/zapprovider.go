/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package logging

import (
	"os"
	"sync"

	zaplogfmt "github.com/sykesm/zap-logfmt"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// zapProvider is the built-in LoggerProvider. It emits logfmt-encoded
// records to stderr with an independently adjustable level per module.
type zapProvider struct {
	lock   sync.Mutex
	levels map[string]zap.AtomicLevel
}

var defaultZapProvider = &zapProvider{
	levels: make(map[string]zap.AtomicLevel),
}

func newZapProvider() LoggerProvider {
	return defaultZapProvider
}

func (p *zapProvider) GetLogger(module string) Leveled {
	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "name",
		MessageKey:     "msg",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
	}

	core := zapcore.NewCore(
		zaplogfmt.NewEncoder(encoderConfig),
		zapcore.Lock(os.Stderr),
		p.level(module),
	)

	return zap.New(core).Named(module).Sugar()
}

func (p *zapProvider) level(module string) zap.AtomicLevel {
	p.lock.Lock()
	defer p.lock.Unlock()

	level, ok := p.levels[module]
	if !ok {
		level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
		p.levels[module] = level
	}
	return level
}

func setZapLevel(module string, level Level) {
	defaultZapProvider.level(module).SetLevel(toZapLevel(level))
}

func getZapLevel(module string) Level {
	return fromZapLevel(defaultZapProvider.level(module).Level())
}

func toZapLevel(level Level) zapcore.Level {
	switch level {
	case CRITICAL:
		return zapcore.DPanicLevel
	case ERROR:
		return zapcore.ErrorLevel
	case WARNING:
		return zapcore.WarnLevel
	case INFO:
		return zapcore.InfoLevel
	case DEBUG:
		return zapcore.DebugLevel
	default:
		return zapcore.InfoLevel
	}
}

func fromZapLevel(level zapcore.Level) Level {
	switch level {
	case zapcore.DPanicLevel, zapcore.PanicLevel, zapcore.FatalLevel:
		return CRITICAL
	case zapcore.ErrorLevel:
		return ERROR
	case zapcore.WarnLevel:
		return WARNING
	case zapcore.InfoLevel:
		return INFO
	case zapcore.DebugLevel:
		return DEBUG
	default:
		return INFO
	}
}
