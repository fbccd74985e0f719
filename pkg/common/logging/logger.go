/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package logging provides module-scoped, leveled loggers for the SDK.
// A custom LoggerProvider may be installed with Initialize before the
// first log statement; otherwise a built-in zap-backed provider is used.
package logging

import (
	"sync"
)

// Level defines all available log levels for log messages.
type Level int

// Log levels.
const (
	CRITICAL Level = iota
	ERROR
	WARNING
	INFO
	DEBUG
)

// Leveled is the logging interface implemented by the underlying
// provider's loggers.
type Leveled interface {
	Fatalf(format string, args ...interface{})
	Panicf(format string, args ...interface{})
	Debug(args ...interface{})
	Debugf(format string, args ...interface{})
	Info(args ...interface{})
	Infof(format string, args ...interface{})
	Warn(args ...interface{})
	Warnf(format string, args ...interface{})
	Error(args ...interface{})
	Errorf(format string, args ...interface{})
}

// LoggerProvider returns loggers for named modules.
type LoggerProvider interface {
	GetLogger(module string) Leveled
}

// Logger is a module-scoped logger. The underlying instance is lazy
// initialized on first use so that Initialize may be called at any time
// before the first log output.
type Logger struct {
	instance Leveled // access only via Logger.logger()
	module   string
	once     sync.Once
}

var loggerProviderInstance LoggerProvider
var loggerProviderOnce sync.Once

// NewLogger creates and returns a Logger object based on the module name.
func NewLogger(module string) *Logger {
	return &Logger{module: module}
}

// Initialize sets a custom logger provider which takes over logging
// operations. It must be called before the first log output to have
// any effect.
func Initialize(l LoggerProvider) {
	loggerProviderOnce.Do(func() {
		loggerProviderInstance = l
	})
}

// SetLevel sets the log level for the given module on the default
// zap-backed provider. It has no effect on custom providers.
func SetLevel(module string, level Level) {
	setZapLevel(module, level)
}

// GetLevel returns the log level of the given module on the default
// zap-backed provider.
func GetLevel(module string) Level {
	return getZapLevel(module)
}

func loggerProvider() LoggerProvider {
	loggerProviderOnce.Do(func() {
		// No custom provider was installed prior to the first log
		// output, so the built-in provider takes over.
		loggerProviderInstance = newZapProvider()
	})
	return loggerProviderInstance
}

//Fatalf calls Fatalf function of underlying logger
func (l *Logger) Fatalf(format string, args ...interface{}) {
	l.logger().Fatalf(format, args...)
}

//Panicf calls Panicf function of underlying logger
func (l *Logger) Panicf(format string, args ...interface{}) {
	l.logger().Panicf(format, args...)
}

//Debug calls Debug function of underlying logger
func (l *Logger) Debug(args ...interface{}) {
	l.logger().Debug(args...)
}

//Debugf calls Debugf function of underlying logger
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.logger().Debugf(format, args...)
}

//Info calls Info function of underlying logger
func (l *Logger) Info(args ...interface{}) {
	l.logger().Info(args...)
}

//Infof calls Infof function of underlying logger
func (l *Logger) Infof(format string, args ...interface{}) {
	l.logger().Infof(format, args...)
}

//Warn calls Warn function of underlying logger
func (l *Logger) Warn(args ...interface{}) {
	l.logger().Warn(args...)
}

//Warnf calls Warnf function of underlying logger
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.logger().Warnf(format, args...)
}

//Error calls Error function of underlying logger
func (l *Logger) Error(args ...interface{}) {
	l.logger().Error(args...)
}

//Errorf calls Errorf function of underlying logger
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.logger().Errorf(format, args...)
}

func (l *Logger) logger() Leveled {
	l.once.Do(func() {
		l.instance = loggerProvider().GetLogger(l.module)
	})
	return l.instance
}
