/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package logging

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturingLogger struct {
	entries []string
}

func (l *capturingLogger) log(format string, args ...interface{}) {
	l.entries = append(l.entries, fmt.Sprintf(format, args...))
}

func (l *capturingLogger) Fatalf(format string, args ...interface{}) { l.log(format, args...) }
func (l *capturingLogger) Panicf(format string, args ...interface{}) { l.log(format, args...) }
func (l *capturingLogger) Debug(args ...interface{})                 { l.log("%s", fmt.Sprint(args...)) }
func (l *capturingLogger) Debugf(format string, args ...interface{}) { l.log(format, args...) }
func (l *capturingLogger) Info(args ...interface{})                  { l.log("%s", fmt.Sprint(args...)) }
func (l *capturingLogger) Infof(format string, args ...interface{})  { l.log(format, args...) }
func (l *capturingLogger) Warn(args ...interface{})                  { l.log("%s", fmt.Sprint(args...)) }
func (l *capturingLogger) Warnf(format string, args ...interface{})  { l.log(format, args...) }
func (l *capturingLogger) Error(args ...interface{})                 { l.log("%s", fmt.Sprint(args...)) }
func (l *capturingLogger) Errorf(format string, args ...interface{}) { l.log(format, args...) }

type capturingProvider struct {
	loggers map[string]*capturingLogger
}

func (p *capturingProvider) GetLogger(module string) Leveled {
	l, ok := p.loggers[module]
	if !ok {
		l = &capturingLogger{}
		p.loggers[module] = l
	}
	return l
}

func TestCustomLoggerProvider(t *testing.T) {
	provider := &capturingProvider{loggers: make(map[string]*capturingLogger)}
	Initialize(provider)

	logger := NewLogger("testmodule")
	logger.Debugf("debug %d", 1)
	logger.Infof("info %d", 2)
	logger.Warnf("warn %d", 3)
	logger.Errorf("error %d", 4)

	captured := provider.loggers["testmodule"]
	require.NotNil(t, captured)
	assert.Equal(t, []string{"debug 1", "info 2", "warn 3", "error 4"}, captured.entries)
}

func TestSetGetLevel(t *testing.T) {
	module := "levelmodule"
	assert.Equal(t, INFO, GetLevel(module))

	SetLevel(module, DEBUG)
	assert.Equal(t, DEBUG, GetLevel(module))

	SetLevel(module, WARNING)
	assert.Equal(t, WARNING, GetLevel(module))
}
