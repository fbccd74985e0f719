/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package config

import (
	"time"

	"github.com/spf13/cast"
)

// Lookup provides typed access over a Backend.
type Lookup struct {
	backend Backend
}

// NewLookup returns a typed lookup over the given backend.
func NewLookup(backend Backend) *Lookup {
	return &Lookup{backend: backend}
}

// GetString returns the value of the key as a string, or "" when unset.
func (l *Lookup) GetString(key string) string {
	value, ok := l.backend.Lookup(key)
	if !ok {
		return ""
	}
	return cast.ToString(value)
}

// GetBool returns the value of the key as a bool, or false when unset.
func (l *Lookup) GetBool(key string) bool {
	value, ok := l.backend.Lookup(key)
	if !ok {
		return false
	}
	return cast.ToBool(value)
}

// GetInt returns the value of the key as an int, or 0 when unset.
func (l *Lookup) GetInt(key string) int {
	value, ok := l.backend.Lookup(key)
	if !ok {
		return 0
	}
	return cast.ToInt(value)
}

// GetDuration returns the value of the key as a duration, or 0 when unset.
// Plain numbers are interpreted as nanoseconds, strings are parsed
// ("5s", "1m30s").
func (l *Lookup) GetDuration(key string) time.Duration {
	value, ok := l.backend.Lookup(key)
	if !ok {
		return 0
	}
	return cast.ToDuration(value)
}
