/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package lazyref provides a reference whose value is initialized on first
// access and, optionally, refreshed periodically out of band. Callers of
// Get never wait for a background refresh: the old value is served until
// the new one has finished initializing.
package lazyref

import (
	"sync"
	"time"

	"github.com/tongyuhu/fabric-sdk-node/pkg/common/logging"
)

var logger = logging.NewLogger("fabsdk/util")

// InitOnFirstAccess specifies that the initializer runs on the first call
// to Get rather than when the periodic refresh starts.
const InitOnFirstAccess time.Duration = -1

// Initializer is a function that initializes the value
type Initializer func() (interface{}, error)

// Finalizer is a function that is called when the reference is closed
type Finalizer func(value interface{})

// Reference holds a lazily initialized value.
type Reference struct {
	lock        sync.RWMutex
	value       interface{}
	initialized bool
	initializer Initializer
	finalizer   Finalizer

	initialInit     time.Duration
	refreshInterval time.Duration

	closed    chan struct{}
	closeOnce sync.Once
}

// New creates a new reference
func New(initializer Initializer, opts ...Opt) *Reference {
	ref := &Reference{
		initializer: initializer,
		initialInit: InitOnFirstAccess,
		closed:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(ref)
	}

	if ref.refreshInterval > 0 {
		go ref.refreshLoop()
	}
	return ref
}

// Get returns the value, or an error if the initializer returned an error.
func (r *Reference) Get() (interface{}, error) {
	r.lock.RLock()
	if r.initialized {
		value := r.value
		r.lock.RUnlock()
		return value, nil
	}
	r.lock.RUnlock()

	r.lock.Lock()
	defer r.lock.Unlock()

	// May have been initialized while waiting for the write lock.
	if r.initialized {
		return r.value, nil
	}

	value, err := r.initializer()
	if err != nil {
		return nil, err
	}
	r.value = value
	r.initialized = true
	return value, nil
}

// Close stops the background refresh and invokes the finalizer (if any)
// with the current value. It may be called multiple times.
func (r *Reference) Close() {
	r.closeOnce.Do(func() {
		close(r.closed)

		r.lock.Lock()
		defer r.lock.Unlock()
		if r.finalizer != nil {
			r.finalizer(r.value)
		}
	})
}

func (r *Reference) refreshLoop() {
	initial := r.initialInit
	if initial >= 0 {
		select {
		case <-time.After(initial):
			r.refresh()
		case <-r.closed:
			return
		}
	}

	ticker := time.NewTicker(r.refreshInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			r.refresh()
		case <-r.closed:
			return
		}
	}
}

// refresh calls the initializer out of band and swaps in the new value on
// success. On error the previous value is retained for the next interval.
func (r *Reference) refresh() {
	value, err := r.initializer()
	if err != nil {
		logger.Warnf("initializer returned error: %s. Will retry on next interval", err)
		return
	}

	r.lock.Lock()
	defer r.lock.Unlock()
	r.value = value
	r.initialized = true
}
