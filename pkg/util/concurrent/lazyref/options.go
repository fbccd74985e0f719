/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package lazyref

import "time"

// Opt is a reference option.
type Opt func(ref *Reference)

// WithRefreshInterval specifies that the reference should be proactively
// refreshed. initialInit is the time to wait before the first refresh
// (use InitOnFirstAccess to defer initialization until Get is called);
// refreshPeriod is the interval between subsequent refreshes.
func WithRefreshInterval(initialInit, refreshPeriod time.Duration) Opt {
	return func(ref *Reference) {
		ref.initialInit = initialInit
		ref.refreshInterval = refreshPeriod
	}
}

// WithFinalizer provides a function that is called with the current value
// when the reference is closed.
func WithFinalizer(finalizer Finalizer) Opt {
	return func(ref *Reference) {
		ref.finalizer = finalizer
	}
}
