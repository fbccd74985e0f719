/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package lazyref

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetInitializesOnce(t *testing.T) {
	var calls int32
	ref := New(func() (interface{}, error) {
		atomic.AddInt32(&calls, 1)
		return "value", nil
	})
	defer ref.Close()

	for i := 0; i < 3; i++ {
		value, err := ref.Get()
		require.NoError(t, err)
		assert.Equal(t, "value", value)
	}
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
}

func TestGetError(t *testing.T) {
	initErr := errors.New("init failed")
	failing := int32(1)
	ref := New(func() (interface{}, error) {
		if atomic.LoadInt32(&failing) == 1 {
			return nil, initErr
		}
		return "recovered", nil
	})
	defer ref.Close()

	_, err := ref.Get()
	require.EqualError(t, err, "init failed")

	// an error does not poison the reference
	atomic.StoreInt32(&failing, 0)
	value, err := ref.Get()
	require.NoError(t, err)
	assert.Equal(t, "recovered", value)
}

func TestRefresh(t *testing.T) {
	var counter int32
	ref := New(
		func() (interface{}, error) {
			return atomic.AddInt32(&counter, 1), nil
		},
		WithRefreshInterval(InitOnFirstAccess, 20*time.Millisecond),
	)
	defer ref.Close()

	first, err := ref.Get()
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		value, err := ref.Get()
		return err == nil && value.(int32) > first.(int32)
	}, time.Second, 5*time.Millisecond)
}

func TestCloseInvokesFinalizer(t *testing.T) {
	var finalized atomic.Value
	ref := New(
		func() (interface{}, error) { return "value", nil },
		WithFinalizer(func(value interface{}) {
			finalized.Store(true)
		}),
	)

	_, err := ref.Get()
	require.NoError(t, err)

	ref.Close()
	assert.Equal(t, true, finalized.Load())

	// closing again is a no-op
	ref.Close()
}
