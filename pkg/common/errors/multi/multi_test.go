/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package multi

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	assert.Nil(t, New())
	assert.Nil(t, New(nil, nil))

	err1 := errors.New("target one refused")
	assert.Equal(t, err1, New(err1, nil))

	err2 := errors.New("target two refused")
	merged := New(err1, err2)
	errs, ok := merged.(Errors)
	assert.True(t, ok)
	assert.Len(t, errs, 2)
	assert.Contains(t, merged.Error(), "Multiple errors occurred:")
	assert.Contains(t, merged.Error(), err1.Error())
	assert.Contains(t, merged.Error(), err2.Error())
}

func TestAppend(t *testing.T) {
	err1 := errors.New("first")
	err2 := errors.New("second")

	var errs error
	errs = Append(errs, err1)
	assert.Equal(t, err1, errs)

	errs = Append(errs, err2)
	m, ok := errs.(Errors)
	assert.True(t, ok)
	assert.Len(t, m, 2)

	// appending nil leaves the collection untouched
	errs = Append(errs, nil)
	assert.Len(t, errs.(Errors), 2)
}

func TestToError(t *testing.T) {
	assert.Nil(t, Errors{}.ToError())

	err1 := errors.New("only")
	assert.Equal(t, err1, Errors{err1}.ToError())

	err2 := errors.New("another")
	combined := Errors{err1, err2}.ToError()
	assert.Len(t, combined.(Errors), 2)
}
