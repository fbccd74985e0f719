/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package status defines metadata for errors returned by the SDK. This
// information may be used by callers to make decisions about how to handle
// certain error conditions without matching on message text. The message
// itself is kept stable and is returned verbatim by Error, since calling
// code and tests match on the exact strings.
package status

import (
	"github.com/pkg/errors"

	"github.com/tongyuhu/fabric-sdk-node/pkg/common/errors/multi"
)

// Status provides additional information about an unsuccessful operation.
type Status struct {
	// Group status group
	Group Group
	// Code status code
	Code int32
	// Message status message
	Message string
	// Details any additional status details
	Details []interface{}
}

// Group of status to help users infer status codes from various components
type Group int32

const (
	// UnknownStatus unknown status group
	UnknownStatus Group = iota

	// ClientStatus defines the status produced by the SDK itself, for
	// example by validating request construction input.
	ClientStatus

	// DiscoveryServerStatus status originating at the discovery service
	DiscoveryServerStatus
)

// GroupName maps the groups in this package to human-readable strings
var GroupName = map[int32]string{
	0: "Unknown",
	1: "Client Status",
	2: "Discovery Server Status",
}

func (g Group) String() string {
	if s, ok := GroupName[int32(g)]; ok {
		return s
	}
	return UnknownStatus.String()
}

// New returns a Status with the given parameters
func New(group Group, code int32, msg string, details []interface{}) *Status {
	return &Status{Group: group, Code: code, Message: msg, Details: details}
}

// Error returns the status message verbatim. Group, code and details are
// available as metadata for callers that need them.
func (s *Status) Error() string {
	return s.Message
}

// FromError returns a Status representing err if available,
// otherwise it returns nil, false.
func FromError(err error) (s *Status, ok bool) {
	if err == nil {
		return &Status{Code: OK.ToInt32()}, true
	}
	if s, ok := err.(*Status); ok {
		return s, true
	}
	unwrappedErr := errors.Cause(err)
	if s, ok := unwrappedErr.(*Status); ok {
		return s, true
	}
	if m, ok := unwrappedErr.(multi.Errors); ok {
		// Return all of the errors in the details
		var details []interface{}
		for _, err := range m {
			details = append(details, err)
		}
		return New(ClientStatus, MultipleErrors.ToInt32(), m.Error(), details), true
	}

	return nil, false
}
