/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package status

// Code is a status code within a group. Codes in the ClientStatus group
// identify error conditions produced by the SDK itself, while codes in the
// DiscoveryServerStatus group reflect conditions reported by, or inferred
// from, the discovery service.
type Code uint32

const (
	// OK is returned on success.
	OK Code = 0

	// Unknown is an unmapped code
	Unknown Code = 1

	// InvalidArgument indicates a malformed construction input supplied by
	// the caller.
	InvalidArgument Code = 2

	// NoInterestProvided indicates that a discovery request was built with
	// nothing to query: no config, local, endorsement or interest action.
	NoInterestProvided Code = 3

	// MissingTargets indicates that a send was attempted without targets.
	MissingTargets Code = 4

	// DiscoveryFailed indicates that every target was exhausted without a
	// usable result.
	DiscoveryFailed Code = 5

	// DiscoveryResponseError indicates that the discovery service embedded
	// an error object in its response. The embedded message is
	// authoritative and surfaced verbatim.
	DiscoveryResponseError Code = 6

	// InvalidPlanLayouts indicates that a chaincode query response carried
	// no usable endorsement layouts.
	InvalidPlanLayouts Code = 7

	// MissingDescriptor indicates that peer resolution was invoked without
	// a peer descriptor. This is a programmer error.
	MissingDescriptor Code = 8

	// MultipleErrors is given when more than one error was captured from an
	// operation spanning multiple targets.
	MultipleErrors Code = 9

	// NoDiscoveryResults indicates that results were requested before any
	// query had been sent, so there is nothing cached and nothing to
	// re-send.
	NoDiscoveryResults Code = 10
)

// CodeName maps the codes in this package to human-readable strings
var CodeName = map[int32]string{
	0:  "OK",
	1:  "UNKNOWN",
	2:  "INVALID_ARGUMENT",
	3:  "NO_INTEREST_PROVIDED",
	4:  "MISSING_TARGETS",
	5:  "DISCOVERY_FAILED",
	6:  "DISCOVERY_RESPONSE_ERROR",
	7:  "INVALID_PLAN_LAYOUTS",
	8:  "MISSING_DESCRIPTOR",
	9:  "MULTIPLE_ERRORS",
	10: "NO_DISCOVERY_RESULTS",
}

// String returns the name of the code, or its number when unmapped.
func (c Code) String() string {
	if s, ok := CodeName[int32(c)]; ok {
		return s
	}
	return Unknown.String()
}

// ToInt32 cast to int32
func (c Code) ToInt32() int32 {
	return int32(c)
}
