/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package discovery

import (
	"github.com/pkg/errors"

	"github.com/tongyuhu/fabric-sdk-node/pkg/common/errors/status"
)

// Stable messages surfaced to callers. Calling code and tests match on
// these exact strings.
const (
	missingTargetsMsg     = "Missing targets parameter"
	discoveryFailedMsg    = "Discovery has failed to return results"
	noResultsMsg          = "No discovery results found"
	missingDescriptorMsg  = "Missing peer descriptor parameter"
	invalidPlanLayoutsMsg = "missing or invalid plan layouts"

	accessDenied = "access denied"
)

var (
	errMissingIdentity       = errors.New("peer is missing an identity")
	errMissingMembershipInfo = errors.New("peer is missing membership info")
)

func errMalformedEndpoint(endpoint string) error {
	return errors.Errorf("malformed peer endpoint [%s]", endpoint)
}

// newDiscoveryResponseError surfaces an error the discovery service
// embedded in its response. The embedded message is authoritative and is
// returned verbatim.
func newDiscoveryResponseError(content string) error {
	return status.New(status.DiscoveryServerStatus, status.DiscoveryResponseError.ToInt32(), content, nil)
}
