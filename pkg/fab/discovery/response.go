/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package discovery

import (
	discoverypb "github.com/hyperledger/fabric-protos-go/discovery"
)

// validateResponse rejects a response in which the discovery service
// embedded an error object. The embedded message is authoritative for the
// whole query, so the first one found fails the response; the remaining
// results are not processed.
func validateResponse(results []*discoverypb.QueryResult) error {
	for _, result := range results {
		if result == nil {
			continue
		}
		if e := result.GetError(); e != nil {
			return newDiscoveryResponseError(e.Content)
		}
	}
	return nil
}
