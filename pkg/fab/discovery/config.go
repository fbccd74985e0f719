/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package discovery

import (
	discoverypb "github.com/hyperledger/fabric-protos-go/discovery"
)

// processConfig extracts the MSP definitions and orderer endpoint lists
// from a config result. An absent result yields empty mappings: config is
// an optional section of a response.
func processConfig(configResult *discoverypb.ConfigResult) (map[string]*MSPDefinition, map[string][]Endpoint) {
	msps := make(map[string]*MSPDefinition)
	orderers := make(map[string][]Endpoint)

	if configResult == nil {
		return msps, orderers
	}

	for mspID, mspConfig := range configResult.Msps {
		if mspConfig == nil {
			logger.Debugf("Skipping empty MSP config for [%s]", mspID)
			continue
		}
		def := &MSPDefinition{
			ID:                   mspID,
			Name:                 mspConfig.Name,
			RootCerts:            mspConfig.RootCerts,
			IntermediateCerts:    mspConfig.IntermediateCerts,
			TLSRootCerts:         mspConfig.TlsRootCerts,
			TLSIntermediateCerts: mspConfig.TlsIntermediateCerts,
			Admins:               mspConfig.Admins,
		}
		for _, ou := range mspConfig.OrganizationalUnitIdentifiers {
			def.OrganizationalUnitIdentifiers = append(def.OrganizationalUnitIdentifiers, OUIdentifier{
				Certificate:                  ou.Certificate,
				OrganizationalUnitIdentifier: ou.OrganizationalUnitIdentifier,
			})
		}
		msps[mspID] = def
	}

	for mspID, endpoints := range configResult.Orderers {
		parsed := []Endpoint{}
		if endpoints != nil {
			for _, ep := range endpoints.Endpoint {
				// a malformed endpoint is skipped with no effect on the
				// rest of the mapping
				if ep == nil || ep.Host == "" || ep.Port == 0 {
					logger.Debugf("Skipping malformed orderer endpoint for [%s]", mspID)
					continue
				}
				parsed = append(parsed, Endpoint{Host: ep.Host, Port: ep.Port})
			}
		}
		orderers[mspID] = parsed
	}

	return msps, orderers
}
