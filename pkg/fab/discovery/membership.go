/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package discovery

import (
	"net"
	"strconv"

	discoverypb "github.com/hyperledger/fabric-protos-go/discovery"
	gossippb "github.com/hyperledger/fabric-protos-go/gossip"
)

// processMembership extracts the per-organization peer descriptors from a
// members result, resolving each descriptor to a peer handle. An
// organization with zero valid peers still appears in the output with an
// empty sequence, so callers can distinguish "no peers reported" from
// "organization absent from response".
func (s *Service) processMembership(result *discoverypb.PeerMembershipResult, res *Result, currentTargetURL string) map[string][]*PeerDescriptor {
	peersByOrg := make(map[string][]*PeerDescriptor)
	if result == nil {
		return peersByOrg
	}

	for org, peers := range result.PeersByOrg {
		descriptors := []*PeerDescriptor{}
		if peers != nil {
			for _, peer := range peers.Peers {
				descriptor, err := s.decodePeer(org, peer)
				if err != nil {
					logger.Warnf("Skipping peer of org [%s]: %s", org, err)
					continue
				}
				descriptor.Handle = s.resolvePeerHandle(descriptor, res, currentTargetURL)
				descriptors = append(descriptors, descriptor)
			}
		}
		peersByOrg[org] = descriptors
	}
	return peersByOrg
}

// decodePeer turns one wire-level peer entry into a descriptor. The
// identity and membership_info sections are required; state_info is
// optional, since a peer whose gossip state has not yet propagated is
// still a usable endorser candidate.
func (s *Service) decodePeer(org string, peer *discoverypb.Peer) (*PeerDescriptor, error) {
	if peer == nil || len(peer.Identity) == 0 {
		return nil, errMissingIdentity
	}
	if peer.MembershipInfo == nil {
		return nil, errMissingMembershipInfo
	}

	alive, err := aliveFromEnvelope(peer.MembershipInfo)
	if err != nil {
		return nil, err
	}

	endpoint := alive.Membership.Endpoint
	host, port, err := splitEndpoint(endpoint)
	if err != nil {
		return nil, err
	}

	mspID, err := mspIDFromIdentity(peer.Identity)
	if err != nil || mspID == "" {
		// the organization key of the response section is authoritative
		// enough when the identity bytes don't parse
		mspID = org
	}

	descriptor := &PeerDescriptor{
		MSPID:    mspID,
		Endpoint: endpoint,
		Host:     host,
		Port:     port,
	}

	stateInfo, err := stateInfoFromEnvelope(peer.StateInfo)
	if err != nil {
		logger.Debugf("Ignoring malformed state info for peer [%s]: %s", endpoint, err)
	} else if stateInfo != nil {
		descriptor.HasStateInfo = true
		if props := stateInfo.Properties; props != nil {
			descriptor.LedgerHeight = props.LedgerHeight
			descriptor.Chaincodes = chaincodeNames(props.Chaincodes)
		}
	}

	return descriptor, nil
}

func chaincodeNames(chaincodes []*gossippb.Chaincode) []string {
	var names []string
	for _, cc := range chaincodes {
		if cc != nil && cc.Name != "" {
			names = append(names, cc.Name)
		}
	}
	return names
}

func splitEndpoint(endpoint string) (string, uint32, error) {
	host, portStr, err := net.SplitHostPort(endpoint)
	if err != nil {
		return "", 0, errMalformedEndpoint(endpoint)
	}
	port, err := strconv.ParseUint(portStr, 10, 32)
	if err != nil {
		return "", 0, errMalformedEndpoint(endpoint)
	}
	return host, uint32(port), nil
}
