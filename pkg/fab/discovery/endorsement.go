/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package discovery

import (
	discoverypb "github.com/hyperledger/fabric-protos-go/discovery"

	"github.com/tongyuhu/fabric-sdk-node/pkg/common/errors/status"
)

// processChaincode reduces a chaincode query result into endorsement
// plans keyed by chaincode name. A response may answer for several
// chaincodes at once; each descriptor produces one plan.
func (s *Service) processChaincode(result *discoverypb.ChaincodeQueryResult, res *Result, currentTargetURL string) (map[string]*EndorsementPlan, error) {
	plans := make(map[string]*EndorsementPlan)
	if result == nil {
		return plans, nil
	}

	for _, descriptor := range result.Content {
		if descriptor == nil {
			continue
		}
		plan, err := s.buildPlan(descriptor, res, currentTargetURL)
		if err != nil {
			return nil, err
		}
		plans[descriptor.Chaincode] = plan
	}
	return plans, nil
}

// buildPlan decodes one endorsement descriptor: group membership first,
// then the layouts that reference those groups. A descriptor without
// usable layouts cannot produce a plan and fails the chaincode's
// response; an individual layout that is unsatisfiable is excluded
// without failing the rest of the plan.
func (s *Service) buildPlan(descriptor *discoverypb.EndorsementDescriptor, res *Result, currentTargetURL string) (*EndorsementPlan, error) {
	if len(descriptor.Layouts) == 0 {
		return nil, status.New(status.DiscoveryServerStatus, status.InvalidPlanLayouts.ToInt32(),
			invalidPlanLayoutsMsg, nil)
	}

	plan := &EndorsementPlan{
		Chaincode: descriptor.Chaincode,
		Groups:    make(map[string][]*PeerDescriptor),
	}

	for group, peers := range descriptor.EndorsersByGroups {
		members := []*PeerDescriptor{}
		if peers != nil {
			for _, peer := range peers.Peers {
				member, err := s.decodePeer("", peer)
				if err != nil {
					logger.Warnf("Skipping endorser of group [%s] for chaincode [%s]: %s",
						group, descriptor.Chaincode, err)
					continue
				}
				member.Handle = s.resolvePeerHandle(member, res, currentTargetURL)
				members = append(members, member)
			}
		}
		plan.Groups[group] = members
	}

	for _, layout := range descriptor.Layouts {
		decoded, ok := decodeLayout(layout, plan.Groups)
		if !ok {
			logger.Debugf("Excluding unsatisfiable layout for chaincode [%s]", descriptor.Chaincode)
			continue
		}
		plan.Layouts = append(plan.Layouts, decoded)
	}

	return plan, nil
}

// decodeLayout validates one layout against the decoded groups. A layout
// is unusable when it is empty, references a group that was not decoded,
// or requires more peers from a group than that group holds.
func decodeLayout(layout *discoverypb.Layout, groups map[string][]*PeerDescriptor) (Layout, bool) {
	if layout == nil || len(layout.QuantitiesByGroup) == 0 {
		return nil, false
	}

	decoded := make(Layout, len(layout.QuantitiesByGroup))
	for group, quantity := range layout.QuantitiesByGroup {
		members, exists := groups[group]
		if !exists {
			return nil, false
		}
		if int(quantity) > len(members) {
			return nil, false
		}
		decoded[group] = int(quantity)
	}
	return decoded, true
}
