/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package mocks provides a mock Discovery server for testing the
// discovery session against a real gRPC transport.
package mocks

import (
	"context"
	"time"

	"github.com/golang/protobuf/proto"
	"github.com/hyperledger/fabric-protos-go/discovery"
	"github.com/hyperledger/fabric-protos-go/gossip"
	"github.com/hyperledger/fabric-protos-go/msp"
	"github.com/pkg/errors"
)

// MockDiscoveryServer is a mock Discovery server
type MockDiscoveryServer struct {
	localPeersByOrg map[string]*discovery.Peers
	peersByOrg      map[string]*discovery.Peers
	config          *discovery.ConfigResult
	endorsers       []*discovery.EndorsementDescriptor
	responseError   string
	discoverError   error
}

// MockDiscoveryServerOpt is an option for the MockDiscoveryServer
type MockDiscoveryServerOpt func(s *MockDiscoveryServer)

// WithPeers adds a set of mock peers to the MockDiscoveryServer
func WithPeers(peers ...*MockDiscoveryPeerEndpoint) MockDiscoveryServerOpt {
	return func(s *MockDiscoveryServer) {
		s.peersByOrg = asPeersByOrg(peers)
	}
}

// WithLocalPeers adds a set of mock local peers to the MockDiscoveryServer
func WithLocalPeers(peers ...*MockDiscoveryPeerEndpoint) MockDiscoveryServerOpt {
	return func(s *MockDiscoveryServer) {
		s.localPeersByOrg = asPeersByOrg(peers)
	}
}

// WithConfig sets the config result returned for config queries
func WithConfig(config *discovery.ConfigResult) MockDiscoveryServerOpt {
	return func(s *MockDiscoveryServer) {
		s.config = config
	}
}

// WithEndorsers sets the endorsement descriptors returned for chaincode
// queries
func WithEndorsers(endorsers ...*discovery.EndorsementDescriptor) MockDiscoveryServerOpt {
	return func(s *MockDiscoveryServer) {
		s.endorsers = endorsers
	}
}

// WithResponseError makes every query return an embedded error result
// with the given content
func WithResponseError(content string) MockDiscoveryServerOpt {
	return func(s *MockDiscoveryServer) {
		s.responseError = content
	}
}

// WithDiscoverError makes the Discover call itself fail with the given
// error
func WithDiscoverError(err error) MockDiscoveryServerOpt {
	return func(s *MockDiscoveryServer) {
		s.discoverError = err
	}
}

// NewServer returns a new MockDiscoveryServer
func NewServer(opts ...MockDiscoveryServerOpt) *MockDiscoveryServer {
	s := &MockDiscoveryServer{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Discover processes the given Discovery request and returns a mock response
func (s *MockDiscoveryServer) Discover(ctx context.Context, request *discovery.SignedRequest) (*discovery.Response, error) {
	if s.discoverError != nil {
		return nil, s.discoverError
	}
	if request == nil {
		return nil, errors.New("nil request")
	}

	req := &discovery.Request{}
	err := proto.Unmarshal(request.Payload, req)
	if err != nil {
		return nil, errors.Wrap(err, "failed parsing request")
	}
	if req.Authentication == nil {
		return nil, errors.New("access denied, no authentication info in request")
	}
	if len(req.Authentication.ClientIdentity) == 0 {
		return nil, errors.New("access denied, client identity wasn't supplied")
	}

	var results []*discovery.QueryResult
	for _, q := range req.Queries {
		result := s.processQuery(q)
		if result != nil {
			results = append(results, result)
		}
	}
	return &discovery.Response{
		Results: results,
	}, nil
}

func (s *MockDiscoveryServer) processQuery(q *discovery.Query) *discovery.QueryResult {
	if s.responseError != "" {
		return errorResult(s.responseError)
	}

	if q.Channel == "" {
		if query := q.GetLocalPeers(); query != nil {
			return membersResult(s.localPeersByOrg)
		}
	} else {
		if query := q.GetPeerQuery(); query != nil {
			return membersResult(s.peersByOrg)
		}
		if query := q.GetConfigQuery(); query != nil {
			return s.getConfigQueryResult()
		}
		if query := q.GetCcQuery(); query != nil {
			return s.getCCQueryResult()
		}
	}
	return nil
}

func membersResult(peersByOrg map[string]*discovery.Peers) *discovery.QueryResult {
	if peersByOrg == nil {
		return errorResult("no peers")
	}
	return &discovery.QueryResult{
		Result: &discovery.QueryResult_Members{
			Members: &discovery.PeerMembershipResult{
				PeersByOrg: peersByOrg,
			},
		},
	}
}

func (s *MockDiscoveryServer) getConfigQueryResult() *discovery.QueryResult {
	if s.config == nil {
		return errorResult("no config")
	}
	return &discovery.QueryResult{
		Result: &discovery.QueryResult_ConfigResult{
			ConfigResult: s.config,
		},
	}
}

func (s *MockDiscoveryServer) getCCQueryResult() *discovery.QueryResult {
	if len(s.endorsers) == 0 {
		return errorResult("no endorsement descriptors")
	}
	return &discovery.QueryResult{
		Result: &discovery.QueryResult_CcQueryRes{
			CcQueryRes: &discovery.ChaincodeQueryResult{
				Content: s.endorsers,
			},
		},
	}
}

func errorResult(content string) *discovery.QueryResult {
	return &discovery.QueryResult{
		Result: &discovery.QueryResult_Error{
			Error: &discovery.Error{
				Content: content,
			},
		},
	}
}

// AsDiscoveryPeer returns the wire form of the given peer endpoint.
func AsDiscoveryPeer(p *MockDiscoveryPeerEndpoint) *discovery.Peer {
	memInfoMsg := &gossip.GossipMessage{
		Content: &gossip.GossipMessage_AliveMsg{
			AliveMsg: &gossip.AliveMessage{
				Membership: &gossip.Member{
					Endpoint: p.Endpoint,
				},
				Timestamp: &gossip.PeerTime{
					SeqNum: uint64(1000),
					IncNum: uint64(time.Now().UnixNano()),
				},
			},
		},
	}
	memInfoPayload, err := proto.Marshal(memInfoMsg)
	if err != nil {
		panic(err.Error())
	}

	identity, err := proto.Marshal(&msp.SerializedIdentity{
		Mspid:   p.MSPID,
		IdBytes: []byte(p.Endpoint),
	})
	if err != nil {
		panic(err.Error())
	}

	peer := &discovery.Peer{
		Identity: identity,
		MembershipInfo: &gossip.Envelope{
			Payload: memInfoPayload,
		},
	}

	if p.NoStateInfo {
		return peer
	}

	stateInfoMsg := &gossip.GossipMessage{
		Content: &gossip.GossipMessage_StateInfo{
			StateInfo: &gossip.StateInfo{
				Properties: &gossip.Properties{
					LedgerHeight: p.LedgerHeight,
					Chaincodes:   p.Chaincodes,
					LeftChannel:  p.LeftChannel,
				},
				Timestamp: &gossip.PeerTime{
					SeqNum: uint64(1000),
					IncNum: uint64(time.Now().UnixNano()),
				},
			},
		},
	}
	stateInfoPayload, err := proto.Marshal(stateInfoMsg)
	if err != nil {
		panic(err.Error())
	}
	peer.StateInfo = &gossip.Envelope{
		Payload: stateInfoPayload,
	}

	return peer
}

// MockDiscoveryPeerEndpoint contains information about a Discover peer endpoint
type MockDiscoveryPeerEndpoint struct {
	MSPID        string
	Endpoint     string
	LedgerHeight uint64
	Chaincodes   []*gossip.Chaincode
	LeftChannel  bool
	NoStateInfo  bool
}

func asPeersByOrg(peers []*MockDiscoveryPeerEndpoint) map[string]*discovery.Peers {
	peersByOrg := make(map[string]*discovery.Peers)
	for _, p := range peers {
		peers, ok := peersByOrg[p.MSPID]
		if !ok {
			peers = &discovery.Peers{}
			peersByOrg[p.MSPID] = peers
		}

		peers.Peers = append(peers.Peers, AsDiscoveryPeer(p))
	}
	return peersByOrg
}
