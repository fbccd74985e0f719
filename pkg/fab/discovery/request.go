/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package discovery

import (
	discoverypb "github.com/hyperledger/fabric-protos-go/discovery"
	peerpb "github.com/hyperledger/fabric-protos-go/peer"

	"github.com/tongyuhu/fabric-sdk-node/pkg/common/errors/status"
	"github.com/tongyuhu/fabric-sdk-node/pkg/common/providers/fab"
)

// ChaincodeCall names a chaincode, and optionally the private-data
// collections of that chaincode, that a discovery query is interested in.
type ChaincodeCall struct {
	Name            string
	CollectionNames []string
}

// EndorsementContext identifies the chaincode a caller intends to have
// endorsed. When a request is built with an endorsement context and no
// explicit interest, the interest is derived from the context.
type EndorsementContext struct {
	ChaincodeName   string
	CollectionNames []string
}

// RequestOptions selects the actions of a discovery request. At least one
// of Config, Local, Endorsement or Interest must be set.
type RequestOptions struct {
	// Config requests the channel's MSP and orderer configuration. It
	// also requests channel membership, since the two are consumed
	// together.
	Config bool

	// Local requests the peers known to the target outside of any
	// channel context.
	Local bool

	// Endorsement requests an endorsement plan for the chaincode named
	// by the context.
	Endorsement *EndorsementContext

	// Interest requests an endorsement plan for an explicit set of
	// chaincode calls. Entries are preserved in order, duplicates
	// included.
	Interest []*ChaincodeCall
}

// Query is a built, unsigned discovery request bound to the identity that
// will sign it. A Query lives for one send cycle and is never mutated
// after construction.
type Query struct {
	identity  fab.SigningIdentity
	channelID string
	request   *discoverypb.Request
}

// NewQuery builds the discovery action payload for the given channel and
// options. No network I/O occurs here.
func NewQuery(identity fab.SigningIdentity, channelID string, options RequestOptions) (*Query, error) {
	if identity == nil {
		return nil, invalidArgument("Missing idContext parameter")
	}

	interest := options.Interest
	if len(interest) == 0 && options.Endorsement != nil {
		interest = []*ChaincodeCall{{
			Name:            options.Endorsement.ChaincodeName,
			CollectionNames: options.Endorsement.CollectionNames,
		}}
	}

	if !options.Config && !options.Local && len(interest) == 0 {
		return nil, status.New(status.ClientStatus, status.NoInterestProvided.ToInt32(),
			"No discovery interest provided", nil)
	}

	authInfo, err := newAuthInfo(identity)
	if err != nil {
		return nil, err
	}

	request := &discoverypb.Request{Authentication: authInfo}

	if options.Config {
		request.Queries = append(request.Queries,
			&discoverypb.Query{
				Channel: channelID,
				Query:   &discoverypb.Query_ConfigQuery{ConfigQuery: &discoverypb.ConfigQuery{}},
			},
			&discoverypb.Query{
				Channel: channelID,
				Query: &discoverypb.Query_PeerQuery{
					PeerQuery: &discoverypb.PeerMembershipQuery{},
				},
			},
		)
	}

	if options.Local {
		request.Queries = append(request.Queries, &discoverypb.Query{
			Query: &discoverypb.Query_LocalPeers{LocalPeers: &discoverypb.LocalPeerQuery{}},
		})
	}

	if len(interest) > 0 {
		ccInterest, err := asChaincodeInterest(interest)
		if err != nil {
			return nil, err
		}
		request.Queries = append(request.Queries, &discoverypb.Query{
			Channel: channelID,
			Query: &discoverypb.Query_CcQuery{
				CcQuery: &discoverypb.ChaincodeQuery{
					Interests: []*peerpb.ChaincodeInterest{ccInterest},
				},
			},
		})
	}

	return &Query{
		identity:  identity,
		channelID: channelID,
		request:   request,
	}, nil
}

// ChannelID returns the channel the query was built for.
func (q *Query) ChannelID() string {
	return q.channelID
}

// Identity returns the identity context the query was built with.
func (q *Query) Identity() fab.SigningIdentity {
	return q.identity
}

// asChaincodeInterest validates the caller's declared interest and maps it
// onto the wire format. Entries are preserved verbatim, in order: the
// caller's interest is not de-duplicated.
func asChaincodeInterest(calls []*ChaincodeCall) (*peerpb.ChaincodeInterest, error) {
	interest := &peerpb.ChaincodeInterest{}
	for _, call := range calls {
		if call == nil || call.Name == "" {
			return nil, invalidArgument("chaincode name must be a string")
		}
		for _, collection := range call.CollectionNames {
			if collection == "" {
				return nil, invalidArgument("collection names must be an array of strings")
			}
		}
		interest.Chaincodes = append(interest.Chaincodes, &peerpb.ChaincodeCall{
			Name:            call.Name,
			CollectionNames: call.CollectionNames,
		})
	}
	return interest, nil
}

func newAuthInfo(identity fab.SigningIdentity) (*discoverypb.AuthInfo, error) {
	serialized, err := identity.Serialize()
	if err != nil {
		return nil, err
	}
	return &discoverypb.AuthInfo{ClientIdentity: serialized}, nil
}

func invalidArgument(msg string) error {
	return status.New(status.ClientStatus, status.InvalidArgument.ToInt32(), msg, nil)
}
