/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package discovery

import (
	"github.com/golang/protobuf/proto"
	gossippb "github.com/hyperledger/fabric-protos-go/gossip"
	msppb "github.com/hyperledger/fabric-protos-go/msp"
	"github.com/pkg/errors"
)

// envelopeToGossipMessage unmarshals the payload of a gossip envelope.
func envelopeToGossipMessage(envelope *gossippb.Envelope) (*gossippb.GossipMessage, error) {
	if envelope == nil {
		return nil, errors.New("nil envelope")
	}
	msg := &gossippb.GossipMessage{}
	if err := proto.Unmarshal(envelope.Payload, msg); err != nil {
		return nil, errors.Wrap(err, "failed unmarshaling gossip envelope")
	}
	return msg, nil
}

// aliveFromEnvelope decodes a membership_info envelope into its alive
// message. The alive message carries the peer's network endpoint and must
// be present and well-formed.
func aliveFromEnvelope(envelope *gossippb.Envelope) (*gossippb.AliveMessage, error) {
	msg, err := envelopeToGossipMessage(envelope)
	if err != nil {
		return nil, err
	}
	alive := msg.GetAliveMsg()
	if alive == nil {
		return nil, errors.New("message isn't an alive message")
	}
	if alive.Membership == nil {
		return nil, errors.New("membership is empty")
	}
	return alive, nil
}

// stateInfoFromEnvelope decodes a state_info envelope. A nil envelope is
// not an error: gossip state may not have propagated for the peer yet, and
// discovery degrades gracefully rather than dropping it.
func stateInfoFromEnvelope(envelope *gossippb.Envelope) (*gossippb.StateInfo, error) {
	if envelope == nil {
		return nil, nil
	}
	msg, err := envelopeToGossipMessage(envelope)
	if err != nil {
		return nil, err
	}
	stateInfo := msg.GetStateInfo()
	if stateInfo == nil {
		return nil, errors.New("message isn't a stateInfo message")
	}
	return stateInfo, nil
}

// mspIDFromIdentity extracts the MSP id from a serialized identity.
func mspIDFromIdentity(identity []byte) (string, error) {
	sID := &msppb.SerializedIdentity{}
	if err := proto.Unmarshal(identity, sID); err != nil {
		return "", errors.Wrap(err, "failed unmarshaling peer's identity")
	}
	return sID.Mspid, nil
}
